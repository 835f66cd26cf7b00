package enriched

// DefaultCapacity is the per-side record capacity used when Config.Capacity
// is zero.
const DefaultCapacity = 1 << 16

// Config describes the tables a Session is built from.
type Config struct {
	// Capacity bounds the number of symbols and of annotations.
	Capacity uint32

	// AnnotationTable names the annotation table in the source. Required.
	AnnotationTable string

	// SymbolTable names the symbol mapping table. Optional when the
	// annotation table carries its own symbol lists in a fourth column.
	SymbolTable string
}

// DefaultConfig returns a Config for the given tables.
func DefaultConfig(annotationTable, symbolTable string) Config {
	return Config{
		Capacity:        DefaultCapacity,
		AnnotationTable: annotationTable,
		SymbolTable:     symbolTable,
	}
}

// Validate checks the config and fills in defaults.
func (c *Config) Validate() error {
	if c.Capacity == 0 {
		c.Capacity = DefaultCapacity
	}
	if c.AnnotationTable == "" {
		return &ConfigError{Field: "AnnotationTable", Reason: "must be set"}
	}
	if c.SymbolTable == c.AnnotationTable {
		return &ConfigError{Field: "SymbolTable", Reason: "must differ from AnnotationTable"}
	}
	return nil
}
