// Package loader reads annotation and symbol mapping tables into a Dataset.
//
// # Table Formats
//
// Annotation table, one annotation per line:
//
//	id <TAB> name <TAB> description [<TAB> sym1,sym2,...]
//
// Symbol mapping table, one symbol per line:
//
//	symbol <TAB> anno1,anno2,... [<TAB> name]
//
// Blank lines and lines starting with '#' are skipped. Missing trailing
// fields are empty.
//
// # Compression
//
// Input compressed with gzip, zstd or lz4 (frame format) is detected by its
// magic bytes and decompressed transparently.
//
// # Atomicity
//
// A table is read and parsed completely before anything is applied, and the
// number of new records is checked against the remaining capacity. A read,
// parse or capacity error leaves the Dataset unchanged.
package loader
