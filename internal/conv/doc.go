// Package conv provides checked integer conversions for values that arrive
// as plain ints from flags or environment variables.
package conv
