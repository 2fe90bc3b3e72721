// Package wire owns the byte-level frame grammar.
//
// Ownership boundary:
// - array header and bulk string read/write primitives
// - decode limits
// - wire-syntax and truncation errors
package wire
