// Package schema owns the shape contract between application values and
// the wire format.
//
// Ownership boundary:
// - scalar kinds and the typed Value container
// - command shape descriptors and variant sets
// - construction-time shape validation
package schema
