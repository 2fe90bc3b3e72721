// Package resp implements the client-side Redis wire encoding for
// typed commands: every frame is an array of bulk strings whose first
// element is the command name.
//
// Ownership boundary:
// - encoding a Command into wire bytes
// - schema-directed decoding of wire bytes back into a Command
// - pipelined decoding of consecutive frames from one source
package resp
