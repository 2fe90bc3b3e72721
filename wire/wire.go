package wire

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Frame markers for the client->server encoding. Every frame is an
// array of bulk strings; no other element types are valid in this
// direction.
const (
	ArrayMarker byte = '*'
	BulkMarker  byte = '$'
)

var (
	crlf     = []byte{'\r', '\n'}
	nullBulk = []byte("$-1\r\n")
)

var (
	ErrMalformed     = errors.New("wire: malformed frame")
	ErrUnexpectedEOF = errors.New("wire: unexpected end of input")
	ErrBulkTooLarge  = errors.New("wire: bulk string exceeds limit")
	ErrArrayTooLarge = errors.New("wire: array exceeds limit")
)

// Limits constrains decode memory use. Declared lengths are checked
// against the limits before any payload allocation.
type Limits struct {
	MaxBulkBytes     int
	MaxArrayElements int
}

func DefaultLimits() Limits {
	return Limits{
		MaxBulkBytes:     8 * 1024 * 1024,
		MaxArrayElements: 1024 * 1024,
	}
}

// WriteArrayHeader writes `*<n>\r\n`.
func WriteArrayHeader(w io.Writer, n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative array length %d", ErrMalformed, n)
	}
	return writeHeader(w, ArrayMarker, n)
}

// WriteBulk writes `$<len>\r\n<payload>\r\n`. The payload is written
// verbatim; the declared length is always its exact byte count.
func WriteBulk(w io.Writer, payload []byte) error {
	if err := writeHeader(w, BulkMarker, len(payload)); err != nil {
		return err
	}
	if len(payload) > 0 {
		if _, err := w.Write(payload); err != nil {
			return err
		}
	}
	_, err := w.Write(crlf)
	return err
}

// WriteBulkString writes s as a bulk string.
func WriteBulkString(w io.Writer, s string) error {
	return WriteBulk(w, []byte(s))
}

// WriteNullBulk writes the null bulk string `$-1\r\n`, the absent case
// of an optional value.
func WriteNullBulk(w io.Writer) error {
	_, err := w.Write(nullBulk)
	return err
}

func writeHeader(w io.Writer, marker byte, n int) error {
	buf := make([]byte, 0, 16)
	buf = append(buf, marker)
	buf = strconv.AppendInt(buf, int64(n), 10)
	buf = append(buf, crlf...)
	_, err := w.Write(buf)
	return err
}
