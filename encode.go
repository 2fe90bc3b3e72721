package resp

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/aptend/serde-resp/schema"
	"github.com/aptend/serde-resp/wire"
)

// Encoder writes commands to a byte sink in the client wire format.
type Encoder struct {
	w io.Writer
}

func NewEncoder(w io.Writer) *Encoder { return &Encoder{w: w} }

// Encode writes cmd as one frame: an array holding the command name
// followed by every argument, each as a single bulk string. Shapes are
// checked before any byte reaches the sink, so a rejected command
// leaves the sink untouched.
func (e *Encoder) Encode(cmd Command) error {
	if cmd.Name == "" {
		return fmt.Errorf("%w: command without a name", ErrUnsupportedShape)
	}
	for i, arg := range cmd.Args {
		if err := checkShape(arg); err != nil {
			return fmt.Errorf("arg %d: %w", i, err)
		}
	}
	if err := wire.WriteArrayHeader(e.w, len(cmd.Args)+1); err != nil {
		return err
	}
	if err := wire.WriteBulkString(e.w, cmd.Name); err != nil {
		return err
	}
	for _, arg := range cmd.Args {
		if err := writeValue(e.w, arg); err != nil {
			return err
		}
	}
	return nil
}

// Marshal encodes cmd into a fresh byte slice.
func Marshal(cmd Command) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(cmd); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalValue encodes one bare scalar as a single bulk string.
func MarshalValue(v schema.Value) ([]byte, error) {
	if err := checkShape(v); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := writeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// checkShape rejects values the wire format cannot carry. Floats and
// unordered maps fail here by contract rather than being approximated,
// and so does an invalid rune, which string conversion would silently
// replace with U+FFFD.
func checkShape(v schema.Value) error {
	if !v.Kind.Encodable() {
		return fmt.Errorf("%w: %s", ErrUnsupportedShape, v.Kind)
	}
	if v.Kind == schema.KindChar && !v.Null && !utf8.ValidRune(v.Char) {
		return fmt.Errorf("%w: invalid char %#U", ErrUnsupportedShape, v.Char)
	}
	return nil
}

func writeValue(w io.Writer, v schema.Value) error {
	if v.Null {
		return wire.WriteNullBulk(w)
	}
	switch v.Kind {
	case schema.KindString:
		return wire.WriteBulkString(w, v.Str)
	case schema.KindInt:
		return wire.WriteBulk(w, strconv.AppendInt(nil, v.Int, 10))
	case schema.KindUint:
		return wire.WriteBulk(w, strconv.AppendUint(nil, v.Uint, 10))
	case schema.KindBool:
		if v.Bool {
			return wire.WriteBulkString(w, "true")
		}
		return wire.WriteBulkString(w, "false")
	case schema.KindChar:
		return wire.WriteBulkString(w, string(v.Char))
	case schema.KindBytes:
		return wire.WriteBulk(w, v.Bytes)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedShape, v.Kind)
}
