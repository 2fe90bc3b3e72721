package resp

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/aptend/serde-resp/internal/logging"
	"github.com/aptend/serde-resp/schema"
	"github.com/aptend/serde-resp/wire"
)

// Decoder reads frames from a byte source and reconstructs commands
// against a variant set. Decoding is a single forward pass; after an
// error the source position is undefined and the decoder must not be
// reused within the failed frame.
type Decoder struct {
	r   *wire.Reader
	set schema.Set
}

func NewDecoder(r io.Reader, set schema.Set) *Decoder {
	return NewDecoderLimits(r, set, wire.DefaultLimits())
}

func NewDecoderLimits(r io.Reader, set schema.Set, limits wire.Limits) *Decoder {
	return &Decoder{r: wire.NewReaderLimits(r, limits), set: set}
}

// Decode reads one frame: array header, command name, exact-match
// dispatch, arity check, then positional binding of each argument. It
// returns io.EOF when the source is exhausted at a frame boundary.
func (d *Decoder) Decode() (Command, error) {
	count, err := d.r.ReadArrayHeader()
	if err != nil {
		return Command{}, err
	}
	if count == 0 {
		return Command{}, fmt.Errorf("%w: frame has no command name", ErrMalformedFrame)
	}
	name, null, err := d.r.ReadBulk()
	if err != nil {
		return Command{}, err
	}
	if null {
		return Command{}, fmt.Errorf("%w: null command name", ErrMalformedFrame)
	}
	spec, ok := d.set.Lookup(string(name))
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	if count != spec.Arity() {
		return Command{}, fmt.Errorf("%w: command %q wants %d elements, frame has %d",
			ErrArityMismatch, spec.Name, spec.Arity(), count)
	}
	logging.Logger().Debug().Str("command", spec.Name).Int("args", len(spec.Args)).Msg("resp: decoding frame")

	args := make([]schema.Value, len(spec.Args))
	for i, arg := range spec.Args {
		payload, null, err := d.r.ReadBulk()
		if err != nil {
			return Command{}, err
		}
		if null {
			if !arg.Optional {
				return Command{}, fmt.Errorf("%w: arg %q is not optional", ErrTypeMismatch, arg.Name)
			}
			args[i] = schema.Null(arg.Kind)
			continue
		}
		v, err := bindScalar(arg.Kind, payload)
		if err != nil {
			return Command{}, fmt.Errorf("arg %q: %w", arg.Name, err)
		}
		args[i] = v
	}
	return Command{Name: spec.Name, Args: args}, nil
}

// Unmarshal decodes exactly one frame from data and rejects leftover
// bytes.
func Unmarshal(data []byte, set schema.Set) (Command, error) {
	d := NewDecoder(bytes.NewReader(data), set)
	cmd, err := d.Decode()
	if err != nil {
		return Command{}, err
	}
	if d.r.More() {
		return Command{}, ErrTrailingBytes
	}
	return cmd, nil
}

// bindScalar converts one bulk string payload to the declared kind.
func bindScalar(kind schema.Kind, payload []byte) (schema.Value, error) {
	switch kind {
	case schema.KindString:
		return schema.NewString(string(payload)), nil
	case schema.KindInt:
		n, err := strconv.ParseInt(string(payload), 10, 64)
		if err != nil {
			return schema.Value{}, fmt.Errorf("%w: %q is not an integer", ErrTypeMismatch, payload)
		}
		return schema.NewInt(n), nil
	case schema.KindUint:
		n, err := strconv.ParseUint(string(payload), 10, 64)
		if err != nil {
			return schema.Value{}, fmt.Errorf("%w: %q is not an unsigned integer", ErrTypeMismatch, payload)
		}
		return schema.NewUint(n), nil
	case schema.KindBool:
		switch string(payload) {
		case "true":
			return schema.NewBool(true), nil
		case "false":
			return schema.NewBool(false), nil
		}
		return schema.Value{}, fmt.Errorf("%w: %q is not a boolean", ErrTypeMismatch, payload)
	case schema.KindChar:
		// U+FFFD itself is a legal char; DecodeRune flags a bad encoding
		// by returning RuneError with size 1.
		r, size := utf8.DecodeRune(payload)
		if size == 0 || size != len(payload) || (r == utf8.RuneError && size == 1) {
			return schema.Value{}, fmt.Errorf("%w: %q is not a single character", ErrTypeMismatch, payload)
		}
		return schema.NewChar(r), nil
	case schema.KindBytes:
		return schema.NewBytes(payload), nil
	}
	return schema.Value{}, fmt.Errorf("%w: cannot bind kind %s", ErrTypeMismatch, kind)
}
