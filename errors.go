package resp

import (
	"errors"

	"github.com/aptend/serde-resp/wire"
)

var (
	ErrUnsupportedShape = errors.New("resp: unsupported shape")
	ErrUnknownVariant   = errors.New("resp: unknown command name")
	ErrArityMismatch    = errors.New("resp: element count mismatch")
	ErrTypeMismatch     = errors.New("resp: argument type mismatch")
	ErrTrailingBytes    = errors.New("resp: trailing bytes after frame")
)

// Wire-level failures surface under these names; they are the wire
// package's sentinels, so errors.Is matches either spelling.
var (
	ErrMalformedFrame = wire.ErrMalformed
	ErrUnexpectedEOF  = wire.ErrUnexpectedEOF
)
