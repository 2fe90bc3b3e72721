package wire

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Length lines longer than this are rejected before overflow becomes a
// concern.
const maxLengthDigits = 10

// Reader is a forward-only frame reader over a byte source. It owns the
// source's cursor position; after any error the position is undefined
// and the reader must not be reused within the failed frame.
type Reader struct {
	r      *bufio.Reader
	limits Limits
}

func NewReader(r io.Reader) *Reader {
	return NewReaderLimits(r, DefaultLimits())
}

func NewReaderLimits(r io.Reader, limits Limits) *Reader {
	return &Reader{r: bufio.NewReader(r), limits: limits}
}

// ReadArrayHeader reads `*<count>\r\n` and returns the element count.
// It returns io.EOF untouched when the source is exhausted at the
// marker position, so callers can tell a frame boundary from a frame
// truncated mid-way.
func (r *Reader) ReadArrayHeader() (int, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, io.EOF
		}
		return 0, err
	}
	if b != ArrayMarker {
		return 0, fmt.Errorf("%w: expected '*', got %q", ErrMalformed, b)
	}
	n, err := r.readLength()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: null array", ErrMalformed)
	}
	if n > r.limits.MaxArrayElements {
		return 0, fmt.Errorf("%w: %d elements", ErrArrayTooLarge, n)
	}
	return n, nil
}

// ReadBulk reads one bulk string `$<len>\r\n<payload>\r\n`. A declared
// length of -1 is the null bulk string and yields null=true with no
// payload.
func (r *Reader) ReadBulk() (payload []byte, null bool, err error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return nil, false, eofErr(err)
	}
	if b != BulkMarker {
		return nil, false, fmt.Errorf("%w: expected '$', got %q", ErrMalformed, b)
	}
	n, err := r.readLength()
	if err != nil {
		return nil, false, err
	}
	if n < 0 {
		return nil, true, nil
	}
	if n > r.limits.MaxBulkBytes {
		return nil, false, fmt.Errorf("%w: %d bytes", ErrBulkTooLarge, n)
	}
	payload = make([]byte, n)
	if _, err := io.ReadFull(r.r, payload); err != nil {
		return nil, false, eofErr(err)
	}
	if err := r.readTerminator(); err != nil {
		return nil, false, err
	}
	return payload, false, nil
}

// More reports whether the source has bytes past the current position.
func (r *Reader) More() bool {
	_, err := r.r.Peek(1)
	return err == nil
}

// readLength parses an ASCII decimal length followed by CRLF. The only
// accepted negative form is -1, the null length.
func (r *Reader) readLength() (int, error) {
	var (
		n      int
		digits int
		neg    bool
		first  = true
	)
	for {
		b, err := r.r.ReadByte()
		if err != nil {
			return 0, eofErr(err)
		}
		if first && b == '-' {
			neg = true
			first = false
			continue
		}
		first = false
		switch {
		case b >= '0' && b <= '9':
			digits++
			if digits > maxLengthDigits {
				return 0, fmt.Errorf("%w: length too long", ErrMalformed)
			}
			n = n*10 + int(b-'0')
		case b == '\r':
			if digits == 0 {
				return 0, fmt.Errorf("%w: empty length", ErrMalformed)
			}
			lf, err := r.r.ReadByte()
			if err != nil {
				return 0, eofErr(err)
			}
			if lf != '\n' {
				return 0, fmt.Errorf("%w: unbalanced CRLF", ErrMalformed)
			}
			if neg {
				if n != 1 {
					return 0, fmt.Errorf("%w: bad negative length", ErrMalformed)
				}
				return -1, nil
			}
			return n, nil
		default:
			return 0, fmt.Errorf("%w: bad length byte %q", ErrMalformed, b)
		}
	}
}

// readTerminator consumes the CRLF after a bulk payload. A short read
// here means the payload itself arrived in full, so the violation is a
// grammar error rather than truncation.
func (r *Reader) readTerminator() error {
	var term [2]byte
	if _, err := io.ReadFull(r.r, term[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: missing terminator", ErrMalformed)
		}
		return err
	}
	if term[0] != '\r' || term[1] != '\n' {
		return fmt.Errorf("%w: unbalanced CRLF", ErrMalformed)
	}
	return nil
}

func eofErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrUnexpectedEOF
	}
	return err
}
