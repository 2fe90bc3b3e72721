package wire

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func newTestReader(s string) *Reader {
	return NewReader(strings.NewReader(s))
}

func TestReadArrayHeader(t *testing.T) {
	r := newTestReader("*3\r\n")
	n, err := r.ReadArrayHeader()
	if err != nil {
		t.Fatalf("read array header: %v", err)
	}
	if n != 3 {
		t.Fatalf("count: got %d want 3", n)
	}
}

func TestReadArrayHeaderZeroAccepted(t *testing.T) {
	r := newTestReader("*0\r\n")
	n, err := r.ReadArrayHeader()
	if err != nil {
		t.Fatalf("read array header: %v", err)
	}
	if n != 0 {
		t.Fatalf("count: got %d want 0", n)
	}
}

func TestReadArrayHeaderAtEndOfSourceIsEOF(t *testing.T) {
	r := newTestReader("")
	if _, err := r.ReadArrayHeader(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF at frame boundary, got %v", err)
	}
}

func TestReadArrayHeaderWrongMarkerIsDeterministic(t *testing.T) {
	r := newTestReader("$3\r\n")
	if _, err := r.ReadArrayHeader(); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestReadArrayHeaderBadCountIsDeterministic(t *testing.T) {
	for _, in := range []string{"*x\r\n", "*\r\n", "*12x\r\n", "*-1\r\n", "*1\rX"} {
		r := newTestReader(in)
		if _, err := r.ReadArrayHeader(); !errors.Is(err, ErrMalformed) {
			t.Fatalf("input %q: expected ErrMalformed, got %v", in, err)
		}
	}
}

func TestReadArrayHeaderTruncatedCountIsEOF(t *testing.T) {
	r := newTestReader("*12")
	if _, err := r.ReadArrayHeader(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestReadBulk(t *testing.T) {
	r := newTestReader("$4\r\nPing\r\n")
	payload, null, err := r.ReadBulk()
	if err != nil {
		t.Fatalf("read bulk: %v", err)
	}
	if null {
		t.Fatalf("unexpected null")
	}
	if !bytes.Equal(payload, []byte("Ping")) {
		t.Fatalf("payload: got %q", payload)
	}
}

func TestReadBulkEmptyPayload(t *testing.T) {
	r := newTestReader("$0\r\n\r\n")
	payload, null, err := r.ReadBulk()
	if err != nil {
		t.Fatalf("read bulk: %v", err)
	}
	if null || len(payload) != 0 {
		t.Fatalf("expected empty payload, got %q null=%v", payload, null)
	}
}

func TestReadBulkNull(t *testing.T) {
	r := newTestReader("$-1\r\n")
	payload, null, err := r.ReadBulk()
	if err != nil {
		t.Fatalf("read bulk: %v", err)
	}
	if !null || payload != nil {
		t.Fatalf("expected null bulk, got %q null=%v", payload, null)
	}
}

func TestReadBulkBinaryPayloadWithEmbeddedCRLF(t *testing.T) {
	r := newTestReader("$6\r\nab\r\ncd\r\n")
	payload, _, err := r.ReadBulk()
	if err != nil {
		t.Fatalf("read bulk: %v", err)
	}
	if !bytes.Equal(payload, []byte("ab\r\ncd")) {
		t.Fatalf("payload: got %q", payload)
	}
}

func TestReadBulkMissingTerminatorIsMalformed(t *testing.T) {
	// The payload arrived in full; only the terminator is absent.
	r := newTestReader("$4\r\nkey1")
	if _, _, err := r.ReadBulk(); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestReadBulkWrongTerminatorIsMalformed(t *testing.T) {
	r := newTestReader("$4\r\nkey1XY")
	if _, _, err := r.ReadBulk(); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestReadBulkTruncatedPayloadIsEOF(t *testing.T) {
	r := newTestReader("$4\r\nke")
	if _, _, err := r.ReadBulk(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestReadBulkAtEndOfSourceIsEOFError(t *testing.T) {
	// A bulk string is only ever read mid-frame, so exhaustion here is
	// truncation, not a boundary.
	r := newTestReader("")
	if _, _, err := r.ReadBulk(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestReadBulkLengthMismatchIsMalformed(t *testing.T) {
	// Declared 3, actual 4: the terminator check trips on the extra byte.
	r := newTestReader("$3\r\nkey1\r\n")
	if _, _, err := r.ReadBulk(); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestReadBulkOverLimitIsDeterministic(t *testing.T) {
	r := NewReaderLimits(strings.NewReader("$100\r\n"), Limits{MaxBulkBytes: 10, MaxArrayElements: 10})
	if _, _, err := r.ReadBulk(); !errors.Is(err, ErrBulkTooLarge) {
		t.Fatalf("expected ErrBulkTooLarge, got %v", err)
	}
}

func TestReadArrayHeaderOverLimitIsDeterministic(t *testing.T) {
	r := NewReaderLimits(strings.NewReader("*100\r\n"), Limits{MaxBulkBytes: 10, MaxArrayElements: 10})
	if _, err := r.ReadArrayHeader(); !errors.Is(err, ErrArrayTooLarge) {
		t.Fatalf("expected ErrArrayTooLarge, got %v", err)
	}
}

func TestMoreReportsRemainingBytes(t *testing.T) {
	r := newTestReader("$4\r\nPing\r\nX")
	if _, _, err := r.ReadBulk(); err != nil {
		t.Fatalf("read bulk: %v", err)
	}
	if !r.More() {
		t.Fatalf("expected remaining bytes")
	}
	r = newTestReader("$4\r\nPing\r\n")
	if _, _, err := r.ReadBulk(); err != nil {
		t.Fatalf("read bulk: %v", err)
	}
	if r.More() {
		t.Fatalf("expected exhausted source")
	}
}
