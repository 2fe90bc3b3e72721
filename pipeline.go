package resp

import (
	"errors"
	"io"

	"github.com/aptend/serde-resp/schema"
	"github.com/aptend/serde-resp/wire"
)

// Pipeline decodes a stream of consecutive frames from one byte source.
// The sequence ends when the source is exhausted at a frame boundary.
// Any mid-frame error poisons the pipeline for good: the format has no
// resynchronization point, so a corrupt frame leaves the cursor
// unrecoverable.
//
// A pipeline owns its source's cursor; two pipelines must never share
// one source.
type Pipeline struct {
	d    *Decoder
	cmd  Command
	err  error
	done bool
}

func NewPipeline(r io.Reader, set schema.Set) *Pipeline {
	return &Pipeline{d: NewDecoder(r, set)}
}

func NewPipelineLimits(r io.Reader, set schema.Set, limits wire.Limits) *Pipeline {
	return &Pipeline{d: NewDecoderLimits(r, set, limits)}
}

// Next advances to the next frame. It returns false at the end of the
// stream or after any error; check Err to tell the two apart.
func (p *Pipeline) Next() bool {
	if p.done {
		return false
	}
	cmd, err := p.d.Decode()
	if err != nil {
		p.done = true
		if !errors.Is(err, io.EOF) {
			p.err = err
		}
		return false
	}
	p.cmd = cmd
	return true
}

// Command returns the frame decoded by the last successful Next.
func (p *Pipeline) Command() Command { return p.cmd }

// Err returns the error that poisoned the pipeline, or nil after a
// clean end of stream.
func (p *Pipeline) Err() error { return p.err }
