package cram

import (
	"io"

	"github.com/biogo/cram/block"
	"github.com/biogo/cram/container"
	"github.com/biogo/cram/factory"
	"github.com/biogo/cram/record"
	"github.com/biogo/cram/sam"
)

// Writer drives a factory.ContainerFactory over an io.Writer: it opens
// a stream with the file definition and header container, turns each
// submitted record into containers as the factory's thresholds close
// them, and always terminates the stream with an EOF container, even
// when Close is reached after a write failure (§5 Concurrency &
// Resource Model: "Writers must always terminate with an EOF container
// even on failure to produce data").
type Writer struct {
	w       io.Writer
	offset  int64
	factory *factory.ContainerFactory
	closed  bool
}

// NewWriter writes def and h's header container to w, then returns a
// Writer that appends containers built by fc as records are submitted
// to it.
func NewWriter(w io.Writer, def FileDefinition, h *sam.Header, fc *factory.ContainerFactory) (*Writer, error) {
	if err := def.writeTo(w); err != nil {
		return nil, err
	}
	text, err := h.MarshalText()
	if err != nil {
		return nil, err
	}
	fb := block.NewFileHeader(encodeFileHeaderPayload(text, HeaderPaddingFactor))
	n, err := container.WriteFileHeader(w, fb)
	if err != nil {
		return nil, err
	}
	return &Writer{w: w, offset: n, factory: fc}, nil
}

// WriteRecord submits r to the underlying factory and writes out
// whatever containers that closes.
func (cw *Writer) WriteRecord(r *record.Record) error {
	closed, err := cw.factory.AddRecord(r)
	if err != nil {
		return err
	}
	return cw.writeContainers(closed)
}

func (cw *Writer) writeContainers(cs []*container.Container) error {
	for _, c := range cs {
		c.SetByteOffset(cw.offset)
		n, err := c.WriteTo(cw.w)
		cw.offset += n
		if err != nil {
			return err
		}
	}
	return nil
}

// Flush closes whatever slice and container the factory is still
// accumulating and writes the result out, without writing the EOF
// marker. It is safe to continue writing records afterward.
func (cw *Writer) Flush() error {
	closed, err := cw.factory.Flush()
	if err != nil {
		return err
	}
	return cw.writeContainers(closed)
}

// Close flushes any pending container and appends the EOF marker. It
// attempts to write the EOF marker even if the flush fails, so that a
// truncated write is still distinguishable from a well-formed but
// short stream; the flush error, if any, is returned.
func (cw *Writer) Close() error {
	if cw.closed {
		return nil
	}
	cw.closed = true
	flushErr := cw.Flush()
	if eofErr := container.WriteEOF(cw.w); eofErr != nil && flushErr == nil {
		return eofErr
	}
	return flushErr
}
