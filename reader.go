package cram

import (
	"bufio"
	"io"

	"github.com/biogo/cram/compressor"
	"github.com/biogo/cram/container"
	"github.com/biogo/cram/errs"
	"github.com/biogo/cram/refctx"
	"github.com/biogo/cram/refsource"
	"github.com/biogo/cram/sam"
)

// Reader steps a single stream through file definition, header
// container, and containers in sequence (§5: "single-threaded per
// stream"). It recognizes end of stream by peeking for the fixed EOF
// marker rather than attempting to parse it as a container.
type Reader struct {
	br    *bufio.Reader
	cache *compressor.Cache
	refs  refsource.ReferenceSource

	// Definition is the file definition read from the stream.
	Definition FileDefinition
	// Header is the SAM header carried by the stream's header
	// container.
	Header *sam.Header

	// Stringency governs how Next responds to a reference MD5
	// mismatch (§7). It defaults to errs.Strict.
	Stringency errs.Stringency
	// Warnings receives a line of diagnostic text for every anomaly
	// Stringency downgrades from an error. It defaults to io.Discard.
	Warnings io.Writer
}

// NewReader reads r's file definition and header container and
// returns a Reader positioned at the first container. refs, if
// non-nil, is used to validate each SingleRef slice's recorded
// reference MD5 against the stringency-governed reference checksum
// check of §7; it may be nil when reference validation is not wanted.
func NewReader(r io.Reader, refs refsource.ReferenceSource) (*Reader, error) {
	def, err := readFileDefinition(r)
	if err != nil {
		return nil, err
	}
	fb, err := container.ReadFileHeader(r)
	if err != nil {
		return nil, err
	}
	text, err := decodeFileHeaderPayload(fb.Raw())
	if err != nil {
		return nil, err
	}
	h, err := sam.NewHeader(text, nil)
	if err != nil {
		return nil, err
	}
	return &Reader{
		br:         bufio.NewReader(r),
		cache:      compressor.NewCache(),
		refs:       refs,
		Definition: def,
		Header:     h,
		Warnings:   io.Discard,
	}, nil
}

// Next reads and returns the next container from the stream, or
// io.EOF once the EOF marker is reached. A read past a recognized EOF
// marker always returns io.EOF again.
func (cr *Reader) Next() (*container.Container, error) {
	peek, err := cr.br.Peek(container.EOFMarkerLen)
	if err == nil && container.IsEOFMarker(peek) {
		cr.br.Discard(container.EOFMarkerLen)
		return nil, io.EOF
	}

	c, err := container.ReadFrom(cr.br, cr.cache)
	if err != nil {
		return nil, err
	}
	if err := cr.checkReferences(c); err != nil {
		return nil, err
	}
	return c, nil
}

// checkReferences applies the §7 reference-MD5 validation to every
// SingleRef slice of c, governed by cr.Stringency: Strict returns the
// first mismatch as an error, Lenient logs it to cr.Warnings and
// continues, Silent ignores it.
func (cr *Reader) checkReferences(c *container.Container) error {
	if cr.refs == nil || !c.CompressionHeader.Preservation.ReferenceRequired {
		return nil
	}
	for _, s := range c.Slices {
		if s.Context.Ref.Kind() != refctx.KindSingleRef {
			continue
		}
		got, err := cr.refs.GetReferenceMD5(s.Context.Ref.SeqID(), s.Context.Start, s.Context.Span)
		if err != nil {
			return err
		}
		if got == s.RefMD5 {
			continue
		}
		mismatch := &errs.ReferenceMismatchError{
			RefID: s.Context.Ref.SeqID(),
			Start: s.Context.Start,
			Span:  s.Context.Span,
			Want:  s.RefMD5,
			Got:   got,
		}
		switch cr.Stringency {
		case errs.Strict:
			return mismatch
		case errs.Lenient:
			cr.warnf(mismatch)
		}
	}
	return nil
}

func (cr *Reader) warnf(err error) {
	w := cr.Warnings
	if w == nil {
		w = io.Discard
	}
	io.WriteString(w, err.Error()+"\n")
}
