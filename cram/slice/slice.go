// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package slice implements the CRAM slice (§3 Slice, §4.8): a
// self-contained bundle of records sharing a reference context, coded
// as a header block, a core-data block, and a set of external blocks.
package slice

import (
	"sort"

	"github.com/biogo/cram/block"
	"github.com/biogo/cram/compressor"
	"github.com/biogo/cram/dataseries"
	"github.com/biogo/cram/encoding"
	"github.com/biogo/cram/errs"
	"github.com/biogo/cram/header"
	"github.com/biogo/cram/record"
	"github.com/biogo/cram/refctx"
	"github.com/biogo/cram/refsource"
)

// Slice is one CRAM slice: its alignment context, the records it
// holds, and the blocks that carry them on the wire.
type Slice struct {
	Context refctx.Alignment
	Records []*record.Record
	RefMD5  [16]byte

	HeaderBlock    *block.Block
	CoreBlock      *block.Block
	ExternalBlocks map[int32]*block.Block

	indexing *Indexing
}

// sliceAlignment derives a slice's Alignment from the References and
// placements of its own records: InferSlice for the Reference, then,
// for a SingleRef result, the bounding [min start, max end] over every
// placed record.
func sliceAlignment(records []*record.Record) refctx.Alignment {
	refs := make([]refctx.Reference, len(records))
	for i, r := range records {
		refs[i] = r.Reference()
	}
	ref := refctx.InferSlice(refs)
	if ref.Kind() != refctx.KindSingleRef {
		return refctx.NewAlignment(ref, refctx.NoAlignmentStart, refctx.NoAlignmentSpan)
	}

	start, end := 0, 0
	seen := false
	for _, r := range records {
		if !r.IsPlaced() {
			continue
		}
		e := r.AlignmentStart + recordSpan(r) - 1
		if !seen || r.AlignmentStart < start {
			start = r.AlignmentStart
		}
		if !seen || e > end {
			end = e
		}
		seen = true
	}
	if !seen {
		return refctx.NewAlignment(ref, refctx.NoAlignmentStart, refctx.NoAlignmentSpan)
	}
	span := end - start + 1
	if span < 0 {
		span = 0
	}
	return refctx.NewAlignment(ref, start, span)
}

// Build codes records into a Slice using the encodings and preservation
// settings of ch, then compresses its core and external blocks per
// §4.5's default write-path routing (header.BlockCompressionFor) using
// cache, a Compressor cache shared across the stream, and gzipLevel,
// the gzip level that routing falls back to for series it does not
// name explicitly. refs supplies the reference-span MD5 for a SingleRef
// slice when ch.Preservation.ReferenceRequired is set; it may be nil
// otherwise.
func Build(records []*record.Record, ch *header.CompressionHeader, refs refsource.ReferenceSource, cache *compressor.Cache, gzipLevel int) (*Slice, error) {
	alignment := sliceAlignment(records)
	multiRef := alignment.Ref.Kind() == refctx.KindMultiRef

	s := &Slice{
		Context:        alignment,
		Records:        records,
		ExternalBlocks: make(map[int32]*block.Block),
	}

	if alignment.Ref.Kind() == refctx.KindSingleRef && ch.Preservation.ReferenceRequired {
		if refs == nil {
			return nil, &errs.InvalidStateError{Context: "slice build requires a reference source"}
		}
		md5, err := refs.GetReferenceMD5(alignment.Ref.SeqID(), alignment.Start, alignment.Span)
		if err != nil {
			return nil, err
		}
		s.RefMD5 = md5
	}

	c, err := newCodecs(ch, multiRef)
	if err != nil {
		return nil, err
	}
	ss := encoding.NewStreams()
	if err := writeRecords(ss, ch, c, records, multiRef); err != nil {
		return nil, err
	}

	s.CoreBlock = block.NewCore(ss.Core.Bytes())
	if err := s.CoreBlock.Compress(cache, compressor.Gzip, gzipLevel); err != nil {
		return nil, err
	}
	for _, id := range ss.ExternalIDs() {
		eb := block.NewExternal(id, ss.Bytes(id))
		method, param := externalBlockMethod(id, gzipLevel)
		if err := eb.Compress(cache, method, param); err != nil {
			return nil, err
		}
		s.ExternalBlocks[id] = eb
	}

	var counter int64
	if len(records) > 0 {
		counter = records[0].SequentialIndex
	}
	hdr := encodeSliceHeader(alignment, len(records), counter, ss.ExternalIDs(), s.RefMD5)
	s.HeaderBlock = block.NewSliceHeader(hdr)
	return s, nil
}

// externalBlockMethod returns the compression method and parameter for
// the external block with the given content id, by mapping it back to
// its data series and consulting header.BlockCompressionFor. A content
// id above header's length-substream offset names a BYTE_ARRAY_LEN
// length stream rather than a series in its own right; those are small
// integer streams with no series-specific routing, so they fall back
// to gzip like any other unnamed series.
func externalBlockMethod(contentID int32, gzipLevel int) (compressor.Method, int) {
	if s, ok := dataseries.SeriesForContentID(contentID); ok {
		return header.BlockCompressionFor(s, gzipLevel)
	}
	return compressor.Gzip, gzipLevel
}

// Parse reconstructs a Slice from its already-decompressed header,
// core, and external blocks (as produced by block.Block.ReadFrom) using
// the compression header ch.
func Parse(headerBlock, coreBlock *block.Block, externalBlocks map[int32]*block.Block, ch *header.CompressionHeader) (*Slice, error) {
	h, err := decodeSliceHeader(headerBlock.Raw())
	if err != nil {
		return nil, err
	}
	multiRef := h.ref.Kind() == refctx.KindMultiRef

	external := make(map[int32][]byte, len(externalBlocks))
	for id, b := range externalBlocks {
		external[id] = b.Raw()
	}
	ss := encoding.NewDecodeStreams(coreBlock.Raw(), external)

	c, err := newCodecs(ch, multiRef)
	if err != nil {
		return nil, err
	}
	fixedRefID := refctx.UnmappedUnplacedID
	if h.ref.Kind() == refctx.KindSingleRef {
		fixedRefID = h.ref.SeqID()
	}
	records, err := readRecords(ss, ch, c, h.numRecords, multiRef, fixedRefID)
	if err != nil {
		return nil, err
	}
	for i, r := range records {
		r.SequentialIndex = h.recordCounter + int64(i)
	}

	s := &Slice{
		Context:        refctx.NewAlignment(h.ref, h.start, h.span),
		Records:        records,
		RefMD5:         h.md5,
		HeaderBlock:    headerBlock,
		CoreBlock:      coreBlock,
		ExternalBlocks: externalBlocks,
	}
	return s, nil
}

// Blocks returns every block this slice is made of, in wire order:
// header, core, then external blocks ordered by ascending content id.
func (s *Slice) Blocks() []*block.Block {
	out := make([]*block.Block, 0, 2+len(s.ExternalBlocks))
	out = append(out, s.HeaderBlock, s.CoreBlock)
	ids := make([]int32, 0, len(s.ExternalBlocks))
	for id := range s.ExternalBlocks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		out = append(out, s.ExternalBlocks[id])
	}
	return out
}
