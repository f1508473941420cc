// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package index

import (
	"github.com/biogo/cram/internal"
	"github.com/biogo/cram/refctx"
	"github.com/biogo/cram/slice"
)

// BAIChunk is the byte range a BAIEntry's bin covers. CRAM has no
// BGZF virtual offsets to draw on, so a chunk is simply the container's
// byte offset extended by the slice's own size (§4.11 "requires the
// same indexing parameters as CRAI") rather than a per-record virtual
// offset pair; a consumer wanting finer granularity than "which slice"
// must fall back to CRAI plus the slice's own record scan.
type BAIChunk struct {
	Begin int64
	End   int64
}

// BAIEntry is one classic-SAM-binning index entry derived from a
// slice's alignment context (§4.11): the reference it names, the bin
// number its interval falls in, and the byte chunk housing it.
type BAIEntry struct {
	SeqID int
	Bin   uint32
	Chunk BAIChunk
}

// BAIEntriesForSlice derives s's BAI entries the same way
// CRAIEntriesForSlice derives CRAI entries: one entry for a SingleRef
// or UnmappedUnplaced slice, one per distinct reference context (plus
// one for any unplaced records) for MultiRef. s must already be
// indexed (slice.Indexing).
func BAIEntriesForSlice(s *slice.Slice) ([]BAIEntry, error) {
	idx, err := s.Indexing()
	if err != nil {
		return nil, err
	}
	chunk := BAIChunk{Begin: idx.ContainerOffset, End: idx.ContainerOffset + idx.Size}

	switch s.Context.Ref.Kind() {
	case refctx.KindSingleRef:
		return []BAIEntry{{
			SeqID: s.Context.Ref.SeqID(),
			Bin:   binForAlignment(s.Context.Start, s.Context.Span),
			Chunk: chunk,
		}}, nil
	case refctx.KindUnmappedUnplaced:
		return []BAIEntry{{
			SeqID: refctx.UnmappedUnplacedID,
			Bin:   internal.UnmappedBin,
			Chunk: chunk,
		}}, nil
	}

	spans, err := slice.ComputeAlignmentSpans(s.Records)
	if err != nil {
		return nil, err
	}
	out := make([]BAIEntry, 0, len(spans))
	for _, sp := range spans {
		if sp.Ref.Kind() != refctx.KindSingleRef {
			out = append(out, BAIEntry{SeqID: refctx.UnmappedUnplacedID, Bin: internal.UnmappedBin, Chunk: chunk})
			continue
		}
		out = append(out, BAIEntry{
			SeqID: sp.Ref.SeqID(),
			Bin:   binForAlignment(sp.Start, sp.Span),
			Chunk: chunk,
		})
	}
	return out, nil
}

// binForAlignment converts a CRAM 1-based (start, span) alignment into
// the 0-based half-open interval internal.BinFor expects.
func binForAlignment(start, span int) uint32 {
	if span <= 0 {
		return internal.UnmappedBin
	}
	return internal.BinFor(start-1, start-1+span)
}
