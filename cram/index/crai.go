// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package index derives CRAI and BAI index entries from a CRAM
// container's slices (§4.11): per-reference byte-offset entries for
// CRAI, and SAM-binned entries for BAI.
package index

import (
	"sort"

	"github.com/biogo/cram/errs"
	"github.com/biogo/cram/refctx"
	"github.com/biogo/cram/slice"
)

// CRAIEntry is one line of a CRAM index: the byte range of a slice (or
// one reference's share of a MultiRef slice) keyed by reference
// sequence and alignment interval (§4.11).
type CRAIEntry struct {
	SeqID           int
	AlignmentStart  int
	AlignmentSpan   int
	ContainerOffset int64
	SliceOffset     int64
	SliceSize       int64
}

// alignment reconstructs the Alignment e denotes, for use with
// refctx.Alignment.Intersects.
func (e CRAIEntry) alignment() refctx.Alignment {
	if e.SeqID == refctx.UnmappedUnplacedID {
		return refctx.NewAlignment(refctx.UnmappedUnplaced(), refctx.NoAlignmentStart, refctx.NoAlignmentSpan)
	}
	return refctx.NewAlignment(refctx.SingleRef(e.SeqID), e.AlignmentStart, e.AlignmentSpan)
}

// Intersects reports whether e and o cover overlapping reference
// intervals, per §4.11: same seq_id, both spans > 0, and overlapping
// [start, start+span) ranges; an UnmappedUnplaced entry never
// intersects anything, including itself.
func (e CRAIEntry) Intersects(o CRAIEntry) bool {
	return e.alignment().Intersects(o.alignment())
}

// CRAIEntriesForSlice derives s's CRAI entries (§4.11): one entry for a
// SingleRef or UnmappedUnplaced slice, or one entry per distinct
// reference context (plus one for any unplaced records) for a MultiRef
// slice, expanded via the slice's own alignment-span pass. s must have
// been indexed by its Container (slice.Indexing) first.
func CRAIEntriesForSlice(s *slice.Slice) ([]CRAIEntry, error) {
	idx, err := s.Indexing()
	if err != nil {
		return nil, err
	}

	switch s.Context.Ref.Kind() {
	case refctx.KindSingleRef:
		return []CRAIEntry{{
			SeqID:           s.Context.Ref.SeqID(),
			AlignmentStart:  s.Context.Start,
			AlignmentSpan:   s.Context.Span,
			ContainerOffset: idx.ContainerOffset,
			SliceOffset:     idx.SliceOffset,
			SliceSize:       idx.Size,
		}}, nil
	case refctx.KindUnmappedUnplaced:
		return []CRAIEntry{{
			SeqID:           refctx.UnmappedUnplacedID,
			AlignmentStart:  refctx.UnplacedSpanStart,
			AlignmentSpan:   refctx.UnplacedSpanLen,
			ContainerOffset: idx.ContainerOffset,
			SliceOffset:     idx.SliceOffset,
			SliceSize:       idx.Size,
		}}, nil
	}

	spans, err := slice.ComputeAlignmentSpans(s.Records)
	if err != nil {
		return nil, err
	}
	out := make([]CRAIEntry, 0, len(spans))
	for _, sp := range spans {
		seqID := refctx.UnmappedUnplacedID
		if sp.Ref.Kind() == refctx.KindSingleRef {
			seqID = sp.Ref.SeqID()
		}
		out = append(out, CRAIEntry{
			SeqID:           seqID,
			AlignmentStart:  sp.Start,
			AlignmentSpan:   sp.Span,
			ContainerOffset: idx.ContainerOffset,
			SliceOffset:     idx.SliceOffset,
			SliceSize:       idx.Size,
		})
	}
	return out, nil
}

// NewCRAIEntry constructs a single CRAI entry directly, rejecting
// MultipleReferenceID per §4.11: a MultiRef context must first be
// expanded into per-reference entries by CRAIEntriesForSlice, never
// addressed as one entry.
func NewCRAIEntry(seqID, alignmentStart, alignmentSpan int, containerOffset, sliceOffset, sliceSize int64) (CRAIEntry, error) {
	if seqID == refctx.MultipleReferenceID {
		return CRAIEntry{}, &errs.InvalidStateError{Context: "CRAI entry for the multiple-reference context", Err: errs.ErrMultiRefIndexEntry}
	}
	return CRAIEntry{
		SeqID:           seqID,
		AlignmentStart:  alignmentStart,
		AlignmentSpan:   alignmentSpan,
		ContainerOffset: containerOffset,
		SliceOffset:     sliceOffset,
		SliceSize:       sliceSize,
	}, nil
}

// SortCRAIEntries sorts entries into the total order of §4.11: seq_id
// ascending with UnmappedUnplacedID sorting last; within a seq_id,
// placed entries order by alignment_start, then container_offset, then
// slice_offset, while unmapped entries (seq_id == UnmappedUnplacedID)
// ignore alignment_start and order by container_offset then
// slice_offset alone.
func SortCRAIEntries(entries []CRAIEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		ai, bi := craiSortSeqID(a.SeqID), craiSortSeqID(b.SeqID)
		if ai != bi {
			return ai < bi
		}
		if a.SeqID != refctx.UnmappedUnplacedID && a.AlignmentStart != b.AlignmentStart {
			return a.AlignmentStart < b.AlignmentStart
		}
		if a.ContainerOffset != b.ContainerOffset {
			return a.ContainerOffset < b.ContainerOffset
		}
		return a.SliceOffset < b.SliceOffset
	})
}

// craiSortSeqID maps a CRAI entry's seq_id to its sort key: seq_id
// itself for a placed reference, or the maximum possible key for
// UnmappedUnplacedID so it always sorts last.
func craiSortSeqID(seqID int) int {
	if seqID == refctx.UnmappedUnplacedID {
		return int(^uint(0) >> 1)
	}
	return seqID
}
