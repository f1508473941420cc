// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package record implements the logical CRAM record (§4.7) and its
// intra-slice mate graph.
package record

import (
	"github.com/biogo/cram/feature"
	"github.com/biogo/cram/refctx"
	"github.com/biogo/cram/sam"
)

// NoMate is the sentinel mate-graph index meaning "no mate in this
// slice" (§9 Design Notes: mate graph as array indices with a
// sentinel for detached).
const NoMate = -1

// Tag is a single auxiliary tag attached to a record, identified by
// its 3-byte tag id (see header.TagID) and carrying its raw value
// bytes in SAM binary tag encoding.
type Tag struct {
	ID    [3]byte
	Value []byte
}

// Record is the logical CRAM alignment record of §3 Data Model / §4.7.
// Mate linkage is expressed as indices into the owning slice's record
// array, never as pointers (§9 Design Notes).
type Record struct {
	ReadName string

	Flags sam.Flags
	CRAM  Flags

	RefID          int
	AlignmentStart int
	ReadLength     int
	MappingQuality byte
	ReadGroupID    int
	TemplateSize   int

	ReadBases     []byte
	QualityScores []byte
	Features      []feature.Feature

	Tags []Tag

	MateFlags          MateFlags
	MateRefID          int
	MateAlignmentStart int
	RecordsToNextFrag  int

	// NextMate and PrevMate are indices into the owning slice's record
	// slice, or NoMate if this record is detached or at a graph end.
	NextMate int
	PrevMate int

	// SequentialIndex is this record's monotonically increasing
	// per-stream record number, assigned by the reader/writer.
	SequentialIndex int64
}

// Reference returns r's own reference context, derived from RefID:
// UnmappedUnplaced if RefID is refctx.UnmappedUnplacedID, SingleRef(RefID)
// otherwise. It never returns MultiRef; that variant only arises when
// aggregating References across many records (refctx.InferSlice).
func (r *Record) Reference() refctx.Reference {
	if r.RefID == refctx.UnmappedUnplacedID {
		return refctx.UnmappedUnplaced()
	}
	return refctx.SingleRef(r.RefID)
}

// IsPlaced reports whether r has a valid alignment start, per the
// "placed" vs "mapped" distinction of §4.7.
func (r *Record) IsPlaced() bool {
	return r.AlignmentStart != refctx.NoAlignmentStart
}

// IsMapped reports whether r's unmapped flag is clear.
func (r *Record) IsMapped() bool {
	return r.Flags&sam.Unmapped == 0
}

// IsDetached reports whether r has no mate within its slice.
func (r *Record) IsDetached() bool {
	return r.CRAM&Detached != 0 || r.NextMate == NoMate && r.PrevMate == NoMate
}

// AlignmentEnd returns the record's alignment end, derived from its
// alignment start and read features when placed; NoAlignmentEnd
// otherwise (§3 Data Model invariant).
func (r *Record) AlignmentEnd() int {
	if !r.IsPlaced() || !r.IsMapped() {
		return refctx.NoAlignmentEnd
	}
	span := r.ReadLength
	for _, f := range r.Features {
		switch f.Code {
		case feature.Deletion, feature.RefSkip:
			span += f.Len
		case feature.Insertion, feature.Bases:
			span -= len(f.Seq)
		case feature.SoftClip:
			span -= len(f.Seq)
		case feature.InsertBase, feature.ReadBase:
			span--
		}
	}
	if span < 0 {
		span = 0
	}
	return r.AlignmentStart + span - 1
}
