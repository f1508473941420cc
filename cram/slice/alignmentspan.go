// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slice

import (
	"github.com/biogo/cram/errs"
	"github.com/biogo/cram/record"
	"github.com/biogo/cram/refctx"
)

// AlignmentSpan is one entry of the multi-reference alignment-span pass
// of §4.8: the aggregate (start, span) and mapped/unmapped record counts
// for one reference context within a slice.
type AlignmentSpan struct {
	Ref      refctx.Reference
	Start    int
	Span     int
	Mapped   int
	Unmapped int
}

// recordSpan returns the number of reference bases r is considered to
// cover for the purposes of the alignment-span pass: the CIGAR/feature
// derived alignment span when mapped, or the raw read length when
// placed but unmapped (a CRAM record never carries read features while
// unmapped, so there is no finer-grained span to derive).
func recordSpan(r *record.Record) int {
	if r.IsMapped() {
		end := r.AlignmentEnd()
		if end == refctx.NoAlignmentEnd {
			return 0
		}
		return end - r.AlignmentStart + 1
	}
	return r.ReadLength
}

// ComputeAlignmentSpans runs the multi-reference alignment-span pass of
// §4.8 over records, returning one AlignmentSpan per distinct reference
// context encountered, in first-seen order, with any UnmappedUnplaced
// records reported last as a single aggregate span of
// (refctx.UnplacedSpanStart, refctx.UnplacedSpanLen).
//
// The pass requires records to be coordinate-sorted: within the
// subsequence of records sharing a reference context, AlignmentStart
// must be non-decreasing. Records for different reference contexts may
// be interleaved; only the per-context ordering is checked, since that
// is all a later per-reference CRAI expansion (§4.11) needs.
func ComputeAlignmentSpans(records []*record.Record) ([]AlignmentSpan, error) {
	type agg struct {
		ref                refctx.Reference
		start, end         int
		mapped, unmapped   int
		lastStart          int
	}

	var order []refctx.Reference
	byRef := make(map[refctx.Reference]*agg)
	var unplacedCount int
	sawUnplaced := false

	for _, r := range records {
		ref := r.Reference()
		if ref.Kind() == refctx.KindUnmappedUnplaced {
			unplacedCount++
			sawUnplaced = true
			continue
		}

		a, ok := byRef[ref]
		if !ok {
			a = &agg{ref: ref, start: r.AlignmentStart, end: r.AlignmentStart - 1, lastStart: r.AlignmentStart}
			byRef[ref] = a
			order = append(order, ref)
		} else if r.AlignmentStart < a.lastStart {
			return nil, &errs.InvalidStateError{Context: "alignment span pass", Err: errs.ErrNotCoordinateSorted}
		}
		a.lastStart = r.AlignmentStart

		span := recordSpan(r)
		end := r.AlignmentStart + span - 1
		if end > a.end {
			a.end = end
		}
		if r.AlignmentStart < a.start {
			a.start = r.AlignmentStart
		}
		if r.IsMapped() {
			a.mapped++
		} else {
			a.unmapped++
		}
	}

	out := make([]AlignmentSpan, 0, len(order)+1)
	for _, ref := range order {
		a := byRef[ref]
		out = append(out, AlignmentSpan{
			Ref:      a.ref,
			Start:    a.start,
			Span:     a.end - a.start + 1,
			Mapped:   a.mapped,
			Unmapped: a.unmapped,
		})
	}
	if sawUnplaced {
		out = append(out, AlignmentSpan{
			Ref:      refctx.UnmappedUnplaced(),
			Start:    refctx.UnplacedSpanStart,
			Span:     refctx.UnplacedSpanLen,
			Unmapped: unplacedCount,
		})
	}
	return out, nil
}
