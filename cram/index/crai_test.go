// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package index

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/biogo/cram/errs"
	"github.com/biogo/cram/refctx"
)

// TestSortCRAIEntries matches §8: five seq=1 entries sort by start asc,
// then container-offset asc, then slice-offset asc, to order
// [4, 2, 1, 5, 3] (1-based positions in the scenario's own listing).
func TestSortCRAIEntries(t *testing.T) {
	e1 := CRAIEntry{SeqID: 1, AlignmentStart: 3, AlignmentSpan: 100, ContainerOffset: 100, SliceOffset: 100, SliceSize: 100}
	e2 := CRAIEntry{SeqID: 1, AlignmentStart: 2, AlignmentSpan: 100, ContainerOffset: 120, SliceOffset: 200, SliceSize: 100}
	e3 := CRAIEntry{SeqID: 1, AlignmentStart: 4, AlignmentSpan: 100, ContainerOffset: 90, SliceOffset: 100, SliceSize: 100}
	e4 := CRAIEntry{SeqID: 1, AlignmentStart: 2, AlignmentSpan: 100, ContainerOffset: 90, SliceOffset: 50, SliceSize: 100}
	e5 := CRAIEntry{SeqID: 1, AlignmentStart: 4, AlignmentSpan: 100, ContainerOffset: 90, SliceOffset: 80, SliceSize: 100}

	entries := []CRAIEntry{e1, e2, e3, e4, e5}
	SortCRAIEntries(entries)

	want := []CRAIEntry{e4, e2, e1, e5, e3}
	require.Equal(t, want, entries)
}

// TestIntersects matches §8's four literal intersect-predicate cases.
func TestIntersects(t *testing.T) {
	a := CRAIEntry{SeqID: 1, AlignmentStart: 1, AlignmentSpan: 10}
	b := CRAIEntry{SeqID: 1, AlignmentStart: 5, AlignmentSpan: 10}
	require.True(t, a.Intersects(b))

	c := CRAIEntry{SeqID: 2, AlignmentStart: 1, AlignmentSpan: 10}
	require.False(t, a.Intersects(c))

	d := CRAIEntry{SeqID: 1, AlignmentStart: 1, AlignmentSpan: 0}
	require.False(t, d.Intersects(d))

	unmapped := CRAIEntry{SeqID: refctx.UnmappedUnplacedID}
	require.False(t, unmapped.Intersects(unmapped))
	require.False(t, a.Intersects(unmapped))
	require.False(t, unmapped.Intersects(a))
}

// TestNewCRAIEntryRejectsMultiRef matches §8: constructing a CRAI entry
// naming MultipleReferenceID must fail with InvalidState.
func TestNewCRAIEntryRejectsMultiRef(t *testing.T) {
	_, err := NewCRAIEntry(refctx.MultipleReferenceID, 1, 10, 0, 0, 0)
	require.Error(t, err)
	var invalid *errs.InvalidStateError
	require.ErrorAs(t, err, &invalid)
}

// TestUnmappedSortsLast matches §8: UnmappedUnplacedID sorts after
// every placed seq_id regardless of numeric value.
func TestUnmappedSortsLast(t *testing.T) {
	placed := CRAIEntry{SeqID: 0, AlignmentStart: 1, AlignmentSpan: 10}
	unmapped := CRAIEntry{SeqID: refctx.UnmappedUnplacedID, ContainerOffset: 1}

	entries := []CRAIEntry{unmapped, placed}
	SortCRAIEntries(entries)
	require.Equal(t, []CRAIEntry{placed, unmapped}, entries)
}
