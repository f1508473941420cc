// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package record

import (
	"testing"

	"github.com/biogo/cram/feature"
	"github.com/biogo/cram/refctx"
	"github.com/biogo/cram/sam"
)

func TestIsPlacedAndMapped(t *testing.T) {
	r := &Record{AlignmentStart: 10}
	if !r.IsPlaced() {
		t.Error("expected placed")
	}
	if !r.IsMapped() {
		t.Error("expected mapped by default")
	}
	r.Flags |= sam.Unmapped
	if r.IsMapped() {
		t.Error("expected unmapped once flag set")
	}

	unplaced := &Record{AlignmentStart: refctx.NoAlignmentStart}
	if unplaced.IsPlaced() {
		t.Error("expected unplaced")
	}
}

func TestIsDetached(t *testing.T) {
	r := &Record{NextMate: NoMate, PrevMate: NoMate}
	if !r.IsDetached() {
		t.Error("expected detached when both mate links absent")
	}
	r.NextMate = 3
	if r.IsDetached() {
		t.Error("expected not detached once a mate link is set")
	}
}

func TestAlignmentEndUnmapped(t *testing.T) {
	r := &Record{AlignmentStart: refctx.NoAlignmentStart, Flags: sam.Unmapped}
	if got := r.AlignmentEnd(); got != refctx.NoAlignmentEnd {
		t.Errorf("got %d want %d", got, refctx.NoAlignmentEnd)
	}
}

func TestAlignmentEndSimpleMatch(t *testing.T) {
	r := &Record{AlignmentStart: 100, ReadLength: 10}
	if got, want := r.AlignmentEnd(), 109; got != want {
		t.Errorf("got %d want %d", got, want)
	}
}

func TestAlignmentEndWithDeletionAndInsertion(t *testing.T) {
	// 5M2D3M2I2M: read length = 5+3+2+2 = 12, ref span = 5+2+3+2 = 12
	r := &Record{
		AlignmentStart: 1,
		ReadLength:     12,
		Features: []feature.Feature{
			{Code: feature.Deletion, Pos: 6, Len: 2},
			{Code: feature.Insertion, Pos: 9, Seq: []byte("AA")},
		},
	}
	if got, want := r.AlignmentEnd(), 12; got != want {
		t.Errorf("got %d want %d", got, want)
	}
}
