// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slice

import "github.com/biogo/cram/errs"

// Indexing holds the parameters a Slice needs to produce CRAI/BAI index
// entries (§4.11), but cannot know at construction time: they depend on
// where the containing Container places the slice in the stream. A
// Container back-fills them onto the Slice once it has laid the slice
// out, via SetIndexing (§9 Design Notes: "back-filled indexing
// parameters" / the Option<Indexing> pattern).
type Indexing struct {
	// LandmarkIndex is this slice's 0-based position among the
	// slices of its container.
	LandmarkIndex int
	// ContainerOffset is the byte offset of the container's first
	// byte within the CRAM stream.
	ContainerOffset int64
	// SliceOffset is the byte offset of this slice's header block,
	// relative to the first byte following the container's
	// compression header.
	SliceOffset int64
	// Size is the total byte size of this slice (header block,
	// core block, and external blocks).
	Size int64
}

// SetIndexing back-fills idx onto s. Called by a Container once it has
// determined where s falls in the stream.
func (s *Slice) SetIndexing(idx Indexing) {
	s.indexing = &idx
}

// Indexing returns s's back-filled indexing parameters, or
// errs.ErrUnindexed if SetIndexing has not yet been called.
func (s *Slice) Indexing() (Indexing, error) {
	if s.indexing == nil {
		return Indexing{}, errs.ErrUnindexed
	}
	return *s.indexing, nil
}
