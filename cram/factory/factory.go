// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package factory

import (
	"github.com/biogo/cram/compressor"
	"github.com/biogo/cram/container"
	"github.com/biogo/cram/header"
	"github.com/biogo/cram/record"
	"github.com/biogo/cram/refctx"
	"github.com/biogo/cram/refsource"
	"github.com/biogo/cram/slice"
)

// ContainerFactory partitions a stream of records (in SAM order) into
// slices and containers under a CRAMEncodingStrategy (§4.10). Records
// are fed one at a time via AddRecord; completed containers are
// returned as they close, and Flush drains whatever remains buffered.
//
// A ContainerFactory is not safe for concurrent use; the coarse-grained
// parallelism described in §5 is the caller's responsibility, one
// factory per worker.
type ContainerFactory struct {
	strategy CRAMEncodingStrategy
	refs     refsource.ReferenceSource
	ch       *header.CompressionHeader
	tagDict  *header.TagDictionaryBuilder
	cache    *compressor.Cache

	recordCounter  int64
	containerStart int64

	sliceRecords []*record.Record
	sliceRef     refctx.Reference
	haveSliceRef bool

	containerSlices  []*slice.Slice
	containerRef     refctx.Reference
	haveContainerRef bool

	// pendingSmall holds a single-ref slice closed below
	// MinRecordsPerSingleRefSlice, awaiting a partner to coalesce with
	// into a MultiRef slice (§4.10).
	pendingSmall *slice.Slice
}

// NewContainerFactory returns a ContainerFactory that codes records
// under ch using strategy's partitioning thresholds. refs supplies
// reference bases and MD5s when ch.Preservation.ReferenceRequired is
// set; it may be nil otherwise. The factory owns a single
// compressor.Cache for its lifetime, shared by every slice and
// container it builds (§4.3, §5: one Cache per worker).
func NewContainerFactory(strategy CRAMEncodingStrategy, ch *header.CompressionHeader, refs refsource.ReferenceSource) *ContainerFactory {
	ch.Preservation.ReadNamesIncluded = strategy.PreserveReadNames
	return &ContainerFactory{strategy: strategy, ch: ch, refs: refs, tagDict: header.NewTagDictionaryBuilder(), cache: compressor.NewCache()}
}

// sliceCompatible reports whether a record with reference ref may join
// the slice currently accumulating (a is the slice's running
// reference): an unmapped record only ever joins an all-unmapped
// slice; anything else is accepted, widening a single-ref slice to
// MultiRef if ref names a different reference.
func sliceCompatible(a, ref refctx.Reference) bool {
	if a.Kind() == refctx.KindUnmappedUnplaced || ref.Kind() == refctx.KindUnmappedUnplaced {
		return a.Equal(ref)
	}
	return true
}

// widen folds ref into a slice or container's running reference
// context: the first record fixes it outright; a later record agreeing
// with a SingleRef context leaves it unchanged; any disagreement
// promotes it to MultiRef.
func widen(a, ref refctx.Reference) refctx.Reference {
	if a.Kind() == refctx.KindSingleRef && ref.Kind() == refctx.KindSingleRef && a.SeqID() == ref.SeqID() {
		return a
	}
	if a.Equal(ref) {
		return a
	}
	return refctx.MultiRef()
}

// containerCompatible reports whether a slice with reference context
// ref may join the container currently accumulating, whose own
// aggregate context is a: same single-ref seq_id, both MultiRef, or
// both UnmappedUnplaced (§4.10).
func containerCompatible(a, ref refctx.Reference) bool {
	return a.Equal(ref)
}

// AddRecord feeds one record into the factory. It returns every
// Container completed as a side effect of accepting r — ordinarily at
// most one, but small RecordsPerSlice/SlicesPerContainer thresholds can
// close a slice and then immediately close the container it lands in,
// so callers must range over the result rather than assume a single
// value.
func (f *ContainerFactory) AddRecord(r *record.Record) ([]*container.Container, error) {
	var closed []*container.Container

	ref := r.Reference()
	if f.haveSliceRef && !sliceCompatible(f.sliceRef, ref) {
		cs, err := f.closeSliceIntoContainer()
		if err != nil {
			return nil, err
		}
		closed = append(closed, cs...)
	}

	f.sliceRecords = append(f.sliceRecords, r)
	if !f.haveSliceRef {
		f.sliceRef = ref
		f.haveSliceRef = true
	} else {
		f.sliceRef = widen(f.sliceRef, ref)
	}
	r.SequentialIndex = f.recordCounter
	f.recordCounter++

	if len(f.sliceRecords) >= f.strategy.RecordsPerSlice {
		cs, err := f.closeSliceIntoContainer()
		if err != nil {
			return nil, err
		}
		closed = append(closed, cs...)
	}
	return closed, nil
}

// closeSlice builds the current slice buffer (if any) into a
// slice.Slice and clears the buffer. Every record's tag-id set is
// resolved against f.tagDict first, so that f.ch's TagIDDictionary
// already holds a group for each record slice.Build is about to code
// (§9 Design Notes: the container factory, not the slice package,
// owns populating TD ahead of Build).
func (f *ContainerFactory) closeSlice() (*slice.Slice, error) {
	if len(f.sliceRecords) == 0 {
		return nil, nil
	}
	for _, r := range f.sliceRecords {
		ids := make([]header.TagID, len(r.Tags))
		for i, t := range r.Tags {
			ids[i] = header.TagID(t.ID)
		}
		f.tagDict.Add(ids)
	}
	f.ch.Preservation.TagIDDictionary = f.tagDict.Dictionary()

	s, err := slice.Build(f.sliceRecords, f.ch, f.refs, f.cache, f.strategy.GzipCompressionLevel)
	if err != nil {
		return nil, err
	}
	f.sliceRecords = nil
	f.haveSliceRef = false
	return s, nil
}

// closeSliceIntoContainer closes the current slice and folds it into
// the container buffer, returning every container that closed as a
// result (acceptSlice may itself close a container before adding s, and
// again immediately after, if thresholds are tight).
func (f *ContainerFactory) closeSliceIntoContainer() ([]*container.Container, error) {
	s, err := f.closeSlice()
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	s, err = f.coalesceSmall(s)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	return f.acceptSlice(s)
}

// coalesceSmall implements the MinRecordsPerSingleRefSlice knob of
// §4.10: a single-ref slice closed with fewer records than the
// configured minimum is held back rather than handed to the container
// immediately. The next such small slice is merged with it into one
// MultiRef slice instead of each occupying a container slot alone. A
// slice that doesn't qualify is returned unchanged; the first small
// slice seen is stashed and coalesceSmall returns (nil, nil) to tell
// the caller nothing is ready yet.
func (f *ContainerFactory) coalesceSmall(s *slice.Slice) (*slice.Slice, error) {
	min := f.strategy.MinRecordsPerSingleRefSlice
	if min <= 0 || s.Context.Ref.Kind() != refctx.KindSingleRef || len(s.Records) >= min {
		return s, nil
	}
	if f.pendingSmall == nil {
		f.pendingSmall = s
		return nil, nil
	}
	merged := make([]*record.Record, 0, len(f.pendingSmall.Records)+len(s.Records))
	merged = append(merged, f.pendingSmall.Records...)
	merged = append(merged, s.Records...)
	f.pendingSmall = nil
	return slice.Build(merged, f.ch, f.refs, f.cache, f.strategy.GzipCompressionLevel)
}

// acceptSlice adds s to the container currently accumulating, first
// closing that container if s's reference context is incompatible with
// it, then closing it again if it has now reached SlicesPerContainer.
// It returns, in order, every container this closes.
func (f *ContainerFactory) acceptSlice(s *slice.Slice) ([]*container.Container, error) {
	var out []*container.Container
	if f.haveContainerRef && !containerCompatible(f.containerRef, s.Context.Ref) {
		c, err := f.closeContainer()
		if err != nil {
			return nil, err
		}
		if c != nil {
			out = append(out, c)
		}
	}

	f.containerSlices = append(f.containerSlices, s)
	if !f.haveContainerRef {
		f.containerRef = s.Context.Ref
		f.haveContainerRef = true
	} else {
		f.containerRef = widen(f.containerRef, s.Context.Ref)
	}

	if len(f.containerSlices) >= f.strategy.SlicesPerContainer {
		c, err := f.closeContainer()
		if err != nil {
			return nil, err
		}
		if c != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

// closeContainer builds the buffered slices into a Container and
// resets the container buffer. It returns (nil, nil) if no slices are
// buffered.
func (f *ContainerFactory) closeContainer() (*container.Container, error) {
	if len(f.containerSlices) == 0 {
		return nil, nil
	}
	c, err := container.Build(f.containerSlices, f.ch, f.containerStart, f.cache, f.strategy.GzipCompressionLevel)
	if err != nil {
		return nil, err
	}
	f.containerStart = f.recordCounter
	f.containerSlices = nil
	f.haveContainerRef = false
	return c, nil
}

// Flush closes whatever slice and container are currently
// accumulating, returning every container this produces (nil if
// nothing was pending). Callers must call Flush after the last
// AddRecord to avoid losing a partially filled container (§5
// Cancellation).
func (f *ContainerFactory) Flush() ([]*container.Container, error) {
	closed, err := f.closeSliceIntoContainer()
	if err != nil {
		return nil, err
	}
	if f.pendingSmall != nil {
		s := f.pendingSmall
		f.pendingSmall = nil
		cs, err := f.acceptSlice(s)
		if err != nil {
			return nil, err
		}
		closed = append(closed, cs...)
	}
	c, err := f.closeContainer()
	if err != nil {
		return nil, err
	}
	if c != nil {
		closed = append(closed, c)
	}
	return closed, nil
}
