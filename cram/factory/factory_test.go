// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package factory

import (
	"bytes"
	"crypto/md5"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/biogo/cram/header"
	"github.com/biogo/cram/record"
	"github.com/biogo/cram/refctx"
	"github.com/biogo/cram/sam"
)

type fakeRefSource struct {
	bases map[int][]byte
}

func (f fakeRefSource) GetReferenceBases(seqID int) ([]byte, error) {
	return f.bases[seqID], nil
}

func (f fakeRefSource) GetReferenceMD5(seqID, start, span int) ([16]byte, error) {
	b := f.bases[seqID]
	if start-1+span > len(b) {
		span = len(b) - (start - 1)
	}
	return md5.Sum(b[start-1 : start-1+span]), nil
}

func placedRecord(seqID, start int) *record.Record {
	return &record.Record{
		RefID:          seqID,
		AlignmentStart: start,
		ReadLength:     4,
		MappingQuality: 1,
		QualityScores:  []byte{20, 20, 20, 20},
		NextMate:       record.NoMate,
		PrevMate:       record.NoMate,
	}
}

func unplacedRecord() *record.Record {
	return &record.Record{
		RefID:          refctx.UnmappedUnplacedID,
		AlignmentStart: refctx.NoAlignmentStart,
		ReadLength:     4,
		Flags:          sam.Unmapped,
		ReadBases:      []byte("ACGT"),
		QualityScores:  []byte{20, 20, 20, 20},
		NextMate:       record.NoMate,
		PrevMate:       record.NoMate,
	}
}

func testHeader() *header.CompressionHeader {
	return header.DefaultCompressionHeader()
}

// TestAddRecordClosesSliceOnRecordsPerSlice matches §4.10: a slice
// closes once it reaches RecordsPerSlice, regardless of reference
// context changes.
func TestAddRecordClosesSliceOnRecordsPerSlice(t *testing.T) {
	strategy := DefaultCRAMEncodingStrategy()
	strategy.RecordsPerSlice = 2
	strategy.SlicesPerContainer = 1

	ch := testHeader()
	refs := fakeRefSource{bases: map[int][]byte{0: bytes.Repeat([]byte("ACGT"), 20)}}
	f := NewContainerFactory(strategy, ch, refs)

	var closed []int
	for i := 0; i < 4; i++ {
		cs, err := f.AddRecord(placedRecord(0, 1+i))
		require.NoError(t, err)
		for _, c := range cs {
			closed = append(closed, c.NumRecords)
		}
	}
	require.Equal(t, []int{2, 2}, closed)

	rest, err := f.Flush()
	require.NoError(t, err)
	require.Empty(t, rest)
}

// TestAddRecordClosesOnReferenceContextChange matches §4.10: a
// reference-context change that would make a slice incompatible with
// the unmapped-only rule forces the current slice (and its container,
// since SlicesPerContainer defaults to 1) to close early.
func TestAddRecordClosesOnReferenceContextChange(t *testing.T) {
	strategy := DefaultCRAMEncodingStrategy()
	strategy.RecordsPerSlice = 100
	strategy.SlicesPerContainer = 1

	ch := testHeader()
	refs := fakeRefSource{bases: map[int][]byte{0: bytes.Repeat([]byte("ACGT"), 20)}}
	f := NewContainerFactory(strategy, ch, refs)

	cs, err := f.AddRecord(unplacedRecord())
	require.NoError(t, err)
	require.Empty(t, cs)

	cs, err = f.AddRecord(placedRecord(0, 1))
	require.NoError(t, err)
	require.Len(t, cs, 1)
	require.Equal(t, 1, cs[0].NumRecords)
	require.Equal(t, refctx.KindUnmappedUnplaced, cs[0].Context.Ref.Kind())

	rest, err := f.Flush()
	require.NoError(t, err)
	require.Len(t, rest, 1)
	require.Equal(t, 1, rest[0].NumRecords)
	require.Equal(t, refctx.KindSingleRef, rest[0].Context.Ref.Kind())
}

// TestSlicesPerContainerAccumulates matches §4.10: with
// SlicesPerContainer > 1, compatible single-ref slices accumulate into
// one container instead of closing one per slice.
func TestSlicesPerContainerAccumulates(t *testing.T) {
	strategy := DefaultCRAMEncodingStrategy()
	strategy.RecordsPerSlice = 1
	strategy.SlicesPerContainer = 2

	ch := testHeader()
	refs := fakeRefSource{bases: map[int][]byte{0: bytes.Repeat([]byte("ACGT"), 20)}}
	f := NewContainerFactory(strategy, ch, refs)

	cs, err := f.AddRecord(placedRecord(0, 1))
	require.NoError(t, err)
	require.Empty(t, cs)

	cs, err = f.AddRecord(placedRecord(0, 5))
	require.NoError(t, err)
	require.Len(t, cs, 1)
	require.Len(t, cs[0].Slices, 2)
	require.Equal(t, 2, cs[0].NumRecords)

	rest, err := f.Flush()
	require.NoError(t, err)
	require.Empty(t, rest)
}

// TestMinRecordsPerSingleRefSliceCoalesces matches §4.10: two
// single-ref slices both below MinRecordsPerSingleRefSlice merge into
// one MultiRef slice rather than each taking a container slot.
func TestMinRecordsPerSingleRefSliceCoalesces(t *testing.T) {
	strategy := DefaultCRAMEncodingStrategy()
	strategy.RecordsPerSlice = 1
	strategy.SlicesPerContainer = 1
	strategy.MinRecordsPerSingleRefSlice = 2

	ch := testHeader()
	refs := fakeRefSource{bases: map[int][]byte{
		0: bytes.Repeat([]byte("ACGT"), 20),
		1: bytes.Repeat([]byte("ACGT"), 20),
	}}
	f := NewContainerFactory(strategy, ch, refs)

	cs, err := f.AddRecord(placedRecord(0, 1))
	require.NoError(t, err)
	require.Empty(t, cs, "first small slice is stashed, not yet closed into a container")

	cs, err = f.AddRecord(placedRecord(1, 1))
	require.NoError(t, err)
	require.Len(t, cs, 1)
	require.Len(t, cs[0].Slices, 1)
	require.Equal(t, refctx.KindMultiRef, cs[0].Slices[0].Context.Ref.Kind())
	require.Equal(t, 2, cs[0].NumRecords)

	rest, err := f.Flush()
	require.NoError(t, err)
	require.Empty(t, rest)
}

// TestFlushReturnsPartialContainer matches §5 Cancellation: Flush must
// surface whatever was buffered, never silently drop it.
func TestFlushReturnsPartialContainer(t *testing.T) {
	strategy := DefaultCRAMEncodingStrategy()
	strategy.RecordsPerSlice = 100
	strategy.SlicesPerContainer = 100

	ch := testHeader()
	refs := fakeRefSource{bases: map[int][]byte{0: bytes.Repeat([]byte("ACGT"), 20)}}
	f := NewContainerFactory(strategy, ch, refs)

	cs, err := f.AddRecord(placedRecord(0, 1))
	require.NoError(t, err)
	require.Empty(t, cs)

	rest, err := f.Flush()
	require.NoError(t, err)
	require.Len(t, rest, 1)
	require.Equal(t, 1, rest[0].NumRecords)
}

// TestTagDictionaryPopulatedAheadOfSliceBuild matches §9 Design Notes:
// the factory, not slice.Build itself, is expected to have populated
// ch.Preservation.TagIDDictionary with every group a slice's records
// need before Build runs.
func TestTagDictionaryPopulatedAheadOfSliceBuild(t *testing.T) {
	strategy := DefaultCRAMEncodingStrategy()
	strategy.RecordsPerSlice = 1
	strategy.SlicesPerContainer = 1

	ch := testHeader()
	refs := fakeRefSource{bases: map[int][]byte{0: bytes.Repeat([]byte("ACGT"), 20)}}
	f := NewContainerFactory(strategy, ch, refs)

	r := placedRecord(0, 1)
	r.Tags = []record.Tag{{ID: [3]byte{'N', 'M', 'C'}, Value: []byte{0}}}

	cs, err := f.AddRecord(r)
	require.NoError(t, err)
	require.Len(t, cs, 1)
	require.NotEmpty(t, ch.Preservation.TagIDDictionary)
}
