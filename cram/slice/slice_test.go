// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slice

import (
	"crypto/md5"
	"reflect"
	"testing"

	"github.com/biogo/cram/compressor"
	"github.com/biogo/cram/errs"
	"github.com/biogo/cram/feature"
	"github.com/biogo/cram/header"
	"github.com/biogo/cram/record"
	"github.com/biogo/cram/refctx"
	"github.com/biogo/cram/sam"
)

// TestComputeAlignmentSpansScenario matches §8's worked example: four
// records, three across two references plus one unmapped-unplaced
// record.
func TestComputeAlignmentSpansScenario(t *testing.T) {
	records := []*record.Record{
		{RefID: 1, AlignmentStart: 1, ReadLength: 3, Flags: 0},
		{RefID: 2, AlignmentStart: 2, ReadLength: 3, Flags: sam.Unmapped},
		{RefID: 1, AlignmentStart: 3, ReadLength: 3, Flags: 0},
		{RefID: refctx.UnmappedUnplacedID, AlignmentStart: refctx.NoAlignmentStart, ReadLength: 3, Flags: sam.Unmapped},
	}

	spans, err := ComputeAlignmentSpans(records)
	if err != nil {
		t.Fatalf("ComputeAlignmentSpans: %v", err)
	}
	if len(spans) != 3 {
		t.Fatalf("got %d spans, want 3", len(spans))
	}

	want := []AlignmentSpan{
		{Ref: refctx.SingleRef(1), Start: 1, Span: 5, Mapped: 2, Unmapped: 0},
		{Ref: refctx.SingleRef(2), Start: 2, Span: 3, Mapped: 0, Unmapped: 1},
		{Ref: refctx.UnmappedUnplaced(), Start: refctx.UnplacedSpanStart, Span: refctx.UnplacedSpanLen, Mapped: 0, Unmapped: 1},
	}
	for i, w := range want {
		if !reflect.DeepEqual(spans[i], w) {
			t.Errorf("span %d: got %+v want %+v", i, spans[i], w)
		}
	}
}

func TestComputeAlignmentSpansNotCoordinateSorted(t *testing.T) {
	records := []*record.Record{
		{RefID: 1, AlignmentStart: 5, ReadLength: 3},
		{RefID: 1, AlignmentStart: 2, ReadLength: 3},
	}
	_, err := ComputeAlignmentSpans(records)
	if err == nil {
		t.Fatal("expected an error for non-coordinate-sorted records")
	}
	if _, ok := err.(*errs.InvalidStateError); !ok {
		t.Errorf("got %T, want *errs.InvalidStateError", err)
	}
}

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

func testHeader() *header.CompressionHeader {
	ch := header.DefaultCompressionHeader()
	ch.Preservation.TagIDDictionary = header.TagIDDictionary{{}}
	return ch
}

func TestBuildAndParseRoundTripMapped(t *testing.T) {
	ch := testHeader()
	refs := fakeRefSource{bases: map[int][]byte{0: []byte("AAACCGTTAAACCGTTAAAA")}}

	records := []*record.Record{
		{
			ReadName:       "r1",
			Flags:          sam.Paired | sam.Read1,
			RefID:          0,
			AlignmentStart: 1,
			ReadLength:     8,
			MappingQuality: 30,
			ReadGroupID:    0,
			TemplateSize:   200,
			QualityScores:  []byte{30, 30, 30, 30, 30, 30, 30, 30},
			Features: []feature.Feature{
				{Code: feature.Insertion, Pos: 4, Seq: []byte("GG")},
			},
			MateRefID:          0,
			MateAlignmentStart: 101,
			NextMate:           record.NoMate,
			PrevMate:           record.NoMate,
			SequentialIndex:    0,
		},
		{
			ReadName:       "r2",
			Flags:          sam.Paired | sam.Read2,
			RefID:          0,
			AlignmentStart: 5,
			ReadLength:     6,
			MappingQuality: 40,
			ReadGroupID:    0,
			TemplateSize:   200,
			QualityScores:  []byte{40, 40, 40, 40, 40, 40},
			MateRefID:      0,
			MateAlignmentStart: 1,
			NextMate:           record.NoMate,
			PrevMate:           record.NoMate,
			SequentialIndex:    1,
		},
	}

	s, err := Build(records, ch, refs, compressor.NewCache(), 5)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if s.Context.Ref.Kind() != refctx.KindSingleRef || s.Context.Ref.SeqID() != 0 {
		t.Fatalf("got reference context %v, want SingleRef(0)", s.Context.Ref)
	}

	got, err := Parse(s.HeaderBlock, s.CoreBlock, s.ExternalBlocks, ch)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got.Records) != len(records) {
		t.Fatalf("got %d records, want %d", len(got.Records), len(records))
	}
	for i, want := range records {
		gr := got.Records[i]
		if gr.ReadName != want.ReadName {
			t.Errorf("record %d: ReadName = %q, want %q", i, gr.ReadName, want.ReadName)
		}
		if gr.Flags != want.Flags {
			t.Errorf("record %d: Flags = %v, want %v", i, gr.Flags, want.Flags)
		}
		if gr.AlignmentStart != want.AlignmentStart {
			t.Errorf("record %d: AlignmentStart = %d, want %d", i, gr.AlignmentStart, want.AlignmentStart)
		}
		if gr.ReadLength != want.ReadLength {
			t.Errorf("record %d: ReadLength = %d, want %d", i, gr.ReadLength, want.ReadLength)
		}
		if gr.MappingQuality != want.MappingQuality {
			t.Errorf("record %d: MappingQuality = %d, want %d", i, gr.MappingQuality, want.MappingQuality)
		}
		if !reflect.DeepEqual(gr.QualityScores, want.QualityScores) {
			t.Errorf("record %d: QualityScores = %v, want %v", i, gr.QualityScores, want.QualityScores)
		}
		if !reflect.DeepEqual(gr.Features, want.Features) {
			t.Errorf("record %d: Features = %v, want %v", i, gr.Features, want.Features)
		}
	}
}

func TestBuildAndParseRoundTripUnmapped(t *testing.T) {
	ch := testHeader()

	records := []*record.Record{
		{
			ReadName:       "u1",
			Flags:          sam.Unmapped,
			RefID:          refctx.UnmappedUnplacedID,
			AlignmentStart: refctx.NoAlignmentStart,
			ReadLength:     4,
			ReadBases:      []byte("ACGT"),
			QualityScores:  []byte{10, 10, 10, 10},
			MateRefID:      refctx.UnmappedUnplacedID,
			NextMate:       record.NoMate,
			PrevMate:       record.NoMate,
		},
	}

	s, err := Build(records, ch, nil, compressor.NewCache(), 5)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if s.Context.Ref.Kind() != refctx.KindUnmappedUnplaced {
		t.Fatalf("got reference context %v, want UnmappedUnplaced", s.Context.Ref)
	}

	got, err := Parse(s.HeaderBlock, s.CoreBlock, s.ExternalBlocks, ch)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(got.Records))
	}
	gr := got.Records[0]
	if gr.ReadName != "u1" {
		t.Errorf("ReadName = %q, want u1", gr.ReadName)
	}
	if !reflect.DeepEqual(gr.ReadBases, records[0].ReadBases) {
		t.Errorf("ReadBases = %v, want %v", gr.ReadBases, records[0].ReadBases)
	}
}

func TestBuildRequiresReferenceSourceWhenReferenceRequired(t *testing.T) {
	ch := testHeader()
	records := []*record.Record{
		{RefID: 0, AlignmentStart: 1, ReadLength: 4, Flags: 0, MappingQuality: 1},
	}
	_, err := Build(records, ch, nil, compressor.NewCache(), 5)
	if err == nil {
		t.Fatal("expected an error building a SingleRef slice with no reference source")
	}
}

func TestIndexingUnsetReturnsErrUnindexed(t *testing.T) {
	s := &Slice{}
	if _, err := s.Indexing(); err != errs.ErrUnindexed {
		t.Errorf("got %v, want errs.ErrUnindexed", err)
	}
	s.SetIndexing(Indexing{LandmarkIndex: 2})
	idx, err := s.Indexing()
	if err != nil {
		t.Fatalf("Indexing: %v", err)
	}
	if idx.LandmarkIndex != 2 {
		t.Errorf("LandmarkIndex = %d, want 2", idx.LandmarkIndex)
	}
}

