// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package header

import (
	"bytes"
	"testing"

	"github.com/biogo/cram/compressor"
	"github.com/biogo/cram/dataseries"
	"github.com/biogo/cram/encoding"
)

func TestPreservationMapRoundTrip(t *testing.T) {
	m := DefaultPreservationMap()
	m.TagIDDictionary = TagIDDictionary{
		{{'N', 'M', 'C'}, {'M', 'D', 'Z'}},
		{{'R', 'G', 'Z'}},
	}
	encoded := m.Encode()
	got, rest, err := DecodePreservationMap(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if len(rest) != 0 {
		t.Errorf("unexpected trailing bytes: %d", len(rest))
	}
	if got.ReadNamesIncluded != m.ReadNamesIncluded || got.APDelta != m.APDelta || got.ReferenceRequired != m.ReferenceRequired {
		t.Errorf("flag mismatch: got %+v want %+v", got, m)
	}
	if got.SubstitutionMatrix.Bytes() != m.SubstitutionMatrix.Bytes() {
		t.Error("substitution matrix mismatch")
	}
	if len(got.TagIDDictionary) != len(m.TagIDDictionary) {
		t.Fatalf("tag dictionary length mismatch: got %d want %d", len(got.TagIDDictionary), len(m.TagIDDictionary))
	}
	for i, group := range m.TagIDDictionary {
		if len(got.TagIDDictionary[i]) != len(group) {
			t.Fatalf("group %d length mismatch", i)
		}
		for j, tag := range group {
			if got.TagIDDictionary[i][j] != tag {
				t.Errorf("group %d tag %d mismatch: got %v want %v", i, j, got.TagIDDictionary[i][j], tag)
			}
		}
	}
}

func TestEncodingMapRoundTrip(t *testing.T) {
	em := NewEncodingMap()
	c1 := encoding.NewExternalInt(5)
	em.Set(dataseries.BF, c1.ID(), c1.Params())
	c2 := encoding.NewByteArrayStop('\t', 7)
	em.Set(dataseries.RN, c2.ID(), c2.Params())

	encoded := em.Encode()
	got, rest, err := DecodeEncodingMap(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if len(rest) != 0 {
		t.Errorf("unexpected trailing bytes: %d", len(rest))
	}
	e, ok := got.Get(dataseries.BF)
	if !ok || e.ID != c1.ID() || !bytes.Equal(e.Params, c1.Params()) {
		t.Errorf("BF entry mismatch: %+v", e)
	}
	e2, ok := got.Get(dataseries.RN)
	if !ok || e2.ID != c2.ID() || !bytes.Equal(e2.Params, c2.Params()) {
		t.Errorf("RN entry mismatch: %+v", e2)
	}
}

func TestTagEncodingMapRoundTrip(t *testing.T) {
	tm := NewTagEncodingMap()
	tag := TagID{'N', 'M', 'C'}.Int()
	c := encoding.NewByteArrayStop(0, 20)
	tm.Set(tag, c.ID(), c.Params())

	encoded := tm.Encode()
	got, rest, err := DecodeTagEncodingMap(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if len(rest) != 0 {
		t.Errorf("unexpected trailing bytes: %d", len(rest))
	}
	e, ok := got.Get(tag)
	if !ok || e.ID != c.ID() {
		t.Errorf("tag entry mismatch: %+v", e)
	}
}

func TestDefaultCompressionHeaderRoundTrip(t *testing.T) {
	h := DefaultCompressionHeader()
	encoded := h.Encode()
	got, err := Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if got.Preservation.ReadNamesIncluded != h.Preservation.ReadNamesIncluded {
		t.Error("preservation map did not round trip")
	}
	for _, s := range dataseries.All() {
		want, wantOK := h.Encodings.Get(s)
		got, gotOK := got.Encodings.Get(s)
		if wantOK != gotOK {
			t.Fatalf("%v: presence mismatch", s)
		}
		if wantOK && (want.ID != got.ID || !bytes.Equal(want.Params, got.Params)) {
			t.Errorf("%v: encoding mismatch", s)
		}
	}
}

func TestDefaultCompressionHeaderByteArrayStopSeries(t *testing.T) {
	h := DefaultCompressionHeader()
	for _, s := range []dataseries.Series{dataseries.RN, dataseries.SC, dataseries.IN} {
		e, ok := h.Encodings.Get(s)
		if !ok {
			t.Fatalf("%v: expected an encoding map entry", s)
			continue
		}
		want := encoding.NewByteArrayStop('\t', s.ContentID())
		if e.ID != want.ID() {
			t.Errorf("%v: got encoding id %v, want %v", s, e.ID, want.ID())
		}
	}
	// QS stays on BYTE_ARRAY_LEN: unlike RN/SC/IN it carries arbitrary
	// binary quality values that could themselves contain a tab byte.
	if e, ok := h.Encodings.Get(dataseries.QS); !ok || e.ID != encoding.ByteArrayLen {
		t.Errorf("QS: got %+v, want BYTE_ARRAY_LEN", e)
	}
}

func TestBlockCompressionForRouting(t *testing.T) {
	cases := map[dataseries.Series]compressor.Method{
		dataseries.AP: compressor.Rans,
		dataseries.RI: compressor.Rans,
		dataseries.BF: compressor.Rans,
		dataseries.CF: compressor.Rans,
		dataseries.BA: compressor.Rans,
		dataseries.NS: compressor.Rans,
		dataseries.QS: compressor.Rans,
		dataseries.RG: compressor.Rans,
		dataseries.RL: compressor.Rans,
		dataseries.TS: compressor.Rans,
		dataseries.FN: compressor.Gzip,
		dataseries.RN: compressor.Gzip,
	}
	for s, want := range cases {
		got, _ := BlockCompressionFor(s, 5)
		if got != want {
			t.Errorf("%v: got method %v, want %v", s, got, want)
		}
	}
	if _, param := BlockCompressionFor(dataseries.AP, 5); param != 0 {
		t.Errorf("AP: got order %d, want 0", param)
	}
	if _, param := BlockCompressionFor(dataseries.BF, 5); param != 1 {
		t.Errorf("BF: got order %d, want 1", param)
	}
	if method, level := BlockCompressionFor(dataseries.FN, 7); method != compressor.Gzip || level != 7 {
		t.Errorf("FN: got (%v, %d), want (Gzip, 7)", method, level)
	}
}

func TestTagIDPacking(t *testing.T) {
	tag := TagID{'N', 'M', 'C'}
	if got := TagIDFromInt(tag.Int()); got != tag {
		t.Errorf("got %v want %v", got, tag)
	}
}
