// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataseries

import "testing"

func TestAbbrevRoundTrip(t *testing.T) {
	for _, s := range All() {
		a := s.Abbrev()
		got, ok := ParseAbbrev(a)
		if !ok {
			t.Errorf("%v: abbrev %q did not parse", s, a)
			continue
		}
		if got != s {
			t.Errorf("%v: round trip gave %v", s, got)
		}
	}
}

func TestContentIDsUnique(t *testing.T) {
	seen := make(map[int32]Series)
	for _, s := range All() {
		id := s.ContentID()
		if id == 0 {
			t.Errorf("%v: content id must be non-zero", s)
		}
		if other, ok := seen[id]; ok {
			t.Errorf("%v and %v share content id %d", s, other, id)
		}
		seen[id] = s
	}
}

func TestUnknownAbbrev(t *testing.T) {
	if _, ok := ParseAbbrev("ZZ"); ok {
		t.Error("expected ZZ to be unrecognised")
	}
}

func TestStringMatchesAbbrev(t *testing.T) {
	if BF.String() != BF.Abbrev() {
		t.Error("String and Abbrev disagree")
	}
}

func TestSeriesForContentID(t *testing.T) {
	for _, s := range All() {
		got, ok := SeriesForContentID(s.ContentID())
		if !ok {
			t.Errorf("%v: content id %d did not resolve", s, s.ContentID())
			continue
		}
		if got != s {
			t.Errorf("content id %d: got %v, want %v", s.ContentID(), got, s)
		}
	}
	if _, ok := SeriesForContentID(0); ok {
		t.Error("content id 0 is reserved for the core block and should not resolve")
	}
	if _, ok := SeriesForContentID(1005); ok {
		t.Error("a length sub-stream content id should not resolve to a series")
	}
}

func TestItemTypes(t *testing.T) {
	cases := map[Series]ItemType{
		BF: IntItem,
		RN: ByteArrayItem,
		FC: ByteItem,
		BS: ByteItem,
		QS: ByteArrayItem,
	}
	for s, want := range cases {
		if got := s.ItemType(); got != want {
			t.Errorf("%v: got %v want %v", s, got, want)
		}
	}
}
