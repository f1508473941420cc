// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import "testing"

func TestFactoryRoundTripsIntCodecs(t *testing.T) {
	codecs := []IntCodec{
		NewNullInt(3),
		NewExternalInt(7),
		NewBetaInt(5, 4),
		NewGammaInt(1),
		NewSubexpInt(0, 2),
		NewGolombRiceInt(0, 3),
		NewGolombInt(0, 5),
		NewHuffmanInt([]int32{1, 2, 3}, []uint{1, 2, 2}),
	}
	for _, c := range codecs {
		inner, _, err := DecodeParams(c.Params())
		if err != nil {
			t.Fatalf("%v: %v", c.ID(), err)
		}
		rebuilt, err := DecodeIntCodec(c.ID(), inner)
		if err != nil {
			t.Fatalf("%v: decode: %v", c.ID(), err)
		}
		if rebuilt.ID() != c.ID() {
			t.Errorf("%v: id mismatch after rebuild", c.ID())
		}
	}
}

func TestFactoryRoundTripsByteArrayLen(t *testing.T) {
	c := NewByteArrayLen(NewExternalInt(9), 10)
	inner, _, err := DecodeParams(c.Params())
	if err != nil {
		t.Fatal(err)
	}
	rebuilt, err := DecodeByteArrayCodec(c.ID(), inner)
	if err != nil {
		t.Fatal(err)
	}

	ss := NewStreams()
	if err := c.WriteByteArray(ss, []byte("abc")); err != nil {
		t.Fatal(err)
	}
	dss := NewDecodeStreams(nil, map[int32][]byte{9: ss.Bytes(9), 10: ss.Bytes(10)})
	got, err := rebuilt.ReadByteArray(dss)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "abc" {
		t.Errorf("got %q want abc", got)
	}
}
