// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import (
	"bytes"
	"testing"
)

func TestNullInt(t *testing.T) {
	c := NewNullInt(7)
	ss := NewStreams()
	if err := c.WriteInt(ss, 100); err != nil {
		t.Fatal(err)
	}
	v, err := c.ReadInt(ss)
	if err != nil {
		t.Fatal(err)
	}
	if v != 7 {
		t.Errorf("got %d want 7", v)
	}
}

func TestExternalIntRoundTrip(t *testing.T) {
	c := NewExternalInt(5)
	ss := NewStreams()
	vals := []int32{0, 1, -1, 127, 128, -128, 1 << 20, -(1 << 20)}
	for _, v := range vals {
		if err := c.WriteInt(ss, v); err != nil {
			t.Fatal(err)
		}
	}
	dss := NewDecodeStreams(nil, map[int32][]byte{5: ss.Bytes(5)})
	for _, want := range vals {
		got, err := c.ReadInt(dss)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("got %d want %d", got, want)
		}
	}
}

func TestExternalByteRoundTrip(t *testing.T) {
	c := NewExternalByte(2)
	ss := NewStreams()
	for _, b := range []byte("hello") {
		if err := c.WriteByte(ss, b); err != nil {
			t.Fatal(err)
		}
	}
	dss := NewDecodeStreams(nil, map[int32][]byte{2: ss.Bytes(2)})
	for _, want := range []byte("hello") {
		got, err := c.ReadByte(dss)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("got %c want %c", got, want)
		}
	}
}

func TestBetaRoundTrip(t *testing.T) {
	c := NewBetaInt(10, 6)
	ss := NewStreams()
	vals := []int32{-10, -5, 0, 20, 53}
	for _, v := range vals {
		if err := c.WriteInt(ss, v); err != nil {
			t.Fatal(err)
		}
	}
	dss := NewDecodeStreams(ss.Core.Bytes(), nil)
	for _, want := range vals {
		got, err := c.ReadInt(dss)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("got %d want %d", got, want)
		}
	}
}

func TestGammaRoundTrip(t *testing.T) {
	c := NewGammaInt(1)
	ss := NewStreams()
	vals := []int32{0, 1, 2, 5, 100, 1000}
	for _, v := range vals {
		if err := c.WriteInt(ss, v); err != nil {
			t.Fatal(err)
		}
	}
	dss := NewDecodeStreams(ss.Core.Bytes(), nil)
	for _, want := range vals {
		got, err := c.ReadInt(dss)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("got %d want %d", got, want)
		}
	}
}

func TestSubexpRoundTrip(t *testing.T) {
	c := NewSubexpInt(0, 3)
	ss := NewStreams()
	vals := []int32{0, 1, 7, 8, 9, 100, 5000}
	for _, v := range vals {
		if err := c.WriteInt(ss, v); err != nil {
			t.Fatal(err)
		}
	}
	dss := NewDecodeStreams(ss.Core.Bytes(), nil)
	for _, want := range vals {
		got, err := c.ReadInt(dss)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("got %d want %d", got, want)
		}
	}
}

func TestGolombRiceRoundTrip(t *testing.T) {
	c := NewGolombRiceInt(0, 4)
	ss := NewStreams()
	vals := []int32{0, 1, 15, 16, 100, 300}
	for _, v := range vals {
		if err := c.WriteInt(ss, v); err != nil {
			t.Fatal(err)
		}
	}
	dss := NewDecodeStreams(ss.Core.Bytes(), nil)
	for _, want := range vals {
		got, err := c.ReadInt(dss)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("got %d want %d", got, want)
		}
	}
}

func TestGolombRoundTrip(t *testing.T) {
	for _, m := range []uint32{1, 3, 5, 7, 10} {
		c := NewGolombInt(0, m)
		ss := NewStreams()
		vals := []int32{0, 1, 2, 3, 4, 5, 10, 50, 99}
		for _, v := range vals {
			if err := c.WriteInt(ss, v); err != nil {
				t.Fatalf("m=%d: %v", m, err)
			}
		}
		dss := NewDecodeStreams(ss.Core.Bytes(), nil)
		for _, want := range vals {
			got, err := c.ReadInt(dss)
			if err != nil {
				t.Fatalf("m=%d: %v", m, err)
			}
			if got != want {
				t.Errorf("m=%d: got %d want %d", m, got, want)
			}
		}
	}
}

func TestHuffmanRoundTrip(t *testing.T) {
	// A small canonical code: A has the shortest code, G and T the longest.
	symbols := []int32{'A', 'C', 'G', 'T'}
	lengths := []uint{1, 2, 3, 3}
	c := NewHuffmanInt(symbols, lengths)
	ss := NewStreams()
	seq := []int32{'A', 'A', 'C', 'G', 'T', 'A'}
	for _, v := range seq {
		if err := c.WriteInt(ss, v); err != nil {
			t.Fatal(err)
		}
	}
	dss := NewDecodeStreams(ss.Core.Bytes(), nil)
	for _, want := range seq {
		got, err := c.ReadInt(dss)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("got %c want %c", got, want)
		}
	}
}

func TestHuffmanDegenerate(t *testing.T) {
	c := NewHuffmanByte([]byte{'Q'}, []uint{0})
	ss := NewStreams()
	if err := c.WriteByte(ss, 'Q'); err != nil {
		t.Fatal(err)
	}
	dss := NewDecodeStreams(ss.Core.Bytes(), nil)
	got, err := c.ReadByte(dss)
	if err != nil {
		t.Fatal(err)
	}
	if got != 'Q' {
		t.Errorf("got %c want Q", got)
	}
}

func TestByteArrayLenRoundTrip(t *testing.T) {
	c := NewByteArrayLen(NewExternalInt(9), 10)
	ss := NewStreams()
	vals := [][]byte{[]byte("hi"), []byte(""), []byte("sequencing")}
	for _, v := range vals {
		if err := c.WriteByteArray(ss, v); err != nil {
			t.Fatal(err)
		}
	}
	dss := NewDecodeStreams(nil, map[int32][]byte{9: ss.Bytes(9), 10: ss.Bytes(10)})
	for _, want := range vals {
		got, err := c.ReadByteArray(dss)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, want) && !(len(got) == 0 && len(want) == 0) {
			t.Errorf("got %q want %q", got, want)
		}
	}
}

func TestByteArrayStopRoundTrip(t *testing.T) {
	c := NewByteArrayStop('\t', 11)
	ss := NewStreams()
	vals := [][]byte{[]byte("read1"), []byte("read2/1")}
	for _, v := range vals {
		if err := c.WriteByteArray(ss, v); err != nil {
			t.Fatal(err)
		}
	}
	dss := NewDecodeStreams(nil, map[int32][]byte{11: ss.Bytes(11)})
	for _, want := range vals {
		got, err := c.ReadByteArray(dss)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("got %q want %q", got, want)
		}
	}
}
