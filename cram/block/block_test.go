// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import (
	"bytes"
	"testing"

	"github.com/biogo/cram/compressor"
)

func TestRoundTripRaw(t *testing.T) {
	cache := compressor.NewCache()
	b := NewExternal(3, []byte("the quick brown fox"))
	if err := b.Compress(cache, compressor.Raw, 0); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if _, err := b.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}

	var got Block
	if err := got.ReadFrom(&buf, cache); err != nil {
		t.Fatal(err)
	}
	if got.Type != External || got.ContentID != 3 {
		t.Errorf("header mismatch: type=%v id=%d", got.Type, got.ContentID)
	}
	if !bytes.Equal(got.Raw(), []byte("the quick brown fox")) {
		t.Errorf("payload mismatch: got %q", got.Raw())
	}
}

func TestRoundTripCompressedMethods(t *testing.T) {
	cache := compressor.NewCache()
	payload := bytes.Repeat([]byte("ACGTACGTACGT"), 64)
	methods := []struct {
		method compressor.Method
		param  int
	}{
		{compressor.Gzip, 6},
		{compressor.Bzip2, 6},
		{compressor.Lzma, 0},
		{compressor.Rans, 0},
		{compressor.Rans, 1},
	}
	for _, m := range methods {
		b := NewCore(payload)
		if err := b.Compress(cache, m.method, m.param); err != nil {
			t.Fatalf("%v: compress: %v", m.method, err)
		}
		var buf bytes.Buffer
		if _, err := b.WriteTo(&buf); err != nil {
			t.Fatalf("%v: write: %v", m.method, err)
		}

		var got Block
		if err := got.ReadFrom(&buf, cache); err != nil {
			t.Fatalf("%v: read: %v", m.method, err)
		}
		if !bytes.Equal(got.Raw(), payload) {
			t.Errorf("%v: payload mismatch after round trip", m.method)
		}
	}
}

func TestReadFromDetectsCorruption(t *testing.T) {
	cache := compressor.NewCache()
	b := NewExternal(0, []byte("hello, world"))
	if err := b.Compress(cache, compressor.Raw, 0); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if _, err := b.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	corrupt := buf.Bytes()
	corrupt[len(corrupt)-1] ^= 0xff

	var got Block
	if err := got.ReadFrom(bytes.NewReader(corrupt), cache); err == nil {
		t.Error("expected CRC mismatch error, got nil")
	}
}

func TestContentTypeString(t *testing.T) {
	cases := map[ContentType]string{
		FileHeader:        "file header",
		CompressionHeader: "compression header",
		MappedSliceHeader: "slice header",
		External:          "external",
		Core:              "core",
	}
	for ct, want := range cases {
		if got := ct.String(); got != want {
			t.Errorf("%d: got %q want %q", ct, got, want)
		}
	}
}
