// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import "github.com/biogo/cram/itf8"

// golombRiceInt implements IntCodec for GOLOMB_RICE: the power-of-two
// specialization of Golomb coding, parameterized by log2m so the
// remainder is a plain log2m-bit binary field with no split (§4.4).
type golombRiceInt struct {
	offset int32
	log2m  uint
}

// NewGolombRiceInt returns an IntCodec using Golomb-Rice coding with
// modulus 2^log2m and the given offset.
func NewGolombRiceInt(offset int32, log2m uint) IntCodec {
	return golombRiceInt{offset: offset, log2m: log2m}
}

func (g golombRiceInt) ID() ID { return GolombRice }

func (g golombRiceInt) Params() []byte {
	p := itf8.AppendEncode(nil, g.offset)
	p = itf8.AppendEncode(p, int32(g.log2m))
	return appendITF8Params(p)
}

func (g golombRiceInt) WriteInt(ss *Streams, v int32) error {
	n := uint32(v + g.offset)
	q := n >> g.log2m
	r := n & (1<<g.log2m - 1)
	ss.Core.WriteUnary(q)
	if g.log2m > 0 {
		ss.Core.WriteBits(r, g.log2m)
	}
	return nil
}

func (g golombRiceInt) ReadInt(ss *Streams) (int32, error) {
	q, err := ss.CoreR.ReadUnary()
	if err != nil {
		return 0, err
	}
	var r uint32
	if g.log2m > 0 {
		r, err = ss.CoreR.ReadBits(g.log2m)
		if err != nil {
			return 0, err
		}
	}
	n := q<<g.log2m | r
	return int32(n) - g.offset, nil
}
