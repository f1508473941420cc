// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import "github.com/biogo/cram/itf8"

// golombInt implements IntCodec for GOLOMB: quotient unary-coded,
// remainder coded in a minimal-redundancy binary mix for modulus m
// (§4.4). m need not be a power of two; GOLOMB_RICE (golombrice.go)
// is the power-of-two specialization that uses a plain fixed-width
// remainder instead.
type golombInt struct {
	offset int32
	m      uint32
}

// NewGolombInt returns an IntCodec using Golomb coding with modulus m
// and the given offset. m must be >= 1.
func NewGolombInt(offset int32, m uint32) IntCodec {
	if m < 1 {
		m = 1
	}
	return golombInt{offset: offset, m: m}
}

func (g golombInt) ID() ID { return Golomb }

func (g golombInt) Params() []byte {
	p := itf8.AppendEncode(nil, g.offset)
	p = itf8.AppendEncode(p, int32(g.m))
	return appendITF8Params(p)
}

// splitBits returns the number of bits of the longer remainder code,
// b = ceil(log2(m)), and the threshold below which the shorter, b-1 bit
// code is used (Golomb's minimal-redundancy remainder split).
func (g golombInt) splitBits() (b uint, cutoff uint32) {
	m := g.m
	for (uint32(1) << b) < m {
		b++
	}
	cutoff = (uint32(1) << b) - m
	return b, cutoff
}

func (g golombInt) WriteInt(ss *Streams, v int32) error {
	n := uint32(v + g.offset)
	q := n / g.m
	r := n % g.m
	ss.Core.WriteUnary(q)
	b, cutoff := g.splitBits()
	if b == 0 {
		return nil
	}
	if r < cutoff {
		ss.Core.WriteBits(r, b-1)
	} else {
		ss.Core.WriteBits(r+cutoff, b)
	}
	return nil
}

func (g golombInt) ReadInt(ss *Streams) (int32, error) {
	q, err := ss.CoreR.ReadUnary()
	if err != nil {
		return 0, err
	}
	b, cutoff := g.splitBits()
	var r uint32
	if b > 0 {
		short, err := ss.CoreR.ReadBits(b - 1)
		if err != nil {
			return 0, err
		}
		if short < cutoff {
			r = short
		} else {
			extra, err := ss.CoreR.ReadBit()
			if err != nil {
				return 0, err
			}
			r = (short<<1 | extra) - cutoff
		}
	}
	n := q*g.m + r
	return int32(n) - g.offset, nil
}
