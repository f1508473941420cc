// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import "github.com/biogo/cram/itf8"

// gammaInt implements IntCodec for GAMMA: Elias gamma coding of
// v+offset+1 (gamma requires a strictly positive value), a unary
// length prefix followed by that many magnitude bits (§4.4).
type gammaInt struct{ offset int32 }

// NewGammaInt returns an IntCodec using Elias gamma coding with the
// given offset.
func NewGammaInt(offset int32) IntCodec { return gammaInt{offset: offset} }

func (g gammaInt) ID() ID         { return Gamma }
func (g gammaInt) Params() []byte { return appendITF8Params(itf8.AppendEncode(nil, g.offset)) }

func (g gammaInt) WriteInt(ss *Streams, v int32) error {
	n := uint32(v + g.offset + 1)
	nbits := bitLen32(n)
	ss.Core.WriteUnary(uint32(nbits - 1))
	if nbits > 1 {
		ss.Core.WriteBits(n, uint(nbits-1))
	}
	return nil
}

func (g gammaInt) ReadInt(ss *Streams) (int32, error) {
	extra, err := ss.CoreR.ReadUnary()
	if err != nil {
		return 0, err
	}
	n := uint32(1)
	if extra > 0 {
		low, err := ss.CoreR.ReadBits(uint(extra))
		if err != nil {
			return 0, err
		}
		n = 1<<extra | low
	}
	return int32(n) - g.offset - 1, nil
}

// bitLen32 returns the number of bits needed to represent v (v must be
// > 0).
func bitLen32(v uint32) uint32 {
	n := uint32(0)
	for v > 0 {
		n++
		v >>= 1
	}
	return n
}
