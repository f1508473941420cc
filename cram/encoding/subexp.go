// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import "github.com/biogo/cram/itf8"

// subexpInt implements IntCodec for SUBEXP: sub-exponential coding
// with parameter k (§4.4). Values below 2^k are coded as a 0 unary
// prefix followed by a k-bit field; larger values are coded with a
// unary prefix b-k (b being the bit length of the value) followed by a
// (b-1)-bit field holding the value's low b-1 bits, mirroring the
// scheme htslib uses for MQ/BA-adjacent series.
type subexpInt struct {
	offset int32
	k      uint
}

// NewSubexpInt returns an IntCodec using sub-exponential coding with
// parameter k and the given offset.
func NewSubexpInt(offset int32, k uint) IntCodec { return subexpInt{offset: offset, k: k} }

func (s subexpInt) ID() ID { return Subexp }

func (s subexpInt) Params() []byte {
	p := itf8.AppendEncode(nil, s.offset)
	p = itf8.AppendEncode(p, int32(s.k))
	return appendITF8Params(p)
}

func (s subexpInt) WriteInt(ss *Streams, v int32) error {
	n := uint32(v + s.offset)
	if n < 1<<s.k {
		ss.Core.WriteUnary(0)
		ss.Core.WriteBits(n, s.k)
		return nil
	}
	b := bitLen32(n)
	ss.Core.WriteUnary(uint32(b) - uint32(s.k))
	ss.Core.WriteBits(n, uint(b)-1)
	return nil
}

func (s subexpInt) ReadInt(ss *Streams) (int32, error) {
	u, err := ss.CoreR.ReadUnary()
	if err != nil {
		return 0, err
	}
	var n uint32
	if u == 0 {
		n, err = ss.CoreR.ReadBits(s.k)
		if err != nil {
			return 0, err
		}
	} else {
		b := uint(u) + s.k
		low, err := ss.CoreR.ReadBits(b - 1)
		if err != nil {
			return 0, err
		}
		n = 1<<(b-1) | low
	}
	return int32(n) - s.offset, nil
}
