// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import "github.com/biogo/cram/itf8"

// betaInt implements IntCodec for BETA: a fixed-width binary code over
// the core bitstream, after adding an offset (§4.4).
type betaInt struct {
	offset int32
	nbits  uint
}

// NewBetaInt returns an IntCodec that writes v+offset as an nbits-wide
// binary field in the core bitstream.
func NewBetaInt(offset int32, nbits uint) IntCodec {
	return betaInt{offset: offset, nbits: nbits}
}

func (b betaInt) ID() ID { return Beta }

func (b betaInt) Params() []byte {
	p := itf8.AppendEncode(nil, b.offset)
	p = itf8.AppendEncode(p, int32(b.nbits))
	return appendITF8Params(p)
}

func (b betaInt) WriteInt(ss *Streams, v int32) error {
	ss.Core.WriteBits(uint32(v+b.offset), b.nbits)
	return nil
}

func (b betaInt) ReadInt(ss *Streams) (int32, error) {
	v, err := ss.CoreR.ReadBits(b.nbits)
	if err != nil {
		return 0, err
	}
	return int32(v) - b.offset, nil
}
