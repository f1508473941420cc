// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import "github.com/biogo/cram/itf8"

// byteArrayLen implements ByteArrayCodec for BYTE_ARRAY_LEN: the array
// length is coded by one IntCodec, its bytes by an
// externalByteArray-shaped codec supporting an explicit length read
// (§4.4 "compose any two").
type byteArrayLen struct {
	length IntCodec
	data   externalByteArray
}

// NewByteArrayLen returns a ByteArrayCodec that codes the array's
// length with length and its bytes as a raw external block named
// dataContentID.
func NewByteArrayLen(length IntCodec, dataContentID int32) ByteArrayCodec {
	return byteArrayLen{length: length, data: externalByteArray{contentID: dataContentID}}
}

func (b byteArrayLen) ID() ID { return ByteArrayLen }

func (b byteArrayLen) Params() []byte {
	p := append([]byte{byte(b.length.ID())}, b.length.Params()...)
	p = append(p, b.data.Params()...)
	return appendITF8Params(p)
}

func (b byteArrayLen) WriteByteArray(ss *Streams, v []byte) error {
	if err := b.length.WriteInt(ss, int32(len(v))); err != nil {
		return err
	}
	return b.data.WriteByteArray(ss, v)
}

func (b byteArrayLen) ReadByteArray(ss *Streams) ([]byte, error) {
	n, err := b.length.ReadInt(ss)
	if err != nil {
		return nil, err
	}
	return b.data.ReadN(ss, int(n))
}

// byteArrayStop implements ByteArrayCodec for BYTE_ARRAY_STOP: bytes
// are read from an external block up to (and consuming) a terminator
// byte, e.g. '\t' for tab-separated fields (§4.4).
type byteArrayStop struct {
	stop      byte
	contentID int32
}

// NewByteArrayStop returns a ByteArrayCodec that reads/writes
// terminator-delimited byte arrays from the external block named
// contentID.
func NewByteArrayStop(stop byte, contentID int32) ByteArrayCodec {
	return byteArrayStop{stop: stop, contentID: contentID}
}

func (b byteArrayStop) ID() ID { return ByteArrayStop }

func (b byteArrayStop) Params() []byte {
	p := []byte{b.stop}
	p = itf8.AppendEncode(p, b.contentID)
	return appendITF8Params(p)
}

func (b byteArrayStop) WriteByteArray(ss *Streams, v []byte) error {
	s := ss.external(b.contentID)
	s.writeBytes(v)
	s.writeByte(b.stop)
	return nil
}

func (b byteArrayStop) ReadByteArray(ss *Streams) ([]byte, error) {
	return ss.external(b.contentID).readUntil(b.stop)
}
