// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import (
	"github.com/biogo/cram/itf8"
	"github.com/biogo/cram/ltf8"
)

// externalInt implements IntCodec for EXTERNAL: values are ITF8-coded
// into a dedicated external block (§4.4).
type externalInt struct{ contentID int32 }

// NewExternalInt returns an IntCodec that ITF8-codes values into the
// external block named contentID.
func NewExternalInt(contentID int32) IntCodec { return externalInt{contentID: contentID} }

func (e externalInt) ID() ID         { return External }
func (e externalInt) Params() []byte { return appendITF8Params(itf8.AppendEncode(nil, e.contentID)) }

func (e externalInt) WriteInt(ss *Streams, v int32) error {
	s := ss.external(e.contentID)
	s.writeBytes(itf8.AppendEncode(nil, v))
	return nil
}

func (e externalInt) ReadInt(ss *Streams) (int32, error) {
	s := ss.external(e.contentID)
	lead, err := peekBytes(s, 1)
	if err != nil {
		return 0, err
	}
	n := itf8Width(lead[0])
	full, err := peekBytes(s, n)
	if err != nil {
		return 0, err
	}
	v, k, ok := itf8.Decode(full)
	if !ok {
		return 0, errShortExternal
	}
	if _, err := s.readBytes(k); err != nil {
		return 0, err
	}
	return v, nil
}

func peekBytes(s *externalStream, n int) ([]byte, error) {
	if len(s.buf) < n {
		return nil, errShortExternal
	}
	return s.buf[:n], nil
}

// itf8Width returns the total ITF-8 width given its leading byte, by
// counting that byte's leading set bits (capped at 5).
func itf8Width(b byte) int {
	n := 1
	for n <= 4 && b&(0x80>>uint(n-1)) != 0 {
		n++
	}
	return n
}

// ltf8Width returns the total LTF-8 width given its leading byte: the
// count of leading set bits, capped at 9 (LTF8's all-ones prefix byte
// introduces a fixed 8 following bytes).
func ltf8Width(b byte) int {
	if b == 0xff {
		return 9
	}
	n := 1
	for n <= 7 && b&(0x80>>uint(n-1)) != 0 {
		n++
	}
	return n
}

// externalLong implements IntCodec for EXTERNAL over an LTF8-coded
// long-valued data series (used internally by higher layers that need
// 64-bit range; exposed for symmetry with externalInt).
type externalLong struct{ contentID int32 }

// NewExternalLong returns an IntCodec backed by LTF8 rather than ITF8,
// truncating on decode only if the value exceeds int32 range.
func NewExternalLong(contentID int32) IntCodec { return externalLong{contentID: contentID} }

func (e externalLong) ID() ID         { return External }
func (e externalLong) Params() []byte { return appendITF8Params(itf8.AppendEncode(nil, e.contentID)) }

func (e externalLong) WriteInt(ss *Streams, v int32) error {
	s := ss.external(e.contentID)
	s.writeBytes(ltf8.AppendEncode(nil, int64(v)))
	return nil
}

func (e externalLong) ReadInt(ss *Streams) (int32, error) {
	s := ss.external(e.contentID)
	lead, err := peekBytes(s, 1)
	if err != nil {
		return 0, err
	}
	n := ltf8Width(lead[0])
	full, err := peekBytes(s, n)
	if err != nil {
		return 0, err
	}
	v, k, ok := ltf8.Decode(full)
	if !ok {
		return 0, errShortExternal
	}
	if _, err := s.readBytes(k); err != nil {
		return 0, err
	}
	return int32(v), nil
}

// externalByte implements ByteCodec for EXTERNAL: one raw byte per
// value.
type externalByte struct{ contentID int32 }

// NewExternalByte returns a ByteCodec reading/writing raw bytes from
// the external block named contentID.
func NewExternalByte(contentID int32) ByteCodec { return externalByte{contentID: contentID} }

func (e externalByte) ID() ID         { return External }
func (e externalByte) Params() []byte { return appendITF8Params(itf8.AppendEncode(nil, e.contentID)) }

func (e externalByte) WriteByte(ss *Streams, v byte) error {
	ss.external(e.contentID).writeByte(v)
	return nil
}

func (e externalByte) ReadByte(ss *Streams) (byte, error) {
	return ss.external(e.contentID).readByte()
}

// externalByteArray implements ByteArrayCodec for EXTERNAL with a
// caller-supplied length (paired with a length sub-encoding by
// byteArrayLen; §4.4).
type externalByteArray struct{ contentID int32 }

// NewExternalByteArray returns a ByteArrayCodec that reads/writes raw
// bytes from the external block named contentID, for a length
// determined by the caller (normally byteArrayLen's length
// sub-encoding).
func NewExternalByteArray(contentID int32) ByteArrayCodec {
	return externalByteArray{contentID: contentID}
}

func (e externalByteArray) ID() ID         { return External }
func (e externalByteArray) Params() []byte { return appendITF8Params(itf8.AppendEncode(nil, e.contentID)) }

func (e externalByteArray) WriteByteArray(ss *Streams, v []byte) error {
	ss.external(e.contentID).writeBytes(v)
	return nil
}

func (e externalByteArray) ReadByteArray(ss *Streams) ([]byte, error) {
	// Length-less reads are not meaningful for EXTERNAL byte arrays on
	// their own; callers needing a length drive this codec through
	// ReadN below (used by byteArrayLen).
	return nil, errExternalNeedsLength
}

// ReadN reads exactly n bytes as a byte array, for use as the "bytes"
// sub-encoding of a BYTE_ARRAY_LEN pairing.
func (e externalByteArray) ReadN(ss *Streams, n int) ([]byte, error) {
	return ss.external(e.contentID).readBytes(n)
}
