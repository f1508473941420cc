// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package encoding implements the CRAM per-data-series codecs (§4.4
// Encodings): a closed, small set of ways to map a logical value
// (byte, int, or byte array) onto the core bitstream and/or an
// external byte block.
package encoding

import (
	"sort"

	"github.com/biogo/cram/bitio"
	"github.com/biogo/cram/errs"
	"github.com/biogo/cram/itf8"
)

// ID is the encoding's stable wire identifier (§4.4).
type ID byte

// The closed set of encoding ids.
const (
	Null          ID = 0
	External      ID = 1
	Golomb        ID = 2
	Huffman       ID = 3
	ByteArrayLen  ID = 4
	ByteArrayStop ID = 5
	Beta          ID = 6
	Subexp        ID = 7
	GolombRice    ID = 8
	Gamma         ID = 9
)

func (id ID) String() string {
	switch id {
	case Null:
		return "NULL"
	case External:
		return "EXTERNAL"
	case Golomb:
		return "GOLOMB"
	case Huffman:
		return "HUFFMAN"
	case ByteArrayLen:
		return "BYTE_ARRAY_LEN"
	case ByteArrayStop:
		return "BYTE_ARRAY_STOP"
	case Beta:
		return "BETA"
	case Subexp:
		return "SUBEXP"
	case GolombRice:
		return "GOLOMB_RICE"
	case Gamma:
		return "GAMMA"
	default:
		return "UNKNOWN"
	}
}

// Streams bundles the per-slice core bitstream and the set of external
// byte blocks an Encoding may read or write, keyed by content id (§4.4
// "given the container's core-block bitstream and external-block byte
// streams").
type Streams struct {
	Core     *bitio.Writer // set when encoding
	CoreR    *bitio.Reader // set when decoding
	External map[int32]*externalStream
}

// NewStreams returns a Streams ready for encoding into a fresh core
// writer and a fresh set of external buffers.
func NewStreams() *Streams {
	return &Streams{Core: bitio.NewWriter(), External: make(map[int32]*externalStream)}
}

// NewDecodeStreams returns a Streams ready for decoding from core and
// the given external blocks (content id to raw bytes).
func NewDecodeStreams(core []byte, external map[int32][]byte) *Streams {
	ext := make(map[int32]*externalStream, len(external))
	for id, b := range external {
		ext[id] = &externalStream{buf: b}
	}
	return &Streams{CoreR: bitio.NewReader(core), External: ext}
}

// externalStream is a byte-oriented external block under
// construction (encode) or consumption (decode).
type externalStream struct {
	buf []byte // accumulated on encode, remaining unread tail on decode
}

func (s *externalStream) writeByte(b byte) { s.buf = append(s.buf, b) }

func (s *externalStream) writeBytes(b []byte) { s.buf = append(s.buf, b...) }

func (s *externalStream) readByte() (byte, error) {
	if len(s.buf) == 0 {
		return 0, errs.ErrFeatureOutOfRange
	}
	b := s.buf[0]
	s.buf = s.buf[1:]
	return b, nil
}

func (s *externalStream) readBytes(n int) ([]byte, error) {
	if len(s.buf) < n {
		return nil, bitio.ErrTruncated
	}
	b := s.buf[:n]
	s.buf = s.buf[n:]
	return b, nil
}

func (s *externalStream) readUntil(stop byte) ([]byte, error) {
	for i, b := range s.buf {
		if b == stop {
			out := s.buf[:i]
			s.buf = s.buf[i+1:]
			return out, nil
		}
	}
	return nil, bitio.ErrTruncated
}

func (ss *Streams) external(contentID int32) *externalStream {
	s, ok := ss.External[contentID]
	if !ok {
		s = &externalStream{}
		ss.External[contentID] = s
	}
	return s
}

// Bytes returns the content of the external block with the given
// content id as built so far (encode side).
func (ss *Streams) Bytes(contentID int32) []byte {
	if s, ok := ss.External[contentID]; ok {
		return s.buf
	}
	return nil
}

// ExternalIDs returns, in ascending order, the content ids of every
// external block written to or read from so far.
func (ss *Streams) ExternalIDs() []int32 {
	ids := make([]int32, 0, len(ss.External))
	for id := range ss.External {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// IntCodec reads and writes int32 values for one data series.
type IntCodec interface {
	ID() ID
	Params() []byte
	ReadInt(ss *Streams) (int32, error)
	WriteInt(ss *Streams, v int32) error
}

// ByteCodec reads and writes single byte values for one data series.
type ByteCodec interface {
	ID() ID
	Params() []byte
	ReadByte(ss *Streams) (byte, error)
	WriteByte(ss *Streams, v byte) error
}

// ByteArrayCodec reads and writes variable-length byte arrays for one
// data series.
type ByteArrayCodec interface {
	ID() ID
	Params() []byte
	ReadByteArray(ss *Streams) ([]byte, error)
	WriteByteArray(ss *Streams, v []byte) error
}

// appendITF8Params wraps p in an ITF8-length-prefixed parameter buffer,
// the wire form every encoding map entry uses for its parameters
// (§4.5).
func appendITF8Params(p []byte) []byte {
	out := itf8.AppendEncode(nil, int32(len(p)))
	return append(out, p...)
}

// DecodeParams splits an ITF8-length-prefixed parameter buffer.
func DecodeParams(b []byte) (params, rest []byte, err error) {
	n, k, ok := itf8.Decode(b)
	if !ok {
		return nil, nil, &errs.MalformedError{Context: "encoding parameters"}
	}
	b = b[k:]
	if int32(len(b)) < n {
		return nil, nil, &errs.MalformedError{Context: "encoding parameters"}
	}
	return b[:n], b[n:], nil
}
