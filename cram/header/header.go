// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package header

import (
	"github.com/biogo/cram/compressor"
	"github.com/biogo/cram/dataseries"
	"github.com/biogo/cram/encoding"
)

// CompressionHeader is the per-container schema of §3 "Compression
// Header": the preservation map, the data-series encoding map, and the
// tag encoding map.
type CompressionHeader struct {
	Preservation *PreservationMap
	Encodings    *EncodingMap
	TagEncodings *TagEncodingMap
}

// Encode serializes h as the concatenation of its three maps, the
// payload of a COMPRESSION_HEADER block (§4.5).
func (h *CompressionHeader) Encode() []byte {
	out := h.Preservation.Encode()
	out = append(out, h.Encodings.Encode()...)
	out = append(out, h.TagEncodings.Encode()...)
	return out
}

// Decode parses the buffer produced by Encode.
func Decode(b []byte) (*CompressionHeader, error) {
	pm, b, err := DecodePreservationMap(b)
	if err != nil {
		return nil, err
	}
	em, b, err := DecodeEncodingMap(b)
	if err != nil {
		return nil, err
	}
	tm, _, err := DecodeTagEncodingMap(b)
	if err != nil {
		return nil, err
	}
	return &CompressionHeader{Preservation: pm, Encodings: em, TagEncodings: tm}, nil
}

// lengthContentIDOffset separates a BYTE_ARRAY_LEN series' own external
// block content id from the external block its length sub-encoding
// writes into; data series content ids are small (1..30, §3 Block), so
// this offset cannot collide with them.
const lengthContentIDOffset = 1000

// DefaultCompressionHeader returns the compression header produced by
// the default write-path encoding strategy of §4.5: every IntItem
// series gets EXTERNAL ITF8-coding, every ByteItem series gets EXTERNAL
// single-byte coding, and every ByteArrayItem series gets BYTE_ARRAY_LEN
// with an EXTERNAL ITF8 length sub-encoding, so that a series carrying
// arbitrary binary data (quality scores, read bases) is never mistaken
// for a terminator byte — except RN, SC, and IN, which §4.5 names
// explicitly for BYTE_ARRAY_STOP terminated on '\t': read names, soft
// clip bases, and insertion bases are each followed by another field in
// the record stream rather than by more of the same series, so a stop
// byte unambiguously ends one value without needing a length prefix.
// BB and QQ are left unset, since they are unused on write (their
// content is carried inline on each record's Features list instead).
//
// The choice of block-level compression method (rANS vs gzip vs raw,
// §4.2/§4.3) is orthogonal to this encoding-map assignment: it governs
// how an external block's bytes are packed once BlockCompressionFor
// routes its content id to a method, not which sub-codec produces those
// bytes in the first place. apDelta controls only whether AP itself
// stores position deltas; it does not change which codec AP uses.
func DefaultCompressionHeader() *CompressionHeader {
	em := NewEncodingMap()
	for _, s := range dataseries.All() {
		switch s {
		case dataseries.BB, dataseries.QQ:
			continue
		}
		switch {
		case s.ItemType() == dataseries.ByteItem:
			c := encoding.NewExternalByte(s.ContentID())
			em.Set(s, c.ID(), c.Params())
		case s == dataseries.RN || s == dataseries.SC || s == dataseries.IN:
			c := encoding.NewByteArrayStop('\t', s.ContentID())
			em.Set(s, c.ID(), c.Params())
		case s.ItemType() == dataseries.ByteArrayItem:
			length := encoding.NewExternalInt(s.ContentID() + lengthContentIDOffset)
			c := encoding.NewByteArrayLen(length, s.ContentID())
			em.Set(s, c.ID(), c.Params())
		default:
			c := encoding.NewExternalInt(s.ContentID())
			em.Set(s, c.ID(), c.Params())
		}
	}
	return &CompressionHeader{
		Preservation: DefaultPreservationMap(),
		Encodings:    em,
		TagEncodings: NewTagEncodingMap(),
	}
}

// BlockCompressionFor returns the block compression method and
// parameter the default write-path strategy of §4.5 assigns to the
// external block carrying data series s, given the strategy's
// configured gzip level: rANS order-0 for AP and RI, whose values are
// well modelled by a single stream-wide symbol distribution; rANS
// order-1 for BF, CF, BA, NS, QS, RG, RL, and TS, whose symbols
// correlate with the byte immediately before them; and gzip, at
// gzipLevel, for every other series and for the CORE and
// COMPRESSION_HEADER blocks, which carry mixed bit-packed content that
// rANS's byte-oriented model is not suited to.
func BlockCompressionFor(s dataseries.Series, gzipLevel int) (compressor.Method, int) {
	switch s {
	case dataseries.AP, dataseries.RI:
		return compressor.Rans, 0
	case dataseries.BF, dataseries.CF, dataseries.BA, dataseries.NS, dataseries.QS, dataseries.RG, dataseries.RL, dataseries.TS:
		return compressor.Rans, 1
	default:
		return compressor.Gzip, gzipLevel
	}
}
