// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package header implements the CRAM compression header (§4.5): the
// per-container preservation map, encoding map, and tag encoding map
// that together describe how every data series and tag is coded.
package header

import (
	"github.com/biogo/cram/errs"
	"github.com/biogo/cram/itf8"
	"github.com/biogo/cram/subst"
)

// TagIDDictionary is the list of tag-id tuples: each entry names the
// set of 3-byte tag identifiers (2-byte name, 1-byte type) that appear
// together on some record (§3 Compression Header).
type TagIDDictionary [][]TagID

// TagID is a single 3-byte tag identifier: a 2-character tag name plus
// its SAM-style type byte (e.g. {'N','M','C'} for an NM tag of type
// 'C').
type TagID [3]byte

// Int packs t into the int32 key the tag encoding map is addressed by.
func (t TagID) Int() int32 {
	return int32(t[0])<<16 | int32(t[1])<<8 | int32(t[2])
}

// TagIDFromInt inverts TagID.Int.
func TagIDFromInt(v int32) TagID {
	return TagID{byte(v >> 16), byte(v >> 8), byte(v)}
}

// PreservationMap is the Compression Header's preservation map (§3):
// flags and shared state describing how records were (and must be)
// reconstructed, independent of any single data series' encoding.
type PreservationMap struct {
	// ReadNamesIncluded reports whether read names were preserved
	// (key "RN"). Default true.
	ReadNamesIncluded bool
	// APDelta reports whether the AP data series stores
	// position deltas rather than absolute positions; true iff
	// records are coordinate-sorted (key "AP").
	APDelta bool
	// ReferenceRequired reports whether decoding requires the
	// original reference sequence (key "RR").
	ReferenceRequired bool
	// SubstitutionMatrix is the 5x4 base substitution table (key
	// "SM").
	SubstitutionMatrix *subst.Matrix
	// TagIDDictionary lists the tag-id tuples seen together on some
	// record (key "TD").
	TagIDDictionary TagIDDictionary
}

// DefaultPreservationMap returns the preservation map used by the
// default encoding strategy: read names preserved, records assumed
// coordinate-sorted, reference required, and the standard
// substitution matrix.
func DefaultPreservationMap() *PreservationMap {
	return &PreservationMap{
		ReadNamesIncluded: true,
		APDelta:           true,
		ReferenceRequired: true,
		SubstitutionMatrix: subst.Default(),
	}
}

// the two-byte preservation map keys, in their canonical wire order.
var preservationKeys = [5]string{"RN", "AP", "RR", "SM", "TD"}

// Encode serializes m as the ITF8-length-prefixed byte buffer carried
// inside a COMPRESSION_HEADER block (§4.5).
func (m *PreservationMap) Encode() []byte {
	var body []byte
	body = itf8.AppendEncode(body, 5) // all five keys are always written
	body = append(body, 'R', 'N', boolByte(m.ReadNamesIncluded))
	body = append(body, 'A', 'P', boolByte(m.APDelta))
	body = append(body, 'R', 'R', boolByte(m.ReferenceRequired))
	sm := m.SubstitutionMatrix
	if sm == nil {
		sm = subst.Default()
	}
	smBytes := sm.Bytes()
	body = append(body, 'S', 'M')
	body = append(body, smBytes[:]...)
	body = append(body, 'T', 'D')
	body = encodeTagDictionary(body, m.TagIDDictionary)

	out := itf8.AppendEncode(nil, int32(len(body)))
	return append(out, body...)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func encodeTagDictionary(dst []byte, td TagIDDictionary) []byte {
	dst = itf8.AppendEncode(dst, int32(len(td)))
	for _, group := range td {
		dst = itf8.AppendEncode(dst, int32(len(group)))
		for _, tag := range group {
			dst = append(dst, tag[:]...)
		}
	}
	return dst
}

// DecodePreservationMap parses the buffer produced by
// PreservationMap.Encode and returns the remaining bytes.
func DecodePreservationMap(b []byte) (*PreservationMap, []byte, error) {
	length, k, ok := itf8.Decode(b)
	if !ok {
		return nil, nil, &errs.MalformedError{Context: "preservation map length"}
	}
	b = b[k:]
	if int32(len(b)) < length {
		return nil, nil, &errs.MalformedError{Context: "preservation map"}
	}
	body, rest := b[:length], b[length:]

	n, k, ok := itf8.Decode(body)
	if !ok {
		return nil, nil, &errs.MalformedError{Context: "preservation map key count"}
	}
	body = body[k:]
	m := &PreservationMap{ReadNamesIncluded: true, APDelta: true, ReferenceRequired: true}
	for i := int32(0); i < n; i++ {
		if len(body) < 2 {
			return nil, nil, &errs.MalformedError{Context: "preservation map key"}
		}
		key := string(body[:2])
		body = body[2:]
		switch key {
		case "RN":
			if len(body) < 1 {
				return nil, nil, &errs.MalformedError{Context: "preservation map RN"}
			}
			m.ReadNamesIncluded = body[0] != 0
			body = body[1:]
		case "AP":
			if len(body) < 1 {
				return nil, nil, &errs.MalformedError{Context: "preservation map AP"}
			}
			m.APDelta = body[0] != 0
			body = body[1:]
		case "RR":
			if len(body) < 1 {
				return nil, nil, &errs.MalformedError{Context: "preservation map RR"}
			}
			m.ReferenceRequired = body[0] != 0
			body = body[1:]
		case "SM":
			if len(body) < 5 {
				return nil, nil, &errs.MalformedError{Context: "preservation map SM"}
			}
			var raw [5]byte
			copy(raw[:], body[:5])
			body = body[5:]
			sm, err := subst.FromBytes(raw)
			if err != nil {
				return nil, nil, err
			}
			m.SubstitutionMatrix = sm
		case "TD":
			td, rest2, err := decodeTagDictionary(body)
			if err != nil {
				return nil, nil, err
			}
			m.TagIDDictionary = td
			body = rest2
		default:
			return nil, nil, &errs.MalformedError{Context: "preservation map key " + key}
		}
	}
	if m.SubstitutionMatrix == nil {
		m.SubstitutionMatrix = subst.Default()
	}
	return m, rest, nil
}

func decodeTagDictionary(b []byte) (TagIDDictionary, []byte, error) {
	n, k, ok := itf8.Decode(b)
	if !ok {
		return nil, nil, &errs.MalformedError{Context: "tag id dictionary count"}
	}
	b = b[k:]
	td := make(TagIDDictionary, n)
	for i := range td {
		gn, k, ok := itf8.Decode(b)
		if !ok {
			return nil, nil, &errs.MalformedError{Context: "tag id group count"}
		}
		b = b[k:]
		group := make([]TagID, gn)
		for j := range group {
			if len(b) < 3 {
				return nil, nil, &errs.MalformedError{Context: "tag id"}
			}
			copy(group[j][:], b[:3])
			b = b[3:]
		}
		td[i] = group
	}
	return td, b, nil
}
