// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package subst implements the CRAM substitution matrix (§4.5
// "Reference note"): a 5x4 table mapping each reference base to a
// ranked list of the four possible substitute bases, used to encode
// and decode base-substitution read features in two bits per call.
package subst

import "github.com/biogo/cram/errs"

// bases is the fixed base alphabet a substitution matrix ranks over.
// 'N' only ever appears as a reference base; reads are never encoded
// as substituting to N.
var bases = [5]byte{'A', 'C', 'G', 'T', 'N'}

func baseIndex(b byte) (int, bool) {
	switch b {
	case 'A':
		return 0, true
	case 'C':
		return 1, true
	case 'G':
		return 2, true
	case 'T':
		return 3, true
	case 'N':
		return 4, true
	default:
		return 0, false
	}
}

// Matrix is a 5x4 bidirectional substitution table: for each of the 5
// reference bases, a ranking of the 4 bases that are not that
// reference base, indexed by a 2-bit code.
type Matrix struct {
	// rankToBase[ref][code] is the read base for 2-bit code given
	// reference base ref.
	rankToBase [5][4]byte
	// baseToRank[ref][read] is the 2-bit code for read base given
	// reference base ref; read must differ from ref.
	baseToRank [5][5]byte
}

// Default returns the fixed substitution matrix used when no matrix is
// read from a stream.
func Default() *Matrix {
	// For each reference base, list its four alternatives in code
	// order: for A, C, G and T, the three other nucleotides followed by
	// N; for N, the four nucleotides in A, C, G, T order.
	order := map[byte][4]byte{
		'A': {'C', 'G', 'T', 'N'},
		'C': {'A', 'G', 'T', 'N'},
		'G': {'T', 'A', 'C', 'N'},
		'T': {'G', 'A', 'C', 'N'},
		'N': {'A', 'C', 'G', 'T'},
	}
	m := &Matrix{}
	for _, ref := range bases {
		ri, _ := baseIndex(ref)
		alts := order[ref]
		for code, alt := range alts {
			if alt == ref {
				continue
			}
			m.rankToBase[ri][code] = alt
			ai, _ := baseIndex(alt)
			m.baseToRank[ri][ai] = byte(code)
		}
	}
	return m
}

// FromBytes reconstructs a Matrix from its 5-byte wire encoding (§4.5):
// byte i packs the 4 two-bit codes for reference base bases[i], ranking
// bases[i]'s four alternatives most-significant-bits first.
func FromBytes(b [5]byte) (*Matrix, error) {
	m := &Matrix{}
	for ri, ref := range bases {
		packed := b[ri]
		var codes [4]byte
		for code := 0; code < 4; code++ {
			shift := uint(6 - 2*code)
			codes[code] = (packed >> shift) & 0x3
		}
		alts := alternatives(ref)
		seen := [4]bool{}
		for code, altIdx := range codes {
			if int(altIdx) >= len(alts) {
				return nil, &errs.MalformedError{Context: "substitution matrix", Err: errBadRank}
			}
			if seen[altIdx] {
				return nil, &errs.MalformedError{Context: "substitution matrix", Err: errDuplicateRank}
			}
			seen[altIdx] = true
			alt := alts[altIdx]
			m.rankToBase[ri][code] = alt
			ai, _ := baseIndex(alt)
			m.baseToRank[ri][ai] = byte(code)
		}
	}
	return m, nil
}

// alternatives returns the four bases (in the fixed global order
// A,C,G,T,N) other than ref, in that fixed order: this is the order
// that the wire-format "rank index" (0..3) addresses into when the
// matrix is serialized, distinct from the (possibly reordered)
// preference ranking a particular Matrix assigns to them.
func alternatives(ref byte) []byte {
	out := make([]byte, 0, 4)
	for _, b := range bases {
		if b != ref {
			out = append(out, b)
		}
	}
	return out
}

// Bytes serializes m to its 5-byte wire encoding, the inverse of
// FromBytes.
func (m *Matrix) Bytes() [5]byte {
	var out [5]byte
	for ri, ref := range bases {
		alts := alternatives(ref)
		altIdx := make(map[byte]byte, 4)
		for i, a := range alts {
			altIdx[a] = byte(i)
		}
		var packed byte
		for code := 0; code < 4; code++ {
			alt := m.rankToBase[ri][code]
			packed |= altIdx[alt] << uint(6-2*code)
		}
		out[ri] = packed
	}
	return out
}

// Encode returns the 2-bit code for substituting readBase in place of
// refBase. Both must be one of A, C, G, T, N and must differ; Encode
// panics otherwise, since a substitution feature is never generated for
// a matching base.
func (m *Matrix) Encode(refBase, readBase byte) byte {
	ri, ok := baseIndex(refBase)
	if !ok {
		panic("subst: invalid reference base")
	}
	ai, ok := baseIndex(readBase)
	if !ok || refBase == readBase {
		panic("subst: invalid or non-substituting read base")
	}
	return m.baseToRank[ri][ai]
}

// Decode returns the read base substituted for refBase by 2-bit code.
func (m *Matrix) Decode(refBase byte, code byte) (byte, error) {
	ri, ok := baseIndex(refBase)
	if !ok || code > 3 {
		return 0, &errs.MalformedError{Context: "substitution code", Err: errBadRank}
	}
	return m.rankToBase[ri][code], nil
}
