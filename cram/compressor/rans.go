// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compressor

import (
	"encoding/binary"
	"errors"

	"github.com/biogo/cram/itf8"
)

// rANS (range asymmetric numeral systems) is CRAM's entropy coder for
// the base-flag and base-call data series (§2, §4.5). It is expensive
// to set up relative to the other methods because its normalized
// frequency tables are derived from the full input of every block; the
// Cache (§4.3) lets a single rANS engine serve both the order-0 and
// order-1 wrappers within a stream, so that the order-1 scratch counts
// are reused rather than reallocated for every block. The tables
// themselves are rebuilt on each call.
//
// The implementation follows the classical byte-oriented rANS
// formulation (Duda 2013; as popularised by Fabian Giesen's rans_byte.h):
// symbols are encoded back-to-front into a state word that is
// periodically renormalized by shifting bytes out to (or in from) a
// side channel. Order-1 coding conditions each symbol's frequency table
// on the byte immediately preceding it.
//
// The on-wire frequency table is this package's own compact
// ITF8-prefixed encoding rather than htslib's; byte-for-byte
// interoperable re-encoding with other CRAM implementations is not a
// goal, and the block's compressed payload is opaque to everything
// outside this package.
const (
	probBits  = 12
	probScale = 1 << probBits
	ransL     = uint32(1) << 23
)

var errRansTruncated = errors.New("compressor: truncated rANS stream")

// freqTable is a normalized frequency table over the 256 possible byte
// values, together with the cumulative frequency ("start") of each
// symbol, used both to encode and to decode.
type freqTable struct {
	freq [256]uint32
	cum  [256]uint32
	// bySlot maps a normalized cumulative-frequency slot to the symbol
	// owning it, for O(1) decode lookup.
	bySlot [probScale]byte
}

// buildFreqTable derives a normalized order-0 frequency table from buf.
// If buf is empty, symbol 0 receives all of probScale so that the
// table is still usable (and decode of the empty input is a
// no-op).
func buildFreqTable(buf []byte) *freqTable {
	var counts [256]uint64
	for _, b := range buf {
		counts[b]++
	}
	return normalizeCounts(counts, uint64(len(buf)))
}

func normalizeCounts(counts [256]uint64, total uint64) *freqTable {
	t := &freqTable{}
	if total == 0 {
		t.freq[0] = probScale
	} else {
		var assigned uint32
		for i, c := range counts {
			if c == 0 {
				continue
			}
			f := uint32(c * probScale / total)
			if f == 0 {
				f = 1
			}
			t.freq[i] = f
			assigned += f
		}
		// Adjust so frequencies sum to exactly probScale, taking or
		// giving the difference from the most frequent symbol.
		if assigned != probScale {
			biggest := 0
			for i, f := range t.freq {
				if f > t.freq[biggest] {
					biggest = i
				}
			}
			diff := int64(probScale) - int64(assigned)
			nf := int64(t.freq[biggest]) + diff
			if nf < 1 {
				nf = 1
			}
			t.freq[biggest] = uint32(nf)
		}
	}
	var cum uint32
	for i, f := range t.freq {
		t.cum[i] = cum
		for s := cum; s < cum+f; s++ {
			t.bySlot[s] = byte(i)
		}
		cum += f
	}
	return t
}

func (t *freqTable) symbolAt(slot uint32) byte { return t.bySlot[slot] }

// encodeTable serializes t as: ITF8 count-of-present-symbols, then for
// each present symbol a byte value and an ITF8-encoded frequency.
func (t *freqTable) encodeTable(dst []byte) []byte {
	n := int32(0)
	for _, f := range t.freq {
		if f != 0 {
			n++
		}
	}
	dst = itf8.AppendEncode(dst, n)
	for i, f := range t.freq {
		if f == 0 {
			continue
		}
		dst = append(dst, byte(i))
		dst = itf8.AppendEncode(dst, int32(f))
	}
	return dst
}

// decodeTable parses a table written by encodeTable and returns the
// remaining bytes.
func decodeTable(src []byte) (*freqTable, []byte, error) {
	n, k, ok := itf8.Decode(src)
	if !ok {
		return nil, nil, errRansTruncated
	}
	src = src[k:]
	var counts [256]uint64
	var total uint64
	for i := int32(0); i < n; i++ {
		if len(src) < 1 {
			return nil, nil, errRansTruncated
		}
		sym := src[0]
		src = src[1:]
		f, k, ok := itf8.Decode(src)
		if !ok {
			return nil, nil, errRansTruncated
		}
		src = src[k:]
		counts[sym] = uint64(f)
		total += uint64(f)
	}
	// The stored frequencies are already normalized to probScale; the
	// cumulative slots are rebuilt from them directly, the same way
	// normalizeCounts lays them out for the encoder.
	t := &freqTable{}
	var cum uint32
	for i, c := range counts {
		t.freq[i] = uint32(c)
		t.cum[i] = cum
		for s := cum; s < cum+uint32(c); s++ {
			t.bySlot[s] = byte(i)
		}
		cum += uint32(c)
	}
	return t, src, nil
}

// ransEncodeOrder0 entropy-codes buf using a single order-0 frequency
// table and returns the serialized table followed by the coded stream.
func ransEncodeOrder0(buf []byte) []byte {
	t := buildFreqTable(buf)
	coded := ransCode(buf, func(int) *freqTable { return t })
	out := t.encodeTable(nil)
	out = appendUint32(out, uint32(len(coded)))
	return append(out, coded...)
}

// ransDecodeOrder0 reverses ransEncodeOrder0.
func ransDecodeOrder0(src []byte, n int) ([]byte, error) {
	t, rest, err := decodeTable(src)
	if err != nil {
		return nil, err
	}
	codedLen, rest, err := readUint32(rest)
	if err != nil {
		return nil, err
	}
	if uint32(len(rest)) < codedLen {
		return nil, errRansTruncated
	}
	return ransDecode(rest[:codedLen], n, func(int) *freqTable { return t })
}

// ransEncodeOrder1 entropy-codes buf using 256 context-selected
// frequency tables, one per preceding byte value (context 0 for the
// first symbol).
func ransEncodeOrder1(buf []byte, scratch *[256][256]uint64) []byte {
	counts := scratch
	for i := range counts {
		for j := range counts[i] {
			counts[i][j] = 0
		}
	}
	var totals [256]uint64
	ctx := byte(0)
	for _, b := range buf {
		counts[ctx][b]++
		totals[ctx]++
		ctx = b
	}
	tables := make([]*freqTable, 256)
	for c := range tables {
		tables[c] = normalizeCounts(counts[c], totals[c])
	}
	ctx = 0
	coded := ransCode(buf, func(i int) *freqTable {
		if i == 0 {
			return tables[0]
		}
		return tables[buf[i-1]]
	})
	var out []byte
	for _, t := range tables {
		out = t.encodeTable(out)
	}
	out = appendUint32(out, uint32(len(coded)))
	return append(out, coded...)
}

// ransDecodeOrder1 reverses ransEncodeOrder1.
func ransDecodeOrder1(src []byte, n int) ([]byte, error) {
	tables := make([]*freqTable, 256)
	rest := src
	var err error
	for c := range tables {
		tables[c], rest, err = decodeTable(rest)
		if err != nil {
			return nil, err
		}
	}
	codedLen, rest, err := readUint32(rest)
	if err != nil {
		return nil, err
	}
	if uint32(len(rest)) < codedLen {
		return nil, errRansTruncated
	}
	out := make([]byte, 0, n)
	err = ransDecodeInto(rest[:codedLen], n, &out, func(prev byte, have int) *freqTable {
		if have == 0 {
			return tables[0]
		}
		return tables[prev]
	})
	return out, err
}

// ransCode performs the core rANS encode of buf. tableFor(i) returns the
// frequency table to use for symbol i; it may depend on prior symbols
// since the whole of buf is available up front.
func ransCode(buf []byte, tableFor func(i int) *freqTable) []byte {
	state := ransL
	var renorm []byte
	for i := len(buf) - 1; i >= 0; i-- {
		t := tableFor(i)
		sym := buf[i]
		freq := t.freq[sym]
		cum := t.cum[sym]
		xMax := ((ransL >> probBits) << 8) * freq
		for state >= xMax {
			renorm = append(renorm, byte(state))
			state >>= 8
		}
		state = (state/freq)<<probBits + state%freq + cum
	}
	out := make([]byte, 4, 4+len(renorm))
	binary.BigEndian.PutUint32(out, state)
	for i := len(renorm) - 1; i >= 0; i-- {
		out = append(out, renorm[i])
	}
	return out
}

// ransDecode reverses ransCode for a context function that only depends
// on the symbol index (order-0 use).
func ransDecode(src []byte, n int, tableFor func(i int) *freqTable) ([]byte, error) {
	out := make([]byte, n)
	if err := ransDecodeRaw(src, n, func(i int, sym byte) { out[i] = sym }, tableFor); err != nil {
		return nil, err
	}
	return out, nil
}

// ransDecodeInto reverses ransCode for a context function that depends
// on the previously decoded byte (order-1 use).
func ransDecodeInto(src []byte, n int, out *[]byte, tableFor func(prev byte, have int) *freqTable) error {
	var prev byte
	return ransDecodeRaw(src, n, func(i int, sym byte) {
		*out = append(*out, sym)
		prev = sym
		_ = i
	}, func(i int) *freqTable {
		return tableFor(prev, i)
	})
}

func ransDecodeRaw(src []byte, n int, emit func(i int, sym byte), tableFor func(i int) *freqTable) error {
	if len(src) < 4 {
		if n == 0 {
			return nil
		}
		return errRansTruncated
	}
	state := binary.BigEndian.Uint32(src[:4])
	src = src[4:]
	pos := 0
	for i := 0; i < n; i++ {
		t := tableFor(i)
		slot := state & (probScale - 1)
		sym := t.symbolAt(slot)
		freq := t.freq[sym]
		cum := t.cum[sym]
		state = freq*(state>>probBits) + slot - cum
		for state < ransL {
			if pos >= len(src) {
				return errRansTruncated
			}
			state = state<<8 | uint32(src[pos])
			pos++
		}
		emit(i, sym)
	}
	return nil
}

func appendUint32(dst []byte, v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return append(dst, b[:]...)
}

func readUint32(src []byte) (uint32, []byte, error) {
	if len(src) < 4 {
		return 0, nil, errRansTruncated
	}
	return binary.BigEndian.Uint32(src[:4]), src[4:], nil
}
