// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import (
	"sort"

	"github.com/biogo/cram/itf8"
)

// huffmanSymbol is one entry of a canonical Huffman code table: a
// logical symbol (byte value, widened to int32 for uniform storage)
// and its code length in bits.
type huffmanSymbol struct {
	value int32
	len   uint
}

// huffmanTable is a canonical Huffman code: symbols are sorted by
// (length, value) and assigned consecutive codes within each length
// group, the standard canonical-code construction (§4.4 "canonical
// Huffman"). A table with a single symbol degenerates to a length-0
// code: that symbol is always implied and nothing is read or written.
type huffmanTable struct {
	symbols []huffmanSymbol
	codes   []uint32 // codes[i] corresponds to symbols[i]
	// byCode maps (len, code) to the symbol's index for decode.
	byCode map[uint64]int
}

func newHuffmanTable(symbols []huffmanSymbol) *huffmanTable {
	t := &huffmanTable{symbols: append([]huffmanSymbol(nil), symbols...)}
	sort.Slice(t.symbols, func(i, j int) bool {
		if t.symbols[i].len != t.symbols[j].len {
			return t.symbols[i].len < t.symbols[j].len
		}
		return t.symbols[i].value < t.symbols[j].value
	})
	t.codes = make([]uint32, len(t.symbols))
	t.byCode = make(map[uint64]int, len(t.symbols))
	var code uint32
	prevLen := uint(0)
	for i, s := range t.symbols {
		if s.len == 0 {
			continue // single-symbol degenerate case
		}
		code <<= s.len - prevLen
		t.codes[i] = code
		t.byCode[huffKey(s.len, code)] = i
		code++
		prevLen = s.len
	}
	return t
}

func huffKey(length uint, code uint32) uint64 {
	return uint64(length)<<32 | uint64(code)
}

func (t *huffmanTable) degenerate() bool { return len(t.symbols) == 1 }

func (t *huffmanTable) write(ss *Streams, value int32) error {
	if t.degenerate() {
		return nil
	}
	idx := -1
	for i, s := range t.symbols {
		if s.value == value {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errHuffmanNoSymbol
	}
	ss.Core.WriteBits(t.codes[idx], t.symbols[idx].len)
	return nil
}

func (t *huffmanTable) read(ss *Streams) (int32, error) {
	if t.degenerate() {
		return t.symbols[0].value, nil
	}
	var code uint32
	for length := uint(1); length <= 32; length++ {
		bit, err := ss.CoreR.ReadBit()
		if err != nil {
			return 0, err
		}
		code = code<<1 | bit
		if idx, ok := t.byCode[huffKey(length, code)]; ok {
			return t.symbols[idx].value, nil
		}
	}
	return 0, errHuffmanNoSymbol
}

// params serializes the table as: ITF8 symbol count, then that many
// ITF8 symbol values, then that many ITF8 code lengths — the
// traditional two-array CRAM Huffman parameter layout.
func (t *huffmanTable) params() []byte {
	p := itf8.AppendEncode(nil, int32(len(t.symbols)))
	for _, s := range t.symbols {
		p = itf8.AppendEncode(p, s.value)
	}
	for _, s := range t.symbols {
		p = itf8.AppendEncode(p, int32(s.len))
	}
	return appendITF8Params(p)
}

// huffmanInt implements IntCodec for HUFFMAN over int32-valued data
// series.
type huffmanInt struct{ t *huffmanTable }

// NewHuffmanInt returns an IntCodec for the canonical Huffman code
// built from the given (value, length) symbol table.
func NewHuffmanInt(symbols []int32, lengths []uint) IntCodec {
	return huffmanInt{t: newHuffmanTable(zipHuffman(symbols, lengths))}
}

func (h huffmanInt) ID() ID                             { return Huffman }
func (h huffmanInt) Params() []byte                     { return h.t.params() }
func (h huffmanInt) WriteInt(ss *Streams, v int32) error { return h.t.write(ss, v) }
func (h huffmanInt) ReadInt(ss *Streams) (int32, error)  { return h.t.read(ss) }

// huffmanByte implements ByteCodec for HUFFMAN over byte-valued data
// series.
type huffmanByte struct{ t *huffmanTable }

// NewHuffmanByte returns a ByteCodec for the canonical Huffman code
// built from the given (value, length) symbol table.
func NewHuffmanByte(symbols []byte, lengths []uint) ByteCodec {
	vals := make([]int32, len(symbols))
	for i, b := range symbols {
		vals[i] = int32(b)
	}
	return huffmanByte{t: newHuffmanTable(zipHuffman(vals, lengths))}
}

func (h huffmanByte) ID() ID         { return Huffman }
func (h huffmanByte) Params() []byte { return h.t.params() }

func (h huffmanByte) WriteByte(ss *Streams, v byte) error {
	return h.t.write(ss, int32(v))
}

func (h huffmanByte) ReadByte(ss *Streams) (byte, error) {
	v, err := h.t.read(ss)
	return byte(v), err
}

func zipHuffman(symbols []int32, lengths []uint) []huffmanSymbol {
	out := make([]huffmanSymbol, len(symbols))
	for i := range symbols {
		out[i] = huffmanSymbol{value: symbols[i], len: lengths[i]}
	}
	return out
}
