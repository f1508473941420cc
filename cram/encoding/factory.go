// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import (
	"github.com/biogo/cram/errs"
	"github.com/biogo/cram/itf8"
)

// DecodeIntCodec reconstructs an IntCodec from its wire id and the
// inner parameter bytes written by Params (i.e. with the ITF8 length
// prefix already stripped by DecodeParams).
func DecodeIntCodec(id ID, params []byte) (IntCodec, error) {
	switch id {
	case Null:
		v, _, ok := itf8.Decode(params)
		if !ok {
			v = 0
		}
		return NewNullInt(v), nil
	case External:
		contentID, _, ok := itf8.Decode(params)
		if !ok {
			return nil, &errs.MalformedError{Context: "EXTERNAL int params"}
		}
		return NewExternalInt(contentID), nil
	case Beta:
		offset, k, ok := itf8.Decode(params)
		if !ok {
			return nil, &errs.MalformedError{Context: "BETA params"}
		}
		nbits, _, ok := itf8.Decode(params[k:])
		if !ok {
			return nil, &errs.MalformedError{Context: "BETA params"}
		}
		return NewBetaInt(offset, uint(nbits)), nil
	case Gamma:
		offset, _, ok := itf8.Decode(params)
		if !ok {
			return nil, &errs.MalformedError{Context: "GAMMA params"}
		}
		return NewGammaInt(offset), nil
	case Subexp:
		offset, k, ok := itf8.Decode(params)
		if !ok {
			return nil, &errs.MalformedError{Context: "SUBEXP params"}
		}
		kv, _, ok := itf8.Decode(params[k:])
		if !ok {
			return nil, &errs.MalformedError{Context: "SUBEXP params"}
		}
		return NewSubexpInt(offset, uint(kv)), nil
	case GolombRice:
		offset, k, ok := itf8.Decode(params)
		if !ok {
			return nil, &errs.MalformedError{Context: "GOLOMB_RICE params"}
		}
		log2m, _, ok := itf8.Decode(params[k:])
		if !ok {
			return nil, &errs.MalformedError{Context: "GOLOMB_RICE params"}
		}
		return NewGolombRiceInt(offset, uint(log2m)), nil
	case Golomb:
		offset, k, ok := itf8.Decode(params)
		if !ok {
			return nil, &errs.MalformedError{Context: "GOLOMB params"}
		}
		m, _, ok := itf8.Decode(params[k:])
		if !ok {
			return nil, &errs.MalformedError{Context: "GOLOMB params"}
		}
		return NewGolombInt(offset, uint32(m)), nil
	case Huffman:
		syms, lens, err := decodeHuffmanParams(params)
		if err != nil {
			return nil, err
		}
		return NewHuffmanInt(syms, lens), nil
	default:
		return nil, &errs.UnsupportedEncodingError{ID: byte(id)}
	}
}

// DecodeByteCodec reconstructs a ByteCodec from its wire id and inner
// parameter bytes.
func DecodeByteCodec(id ID, params []byte) (ByteCodec, error) {
	switch id {
	case Null:
		var v byte
		if len(params) > 0 {
			v = params[0]
		}
		return NewNullByte(v), nil
	case External:
		contentID, _, ok := itf8.Decode(params)
		if !ok {
			return nil, &errs.MalformedError{Context: "EXTERNAL byte params"}
		}
		return NewExternalByte(contentID), nil
	case Huffman:
		syms, lens, err := decodeHuffmanParams(params)
		if err != nil {
			return nil, err
		}
		b := make([]byte, len(syms))
		for i, s := range syms {
			b[i] = byte(s)
		}
		return NewHuffmanByte(b, lens), nil
	default:
		return nil, &errs.UnsupportedEncodingError{ID: byte(id)}
	}
}

// DecodeByteArrayCodec reconstructs a ByteArrayCodec from its wire id
// and inner parameter bytes.
func DecodeByteArrayCodec(id ID, params []byte) (ByteArrayCodec, error) {
	switch id {
	case ByteArrayStop:
		if len(params) < 1 {
			return nil, &errs.MalformedError{Context: "BYTE_ARRAY_STOP params"}
		}
		stop := params[0]
		contentID, _, ok := itf8.Decode(params[1:])
		if !ok {
			return nil, &errs.MalformedError{Context: "BYTE_ARRAY_STOP params"}
		}
		return NewByteArrayStop(stop, contentID), nil
	case ByteArrayLen:
		if len(params) < 1 {
			return nil, &errs.MalformedError{Context: "BYTE_ARRAY_LEN params"}
		}
		lenID := ID(params[0])
		lenParams, rest, err := DecodeParams(params[1:])
		if err != nil {
			return nil, err
		}
		lengthCodec, err := DecodeIntCodec(lenID, lenParams)
		if err != nil {
			return nil, err
		}
		dataParams, _, err := DecodeParams(rest)
		if err != nil {
			return nil, err
		}
		dataContentID, _, ok := itf8.Decode(dataParams)
		if !ok {
			return nil, &errs.MalformedError{Context: "BYTE_ARRAY_LEN data params"}
		}
		return NewByteArrayLen(lengthCodec, dataContentID), nil
	default:
		return nil, &errs.UnsupportedEncodingError{ID: byte(id)}
	}
}

func decodeHuffmanParams(params []byte) ([]int32, []uint, error) {
	n, k, ok := itf8.Decode(params)
	if !ok {
		return nil, nil, &errs.MalformedError{Context: "HUFFMAN symbol count"}
	}
	params = params[k:]
	syms := make([]int32, n)
	for i := range syms {
		v, k, ok := itf8.Decode(params)
		if !ok {
			return nil, nil, &errs.MalformedError{Context: "HUFFMAN symbol"}
		}
		syms[i] = v
		params = params[k:]
	}
	lens := make([]uint, n)
	for i := range lens {
		v, k, ok := itf8.Decode(params)
		if !ok {
			return nil, nil, &errs.MalformedError{Context: "HUFFMAN length"}
		}
		lens[i] = uint(v)
		params = params[k:]
	}
	return syms, lens, nil
}
