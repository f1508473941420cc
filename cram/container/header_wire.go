// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package container

import (
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/biogo/cram/errs"
	"github.com/biogo/cram/itf8"
	"github.com/biogo/cram/ltf8"
)

// containerHeader is the parsed container header of §4.9: `length(int32
// LE)`, `refSeqId(ITF8)`, `startPos(ITF8)`, `alnSpan(ITF8)`,
// `nRecords(ITF8)`, `globalRecordCounter(LTF8)`, `nBases(LTF8)`,
// `nBlocks(ITF8)`, `nLandmarks(ITF8)`, `landmarks[nLandmarks](ITF8)`,
// `crc32(int32 LE)`.
type containerHeader struct {
	length              int32
	refID               int32
	start, span         int32
	numRecords          int32
	globalRecordCounter int64
	numBases            int64
	numBlocks           int32
	landmarks           []int32
}

// encode serializes h, returning the header bytes including the
// trailing CRC32 computed over everything that precedes it.
func (h containerHeader) encode() []byte {
	var out []byte
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(h.length))
	out = append(out, lenBuf[:]...)
	out = itf8.AppendEncode(out, h.refID)
	out = itf8.AppendEncode(out, h.start)
	out = itf8.AppendEncode(out, h.span)
	out = itf8.AppendEncode(out, h.numRecords)
	out = ltf8.AppendEncode(out, h.globalRecordCounter)
	out = ltf8.AppendEncode(out, h.numBases)
	out = itf8.AppendEncode(out, h.numBlocks)
	out = itf8.AppendEncode(out, int32(len(h.landmarks)))
	for _, l := range h.landmarks {
		out = itf8.AppendEncode(out, l)
	}
	var crcBuf [4]byte
	binary.LittleEndian.PutUint32(crcBuf[:], crc32.ChecksumIEEE(out))
	return append(out, crcBuf[:]...)
}

// readContainerHeader reads and CRC32-validates a container header from
// r, mirroring the sticky-error reader pattern used by the block
// package.
func readContainerHeader(r io.Reader) (containerHeader, error) {
	var h containerHeader
	crc := crc32.NewIEEE()
	tr := io.TeeReader(r, crc)

	var lenBuf [4]byte
	if _, err := io.ReadFull(tr, lenBuf[:]); err != nil {
		if err == io.EOF {
			return h, err
		}
		return h, &errs.MalformedError{Context: "container header length", Err: err}
	}
	h.length = int32(binary.LittleEndian.Uint32(lenBuf[:]))

	er := &itfReader{r: tr}
	h.refID = er.itf8()
	h.start = er.itf8()
	h.span = er.itf8()
	h.numRecords = er.itf8()
	h.globalRecordCounter = er.ltf8()
	h.numBases = er.ltf8()
	h.numBlocks = er.itf8()
	numLandmarks := er.itf8()
	if er.err != nil {
		return h, &errs.MalformedError{Context: "container header", Err: er.err}
	}
	h.landmarks = make([]int32, numLandmarks)
	for i := range h.landmarks {
		h.landmarks[i] = er.itf8()
	}
	if er.err != nil {
		return h, &errs.MalformedError{Context: "container header landmarks", Err: er.err}
	}

	sum := crc.Sum32()
	var crcBuf [4]byte
	if _, err := io.ReadFull(r, crcBuf[:]); err != nil {
		return h, &errs.MalformedError{Context: "container header crc32", Err: err}
	}
	if binary.LittleEndian.Uint32(crcBuf[:]) != sum {
		return h, &errs.MalformedError{Context: "container header crc32 mismatch"}
	}
	return h, nil
}

// itfReader is a sticky-error reader of ITF8/LTF8 values, local to the
// container package's header framing.
type itfReader struct {
	r   io.Reader
	err error
}

func (er *itfReader) itf8() int32 {
	if er.err != nil {
		return 0
	}
	var tmp [5]byte
	if _, err := io.ReadFull(er.r, tmp[:1]); err != nil {
		er.err = err
		return 0
	}
	n := itf8Width(tmp[0])
	if n > 1 {
		if _, err := io.ReadFull(er.r, tmp[1:n]); err != nil {
			er.err = err
			return 0
		}
	}
	v, _, ok := itf8.Decode(tmp[:n])
	if !ok {
		er.err = io.ErrUnexpectedEOF
	}
	return v
}

func (er *itfReader) ltf8() int64 {
	if er.err != nil {
		return 0
	}
	var tmp [9]byte
	if _, err := io.ReadFull(er.r, tmp[:1]); err != nil {
		er.err = err
		return 0
	}
	n := ltf8Width(tmp[0])
	if n > 1 {
		if _, err := io.ReadFull(er.r, tmp[1:n]); err != nil {
			er.err = err
			return 0
		}
	}
	v, _, ok := ltf8.Decode(tmp[:n])
	if !ok {
		er.err = io.ErrUnexpectedEOF
	}
	return v
}

// itf8Width returns the total ITF-8 encoding width given its leading
// byte, by counting that byte's leading set bits among its top four
// bits (capped at 5), the same rule itf8.Decode applies internally.
func itf8Width(b byte) int {
	n := 1
	for n <= 4 && b&(0x80>>uint(n-1)) != 0 {
		n++
	}
	return n
}

// ltf8Width is itf8Width's analogue for LTF-8, whose leading byte may
// use up to eight leading set bits to encode a width of up to 9.
func ltf8Width(b byte) int {
	n := 1
	for n <= 8 && b&(0x80>>uint(n-1)) != 0 {
		n++
	}
	return n
}
