// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package internal provides shared code for the BAI binning scheme
// used by cram/index, adapted from the BGZF-indexed BAI/tabix binning
// of package bam/internal to CRAM's plain byte-offset chunks.
package internal

const (
	indexWordBits = 29
	nextBinShift  = 3
)

// IsValidIndexPos reports whether i is in the valid range for a
// BAI-indexable coordinate (0-based).
func IsValidIndexPos(i int) bool { return -1 <= i && i <= (1<<indexWordBits-1)-1 }

const (
	level0 = uint32(((1 << (iota * nextBinShift)) - 1) / 7)
	level1
	level2
	level3
	level4
	level5
)

const (
	level0Shift = indexWordBits - (iota * nextBinShift)
	level1Shift
	level2Shift
	level3Shift
	level4Shift
	level5Shift
)

// StatsDummyBin is the bin number reserved for a reference's summary
// statistics pseudo-bin in a BAI index.
const StatsDummyBin = 0x924a

// UnmappedBin is the bin number BinFor would assign an interval with no
// alignment at all (reg2bin(-1, 0) in the classic SAM binning scheme).
const UnmappedBin = 4680

// BinFor returns the bin number for the interval [beg,end)
// (zero-based, half-open).
func BinFor(beg, end int) uint32 {
	end--
	switch {
	case beg>>level5Shift == end>>level5Shift:
		return level5 + uint32(beg>>level5Shift)
	case beg>>level4Shift == end>>level4Shift:
		return level4 + uint32(beg>>level4Shift)
	case beg>>level3Shift == end>>level3Shift:
		return level3 + uint32(beg>>level3Shift)
	case beg>>level2Shift == end>>level2Shift:
		return level2 + uint32(beg>>level2Shift)
	case beg>>level1Shift == end>>level1Shift:
		return level1 + uint32(beg>>level1Shift)
	}
	return level0
}

// OverlappingBinsFor returns every bin number that could hold a record
// overlapping the interval [beg,end) (zero-based, half-open).
func OverlappingBinsFor(beg, end int) []uint32 {
	end--
	list := []uint32{level0}
	for _, r := range []struct {
		offset, shift uint32
	}{
		{level1, level1Shift},
		{level2, level2Shift},
		{level3, level3Shift},
		{level4, level4Shift},
		{level5, level5Shift},
	} {
		for k := r.offset + uint32(beg>>r.shift); k <= r.offset+uint32(end>>r.shift); k++ {
			list = append(list, k)
		}
	}
	return list
}
