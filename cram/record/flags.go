// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package record

// Flags is the CRAM-specific cram-flags bitfield (§4.7), distinct from
// the standard SAM bam-flags carried by a record's Flags field.
type Flags uint8

const (
	// ForcePreserveQualityScores marks a record whose quality scores
	// must be stored verbatim even if they would otherwise be dropped
	// as NULL_QUALS.
	ForcePreserveQualityScores Flags = 1 << iota
	// Detached marks a record with no mate within the same slice.
	Detached
	// HasMateDownstream marks a record whose mate appears later in the
	// slice's record array.
	HasMateDownstream
	// UnknownBases marks a record whose read bases are the
	// NULL_SEQUENCE placeholder rather than real sequence.
	UnknownBases
)

func (f Flags) String() string {
	const flags = "pdmu"
	b := make([]byte, len(flags))
	for i, c := range flags {
		if f&(1<<uint(i)) != 0 {
			b[i] = byte(c)
		} else {
			b[i] = '-'
		}
	}
	return string(b)
}

// MateFlags redundantly carries mate-unmapped and mate-reverse-strand
// at different bit positions than sam.Flags (§4.7); writers must keep
// both copies in sync.
type MateFlags uint8

const (
	MateUnmapped MateFlags = 1 << iota
	MateReverse
)
