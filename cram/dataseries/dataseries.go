// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataseries enumerates the CRAM logical data series (§3 Data
// Series) and their canonical two-letter abbreviations and default
// external block content ids.
package dataseries

// Series identifies one of the ~30 logical fields extracted from every
// record for separate encoding.
type Series byte

// The data series, in the order they appear in the compression
// header's encoding map when written with the default encoding
// strategy.
const (
	BF Series = iota // bam-flags
	CF                // cram-flags
	RI                // reference id (multi-ref slices only)
	RL                // read length
	AP                // alignment position (delta or absolute, §4.1)
	RG                // read group id
	RN                // read name
	MF                // mate flags (record's own copy, §4.7)
	NS                // mate/next segment reference id
	NP                // mate/next segment alignment position
	TS                // template size
	NF                // records to next fragment (detached mate distance)
	TL                // tag id list index (§4.5 tag dictionary)
	FN                // number of read features
	FC                // read feature code
	FP                // read feature position (in-read delta)
	DL                // deletion length
	BB                // bulk bases (unused on write, §4.5)
	QQ                // bulk quality scores (unused on write, §4.5)
	BS                // base substitution code
	IN                // insertion bases
	RS                // reference skip length
	PD                // padding length
	HC                // hard clip length
	SC                // soft clip bases
	MQ                // mapping quality
	BA                // read base
	QS                // quality score
	TC                // tag count (pre-CRAM-3 legacy field, carried for round trip)
	TN                // tag name/type (pre-CRAM-3 legacy field, carried for round trip)
	numSeries
)

// ItemType classifies the Go-level shape a series' values take,
// independent of which Encoding variant parameterizes it: an encoding
// id/params pair alone cannot say whether it was constructed for
// int32, single-byte, or byte-array values, since e.g. EXTERNAL's
// wire parameters are identical in all three cases.
type ItemType byte

const (
	// IntItem series carry an int32 per value (counts, lengths,
	// positions, flags, ids).
	IntItem ItemType = iota
	// ByteItem series carry a single byte per value (feature codes,
	// substitution codes, mapping quality).
	ByteItem
	// ByteArrayItem series carry a variable-length byte slice per
	// value (names, inserted/soft-clipped/bulk bases, quality runs).
	ByteArrayItem
)

// info holds the static metadata for a Series.
type info struct {
	abbrev    string
	contentID int32
	item      ItemType
}

// table is indexed by Series and gives each series its two-letter
// abbreviation, default external block content id, and item type.
// Content ids start at 1 because 0 is reserved for the Core block's
// implicit content id (§3 Block).
var table = [numSeries]info{
	BF: {"BF", 1, IntItem},
	CF: {"CF", 2, IntItem},
	RI: {"RI", 3, IntItem},
	RL: {"RL", 4, IntItem},
	AP: {"AP", 5, IntItem},
	RG: {"RG", 6, IntItem},
	RN: {"RN", 7, ByteArrayItem},
	MF: {"MF", 8, IntItem},
	NS: {"NS", 9, IntItem},
	NP: {"NP", 10, IntItem},
	TS: {"TS", 11, IntItem},
	NF: {"NF", 12, IntItem},
	TL: {"TL", 13, IntItem},
	FN: {"FN", 14, IntItem},
	FC: {"FC", 15, ByteItem},
	FP: {"FP", 16, IntItem},
	DL: {"DL", 17, IntItem},
	BB: {"BB", 18, ByteArrayItem},
	QQ: {"QQ", 19, ByteArrayItem},
	BS: {"BS", 20, ByteItem},
	IN: {"IN", 21, ByteArrayItem},
	RS: {"RS", 22, IntItem},
	PD: {"PD", 23, IntItem},
	HC: {"HC", 24, IntItem},
	SC: {"SC", 25, ByteArrayItem},
	MQ: {"MQ", 26, ByteItem},
	BA: {"BA", 27, ByteArrayItem},
	QS: {"QS", 28, ByteArrayItem},
	TC: {"TC", 29, IntItem},
	TN: {"TN", 30, ByteArrayItem},
}

// ItemType reports the Go-level value shape s's encoding map entry
// must be reconstructed as.
func (s Series) ItemType() ItemType {
	if s >= numSeries {
		return IntItem
	}
	return table[s].item
}

// Abbrev returns s's two-letter abbreviation, e.g. "BF" for BF.
func (s Series) Abbrev() string {
	if s >= numSeries {
		return "??"
	}
	return table[s].abbrev
}

// ContentID returns s's default external block content id, used when a
// compression header routes s to an EXTERNAL encoding without an
// explicit override.
func (s Series) ContentID() int32 {
	if s >= numSeries {
		return 0
	}
	return table[s].contentID
}

func (s Series) String() string { return s.Abbrev() }

// SeriesForContentID inverts ContentID: it returns the Series whose
// default external block content id is id, and whether one exists. A
// BYTE_ARRAY_LEN length sub-stream's content id (contentID+1000, see
// header.lengthContentIDOffset) is never returned by this function,
// since it names an auxiliary stream rather than a series itself.
func SeriesForContentID(id int32) (Series, bool) {
	for i := Series(0); i < numSeries; i++ {
		if table[i].contentID == id {
			return i, true
		}
	}
	return 0, false
}

// byAbbrev inverts table for ParseAbbrev.
var byAbbrev = func() map[string]Series {
	m := make(map[string]Series, numSeries)
	for i := Series(0); i < numSeries; i++ {
		m[table[i].abbrev] = i
	}
	return m
}()

// ParseAbbrev returns the Series named by its two-letter abbreviation,
// and whether it was recognised. A compression header's encoding map
// entry referencing an abbreviation not in this table is a malformed
// stream, not an unknown-but-ignorable series: the CRAM 3.x series set
// is closed.
func ParseAbbrev(s string) (Series, bool) {
	v, ok := byAbbrev[s]
	return v, ok
}

// All returns every Series in canonical order.
func All() []Series {
	out := make([]Series, numSeries)
	for i := range out {
		out[i] = Series(i)
	}
	return out
}
