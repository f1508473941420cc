// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package header

import (
	"sort"

	"github.com/cespare/xxhash/v2"
)

// TagDictionaryBuilder accumulates the distinct tag-id sets seen across
// a stream of records into a TagIDDictionary, resolving each record's
// set to its dictionary index in O(1) via an xxhash digest of the
// set's sorted byte form rather than a linear scan of previously seen
// groups (§3 Compression Header "TD" key; §4.5).
type TagDictionaryBuilder struct {
	dict  TagIDDictionary
	index map[uint64][]int
}

// NewTagDictionaryBuilder returns an empty builder.
func NewTagDictionaryBuilder() *TagDictionaryBuilder {
	return &TagDictionaryBuilder{index: make(map[uint64][]int)}
}

// Add resolves ids (a record's tag-id set, in any order) to its
// dictionary group index, adding a new group the first time a
// particular set is seen. The group is stored in ids' sorted order, so
// that writers and readers iterating it later agree independent of the
// order tags happened to appear on any one record.
//
// Candidate groups are narrowed to O(1) via an xxhash digest of the
// sorted set; the (cheap, rare) possibility of a hash collision is
// resolved by an explicit equality check against each candidate before
// accepting it, so a collision can only cost an extra comparison, never
// a wrong group.
func (b *TagDictionaryBuilder) Add(ids []TagID) int {
	sorted := append([]TagID(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Int() < sorted[j].Int()
	})

	key := make([]byte, 0, 3*len(sorted))
	for _, id := range sorted {
		key = append(key, id[:]...)
	}
	h := xxhash.Sum64(key)

	for _, i := range b.index[h] {
		if sameGroup(b.dict[i], sorted) {
			return i
		}
	}
	i := len(b.dict)
	b.dict = append(b.dict, sorted)
	b.index[h] = append(b.index[h], i)
	return i
}

func sameGroup(a, c []TagID) bool {
	if len(a) != len(c) {
		return false
	}
	for i := range a {
		if a[i] != c[i] {
			return false
		}
	}
	return true
}

// Dictionary returns the TagIDDictionary accumulated so far.
func (b *TagDictionaryBuilder) Dictionary() TagIDDictionary {
	return b.dict
}
