// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slice

import (
	"github.com/biogo/cram/errs"
	"github.com/biogo/cram/header"
	"github.com/biogo/cram/record"
)

// tagGroup finds the entry of dict whose tag-id set exactly matches
// tags, returning its index and the group itself (the group's order,
// not tags' own order, is what both the writer and reader iterate, so
// the two agree without needing to carry order on the wire).
//
// Build assumes dict already contains every group its records need:
// a container factory scanning all records ahead of a slice's
// construction is expected to populate the dictionary (§9 Design
// Notes), not this package.
func tagGroup(dict header.TagIDDictionary, tags []record.Tag) (int, []header.TagID, error) {
	set := make(map[header.TagID]bool, len(tags))
	for _, t := range tags {
		set[header.TagID(t.ID)] = true
	}
	for i, group := range dict {
		if len(group) != len(set) {
			continue
		}
		ok := true
		for _, id := range group {
			if !set[id] {
				ok = false
				break
			}
		}
		if ok {
			return i, group, nil
		}
	}
	return 0, nil, &errs.MalformedError{Context: "no tag id dictionary group matches record tags"}
}

// tagValue returns the value of the tag identified by id within tags.
func tagValue(tags []record.Tag, id header.TagID) ([]byte, error) {
	for _, t := range tags {
		if header.TagID(t.ID) == id {
			return t.Value, nil
		}
	}
	return nil, &errs.MalformedError{Context: "tag id dictionary group references a tag absent from the record"}
}
