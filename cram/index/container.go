// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package index

import "github.com/biogo/cram/container"

// CRAIEntriesForContainer derives every CRAI entry c's slices carry,
// in landmark order (§5 Ordering guarantees: the writer emits entries
// in landmark order, leaving the consumer to sort them into CRAI order
// via SortCRAIEntries).
func CRAIEntriesForContainer(c *container.Container) ([]CRAIEntry, error) {
	var out []CRAIEntry
	for _, s := range c.Slices {
		entries, err := CRAIEntriesForSlice(s)
		if err != nil {
			return nil, err
		}
		out = append(out, entries...)
	}
	return out, nil
}

// BAIEntriesForContainer is CRAIEntriesForContainer's BAI analogue.
func BAIEntriesForContainer(c *container.Container) ([]BAIEntry, error) {
	var out []BAIEntry
	for _, s := range c.Slices {
		entries, err := BAIEntriesForSlice(s)
		if err != nil {
			return nil, err
		}
		out = append(out, entries...)
	}
	return out, nil
}
