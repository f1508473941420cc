// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slice

import (
	"github.com/biogo/cram/block"
	"github.com/biogo/cram/errs"
	"github.com/biogo/cram/itf8"
	"github.com/biogo/cram/ltf8"
	"github.com/biogo/cram/refctx"
)

// sliceHeader is the parsed payload of a slice's MappedSliceHeader
// block (§4.8): the slice's alignment context, record count, global
// record counter, the content ids of its external blocks, and its
// reference-span MD5.
type sliceHeader struct {
	ref           refctx.Reference
	start, span   int
	numRecords    int
	recordCounter int64
	externalIDs   []int32
	md5           [16]byte
}

// encodeSliceHeader serializes h as: ref id(ITF8) | start(ITF8) |
// span(ITF8) | num records(ITF8) | record counter(LTF8) | num external
// blocks(ITF8) | external content ids(ITF8 each) | md5(16).
func encodeSliceHeader(alignment refctx.Alignment, numRecords int, recordCounter int64, externalIDs []int32, md5 [16]byte) []byte {
	var out []byte
	out = itf8.AppendEncode(out, int32(alignment.Ref.WireID()))
	out = itf8.AppendEncode(out, int32(alignment.Start))
	out = itf8.AppendEncode(out, int32(alignment.Span))
	out = itf8.AppendEncode(out, int32(numRecords))
	out = ltf8.AppendEncode(out, recordCounter)
	out = itf8.AppendEncode(out, int32(len(externalIDs)))
	for _, id := range externalIDs {
		out = itf8.AppendEncode(out, id)
	}
	out = append(out, md5[:]...)
	return out
}

// ExternalIDs returns the content ids of the external blocks named by a
// slice's header block, letting a container locate exactly that many
// external blocks after the slice's core block without otherwise
// parsing the slice (§4.9 Container read path).
func ExternalIDs(headerBlock *block.Block) ([]int32, error) {
	h, err := decodeSliceHeader(headerBlock.Raw())
	if err != nil {
		return nil, err
	}
	return h.externalIDs, nil
}

func decodeSliceHeader(b []byte) (sliceHeader, error) {
	var h sliceHeader
	refID, k, ok := itf8.Decode(b)
	if !ok {
		return h, &errs.MalformedError{Context: "slice header ref id"}
	}
	b = b[k:]
	start, k, ok := itf8.Decode(b)
	if !ok {
		return h, &errs.MalformedError{Context: "slice header start"}
	}
	b = b[k:]
	span, k, ok := itf8.Decode(b)
	if !ok {
		return h, &errs.MalformedError{Context: "slice header span"}
	}
	b = b[k:]
	numRecords, k, ok := itf8.Decode(b)
	if !ok {
		return h, &errs.MalformedError{Context: "slice header record count"}
	}
	b = b[k:]
	counter, k, ok := ltf8.Decode(b)
	if !ok {
		return h, &errs.MalformedError{Context: "slice header record counter"}
	}
	b = b[k:]
	numExternal, k, ok := itf8.Decode(b)
	if !ok {
		return h, &errs.MalformedError{Context: "slice header external block count"}
	}
	b = b[k:]
	ids := make([]int32, numExternal)
	for i := range ids {
		id, k, ok := itf8.Decode(b)
		if !ok {
			return h, &errs.MalformedError{Context: "slice header external content id"}
		}
		ids[i] = id
		b = b[k:]
	}
	if len(b) < 16 {
		return h, &errs.MalformedError{Context: "slice header md5"}
	}
	var md5 [16]byte
	copy(md5[:], b[:16])

	switch {
	case refID == int32(refctx.MultipleReferenceID):
		h.ref = refctx.MultiRef()
	case refID == int32(refctx.UnmappedUnplacedID):
		h.ref = refctx.UnmappedUnplaced()
	default:
		h.ref = refctx.SingleRef(int(refID))
	}
	h.start = int(start)
	h.span = int(span)
	h.numRecords = int(numRecords)
	h.recordCounter = counter
	h.externalIDs = ids
	h.md5 = md5
	return h, nil
}
