// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package container implements the CRAM container (§3 Container, §4.9):
// a compression header plus an ordered sequence of slices sharing a
// consistent reference context, framed by a CRC-guarded header carrying
// the aggregate alignment context and the byte offsets ("landmarks") of
// each slice within the container body.
package container

import (
	"bytes"
	"io"

	"github.com/biogo/cram/block"
	"github.com/biogo/cram/compressor"
	"github.com/biogo/cram/errs"
	"github.com/biogo/cram/header"
	"github.com/biogo/cram/refctx"
	"github.com/biogo/cram/slice"
)

// Container is one CRAM container: the compression header shared by all
// its slices, the slices themselves, and the framing needed to locate
// them again on a subsequent read.
type Container struct {
	Context             refctx.Alignment
	CompressionHeader   *header.CompressionHeader
	Slices              []*slice.Slice
	NumRecords          int
	NumBases            int64
	GlobalRecordCounter int64
	Landmarks           []int32

	// ContainerByteOffset is the absolute byte offset of this
	// container within its stream. It is zero until SetByteOffset is
	// called, mirroring the back-filled Indexing pattern of the slice
	// package (§9 Design Notes).
	ContainerByteOffset int64

	compressionHeaderBlock *block.Block
	body                   []byte // compression header block + every slice's blocks, in wire order
}

// aggregateAlignment derives a container's Alignment from the
// Reference-context rules of §3: InferContainer over its slices'
// reference contexts, then, for a SingleRef result, the bounding
// [min start, max end] over the slices' own alignments.
func aggregateAlignment(slices []*slice.Slice) (refctx.Alignment, error) {
	refs := make([]refctx.Reference, len(slices))
	for i, s := range slices {
		refs[i] = s.Context.Ref
	}
	ref, err := refctx.InferContainer(refs)
	if err != nil {
		return refctx.Alignment{}, err
	}
	if ref.Kind() != refctx.KindSingleRef {
		return refctx.NewAlignment(ref, refctx.NoAlignmentStart, refctx.NoAlignmentSpan), nil
	}
	start, end := 0, 0
	for i, s := range slices {
		if i == 0 || s.Context.Start < start {
			start = s.Context.Start
		}
		if e := s.Context.End(); i == 0 || e > end {
			end = e
		}
	}
	return refctx.NewAlignment(ref, start, end-start), nil
}

// Build assembles slices and ch into a Container, back-filling each
// slice's Indexing (landmark index, offset within the container, byte
// size) as it lays out the container body. globalRecordCounter is the
// sequential-index of the first record in the first slice. cache and
// gzipLevel compress the container's own COMPRESSION_HEADER block
// (§4.5); slices arrive with their own blocks already compressed by
// slice.Build.
func Build(slices []*slice.Slice, ch *header.CompressionHeader, globalRecordCounter int64, cache *compressor.Cache, gzipLevel int) (*Container, error) {
	if len(slices) == 0 {
		return nil, &errs.InvalidStateError{Context: "container build requires at least one slice"}
	}
	alignment, err := aggregateAlignment(slices)
	if err != nil {
		return nil, err
	}

	var numRecords int
	var numBases int64
	for _, s := range slices {
		numRecords += len(s.Records)
		for _, r := range s.Records {
			numBases += int64(r.ReadLength)
		}
	}

	chBlock := block.NewCompressionHeader(ch.Encode())
	if err := chBlock.Compress(cache, compressor.Gzip, gzipLevel); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := chBlock.WriteTo(&buf); err != nil {
		return nil, err
	}
	sliceRegionStart := buf.Len()

	landmarks := make([]int32, len(slices))
	for i, s := range slices {
		landmarks[i] = int32(buf.Len() - sliceRegionStart)
		for _, b := range s.Blocks() {
			if _, err := b.WriteTo(&buf); err != nil {
				return nil, err
			}
		}
	}
	sliceRegionLen := int32(buf.Len() - sliceRegionStart)

	for i, s := range slices {
		size := sliceRegionLen - landmarks[i]
		if i+1 < len(slices) {
			size = landmarks[i+1] - landmarks[i]
		}
		s.SetIndexing(slice.Indexing{
			LandmarkIndex: i,
			SliceOffset:   int64(landmarks[i]),
			Size:          int64(size),
		})
	}

	return &Container{
		Context:                alignment,
		CompressionHeader:      ch,
		Slices:                 slices,
		NumRecords:             numRecords,
		NumBases:               numBases,
		GlobalRecordCounter:    globalRecordCounter,
		Landmarks:              landmarks,
		compressionHeaderBlock: chBlock,
		body:                   buf.Bytes(),
	}, nil
}

// SetByteOffset records offset as c's absolute position in its stream
// and back-fills every slice's Indexing.ContainerOffset to match.
func (c *Container) SetByteOffset(offset int64) {
	c.ContainerByteOffset = offset
	for _, s := range c.Slices {
		idx, err := s.Indexing()
		if err != nil {
			continue
		}
		idx.ContainerOffset = offset
		s.SetIndexing(idx)
	}
}

// WriteTo serializes c as its container header followed by its
// buffered body (the compression header block and every slice's
// blocks), per §4.9.
func (c *Container) WriteTo(w io.Writer) (int64, error) {
	hdr := containerHeader{
		length:              int32(len(c.body)),
		refID:               int32(c.Context.Ref.WireID()),
		start:               int32(c.Context.Start),
		span:                int32(c.Context.Span),
		numRecords:          int32(c.NumRecords),
		globalRecordCounter: c.GlobalRecordCounter,
		numBases:            c.NumBases,
		numBlocks:           int32(1 + c.countBlocks()),
		landmarks:           c.Landmarks,
	}
	n, err := w.Write(hdr.encode())
	total := int64(n)
	if err != nil {
		return total, err
	}
	n, err = w.Write(c.body)
	total += int64(n)
	return total, err
}

func (c *Container) countBlocks() int {
	n := 0
	for _, s := range c.Slices {
		n += len(s.Blocks())
	}
	return n
}

// ReadFrom reads one container from r: its header, its compression
// header block, and each slice named by the header's landmarks.
// cache supplies the compressors used to expand compressed blocks.
func ReadFrom(r io.Reader, cache *compressor.Cache) (*Container, error) {
	hdr, err := readContainerHeader(r)
	if err != nil {
		return nil, err
	}
	body := io.LimitReader(r, int64(hdr.length))

	var chBlock block.Block
	if err := chBlock.ReadFrom(body, cache); err != nil {
		return nil, err
	}
	ch, err := header.Decode(chBlock.Raw())
	if err != nil {
		return nil, err
	}

	slices := make([]*slice.Slice, len(hdr.landmarks))
	for i := range hdr.landmarks {
		var headerBlock block.Block
		if err := headerBlock.ReadFrom(body, cache); err != nil {
			return nil, err
		}
		sh, err := slice.ExternalIDs(&headerBlock)
		if err != nil {
			return nil, err
		}

		var coreBlock block.Block
		if err := coreBlock.ReadFrom(body, cache); err != nil {
			return nil, err
		}
		external := make(map[int32]*block.Block, len(sh))
		for range sh {
			var eb block.Block
			if err := eb.ReadFrom(body, cache); err != nil {
				return nil, err
			}
			external[eb.ContentID] = &eb
		}

		s, err := slice.Parse(&headerBlock, &coreBlock, external, ch)
		if err != nil {
			return nil, err
		}
		s.SetIndexing(slice.Indexing{
			LandmarkIndex:   i,
			ContainerOffset: 0,
			SliceOffset:     int64(hdr.landmarks[i]),
		})
		slices[i] = s
	}

	alignment, err := aggregateAlignment(slices)
	if err != nil {
		return nil, err
	}

	return &Container{
		Context:                alignment,
		CompressionHeader:      ch,
		Slices:                 slices,
		NumRecords:             int(hdr.numRecords),
		NumBases:               hdr.numBases,
		GlobalRecordCounter:    hdr.globalRecordCounter,
		Landmarks:              hdr.landmarks,
		compressionHeaderBlock: &chBlock,
	}, nil
}
