// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package container

import (
	"bytes"
	"io"

	"github.com/biogo/cram/block"
	"github.com/biogo/cram/compressor"
)

// WriteFileHeader writes the special CRAM header container that opens
// every stream: a container header naming no reference context and no
// slices, framing the single RAW FILE_HEADER block fb (§4.9 "The SAM
// file header is carried in a special header container").
func WriteFileHeader(w io.Writer, fb *block.Block) (int64, error) {
	var body bytes.Buffer
	if _, err := fb.WriteTo(&body); err != nil {
		return 0, err
	}
	hdr := containerHeader{
		length:    int32(body.Len()),
		refID:     -1,
		numBlocks: 1,
	}
	n, err := w.Write(hdr.encode())
	total := int64(n)
	if err != nil {
		return total, err
	}
	n, err = w.Write(body.Bytes())
	total += int64(n)
	return total, err
}

// ReadFileHeader reads the header container from r and returns the
// FILE_HEADER block it carries.
func ReadFileHeader(r io.Reader) (*block.Block, error) {
	hdr, err := readContainerHeader(r)
	if err != nil {
		return nil, err
	}
	body := io.LimitReader(r, int64(hdr.length))
	var fb block.Block
	if err := fb.ReadFrom(body, compressor.NewCache()); err != nil {
		return nil, err
	}
	return &fb, nil
}
