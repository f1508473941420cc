// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compressor

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
)

// gzipCompressor implements the GZIP block compression method using
// klauspost/compress, which every HTS-adjacent repository in the
// reference pack imports in preference to the standard library's
// compress/gzip for its configurable, faster deflate implementation.
type gzipCompressor struct {
	level int
}

func newGzip(level int) *gzipCompressor {
	if level > gzip.BestCompression {
		level = gzip.BestCompression
	}
	if level < gzip.HuffmanOnly {
		level = gzip.DefaultCompression
	}
	return &gzipCompressor{level: level}
}

func (c *gzipCompressor) Method() Method { return Gzip }

func (c *gzipCompressor) Compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, c.level)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *gzipCompressor) Decompress(src []byte, uncompressedSize int) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	dst := make([]byte, 0, uncompressedSize)
	buf := bytes.NewBuffer(dst)
	if _, err := io.Copy(buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
