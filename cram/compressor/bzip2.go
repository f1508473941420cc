// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compressor

import (
	"bytes"
	"io"

	"github.com/dsnet/compress/bzip2"
)

// bzip2Compressor implements the BZIP2 block compression method. The
// standard library's compress/bzip2 only provides a Reader; dsnet/compress
// supplies the Writer the write path needs, so blocks encoded with this
// method can round-trip rather than merely being read.
type bzip2Compressor struct {
	level int
}

func newBzip2(level int) *bzip2Compressor {
	if level < bzip2.BestSpeed || level > bzip2.BestCompression {
		level = 6
	}
	return &bzip2Compressor{level: level}
}

func (c *bzip2Compressor) Method() Method { return Bzip2 }

func (c *bzip2Compressor) Compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := bzip2.NewWriterLevel(&buf, c.level)
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

func (c *bzip2Compressor) Decompress(src []byte, uncompressedSize int) ([]byte, error) {
	r, err := bzip2.NewReader(bytes.NewReader(src), &bzip2.ReaderConfig{})
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
