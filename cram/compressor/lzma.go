// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compressor

import (
	"bytes"
	"io"

	"github.com/ulikunitz/xz/lzma"
)

// lzmaCompressor implements the LZMA block compression method using
// this library for both directions.
type lzmaCompressor struct{}

func (lzmaCompressor) Method() Method { return Lzma }

func (lzmaCompressor) Compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := lzma.NewWriter(&buf)
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

func (lzmaCompressor) Decompress(src []byte, uncompressedSize int) ([]byte, error) {
	r, err := lzma.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}
	dst := make([]byte, 0, uncompressedSize)
	buf := bytes.NewBuffer(dst)
	if _, err := io.Copy(buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
