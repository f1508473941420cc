// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compressor

// rawCompressor implements the identity transform for the RAW method
// (§4.2: RAW content is copied verbatim and requires compressed_size ==
// uncompressed_size).
type rawCompressor struct{}

func (rawCompressor) Method() Method { return Raw }

func (rawCompressor) Compress(src []byte) ([]byte, error) {
	return src, nil
}

func (rawCompressor) Decompress(src []byte, uncompressedSize int) ([]byte, error) {
	if len(src) != uncompressedSize {
		return nil, errRawSizeMismatch
	}
	return src, nil
}
