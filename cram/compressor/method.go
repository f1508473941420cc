// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compressor implements the block compression methods used by
// the CRAM block codec (§4.2) and the external compressor cache that
// reuses compressor instances across blocks (§4.3).
package compressor

// Method is a CRAM block compression method identifier (§3 Block).
type Method byte

// Compression methods, in their CRAM wire-format order.
const (
	Raw Method = iota
	Gzip
	Bzip2
	Lzma
	Rans
)

// String returns the canonical name of m.
func (m Method) String() string {
	switch m {
	case Raw:
		return "raw"
	case Gzip:
		return "gzip"
	case Bzip2:
		return "bzip2"
	case Lzma:
		return "lzma"
	case Rans:
		return "rans"
	default:
		return "unknown"
	}
}

// Compressor compresses and decompresses byte slices for one block
// compression method. Implementations must be safe for reuse across
// many blocks; the Order-1 rANS implementation additionally allocates
// its frequency tables once and reuses them (§4.3).
type Compressor interface {
	Method() Method
	// Compress returns the compressed form of src.
	Compress(src []byte) ([]byte, error)
	// Decompress returns the decompressed form of src, which is known
	// to expand to exactly uncompressedSize bytes.
	Decompress(src []byte, uncompressedSize int) ([]byte, error)
}
