// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package block implements the CRAM block codec (§3 Block, §4.2): a
// typed, self-framing, CRC-guarded byte container that is the unit of
// on-wire I/O within a slice.
package block

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
	"io"

	"github.com/biogo/cram/compressor"
	"github.com/biogo/cram/errs"
	"github.com/biogo/cram/itf8"
)

var (
	errRawSizeMismatch = errors.New("block: compressed size != uncompressed size for raw method")
	errCRCMismatch     = errors.New("block: crc32 mismatch")
)

// ContentType identifies the logical role of a Block's payload (§3).
type ContentType byte

// Content types, in their CRAM wire-format order.
const (
	FileHeader ContentType = iota
	CompressionHeader
	MappedSliceHeader
	_ // reserved
	External
	Core
)

func (t ContentType) String() string {
	switch t {
	case FileHeader:
		return "file header"
	case CompressionHeader:
		return "compression header"
	case MappedSliceHeader:
		return "slice header"
	case External:
		return "external"
	case Core:
		return "core"
	default:
		return "unknown"
	}
}

// Block is a typed, optionally compressed byte buffer (§3). A Block
// constructed for writing holds its uncompressed payload until Compress
// is called; a Block populated by ReadFrom holds its decompressed
// payload, ready for Raw.
type Block struct {
	Method          compressor.Method
	Type            ContentType
	ContentID       int32
	UncompressedLen int32

	raw        []byte
	compressed []byte
}

// NewExternal returns a Block of type External carrying raw for the
// given content id, ready to be compressed with Compress.
func NewExternal(contentID int32, raw []byte) *Block {
	return &Block{Type: External, ContentID: contentID, raw: raw}
}

// NewCore returns a Block of type Core carrying raw, the slice's single
// per-slice bitstream.
func NewCore(raw []byte) *Block {
	return &Block{Type: Core, raw: raw}
}

// NewFileHeader returns a Block of type FileHeader carrying the given
// raw SAM header payload. FileHeader blocks always use the Raw method
// (§4.9).
func NewFileHeader(raw []byte) *Block {
	return &Block{Type: FileHeader, raw: raw}
}

// NewSliceHeader returns a Block of type MappedSliceHeader carrying a
// slice's header payload (§4.8).
func NewSliceHeader(raw []byte) *Block {
	return &Block{Type: MappedSliceHeader, raw: raw}
}

// NewCompressionHeader returns a Block of type CompressionHeader
// carrying a container's encoded compression header (§4.5).
func NewCompressionHeader(raw []byte) *Block {
	return &Block{Type: CompressionHeader, raw: raw}
}

// Raw returns the block's uncompressed payload.
func (b *Block) Raw() []byte { return b.raw }

// Compress compresses the block's raw payload with the named method
// using cache, preparing it to be written by WriteTo. param is the
// compression level for Gzip/Bzip2, the order (0 or 1) for Rans, and is
// ignored for Raw and Lzma.
func (b *Block) Compress(cache *compressor.Cache, method compressor.Method, param int) error {
	b.UncompressedLen = int32(len(b.raw))
	comp, err := cache.Get(method, param)
	if err != nil {
		return err
	}
	out, err := comp.Compress(b.raw)
	if err != nil {
		return err
	}
	if method == compressor.Rans {
		// The rANS order is not otherwise recoverable from the block
		// header alone, so it is carried as a one-byte prefix inside
		// the compressed payload.
		out = append([]byte{byte(param)}, out...)
	}
	b.Method = method
	b.compressed = out
	return nil
}

// WriteTo serializes b to w as: method(1) | content type(1) |
// content id(ITF8) | compressed size(ITF8) | uncompressed size(ITF8) |
// compressed bytes | CRC32(LE, 4), per §4.2.
func (b *Block) WriteTo(w io.Writer) (int64, error) {
	compressed := b.compressed
	if b.Method == compressor.Raw {
		compressed = b.raw
		b.UncompressedLen = int32(len(b.raw))
	}
	if b.Method == compressor.Raw && int32(len(compressed)) != b.UncompressedLen {
		return 0, &errs.MalformedError{Context: "raw block", Err: errRawSizeMismatch}
	}

	var hdr []byte
	hdr = append(hdr, byte(b.Method), byte(b.Type))
	hdr = itf8.AppendEncode(hdr, b.ContentID)
	hdr = itf8.AppendEncode(hdr, int32(len(compressed)))
	hdr = itf8.AppendEncode(hdr, b.UncompressedLen)

	crc := crc32.NewIEEE()
	crc.Write(hdr)
	crc.Write(compressed)

	n, err := w.Write(hdr)
	total := int64(n)
	if err != nil {
		return total, err
	}
	n, err = w.Write(compressed)
	total += int64(n)
	if err != nil {
		return total, err
	}
	var tail [4]byte
	binary.LittleEndian.PutUint32(tail[:], crc.Sum32())
	n, err = w.Write(tail[:])
	total += int64(n)
	return total, err
}

// ReadFrom populates b with the next block read from r, decompressing
// its payload via cache and verifying its trailing CRC32 (§4.2).
func (b *Block) ReadFrom(r io.Reader, cache *compressor.Cache) error {
	crc := crc32.NewIEEE()
	er := &errReader{r: io.TeeReader(r, crc)}

	var hdr [2]byte
	er.readFull(hdr[:])
	b.Method = compressor.Method(hdr[0])
	b.Type = ContentType(hdr[1])
	b.ContentID = er.itf8()
	compressedSize := er.itf8()
	b.UncompressedLen = er.itf8()
	if er.err != nil {
		return er.err
	}
	if b.Method == compressor.Raw && compressedSize != b.UncompressedLen {
		return &errs.MalformedError{Context: "raw block", Err: errRawSizeMismatch}
	}

	compressed := make([]byte, compressedSize)
	if err := er.readFullErr(compressed); err != nil {
		return err
	}
	sum := crc.Sum32()

	var tail [4]byte
	if _, err := io.ReadFull(r, tail[:]); err != nil {
		return err
	}
	wantCRC := binary.LittleEndian.Uint32(tail[:])
	if wantCRC != sum {
		return &errs.MalformedError{Context: "block", Err: errCRCMismatch}
	}

	if b.Method == compressor.Raw {
		b.raw = compressed
		return nil
	}

	param := 0
	payload := compressed
	if b.Method == compressor.Rans {
		if len(payload) < 1 {
			return &errs.MalformedError{Context: "rans block", Err: errCRCMismatch}
		}
		param = int(payload[0])
		payload = payload[1:]
	}
	comp, err := cache.Get(b.Method, param)
	if err != nil {
		return err
	}
	raw, err := comp.Decompress(payload, int(b.UncompressedLen))
	if err != nil {
		return err
	}
	b.raw = raw
	return nil
}
