package cram

import (
	"encoding/binary"

	"github.com/biogo/cram/errs"
)

// HeaderPaddingFactor is the multiple of the encoded SAM header's own
// length that Writer reserves for header text plus padding, leaving
// half the header's length spare so that a later in-place rewrite
// (adding a @PG line, say) has room to grow without relaying out the
// rest of the stream (§6 "recommends reserving 1.5x the header size").
const HeaderPaddingFactor = 1.5

// encodeFileHeaderPayload renders a FILE_HEADER block's payload: a
// little-endian uint32 byte count followed by exactly that many bytes
// of SAM header text, then zero-padding so that text and padding
// together span len(text)*reserve bytes.
func encodeFileHeaderPayload(text []byte, reserve float64) []byte {
	padded := int(float64(len(text)) * reserve)
	if padded < len(text) {
		padded = len(text)
	}
	buf := make([]byte, 4, 4+padded)
	binary.LittleEndian.PutUint32(buf, uint32(len(text)))
	buf = append(buf, text...)
	if pad := padded - len(text); pad > 0 {
		buf = append(buf, make([]byte, pad)...)
	}
	return buf
}

// decodeFileHeaderPayload is encodeFileHeaderPayload's inverse,
// ignoring any trailing padding.
func decodeFileHeaderPayload(raw []byte) ([]byte, error) {
	if len(raw) < 4 {
		return nil, &errs.MalformedError{Context: "file header block"}
	}
	size := binary.LittleEndian.Uint32(raw[:4])
	if int(size) > len(raw)-4 {
		return nil, &errs.MalformedError{Context: "file header block size"}
	}
	return raw[4 : 4+size], nil
}
