// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import (
	"io"

	"github.com/biogo/cram/itf8"
)

// errReader wraps an io.Reader, recording the first error it sees so
// that a sequence of reads can be issued without individual error
// checks, mirroring the sticky-error reader pattern used throughout the
// CRAM stream decoders.
type errReader struct {
	r   io.Reader
	err error
}

// readFull reads exactly len(b) bytes into b, recording any error on er
// for later inspection. Once er is in an error state, it is a no-op.
func (er *errReader) readFull(b []byte) {
	if er.err != nil {
		return
	}
	_, er.err = io.ReadFull(er.r, b)
}

// readFullErr is readFull for callers that want the error immediately
// rather than deferred.
func (er *errReader) readFullErr(b []byte) error {
	er.readFull(b)
	return er.err
}

// itf8 decodes the next ITF-8 value from er. It returns 0 once er is in
// an error state.
func (er *errReader) itf8() int32 {
	if er.err != nil {
		return 0
	}
	var tmp [5]byte
	if _, err := io.ReadFull(er.r, tmp[:1]); err != nil {
		er.err = err
		return 0
	}
	n := widthFromLeadByte(tmp[0])
	if n > 1 {
		if _, err := io.ReadFull(er.r, tmp[1:n]); err != nil {
			er.err = err
			return 0
		}
	}
	v, _, ok := itf8.Decode(tmp[:n])
	if !ok {
		er.err = io.ErrUnexpectedEOF
		return 0
	}
	return v
}

// widthFromLeadByte returns the total ITF-8 encoding width given its
// leading byte, by counting that byte's leading set bits (capped at 5),
// the same rule itf8.Decode applies internally.
func widthFromLeadByte(b byte) int {
	n := 1
	for n <= 4 && b&(0x80>>uint(n-1)) != 0 {
		n++
	}
	return n
}
