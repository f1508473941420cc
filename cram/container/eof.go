// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package container

import (
	"bytes"
	"io"
	"os"

	"github.com/biogo/cram/errs"
)

// eofMarker is the fixed 38-byte CRAM end-of-file container: a
// container with no records and no slices whose 15-byte body holds only
// a compression header block, present so that a truncated
// stream can be distinguished from a complete one (§6 EOF container).
var eofMarker = []byte{
	0x0f, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0xff,
	0x0f, 0xe0, 0x45, 0x4f, 0x46, 0x00, 0x00, 0x00,
	0x00, 0x01, 0x00, 0x05, 0xbd, 0xd9, 0x4f, 0x00,
	0x01, 0x00, 0x06, 0x06, 0x01, 0x00, 0x01, 0x00,
	0x01, 0x00, 0xee, 0x63, 0x01, 0x4b,
}

// WriteEOF appends the CRAM EOF marker to w.
func WriteEOF(w io.Writer) error {
	_, err := w.Write(eofMarker)
	return err
}

// EOFMarkerLen is the fixed byte length of the CRAM EOF marker.
const EOFMarkerLen = len(eofMarker)

// IsEOFMarker reports whether b is exactly the CRAM EOF marker,
// letting a reader recognize end-of-stream by peeking ahead rather
// than trying to parse it as an ordinary container.
func IsEOFMarker(b []byte) bool {
	return bytes.Equal(b, eofMarker)
}

// HasEOF reports whether r ends with the CRAM EOF marker. r must
// report its total size through a Size() int64 method or a Stat
// method; otherwise HasEOF returns errs.ErrNoEnd.
func HasEOF(r io.ReaderAt) (bool, error) {
	type sizer interface{ Size() int64 }
	type stater interface{ Stat() (os.FileInfo, error) }

	var size int64
	switch v := r.(type) {
	case sizer:
		size = v.Size()
	case stater:
		fi, err := v.Stat()
		if err != nil {
			return false, err
		}
		size = fi.Size()
	default:
		return false, errs.ErrNoEnd
	}

	b := make([]byte, len(eofMarker))
	if _, err := r.ReadAt(b, size-int64(len(eofMarker))); err != nil {
		return false, err
	}
	return bytes.Equal(b, eofMarker), nil
}
