// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cram implements a reader and writer for the CRAM 3.x
// sequencing-data format: a reference-based, block-structured codec
// for aligned read data (§1 Overview).
package cram

import (
	"io"

	"github.com/biogo/cram/errs"
)

// magic is the fixed four-byte CRAM file signature (§6 File magic).
var magic = [4]byte{'C', 'R', 'A', 'M'}

// idLen is the width of a FileDefinition's arbitrary file id field.
const idLen = 20

// FileDefinition is the 26-byte preamble every CRAM stream opens with:
// the magic number, the format's major and minor version, and an
// arbitrary, zero-padded identifier for the data the stream carries
// (§6 File magic).
type FileDefinition struct {
	Major, Minor byte
	ID           [idLen]byte
}

// NewFileDefinition returns a FileDefinition for the given version
// with id copied into the zero-padded ID field, truncating id if it is
// longer than 20 bytes.
func NewFileDefinition(major, minor byte, id []byte) FileDefinition {
	var d FileDefinition
	d.Major, d.Minor = major, minor
	copy(d.ID[:], id)
	return d
}

// writeTo writes d's wire encoding to w.
func (d FileDefinition) writeTo(w io.Writer) error {
	var buf [4 + 2 + idLen]byte
	copy(buf[:4], magic[:])
	buf[4], buf[5] = d.Major, d.Minor
	copy(buf[6:], d.ID[:])
	_, err := w.Write(buf[:])
	return err
}

// readFileDefinition reads and validates a FileDefinition from r.
func readFileDefinition(r io.Reader) (FileDefinition, error) {
	var buf [4 + 2 + idLen]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return FileDefinition{}, err
	}
	if buf[0] != magic[0] || buf[1] != magic[1] || buf[2] != magic[2] || buf[3] != magic[3] {
		return FileDefinition{}, &errs.MalformedError{Context: "file definition magic"}
	}
	var d FileDefinition
	d.Major, d.Minor = buf[4], buf[5]
	copy(d.ID[:], buf[6:])
	return d, nil
}
