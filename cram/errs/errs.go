// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errs collects the error taxonomy shared by the cram codec
// packages. Keeping it separate from the cram package itself lets leaf
// packages (block, encoding, slice, container, ...) report typed errors
// without importing the root package and creating an import cycle.
package errs

import "fmt"

// Stringency governs how a Reader or Slice responds to a recoverable
// anomaly such as a reference MD5 mismatch.
type Stringency int

// Stringency levels, from most to least strict.
const (
	// Strict causes recoverable anomalies to be returned as errors.
	Strict Stringency = iota
	// Lenient causes recoverable anomalies to be logged to the
	// configured warnings writer and otherwise ignored.
	Lenient
	// Silent causes recoverable anomalies to be ignored without
	// logging.
	Silent
)

// Sentinel errors for conditions that are not better represented by one
// of the typed errors below.
var (
	// ErrNoEnd is returned when a stream cannot seek to a CRAM EOF block.
	ErrNoEnd = fmt.Errorf("cram: cannot determine offset from end")

	// ErrNotCoordinateSorted is returned when an operation that requires
	// coordinate-sorted input (the multi-reference alignment-span pass,
	// §4.8) is invoked on records that are not sorted.
	ErrNotCoordinateSorted = fmt.Errorf("cram: operation requires coordinate-sorted records")

	// ErrMixedReferenceContext is returned when a container is
	// constructed from slices whose reference contexts cannot be
	// reconciled (§3 Reference-context rules).
	ErrMixedReferenceContext = fmt.Errorf("cram: slices have incompatible reference contexts")

	// ErrUnindexed is returned when a CRAI/BAI entry is requested from a
	// Slice whose indexing parameters have not yet been back-filled by a
	// Container (§4.9, §9 Open Question).
	ErrUnindexed = fmt.Errorf("cram: slice indexing parameters are uninitialized")

	// ErrMultiRefIndexEntry is returned when a CRAI entry is constructed
	// directly from a MultiRef reference context instead of going
	// through the per-reference alignment-span expansion (§4.11).
	ErrMultiRefIndexEntry = fmt.Errorf("cram: cannot construct a CRAI entry for the multiple-reference context directly")

	// ErrFeatureOutOfRange is returned when a read feature's position
	// falls outside [1, read length] (§4.6).
	ErrFeatureOutOfRange = fmt.Errorf("cram: read feature position out of range")
)

// MalformedError reports structural corruption in the wire format: a bad
// magic number, an invalid ITF8/LTF8 stream, an unexpected block content
// type, or a CRC mismatch. It is fatal for the containing container; the
// stream may resume at the next container boundary if an index is
// available (§7).
type MalformedError struct {
	Context string
	Err     error
}

func (e *MalformedError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cram: malformed %s", e.Context)
	}
	return fmt.Sprintf("cram: malformed %s: %v", e.Context, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// UnsupportedEncodingError is returned when a compression header
// declares an encoding that is not implemented for the named data
// series.
type UnsupportedEncodingError struct {
	Series string
	ID     byte
}

func (e *UnsupportedEncodingError) Error() string {
	return fmt.Sprintf("cram: unsupported encoding %d for data series %s", e.ID, e.Series)
}

// UnsupportedVersionError is returned for a CRAM major/minor version the
// codec does not understand.
type UnsupportedVersionError struct {
	Major, Minor byte
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("cram: unsupported CRAM version %d.%d", e.Major, e.Minor)
}

// InvalidStateError reports a programmer error: an operation invoked on
// an object in a state that makes it meaningless, such as requesting
// multi-reference alignment spans for non-coordinate-sorted input, or
// constructing a container from slices with mixed reference contexts.
type InvalidStateError struct {
	Context string
	Err     error
}

func (e *InvalidStateError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cram: invalid state: %s", e.Context)
	}
	return fmt.Sprintf("cram: invalid state: %s: %v", e.Context, e.Err)
}

func (e *InvalidStateError) Unwrap() error { return e.Err }

// ReferenceMismatchError reports an MD5 mismatch between a slice's
// recorded reference checksum and the checksum of the reference slab
// supplied by the caller. Its severity is governed by a Stringency.
type ReferenceMismatchError struct {
	RefID          int
	Start, Span    int
	Want, Got      [16]byte
}

func (e *ReferenceMismatchError) Error() string {
	return fmt.Sprintf("cram: reference MD5 mismatch for ref %d [%d,%d): want %x got %x",
		e.RefID, e.Start, e.Start+e.Span, e.Want, e.Got)
}

// RecordValidationError reports a per-record anomaly such as a
// placed-but-unmapped record or a feature position out of range. These
// are always Lenient by default (§7): logged, not fatal.
type RecordValidationError struct {
	Index   int
	Context string
}

func (e *RecordValidationError) Error() string {
	return fmt.Sprintf("cram: record %d: %s", e.Index, e.Context)
}
