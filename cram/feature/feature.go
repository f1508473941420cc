// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package feature implements the CRAM read-feature edit script (§4.6):
// building it from an aligned record and a reference slab, and
// reconstructing a CIGAR and read bases from it.
package feature

import (
	"github.com/biogo/cram/errs"
	"github.com/biogo/cram/sam"
	"github.com/biogo/cram/subst"
)

// Code identifies a read feature's operator (§3 Read Feature). Each
// Feature carries a 1-based in-read Pos and the operator-specific
// fields below.
type Code byte

// The closed set of read feature operators.
const (
	Substitution Code = iota
	Insertion
	Deletion
	SoftClip
	HardClip
	Padding
	ReadBase
	BaseQualityScore
	InsertBase
	RefSkip
	Bases
	Scores
)

func (c Code) String() string {
	switch c {
	case Substitution:
		return "Substitution"
	case Insertion:
		return "Insertion"
	case Deletion:
		return "Deletion"
	case SoftClip:
		return "SoftClip"
	case HardClip:
		return "HardClip"
	case Padding:
		return "Padding"
	case ReadBase:
		return "ReadBase"
	case BaseQualityScore:
		return "BaseQualityScore"
	case InsertBase:
		return "InsertBase"
	case RefSkip:
		return "RefSkip"
	case Bases:
		return "Bases"
	case Scores:
		return "Scores"
	default:
		return "Unknown"
	}
}

// Feature is one entry of a record's read-feature edit script. Which
// fields are meaningful depends on Code:
//
//	Substitution       Pos, SubCode
//	Insertion, Bases   Pos, Seq
//	SoftClip           Pos, Seq
//	Deletion, RefSkip  Pos, Len
//	HardClip, Padding  Pos, Len
//	ReadBase           Pos, Base, Qual
//	InsertBase         Pos, Base
//	BaseQualityScore   Pos, Qual
//	Scores             Pos, Quals
type Feature struct {
	Code    Code
	Pos     int // 1-based position within the read
	SubCode byte
	Seq     []byte
	Len     int
	Base    byte
	Qual    byte
	Quals   []byte
}

// Build walks cigar against refSlab (the reference bases spanning the
// record's alignment, refSlab[0] corresponding to alignmentStart) and
// readBases to produce the read-feature edit script of §4.6.
// Substitution features are emitted only where a Match/Mismatch
// operator's read base differs from the reference; matching bases are
// implicit and carry no feature.
func Build(cigar sam.Cigar, readBases []byte, refSlab []byte, matrix *subst.Matrix) ([]Feature, error) {
	var out []Feature
	readPos := 1 // 1-based
	refPos := 0  // 0-based index into refSlab
	for _, op := range cigar {
		n := op.Len()
		switch op.Type() {
		case sam.CigarMatch, sam.CigarEqual, sam.CigarMismatch:
			for i := 0; i < n; i++ {
				if readPos-1 >= len(readBases) || refPos >= len(refSlab) {
					return nil, &errs.MalformedError{Context: "cigar exceeds read or reference length"}
				}
				rb := readBases[readPos-1]
				fb := refSlab[refPos]
				if rb != fb {
					// An 'N' read base against a non-'N' reference base
					// is a substitution like any other: the matrix
					// ranks 'N' among each reference base's four
					// alternatives (subst.Default), so it round-trips
					// through Restore instead of silently copying fb.
					out = append(out, Feature{Code: Substitution, Pos: readPos, SubCode: matrix.Encode(fb, rb)})
				}
				readPos++
				refPos++
			}
		case sam.CigarInsertion:
			out = append(out, Feature{Code: Insertion, Pos: readPos, Seq: slice(readBases, readPos-1, n)})
			readPos += n
		case sam.CigarDeletion:
			out = append(out, Feature{Code: Deletion, Pos: readPos, Len: n})
			refPos += n
		case sam.CigarSkipped:
			out = append(out, Feature{Code: RefSkip, Pos: readPos, Len: n})
			refPos += n
		case sam.CigarSoftClipped:
			out = append(out, Feature{Code: SoftClip, Pos: readPos, Seq: slice(readBases, readPos-1, n)})
			readPos += n
		case sam.CigarHardClipped:
			out = append(out, Feature{Code: HardClip, Pos: readPos, Len: n})
		case sam.CigarPadded:
			out = append(out, Feature{Code: Padding, Pos: readPos, Len: n})
		default:
			return nil, &errs.MalformedError{Context: "unsupported cigar operator"}
		}
	}
	return out, nil
}

// ToCigar reconstructs a CIGAR from a read-feature edit script and the
// record's read length, per §4.6: positions not covered by a feature
// are implicit matches, and adjacent features of the same consuming
// kind do not merge operators across a Match run.
func ToCigar(features []Feature, readLength int) (sam.Cigar, error) {
	var cigar sam.Cigar
	pos := 1
	appendOp := func(t sam.CigarOpType, n int) {
		if n <= 0 {
			return
		}
		cigar = append(cigar, sam.NewCigarOp(t, n))
	}
	for _, f := range features {
		if f.Pos < pos {
			return nil, &errs.MalformedError{Context: "read feature out of order"}
		}
		if f.Pos > pos {
			appendOp(sam.CigarMatch, f.Pos-pos)
			pos = f.Pos
		}
		switch f.Code {
		case Substitution:
			appendOp(sam.CigarMatch, 1)
			pos++
		case Insertion, Bases:
			appendOp(sam.CigarInsertion, len(f.Seq))
			pos += len(f.Seq)
		case SoftClip:
			appendOp(sam.CigarSoftClipped, len(f.Seq))
			pos += len(f.Seq)
		case Deletion:
			appendOp(sam.CigarDeletion, f.Len)
		case RefSkip:
			appendOp(sam.CigarSkipped, f.Len)
		case HardClip:
			appendOp(sam.CigarHardClipped, f.Len)
		case Padding:
			appendOp(sam.CigarPadded, f.Len)
		case InsertBase:
			appendOp(sam.CigarInsertion, 1)
			pos++
		case ReadBase:
			appendOp(sam.CigarInsertion, 1)
			pos++
		case BaseQualityScore, Scores:
			// quality-only features consume no read or reference bases
		default:
			return nil, &errs.MalformedError{Context: "unsupported read feature code"}
		}
	}
	if pos > readLength+1 {
		return nil, &errs.MalformedError{Context: "read feature position exceeds read length"}
	}
	if pos <= readLength {
		appendOp(sam.CigarMatch, readLength-pos+1)
	}
	return cigar, nil
}

// Restore reconstructs the read bases for a record given its reference
// slab, read length, and feature list: positions without a
// substitution or inserted-base feature copy the reference directly,
// and Substitution/Insertion/InsertBase/Bases features supply the
// diverging bases (§4.6).
func Restore(features []Feature, readLength int, refSlab []byte, matrix *subst.Matrix) ([]byte, error) {
	out := make([]byte, 0, readLength)
	refPos := 0
	pos := 1
	copyRef := func(upto int) error {
		for ; pos < upto; pos++ {
			if refPos >= len(refSlab) {
				return &errs.MalformedError{Context: "read feature exceeds reference slab"}
			}
			out = append(out, refSlab[refPos])
			refPos++
		}
		return nil
	}
	for _, f := range features {
		if f.Pos < pos {
			return nil, &errs.MalformedError{Context: "read feature out of order"}
		}
		if err := copyRef(f.Pos); err != nil {
			return nil, err
		}
		switch f.Code {
		case Substitution:
			if refPos >= len(refSlab) {
				return nil, &errs.MalformedError{Context: "substitution exceeds reference slab"}
			}
			rb, err := matrix.Decode(refSlab[refPos], f.SubCode)
			if err != nil {
				return nil, err
			}
			out = append(out, rb)
			refPos++
			pos++
		case Insertion, Bases, SoftClip:
			out = append(out, f.Seq...)
			pos += len(f.Seq)
		case InsertBase, ReadBase:
			out = append(out, f.Base)
			pos++
		case Deletion, RefSkip:
			refPos += f.Len
		case HardClip, Padding, BaseQualityScore, Scores:
			// consume neither read nor reference bases
		default:
			return nil, &errs.MalformedError{Context: "unsupported read feature code"}
		}
	}
	if err := copyRef(readLength + 1); err != nil {
		return nil, err
	}
	if len(out) != readLength {
		return nil, &errs.MalformedError{Context: "restored read length mismatch"}
	}
	return out, nil
}

func slice(b []byte, from, n int) []byte {
	if from+n > len(b) {
		n = len(b) - from
	}
	out := make([]byte, n)
	copy(out, b[from:from+n])
	return out
}
