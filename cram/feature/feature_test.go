// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package feature

import (
	"bytes"
	"testing"

	"github.com/biogo/cram/sam"
	"github.com/biogo/cram/subst"
)

func TestBuildAllMatch(t *testing.T) {
	cigar := sam.Cigar{sam.NewCigarOp(sam.CigarMatch, 5)}
	ref := []byte("ACGTA")
	read := []byte("ACGTA")
	fs, err := Build(cigar, read, ref, subst.Default())
	if err != nil {
		t.Fatal(err)
	}
	if len(fs) != 0 {
		t.Errorf("expected no features for an exact match, got %v", fs)
	}
}

func TestBuildSubstitution(t *testing.T) {
	cigar := sam.Cigar{sam.NewCigarOp(sam.CigarMatch, 5)}
	ref := []byte("ACGTA")
	read := []byte("ACCTA")
	m := subst.Default()
	fs, err := Build(cigar, read, ref, m)
	if err != nil {
		t.Fatal(err)
	}
	if len(fs) != 1 {
		t.Fatalf("expected 1 feature, got %d: %v", len(fs), fs)
	}
	f := fs[0]
	if f.Code != Substitution || f.Pos != 3 {
		t.Errorf("got %+v, want Substitution at pos 3", f)
	}
	got, err := m.Decode('G', f.SubCode)
	if err != nil {
		t.Fatal(err)
	}
	if got != 'C' {
		t.Errorf("decode mismatch: got %c want C", got)
	}
}

func TestBuildSubstitutionNReadBaseRoundTrips(t *testing.T) {
	cigar := sam.Cigar{sam.NewCigarOp(sam.CigarMatch, 5)}
	ref := []byte("ACGTA")
	read := []byte("ACNTA")
	m := subst.Default()
	fs, err := Build(cigar, read, ref, m)
	if err != nil {
		t.Fatal(err)
	}
	if len(fs) != 1 || fs[0].Code != Substitution || fs[0].Pos != 3 {
		t.Fatalf("got %v, want a single Substitution at pos 3", fs)
	}

	restored, err := Restore(fs, len(read), ref, m)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(restored, read) {
		t.Errorf("Restore = %q, want %q", restored, read)
	}
}

func TestBuildInsertionDeletion(t *testing.T) {
	// 3M2I2M1D2M
	cigar := sam.Cigar{
		sam.NewCigarOp(sam.CigarMatch, 3),
		sam.NewCigarOp(sam.CigarInsertion, 2),
		sam.NewCigarOp(sam.CigarMatch, 2),
		sam.NewCigarOp(sam.CigarDeletion, 1),
		sam.NewCigarOp(sam.CigarMatch, 2),
	}
	ref := []byte("AAACCGTT")   // 3M + 2M + 1D + 2M = 8 ref bases
	read := []byte("AAAGGCCTT") // 3M + 2I + 2M + 2M = 9 read bases
	fs, err := Build(cigar, read, ref, subst.Default())
	if err != nil {
		t.Fatal(err)
	}
	if len(fs) != 2 {
		t.Fatalf("expected 2 features, got %d: %v", len(fs), fs)
	}
	if fs[0].Code != Insertion || fs[0].Pos != 4 || !bytes.Equal(fs[0].Seq, []byte("GG")) {
		t.Errorf("insertion feature wrong: %+v", fs[0])
	}
	if fs[1].Code != Deletion || fs[1].Pos != 8 || fs[1].Len != 1 {
		t.Errorf("deletion feature wrong: %+v", fs[1])
	}
}

func TestBuildSoftClip(t *testing.T) {
	cigar := sam.Cigar{
		sam.NewCigarOp(sam.CigarSoftClipped, 2),
		sam.NewCigarOp(sam.CigarMatch, 3),
	}
	ref := []byte("AAA")
	read := []byte("TTAAA")
	fs, err := Build(cigar, read, ref, subst.Default())
	if err != nil {
		t.Fatal(err)
	}
	if len(fs) != 1 || fs[0].Code != SoftClip || fs[0].Pos != 1 || !bytes.Equal(fs[0].Seq, []byte("TT")) {
		t.Fatalf("soft clip feature wrong: %+v", fs)
	}
}

func TestToCigarRoundTrip(t *testing.T) {
	cigar := sam.Cigar{
		sam.NewCigarOp(sam.CigarMatch, 3),
		sam.NewCigarOp(sam.CigarInsertion, 2),
		sam.NewCigarOp(sam.CigarMatch, 2),
		sam.NewCigarOp(sam.CigarDeletion, 1),
		sam.NewCigarOp(sam.CigarMatch, 2),
	}
	ref := []byte("AAACCGTT")
	read := []byte("AAAGGCCTT")
	fs, err := Build(cigar, read, ref, subst.Default())
	if err != nil {
		t.Fatal(err)
	}
	got, err := ToCigar(fs, len(read))
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != cigar.String() {
		t.Errorf("got %v want %v", got, cigar)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	cigar := sam.Cigar{
		sam.NewCigarOp(sam.CigarMatch, 3),
		sam.NewCigarOp(sam.CigarInsertion, 2),
		sam.NewCigarOp(sam.CigarMatch, 2),
		sam.NewCigarOp(sam.CigarDeletion, 1),
		sam.NewCigarOp(sam.CigarMatch, 2),
	}
	ref := []byte("AAACCGTT")
	read := []byte("AAAGGCCTT")
	m := subst.Default()
	fs, err := Build(cigar, read, ref, m)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Restore(fs, len(read), ref, m)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, read) {
		t.Errorf("got %s want %s", got, read)
	}
}

func TestRestoreSubstitution(t *testing.T) {
	cigar := sam.Cigar{sam.NewCigarOp(sam.CigarMatch, 5)}
	ref := []byte("ACGTA")
	read := []byte("ACCTA")
	m := subst.Default()
	fs, err := Build(cigar, read, ref, m)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Restore(fs, len(read), ref, m)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, read) {
		t.Errorf("got %s want %s", got, read)
	}
}

func TestBuildOutOfRangeFails(t *testing.T) {
	cigar := sam.Cigar{sam.NewCigarOp(sam.CigarMatch, 10)}
	ref := []byte("AAA")
	read := []byte("AAA")
	if _, err := Build(cigar, read, ref, subst.Default()); err == nil {
		t.Error("expected an error for a cigar exceeding the reference slab")
	}
}

func TestCodeString(t *testing.T) {
	if Substitution.String() != "Substitution" {
		t.Errorf("got %s want Substitution", Substitution.String())
	}
	if Code(99).String() != "Unknown" {
		t.Errorf("got %s want Unknown", Code(99).String())
	}
}
