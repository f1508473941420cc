// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package refsource defines the reference-source interface the codec
// core consumes but never implements (§6 External Interfaces).
package refsource

// ReferenceSource supplies reference bases and precomputed MD5
// checksums for alignment spans. Implementations are provided by the
// caller — typically backed by an indexed FASTA or an in-memory
// reference cache — and are never part of the codec core itself.
type ReferenceSource interface {
	// GetReferenceBases returns the full base sequence for seqID.
	GetReferenceBases(seqID int) ([]byte, error)
	// GetReferenceMD5 returns the MD5 checksum of the bases in
	// [start, start+span) for seqID.
	GetReferenceMD5(seqID, start, span int) ([16]byte, error)
}
