// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package factory implements the CRAM container factory (§4.10): the
// write-side partitioning of a record stream into slices and
// containers under a configurable CRAMEncodingStrategy.
package factory

import (
	"encoding/json"
	"io"
	"os"

	"github.com/biogo/cram/header"
)

// CRAMEncodingStrategy configures ContainerFactory's write
// partitioning (§4.10, §6). Its zero value is not ready to use; call
// DefaultCRAMEncodingStrategy for the documented defaults.
type CRAMEncodingStrategy struct {
	// GzipCompressionLevel is passed to the Gzip compressor cache entry
	// used for every block that header.BlockCompressionFor does not
	// route to rANS (the CORE and COMPRESSION_HEADER blocks, and any
	// external block whose data series isn't named for rANS coding),
	// in [0,10] (0 meaning compress.NoCompression's closest analogue,
	// 10 meaning best compression by this strategy's own convention).
	GzipCompressionLevel int `json:"gzipCompressionLevel"`
	// RecordsPerSlice bounds how many records accumulate in one slice
	// before it is closed. Default 10000.
	RecordsPerSlice int `json:"recordsPerSlice"`
	// SlicesPerContainer bounds how many slices accumulate in one
	// container before it is closed. Default 1.
	SlicesPerContainer int `json:"slicesPerContainer"`
	// PreserveReadNames controls the preservation map's RN flag.
	PreserveReadNames bool `json:"preserveReadNames"`
	// EmbedReference is persisted with the strategy but not read by
	// ContainerFactory: containers never carry their own copy of the
	// reference bases, and reading relies on the caller's reference
	// source.
	EmbedReference bool `json:"embedReference"`
	// EmbedBases is persisted with the strategy but not read by
	// ContainerFactory: BA is written only for unmapped records, and
	// mapped records carry their read features instead.
	EmbedBases bool `json:"embedBases"`
	// MinRecordsPerSingleRefSlice is the strategy knob for coalescing
	// small single-reference slices into a MultiRef slice instead,
	// per §4.10.
	MinRecordsPerSingleRefSlice int `json:"minRecordsPerSingleRefSlice"`
	// CustomCompressionMapPath, if set, names a JSON file holding a
	// serialized EncodingMap override loaded by LoadCustomEncodingMap.
	CustomCompressionMapPath string `json:"customCompressionMapPath,omitempty"`
}

// DefaultCRAMEncodingStrategy returns the strategy used when a caller
// supplies none: gzip level 5, 10000 records per slice, one slice per
// container, read names preserved, no embedded reference or forced
// base embedding, and no single-ref slice coalescing.
func DefaultCRAMEncodingStrategy() CRAMEncodingStrategy {
	return CRAMEncodingStrategy{
		GzipCompressionLevel:        5,
		RecordsPerSlice:             10000,
		SlicesPerContainer:          1,
		PreserveReadNames:           true,
		MinRecordsPerSingleRefSlice: 0,
	}
}

// MarshalJSON and UnmarshalJSON are satisfied by the struct tags above
// via encoding/json directly; LoadStrategy and SaveStrategy are the
// file-level convenience wrappers used by callers that persist a
// strategy between runs.

// LoadStrategy reads a JSON-encoded CRAMEncodingStrategy from path.
func LoadStrategy(path string) (CRAMEncodingStrategy, error) {
	f, err := os.Open(path)
	if err != nil {
		return CRAMEncodingStrategy{}, err
	}
	defer f.Close()
	var s CRAMEncodingStrategy
	if err := json.NewDecoder(f).Decode(&s); err != nil {
		return CRAMEncodingStrategy{}, err
	}
	return s, nil
}

// SaveStrategy writes s as JSON to path.
func SaveStrategy(path string, s CRAMEncodingStrategy) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// LoadCustomEncodingMap loads the EncodingMap override named by
// strategy.CustomCompressionMapPath, if set. It returns (nil, nil) when
// the strategy names no override.
func LoadCustomEncodingMap(strategy CRAMEncodingStrategy) (*header.EncodingMap, error) {
	if strategy.CustomCompressionMapPath == "" {
		return nil, nil
	}
	f, err := os.Open(strategy.CustomCompressionMapPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	em := header.NewEncodingMap()
	if err := json.Unmarshal(raw, em); err != nil {
		return nil, err
	}
	return em, nil
}
