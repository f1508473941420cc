// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package header

import (
	"encoding/json"
	"sort"

	"github.com/biogo/cram/dataseries"
	"github.com/biogo/cram/encoding"
	"github.com/biogo/cram/errs"
	"github.com/biogo/cram/itf8"
)

// EncodingParams is an encoding's wire identity: its id byte plus its
// already-ITF8-length-prefixed parameter bytes, as produced by any
// encoding.IntCodec/ByteCodec/ByteArrayCodec's Params method.
type EncodingParams struct {
	ID     encoding.ID
	Params []byte
}

// EncodingMap is the compression header's DataSeries -> EncodingParams
// table (§3 Compression Header, §4.5).
type EncodingMap struct {
	entries map[dataseries.Series]EncodingParams
}

// NewEncodingMap returns an empty EncodingMap.
func NewEncodingMap() *EncodingMap {
	return &EncodingMap{entries: make(map[dataseries.Series]EncodingParams)}
}

// Set records the encoding used for series.
func (m *EncodingMap) Set(series dataseries.Series, id encoding.ID, params []byte) {
	m.entries[series] = EncodingParams{ID: id, Params: params}
}

// Get returns the encoding recorded for series, and whether one was
// set. A compression header must tolerate an absent series, modeling
// it as NULL (§4.4 "Tie-breaking and edge cases").
func (m *EncodingMap) Get(series dataseries.Series) (EncodingParams, bool) {
	e, ok := m.entries[series]
	return e, ok
}

// IntCodec reconstructs the IntCodec recorded for series, defaulting
// to NULL(0) if none was set.
func (m *EncodingMap) IntCodec(series dataseries.Series) (encoding.IntCodec, error) {
	e, ok := m.Get(series)
	if !ok {
		return encoding.NewNullInt(0), nil
	}
	inner, _, err := encoding.DecodeParams(e.Params)
	if err != nil {
		return nil, err
	}
	return encoding.DecodeIntCodec(e.ID, inner)
}

// ByteCodec reconstructs the ByteCodec recorded for series, defaulting
// to NULL(0) if none was set.
func (m *EncodingMap) ByteCodec(series dataseries.Series) (encoding.ByteCodec, error) {
	e, ok := m.Get(series)
	if !ok {
		return encoding.NewNullByte(0), nil
	}
	inner, _, err := encoding.DecodeParams(e.Params)
	if err != nil {
		return nil, err
	}
	return encoding.DecodeByteCodec(e.ID, inner)
}

// ByteArrayCodec reconstructs the ByteArrayCodec recorded for series.
// Unlike IntCodec/ByteCodec there is no NULL byte-array encoding in
// §4.4, so an absent series is an error.
func (m *EncodingMap) ByteArrayCodec(series dataseries.Series) (encoding.ByteArrayCodec, error) {
	e, ok := m.Get(series)
	if !ok {
		return nil, &errs.MalformedError{Context: "no encoding set for series " + series.String()}
	}
	inner, _, err := encoding.DecodeParams(e.Params)
	if err != nil {
		return nil, err
	}
	return encoding.DecodeByteArrayCodec(e.ID, inner)
}

// ByteArrayCodec reconstructs the ByteArrayCodec recorded for tagID,
// defaulting to a tab-terminated EXTERNAL block keyed by 1000+tagID if
// none was set explicitly — a fallback content id unambiguously
// outside the data series' own content id range (§4.5).
func (m *TagEncodingMap) ByteArrayCodec(tagID int32) (encoding.ByteArrayCodec, error) {
	e, ok := m.Get(tagID)
	if !ok {
		return encoding.NewByteArrayStop('\t', 1000+tagID), nil
	}
	inner, _, err := encoding.DecodeParams(e.Params)
	if err != nil {
		return nil, err
	}
	return encoding.DecodeByteArrayCodec(e.ID, inner)
}

// Encode serializes m as: ITF8 count, then for each entry two ASCII
// key bytes, an encoding-id byte, and its ITF8-prefixed parameter
// bytes (§4.5). Entries are written in Series order for determinism.
func (m *EncodingMap) Encode() []byte {
	keys := make([]dataseries.Series, 0, len(m.entries))
	for s := range m.entries {
		keys = append(keys, s)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := itf8.AppendEncode(nil, int32(len(keys)))
	for _, s := range keys {
		e := m.entries[s]
		out = append(out, s.Abbrev()[0], s.Abbrev()[1], byte(e.ID))
		out = append(out, e.Params...)
	}
	return out
}

// DecodeEncodingMap parses the buffer produced by EncodingMap.Encode
// and returns the remaining bytes.
func DecodeEncodingMap(b []byte) (*EncodingMap, []byte, error) {
	n, k, ok := itf8.Decode(b)
	if !ok {
		return nil, nil, &errs.MalformedError{Context: "encoding map count"}
	}
	b = b[k:]
	m := NewEncodingMap()
	for i := int32(0); i < n; i++ {
		if len(b) < 3 {
			return nil, nil, &errs.MalformedError{Context: "encoding map entry"}
		}
		abbrev := string(b[:2])
		id := encoding.ID(b[2])
		b = b[3:]
		series, ok := dataseries.ParseAbbrev(abbrev)
		if !ok {
			return nil, nil, &errs.MalformedError{Context: "encoding map series " + abbrev}
		}
		params, rest, err := encoding.DecodeParams(b)
		if err != nil {
			return nil, nil, err
		}
		full := itf8.AppendEncode(nil, int32(len(params)))
		full = append(full, params...)
		m.entries[series] = EncodingParams{ID: id, Params: full}
		b = rest
	}
	return m, b, nil
}

// jsonEncodingParams is EncodingParams' JSON rendering: the encoding id
// byte and its ITF8-prefixed parameter bytes, base64-encoded by
// encoding/json's own []byte handling.
type jsonEncodingParams struct {
	ID     encoding.ID
	Params []byte
}

// MarshalJSON renders m keyed by each series' two-letter abbreviation,
// for use as a human-editable custom compression map (§4.10
// CustomCompressionMapPath) rather than the wire format DecodeEncodingMap
// expects.
func (m *EncodingMap) MarshalJSON() ([]byte, error) {
	out := make(map[string]jsonEncodingParams, len(m.entries))
	for s, e := range m.entries {
		out[s.Abbrev()] = jsonEncodingParams{ID: e.ID, Params: e.Params}
	}
	return json.Marshal(out)
}

// UnmarshalJSON is MarshalJSON's inverse.
func (m *EncodingMap) UnmarshalJSON(b []byte) error {
	var in map[string]jsonEncodingParams
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	m.entries = make(map[dataseries.Series]EncodingParams, len(in))
	for abbrev, e := range in {
		series, ok := dataseries.ParseAbbrev(abbrev)
		if !ok {
			return &errs.MalformedError{Context: "encoding map series " + abbrev}
		}
		m.entries[series] = EncodingParams{ID: e.ID, Params: e.Params}
	}
	return nil
}

// TagEncodingMap is the compression header's tag-id -> EncodingParams
// table (§3 Compression Header).
type TagEncodingMap struct {
	entries map[int32]EncodingParams
}

// NewTagEncodingMap returns an empty TagEncodingMap.
func NewTagEncodingMap() *TagEncodingMap {
	return &TagEncodingMap{entries: make(map[int32]EncodingParams)}
}

// Set records the encoding used for the tag identified by tagID (see
// TagID.Int).
func (m *TagEncodingMap) Set(tagID int32, id encoding.ID, params []byte) {
	m.entries[tagID] = EncodingParams{ID: id, Params: params}
}

// Get returns the encoding recorded for tagID, and whether one was
// set.
func (m *TagEncodingMap) Get(tagID int32) (EncodingParams, bool) {
	e, ok := m.entries[tagID]
	return e, ok
}

// Encode serializes m as: ITF8 count, then for each entry an ITF8
// tag-id, an encoding-id byte, and its ITF8-prefixed parameters
// (§4.5).
func (m *TagEncodingMap) Encode() []byte {
	keys := make([]int32, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := itf8.AppendEncode(nil, int32(len(keys)))
	for _, k := range keys {
		e := m.entries[k]
		out = itf8.AppendEncode(out, k)
		out = append(out, byte(e.ID))
		out = append(out, e.Params...)
	}
	return out
}

// DecodeTagEncodingMap parses the buffer produced by
// TagEncodingMap.Encode and returns the remaining bytes.
func DecodeTagEncodingMap(b []byte) (*TagEncodingMap, []byte, error) {
	n, k, ok := itf8.Decode(b)
	if !ok {
		return nil, nil, &errs.MalformedError{Context: "tag encoding map count"}
	}
	b = b[k:]
	m := NewTagEncodingMap()
	for i := int32(0); i < n; i++ {
		tagID, k, ok := itf8.Decode(b)
		if !ok {
			return nil, nil, &errs.MalformedError{Context: "tag encoding map tag id"}
		}
		b = b[k:]
		if len(b) < 1 {
			return nil, nil, &errs.MalformedError{Context: "tag encoding map entry"}
		}
		id := encoding.ID(b[0])
		b = b[1:]
		params, rest, err := encoding.DecodeParams(b)
		if err != nil {
			return nil, nil, err
		}
		full := itf8.AppendEncode(nil, int32(len(params)))
		full = append(full, params...)
		m.entries[tagID] = EncodingParams{ID: id, Params: full}
		b = rest
	}
	return m, b, nil
}
