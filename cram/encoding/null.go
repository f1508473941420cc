// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import "github.com/biogo/cram/itf8"

// nullInt implements IntCodec for NULL: it emits and consumes nothing,
// always producing a fixed value (§4.4).
type nullInt struct{ fixed int32 }

// NewNullInt returns an IntCodec that always decodes to fixed and
// ignores anything written to it.
func NewNullInt(fixed int32) IntCodec { return nullInt{fixed: fixed} }

func (n nullInt) ID() ID                                { return Null }
func (n nullInt) Params() []byte                        { return appendITF8Params(itf8.AppendEncode(nil, n.fixed)) }
func (n nullInt) ReadInt(ss *Streams) (int32, error)     { return n.fixed, nil }
func (n nullInt) WriteInt(ss *Streams, v int32) error    { return nil }

type nullByte struct{ fixed byte }

// NewNullByte returns a ByteCodec that always decodes to fixed and
// ignores anything written to it.
func NewNullByte(fixed byte) ByteCodec { return nullByte{fixed: fixed} }

func (n nullByte) ID() ID                             { return Null }
func (n nullByte) Params() []byte                     { return appendITF8Params([]byte{n.fixed}) }
func (n nullByte) ReadByte(ss *Streams) (byte, error) { return n.fixed, nil }
func (n nullByte) WriteByte(ss *Streams, v byte) error { return nil }
