// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import "errors"

var (
	errShortExternal       = errors.New("encoding: external stream exhausted while decoding a variable-length integer")
	errExternalNeedsLength = errors.New("encoding: EXTERNAL byte array codec requires an explicit length")
	errHuffmanNoSymbol     = errors.New("encoding: huffman code matched no symbol")
	errBadSubexpK          = errors.New("encoding: SUBEXP k parameter out of range")
)
