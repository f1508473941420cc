// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compressor

import "errors"

var (
	errRawSizeMismatch = errors.New("compressor: compressed size != uncompressed size for raw method")
	errUnknownMethod   = errors.New("compressor: unknown compression method")
)
