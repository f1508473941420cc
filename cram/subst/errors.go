// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package subst

import "errors"

var (
	errBadRank       = errors.New("subst: rank index out of range")
	errDuplicateRank = errors.New("subst: duplicate rank index in matrix byte")
)
