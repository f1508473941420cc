// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compressor

import "sync"

// ransEngine backs both the order-0 and order-1 rANS compressors. Its
// scratch counting tables (256 contexts x 256 symbols x uint64, ~512
// KiB) are the "expensive to allocate" state the cache exists to share
// (§4.3); rANS state is not reentrant; callers sharing an engine across
// goroutines must hold lock for the duration of a Compress/Decompress
// call, which ransCompressor does.
type ransEngine struct {
	mu      sync.Mutex
	scratch [256][256]uint64
}

func newRansEngine() *ransEngine { return &ransEngine{} }

// ransCompressor adapts the order-0/order-1 rANS codecs to the
// Compressor interface, serializing access to the shared engine.
type ransCompressor struct {
	engine *ransEngine
	order  int // 0 or 1
}

func (c *ransCompressor) Method() Method { return Rans }

func (c *ransCompressor) Compress(src []byte) ([]byte, error) {
	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()
	if c.order == 1 {
		return ransEncodeOrder1(src, &c.engine.scratch), nil
	}
	return ransEncodeOrder0(src), nil
}

func (c *ransCompressor) Decompress(src []byte, uncompressedSize int) ([]byte, error) {
	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()
	if c.order == 1 {
		return ransDecodeOrder1(src, uncompressedSize)
	}
	return ransDecodeOrder0(src, uncompressedSize)
}
