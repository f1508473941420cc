// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compressor

import "sync"

// key identifies a cached Compressor by its method and method-specific
// parameter: the gzip/bzip2 level, or the rANS order (0 or 1).
type key struct {
	method Method
	param  int
}

// Cache is an append-only mapping from (method, parameter) to a reusable
// Compressor, modelled on the compressor registry described in §4.3. A
// Cache's rANS entries all share a single ransEngine, since rANS state
// is not reentrant and its frequency-table scratch space is expensive
// to allocate repeatedly.
//
// A Cache is safe for concurrent use by multiple readers so long as the
// Compressor implementations it returns are themselves safe for
// concurrent use; the rANS compressors guarantee this by serializing
// access to the shared engine. Per §5, a writer doing slice-parallel
// encoding should use one Cache per worker, or hold a Cache's rANS
// calls under an explicit lock of its own if workers must share one.
type Cache struct {
	mu   sync.Mutex
	m    map[key]Compressor
	rans *ransEngine
}

// NewCache returns an empty, ready to use Cache.
func NewCache() *Cache {
	return &Cache{
		m:    make(map[key]Compressor),
		rans: newRansEngine(),
	}
}

// Get returns the Compressor for method with the given parameter
// (compression level for Gzip/Bzip2, order for Rans, ignored for Raw
// and Lzma), constructing and caching it on first use.
func (c *Cache) Get(method Method, param int) (Compressor, error) {
	k := key{method, param}
	c.mu.Lock()
	defer c.mu.Unlock()
	if comp, ok := c.m[k]; ok {
		return comp, nil
	}
	comp, err := c.build(method, param)
	if err != nil {
		return nil, err
	}
	c.m[k] = comp
	return comp, nil
}

func (c *Cache) build(method Method, param int) (Compressor, error) {
	switch method {
	case Raw:
		return rawCompressor{}, nil
	case Gzip:
		return newGzip(param), nil
	case Bzip2:
		return newBzip2(param), nil
	case Lzma:
		return lzmaCompressor{}, nil
	case Rans:
		if param != 0 && param != 1 {
			return nil, errUnknownMethod
		}
		return &ransCompressor{engine: c.rans, order: param}, nil
	default:
		return nil, errUnknownMethod
	}
}
