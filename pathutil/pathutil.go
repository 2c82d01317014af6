// Copyright 2025 The GoFSRouter Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package pathutil validates and normalizes request paths and walks the
// chain of parent paths used by hierarchical resource resolution.
package pathutil

import (
	"iter"
	"strings"
)

// IsValid reports whether p is already a canonical path: it starts with
// "/", contains no backslash, has no consecutive slashes (except the sole
// leading one), has no trailing slash unless p is "/", and contains only
// printable non-control bytes.
func IsValid(p string) bool {
	if p == "" || p[0] != '/' {
		return false
	}
	if p != "/" && p[len(p)-1] == '/' {
		return false
	}
	prevSlash := false
	for i := 0; i < len(p); i++ {
		c := p[i]
		switch {
		case c == '\\':
			return false
		case c == '/':
			if prevSlash {
				return false
			}
			prevSlash = true
			continue
		case c < 0x20 || c == 0x7f:
			return false
		}
		prevSlash = false
	}
	return true
}

// Normalize returns p unchanged (zero-copy) when it is already valid.
// Otherwise it allocates a new, valid path by replacing backslashes with
// forward slashes, collapsing runs of slashes, prepending a leading slash
// if absent, and stripping any trailing slash (unless the result is "/").
// Normalize(Normalize(p)) == Normalize(p) for all p, and the result always
// satisfies IsValid.
func Normalize(p string) string {
	if IsValid(p) {
		return p
	}

	var b strings.Builder
	b.Grow(len(p) + 1)
	b.WriteByte('/')

	prevSlash := true // suppresses a duplicate leading slash below
	for i := 0; i < len(p); i++ {
		c := p[i]
		if c == '\\' {
			c = '/'
		}
		if c == '/' {
			if prevSlash {
				continue
			}
			prevSlash = true
		} else {
			prevSlash = false
		}
		b.WriteByte(c)
	}

	out := b.String()
	if len(out) > 1 && out[len(out)-1] == '/' {
		out = out[:len(out)-1]
	}
	if out == "" {
		out = "/"
	}
	return out
}

// Hierarchy is a lazy, allocation-free iterator over a normalized path and
// each of its strict ancestor paths, terminating after yielding "/".
//
// Hierarchy is intentionally lazy: the common case for every hierarchical
// resource lookup (layout, error page, loading page, ...) succeeds within
// the first one or two probes, so callers should prefer Next (or the
// equally lazy Seq adapter) over collecting the full chain up front.
type Hierarchy struct {
	path string // next path to yield
	done bool   // set once "/" has been yielded
}

// NewHierarchy starts a walk at p, which must already be normalized
// (callers normalize once at the API boundary, not on every ancestor).
func NewHierarchy(p string) *Hierarchy {
	return &Hierarchy{path: p}
}

// Next returns the next path in the walk (p, then each ancestor, then "/"),
// and false once the walk is exhausted.
func (h *Hierarchy) Next() (string, bool) {
	if h.done {
		return "", false
	}
	current := h.path
	if current == "/" {
		h.done = true
		return current, true
	}
	idx := strings.LastIndexByte(current, '/')
	if idx <= 0 {
		h.path = "/"
	} else {
		h.path = current[:idx]
	}
	return current, true
}

// Seq adapts Hierarchy to range-over-func form for callers that prefer it
// over the zero-allocation Next loop used by the core resolver.
func Seq(p string) iter.Seq[string] {
	return func(yield func(string) bool) {
		h := NewHierarchy(p)
		for {
			v, ok := h.Next()
			if !ok {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}
