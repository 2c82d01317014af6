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

package pathutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gofsrouter.dev/router/pathutil"
)

func TestIsValid(t *testing.T) {
	valid := []string{"/", "/a", "/a/b", "/users/42"}
	for _, p := range valid {
		assert.True(t, pathutil.IsValid(p), p)
	}

	invalid := []string{
		"",
		"a/b",     // no leading slash
		"/a//b",   // consecutive slashes
		"/a/b/",   // trailing slash
		`/a\b`,    // backslash
		"/a\x00b", // control byte
		"/a\x7fb", // DEL
		"//",      // consecutive slashes at root
	}
	for _, p := range invalid {
		assert.False(t, pathutil.IsValid(p), "%q", p)
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"":           "/",
		"/":          "/",
		"a/b":        "/a/b",
		"/a//b":      "/a/b",
		"/a/b/":      "/a/b",
		`\a\b`:       "/a/b",
		`a\b\`:       "/a/b",
		"///":        "/",
		"/users/42/": "/users/42",
	}
	for in, want := range cases {
		assert.Equal(t, want, pathutil.Normalize(in), "%q", in)
	}
}

func TestNormalizeZeroCopyWhenValid(t *testing.T) {
	p := "/already/valid"
	assert.Equal(t, p, pathutil.Normalize(p))
}

func TestNormalizeIdempotentAndValid(t *testing.T) {
	for _, p := range []string{"", "/", "a//b/", `\x\y\`, "/ok", "///a"} {
		once := pathutil.Normalize(p)
		assert.Equal(t, once, pathutil.Normalize(once))
		assert.True(t, pathutil.IsValid(once))
	}
}

func TestHierarchyWalk(t *testing.T) {
	h := pathutil.NewHierarchy("/a/b/c")
	var got []string
	for {
		p, ok := h.Next()
		if !ok {
			break
		}
		got = append(got, p)
	}
	assert.Equal(t, []string{"/a/b/c", "/a/b", "/a", "/"}, got)
}

func TestHierarchyRootYieldsOnce(t *testing.T) {
	h := pathutil.NewHierarchy("/")
	p, ok := h.Next()
	require.True(t, ok)
	assert.Equal(t, "/", p)
	_, ok = h.Next()
	assert.False(t, ok)
}

func TestSeqMatchesNext(t *testing.T) {
	var got []string
	for p := range pathutil.Seq("/x/y") {
		got = append(got, p)
	}
	assert.Equal(t, []string{"/x/y", "/x", "/"}, got)
}

func TestSeqStopsEarly(t *testing.T) {
	count := 0
	for range pathutil.Seq("/a/b/c/d") {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}
