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

package router

import "gofsrouter.dev/router/compiler"

// Kind is a tagged variant identifying what a Route represents. It is
// fixed at compile time of the pattern and never changes for the life of
// the Route; per-kind payload fields on Route (SlotName/ParentPattern,
// InterceptLevel/InterceptTarget, LayoutName) are only meaningful for the
// matching Kind.
type Kind uint8

const (
	KindPage Kind = iota
	KindLayout
	KindError
	KindLoading
	KindTemplate
	KindNotFound
	KindNoLayoutMarker
	KindParallelSlot
	KindIntercepting
)

func (k Kind) String() string {
	switch k {
	case KindPage:
		return "page"
	case KindLayout:
		return "layout"
	case KindError:
		return "error"
	case KindLoading:
		return "loading"
	case KindTemplate:
		return "template"
	case KindNotFound:
		return "not_found"
	case KindNoLayoutMarker:
		return "nolayout_marker"
	case KindParallelSlot:
		return "parallel_slot"
	case KindIntercepting:
		return "intercepting"
	default:
		return "unknown"
	}
}

func kindFromLeaf(leaf compiler.LeafKind, intercept *compiler.Intercept, slot string) Kind {
	switch leaf {
	case compiler.LeafLayout:
		return KindLayout
	case compiler.LeafError:
		return KindError
	case compiler.LeafLoading:
		return KindLoading
	case compiler.LeafTemplate:
		return KindTemplate
	case compiler.LeafNotFound:
		return KindNotFound
	case compiler.LeafNoLayoutMarker:
		return KindNoLayoutMarker
	}
	if intercept != nil {
		return KindIntercepting
	}
	if slot != "" {
		return KindParallelSlot
	}
	return KindPage
}

// LayoutOption selects how a Route participates in layout inheritance.
type LayoutOption struct {
	mode    layoutMode
	name    string // set when mode == layoutNamed
	pattern string // set when mode == layoutPattern
}

type layoutMode uint8

const (
	layoutInherit layoutMode = iota
	layoutNone
	layoutRoot
	layoutNamed
	layoutPattern
)

// Inherit is the default LayoutOption: walk up the hierarchy.
func Inherit() LayoutOption { return LayoutOption{mode: layoutInherit} }

// NoLayout suppresses layout inheritance for this route entirely.
func NoLayout() LayoutOption { return LayoutOption{mode: layoutNone} }

// RootLayout skips directly to the layout registered at "/".
func RootLayout() LayoutOption { return LayoutOption{mode: layoutRoot} }

// NamedLayout selects the nearest ancestor layout registered under name n
// (a layout compiled from a "_layout.<n>" file).
func NamedLayout(n string) LayoutOption { return LayoutOption{mode: layoutNamed, name: n} }

// PatternLayout selects the layout registered at exactly pattern p.
func PatternLayout(p string) LayoutOption { return LayoutOption{mode: layoutPattern, pattern: p} }

// InterceptLevel identifies which ancestor directory an intercepting route
// targets. It is a re-export of compiler.InterceptLevel: the root package
// never duplicates the level semantics, only the small value type.
type InterceptLevel = compiler.InterceptLevel

const (
	SameLevel   = compiler.SameLevel
	OneLevelUp  = compiler.OneLevelUp
	FromRoot    = compiler.FromRoot
	TwoLevelsUp = compiler.TwoLevelsUp
)
