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

// Package router is a file-system-backed URL router: it turns a directory
// of page files, named with the bracketed/grouped/intercepting/parallel-
// slot conventions popularized by modern file-system routers, into an
// in-memory routing structure, and resolves an incoming request path to a
// matched page together with the chain of layouts, error pages, loading
// pages, templates, and parallel slots that should surround it.
//
//	rt, err := router.Compile("dashboard/[id:int]/index.tsx")
//	r := router.New(router.WithPagesRoot("pages"))
//	if err := r.AddRoute(rt); err != nil {
//	    // handle NameCollisionError (Compile reports InvalidPatternError)
//	}
//	match, ok := r.MatchRoute("/dashboard/42")
//
// The router is read-mostly after construction: AddRoute/RemoveRoute
// require exclusive access (coordinated by the caller, typically during a
// startup registration phase), while MatchRoute and the hierarchical
// resolvers (GetLayout, GetErrorPage, ...) may run concurrently from many
// goroutines without locking each other out.
package router
