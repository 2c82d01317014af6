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

// Package manifest loads declarative route registration data — redirects
// and name/alias/meta overlays for routes already compiled from the pages
// tree — from a YAML file, so operators can adjust naming, aliasing, and
// redirects without touching the pages tree itself. This is
// registration-time configuration, not a request-body binder.
package manifest

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"gofsrouter.dev/router"
)

// entry is the on-disk shape of one manifest item; Load converts each into
// a router.RouteOverride.
type entry struct {
	Pattern        string            `yaml:"pattern"`
	Name           string            `yaml:"name,omitempty"`
	Aliases        []string          `yaml:"aliases,omitempty"`
	Meta           map[string]string `yaml:"meta,omitempty"`
	RedirectTo     string            `yaml:"redirect_to,omitempty"`
	RedirectStatus int               `yaml:"redirect_status,omitempty"`
}

// document is the top-level manifest file shape: a single "routes" list.
type document struct {
	Routes []entry `yaml:"routes"`
}

// Load reads and decodes the YAML manifest file at path into a slice of
// router.RouteOverride, in file order, ready to be passed one by one to
// Router.ApplyOverride.
func Load(path string) ([]router.RouteOverride, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a YAML-encoded manifest document from r.
func Decode(r io.Reader) ([]router.RouteOverride, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("manifest: read: %w", err)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("manifest: decode: %w", err)
	}

	overrides := make([]router.RouteOverride, len(doc.Routes))
	for i, e := range doc.Routes {
		overrides[i] = router.RouteOverride{
			Pattern:        e.Pattern,
			Name:           e.Name,
			Aliases:        e.Aliases,
			Meta:           e.Meta,
			RedirectTo:     e.RedirectTo,
			RedirectStatus: e.RedirectStatus,
		}
	}
	return overrides, nil
}
