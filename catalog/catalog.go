// Copyright 2024 Google Inc.
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

// Package catalog builds the list of icon names available in a Font Awesome
// stylesheet.
package catalog // import "github.com/better-font-awesome/bfa/catalog"

import (
	"regexp"
	"sort"
)

// glyphRule matches the selector of every rule whose body starts with a
// content declaration, i.e. the rules that map icons to glyphs.
var glyphRule = regexp.MustCompile(`(?s)(\.[^}]*)\s*\{\s*(content:)`)

// iconSelector matches ".fa-name:before" and ".icon-name:before" within a
// (possibly comma separated) selector.
var iconSelector = regexp.MustCompile(`(?s)\.(icon-|fa-)([^,]*)\s*:before`)

// Extract returns the names of all icons in css, sorted. Names that appear in
// more than one rule are listed more than once. Formatting that does not
// match the expected patterns is skipped, so malformed css may produce a
// partial or empty list. If filter is not nil, its result is returned instead
// of the sorted list.
func Extract(css string, filter func([]string) []string) []string {
	icons := []string{}
	for _, rule := range glyphRule.FindAllStringSubmatch(css, -1) {
		for _, sel := range iconSelector.FindAllStringSubmatch(rule[1], -1) {
			icons = append(icons, sel[2])
		}
	}
	sort.Strings(icons)
	if filter != nil {
		icons = filter(icons)
	}
	return icons
}
