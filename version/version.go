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

// Package version compares Font Awesome release identifiers and decides which
// release to serve.
package version // import "github.com/better-font-awesome/bfa/version"

import (
	"strings"
	"unicode"
)

// Latest is the sentinel that asks for the newest available release.
const Latest = "latest"

// specialForms ranks the non-numeric segments that may appear in a version,
// e.g. "4.0.0-rc1". A numeric segment compared with a word ranks as "#".
// Matching is by prefix, so "patch" ranks as "p".
var specialForms = []struct {
	name string
	rank int
}{
	{"dev", 0},
	{"alpha", 1},
	{"a", 1},
	{"beta", 2},
	{"b", 2},
	{"RC", 3},
	{"rc", 3},
	{"#", 4},
	{"pl", 5},
	{"p", 5},
}

func rank(word string) int {
	for _, f := range specialForms {
		if strings.HasPrefix(word, f.name) {
			return f.rank
		}
	}
	return -6
}

func isNumeric(segment string) bool {
	return segment != "" && unicode.IsDigit(rune(segment[0]))
}

// canonicalize splits a version into segments. Separators ('.', '-', '_', '+')
// are dropped, and every transition between digits and other characters
// starts a new segment ("1.0rc1" => ["1", "0", "rc", "1"]).
func canonicalize(v string) []string {
	var segments []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			segments = append(segments, cur.String())
			cur.Reset()
		}
	}
	prevDigit := false
	for i, r := range v {
		switch r {
		case '.', '-', '_', '+':
			flush()
			continue
		}
		digit := unicode.IsDigit(r)
		if i > 0 && cur.Len() > 0 && digit != prevDigit {
			flush()
		}
		cur.WriteRune(r)
		prevDigit = digit
	}
	flush()
	return segments
}

func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		return sign(len(a) - len(b))
	}
	return strings.Compare(a, b)
}

func sign(i int) int {
	switch {
	case i < 0:
		return -1
	case i > 0:
		return 1
	}
	return 0
}

func compareSegment(a, b string) int {
	switch {
	case isNumeric(a) && isNumeric(b):
		return compareNumeric(a, b)
	case isNumeric(a):
		return sign(rank("#") - rank(b))
	case isNumeric(b):
		return sign(rank(a) - rank("#"))
	}
	return sign(rank(a) - rank(b))
}

// Compare returns -1, 0, or 1 depending on whether a is older than, the same
// as, or newer than b. Segments are compared numerically where both are
// numbers, so "4.10.0" is newer than "4.7.0". A version with additional
// numeric segments is newer ("4.0" > "4"), while an additional pre-release
// word makes it older ("4.0rc" < "4.0").
func Compare(a, b string) int {
	as, bs := canonicalize(a), canonicalize(b)
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := compareSegment(as[i], bs[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(as) > len(bs):
		if isNumeric(as[len(bs)]) {
			return 1
		}
		return compareSegment(as[len(bs)], "#")
	case len(bs) > len(as):
		if isNumeric(bs[len(as)]) {
			return -1
		}
		return compareSegment("#", bs[len(as)])
	}
	return 0
}

// Max returns the newest of the given versions, or "0" if there are none.
func Max(versions []string) string {
	max := "0"
	for i, v := range versions {
		if i == 0 || Compare(v, max) > 0 {
			max = v
		}
	}
	return max
}

// Resolve picks the release to serve. An explicit version is returned
// unchanged. For Latest, the remote API's latest version is used if known
// (non-empty); otherwise the newest cached version is used if it is newer
// than the bundled fallback, and the fallback version wins ties.
func Resolve(requested, remoteLatest string, cached []string, fallback string) string {
	if requested != Latest {
		return requested
	}
	if remoteLatest != "" {
		return remoteLatest
	}
	if newest := Max(cached); Compare(newest, fallback) > 0 {
		return newest
	}
	return fallback
}
