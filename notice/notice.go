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

// Package notice collects the errors encountered while loading Font Awesome
// and renders them as an administrative notice.
package notice // import "github.com/better-font-awesome/bfa/notice"

import (
	"fmt"
	"sync"
)

// Category identifies the step that failed.
type Category string

const (
	// API errors happen while fetching release information.
	API Category = "api"
	// CSS errors happen while fetching the stylesheet.
	CSS Category = "css"
)

// categories lists the known categories in display order.
var categories = []Category{API, CSS}

// Record describes a failure. Failures are never fatal, every failure has a
// fallback, so records are kept for display rather than returned as errors.
type Record struct {
	Category Category
	Code     string
	Message  string
}

func (r Record) String() string {
	return fmt.Sprintf("%s: %s: %s", r.Category, r.Code, r.Message)
}

// Log keeps the most recent record of each category. The zero value is an
// empty log ready for use.
type Log struct {
	mu      sync.Mutex
	records map[Category]Record
}

// Set records r, replacing any earlier record of the same category.
// A nil record is ignored.
func (g *Log) Set(r *Record) {
	if r == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.records == nil {
		g.records = map[Category]Record{}
	}
	g.records[r.Category] = *r
}

// Get returns the record for a category, and false if there is none.
func (g *Log) Get(c Category) (Record, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.records[c]
	return r, ok
}

// All returns all records, api before css, followed by any other
// categories in no particular order.
func (g *Log) All() []Record {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []Record
	for _, c := range categories {
		if r, ok := g.records[c]; ok {
			out = append(out, r)
		}
	}
	for c, r := range g.records {
		if c != API && c != CSS {
			out = append(out, r)
		}
	}
	return out
}

// Empty returns true if nothing has been recorded.
func (g *Log) Empty() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.records) == 0
}

// Clone returns an independent copy of the log.
func (g *Log) Clone() *Log {
	c := &Log{}
	for _, r := range g.All() {
		r := r
		c.Set(&r)
	}
	return c
}
