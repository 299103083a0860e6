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

// Package icon renders the markup for Font Awesome icons.
package icon // import "github.com/better-font-awesome/bfa/icon"

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/better-font-awesome/bfa/version"
)

// Prefixes used by Font Awesome: "fa" since 4.0, "icon" before that.
const (
	PrefixFA     = "fa"
	PrefixLegacy = "icon"
)

// Prefix returns the class prefix for a release. If filter is not nil, it
// may replace the result.
func Prefix(ver string, filter func(string) string) string {
	prefix := PrefixLegacy
	if version.Compare(ver, "4") >= 0 {
		prefix = PrefixFA
	}
	if filter != nil {
		prefix = filter(prefix)
	}
	return prefix
}

// Attrs are the attributes of the icon shortcode, e.g.
//
//	[icon name="flag" class="fw 2x spin" unprefixed_class="custom_class"]
type Attrs struct {
	Name            string
	Class           string
	UnprefixedClass string
	// Title and Size are kept for compatibility with shortcodes written for
	// other icon plugins.
	Title string
	Size  string
	// Space adds a non-breaking space inside the icon if "true".
	Space string
}

// AttrsFromMap converts shortcode attributes to Attrs. Missing attributes
// are empty, unknown attributes are ignored.
func AttrsFromMap(m map[string]string) Attrs {
	return Attrs{
		Name:            m["name"],
		Class:           m["class"],
		UnprefixedClass: m["unprefixed_class"],
		Title:           m["title"],
		Size:            m["size"],
		Space:           m["space"],
	}
}

// Renderer renders icons for a given prefix.
type Renderer struct {
	Prefix string
	// ClassFilter, if set, may replace the extra classes of an icon. It
	// receives the escaped classes (each preceded by a space) and the bare
	// icon name. The result is inserted into the class attribute as-is.
	ClassFilter func(class, name string) string
	// MarkupFilter, if set, may replace the final markup.
	MarkupFilter func(markup string) string
}

var manySpaces = regexp.MustCompile(`\s{3,}`)

// stripPrefixes removes both known prefixes, so that "fa-car", "icon-car"
// and "car" all name the same icon.
func stripPrefixes(s string) string {
	s = strings.Replace(s, PrefixLegacy+"-", "", -1)
	return strings.Replace(s, PrefixFA+"-", "", -1)
}

// classes builds the space-prefixed class list for the extra classes.
func (r Renderer) classes(a Attrs) string {
	class := stripPrefixes(a.Class)
	class = strings.TrimSpace(class)
	class = manySpaces.ReplaceAllString(class, " ")
	if class != "" {
		p := " " + r.Prefix + "-"
		class = p + strings.Replace(class, " ", p, -1)
	}
	if a.UnprefixedClass != "" {
		class += " " + a.UnprefixedClass
	}
	return class
}

// Render returns the markup for an icon, e.g. <i class="fa fa-car" ></i>.
func (r Renderer) Render(a Attrs) string {
	name := stripPrefixes(a.Name)
	class := html.EscapeString(r.classes(a))
	if r.ClassFilter != nil {
		class = r.ClassFilter(class, name)
	}
	size := ""
	if a.Size != "" {
		size = " " + html.EscapeString(r.Prefix+"-"+a.Size)
	}
	title := ""
	if a.Title != "" {
		title = fmt.Sprintf(`title="%s" `, html.EscapeString(a.Title))
	}
	space := ""
	if a.Space == "true" {
		space = "&nbsp;"
	}
	out := fmt.Sprintf(`<i class="%s %s" %s>%s</i>`,
		r.Prefix,
		html.EscapeString(r.Prefix+"-"+name)+class+size,
		title,
		space,
	)
	if r.MarkupFilter != nil {
		out = r.MarkupFilter(out)
	}
	return out
}
