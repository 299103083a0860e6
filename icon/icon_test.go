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

package icon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestPrefix(t *testing.T) {
	for _, tc := range []struct {
		version, prefix string
	}{
		{"4.7.0", "fa"},
		{"4", "fa"},
		{"4.0.0", "fa"},
		{"5.0.0", "fa"},
		{"3.2.1", "icon"},
		{"3.9.9", "icon"},
		{"0", "icon"},
	} {
		assert.Equal(t, tc.prefix, Prefix(tc.version, nil), "Prefix(%q)", tc.version)
	}

	require.Equal(t, "my-fa", Prefix("4.7.0", func(p string) string {
		require.Equal(t, "fa", p)
		return "my-" + p
	}))
}

func TestRender(t *testing.T) {
	fa := Renderer{Prefix: "fa"}
	for _, tc := range []struct {
		desc  string
		attrs Attrs
		out   string
	}{
		{"plain", Attrs{Name: "car"}, `<i class="fa fa-car" ></i>`},
		{"prefixed name", Attrs{Name: "fa-car"}, `<i class="fa fa-car" ></i>`},
		{"legacy prefixed name", Attrs{Name: "icon-car"}, `<i class="fa fa-car" ></i>`},
		{"classes", Attrs{Name: "flag", Class: "fw 2x spin"},
			`<i class="fa fa-flag fa-fw fa-2x fa-spin" ></i>`},
		{"prefixed classes", Attrs{Name: "flag", Class: " fa-fw   fa-spin "},
			`<i class="fa fa-flag fa-fw fa-spin" ></i>`},
		{"unprefixed class", Attrs{Name: "flag", Class: "fw", UnprefixedClass: "custom_class"},
			`<i class="fa fa-flag fa-fw custom_class" ></i>`},
		{"only unprefixed class", Attrs{Name: "flag", UnprefixedClass: "custom_class"},
			`<i class="fa fa-flag custom_class" ></i>`},
		{"size", Attrs{Name: "car", Size: "lg"}, `<i class="fa fa-car fa-lg" ></i>`},
		{"title", Attrs{Name: "car", Title: "Car"}, `<i class="fa fa-car" title="Car" ></i>`},
		{"space", Attrs{Name: "car", Space: "true"}, `<i class="fa fa-car" >&nbsp;</i>`},
		{"space not true", Attrs{Name: "car", Space: "yes"}, `<i class="fa fa-car" ></i>`},
	} {
		require.Equal(t, tc.out, fa.Render(tc.attrs), tc.desc)
	}
}

func TestRenderLegacyPrefix(t *testing.T) {
	r := Renderer{Prefix: "icon"}
	require.Equal(t, `<i class="icon icon-car icon-2x" ></i>`,
		r.Render(Attrs{Name: "fa-car", Class: "icon-2x"}))
}

func TestRenderEscapesTitle(t *testing.T) {
	out := Renderer{Prefix: "fa"}.Render(Attrs{Name: "car", Title: `"><script>`})
	require.NotContains(t, out, "<script>")

	doc, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)
	i := findElement(doc, "i")
	require.NotNil(t, i, "rendered markup has an <i> element")
	require.Equal(t, `"><script>`, attr(i, "title"))
	require.Equal(t, "fa fa-car", attr(i, "class"))
}

func TestRenderFilters(t *testing.T) {
	var gotClass, gotName string
	r := Renderer{
		Prefix: "fa",
		ClassFilter: func(class, name string) string {
			gotClass, gotName = class, name
			return class + " extra"
		},
		MarkupFilter: func(markup string) string {
			return "<span>" + markup + "</span>"
		},
	}
	out := r.Render(Attrs{Name: "fa-car", Class: "2x"})
	require.Equal(t, " fa-2x", gotClass)
	require.Equal(t, "car", gotName)
	require.Equal(t, `<span><i class="fa fa-car fa-2x extra" ></i></span>`, out)
}

func TestRenderClassFilterOutputIsRaw(t *testing.T) {
	r := Renderer{
		Prefix: "fa",
		ClassFilter: func(class, name string) string {
			return class + `" data-icon="` + name
		},
	}
	out := r.Render(Attrs{Name: "car", Class: `2x"><b>`, UnprefixedClass: "a&b"})
	require.Equal(t,
		`<i class="fa fa-car fa-2x&#34;&gt;&lt;b&gt; a&amp;b" data-icon="car" ></i>`, out)

	doc, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)
	i := findElement(doc, "i")
	require.NotNil(t, i)
	require.Equal(t, `fa fa-car fa-2x"><b> a&b`, attr(i, "class"),
		"classes from attributes are escaped")
	require.Equal(t, "car", attr(i, "data-icon"), "filter output is not escaped")
	require.Nil(t, findElement(doc, "b"))
}

func TestRenderEscapesNameAndSize(t *testing.T) {
	out := Renderer{Prefix: "fa"}.Render(Attrs{Name: `car"`, Size: `lg"`})
	doc, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)
	i := findElement(doc, "i")
	require.NotNil(t, i)
	require.Equal(t, `fa fa-car" fa-lg"`, attr(i, "class"))
}

func TestAttrsFromMap(t *testing.T) {
	require.Equal(t, Attrs{}, AttrsFromMap(nil))
	require.Equal(t, Attrs{
		Name:            "flag",
		Class:           "fw",
		UnprefixedClass: "custom",
		Title:           "Flag",
		Size:            "2x",
		Space:           "true",
	}, AttrsFromMap(map[string]string{
		"name":             "flag",
		"class":            "fw",
		"unprefixed_class": "custom",
		"title":            "Flag",
		"size":             "2x",
		"space":            "true",
		"color":            "red",
	}))
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
