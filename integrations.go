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

package bfa

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/better-font-awesome/bfa/icon"
	"github.com/better-font-awesome/bfa/notice"
	"github.com/better-font-awesome/bfa/version"
)

// Names registered with the host.
const (
	// StyleHandle identifies the Font Awesome stylesheet.
	StyleHandle = "bfa-font-awesome"
	// ShortcodeTag is the tag of the icon shortcode, [icon name="car"].
	ShortcodeTag = "icon"
	// TinyMCEButton is the editor button that inserts icons.
	TinyMCEButton = "bfaSelect"
)

// Integrations describes which host features the library should be wired
// into.
type Integrations struct {
	// EnqueueFront adds the stylesheet to public pages.
	EnqueueFront bool
	// EnqueueAdmin adds the stylesheet to admin pages.
	EnqueueAdmin bool
	// Shortcode registers the icon shortcode.
	Shortcode bool
	// TinyMCE registers the editor plugin and button.
	TinyMCE bool
	// RemoveExisting removes other Font Awesome stylesheets.
	RemoveExisting bool
}

// Integrations returns the host features to enable for the configuration.
// Some features depend on others, e.g. the editor plugin needs both the
// shortcode and the admin stylesheet.
func (b *Library) Integrations() Integrations {
	c := b.config
	return Integrations{
		EnqueueFront:   c.LoadStyles || c.RemoveExistingFA,
		EnqueueAdmin:   c.LoadAdminStyles || c.LoadTinyMCEPlugin,
		Shortcode:      c.LoadShortcode || c.LoadTinyMCEPlugin,
		TinyMCE:        c.LoadTinyMCEPlugin,
		RemoveExisting: c.RemoveExistingFA,
	}
}

// IsFontAwesomeHandle returns true if a stylesheet handle looks like it
// belongs to another copy of Font Awesome.
func IsFontAwesomeHandle(handle string) bool {
	return strings.Contains(handle, "fontawesome") ||
		strings.Contains(handle, "font-awesome")
}

// TinyMCEPlugin returns the editor plugin script for a TinyMCE version.
// TinyMCE 4 and later report versions such as "4104".
func TinyMCEPlugin(tinymceVersion string) string {
	if version.Compare(tinymceVersion, "4000") >= 0 {
		return "js/tinymce-icons.js"
	}
	return "js/tinymce-icons-old.js"
}

// RenderShortcode renders the icon shortcode with the given attributes.
func (b *Library) RenderShortcode(attrs map[string]string) string {
	return b.renderer.Render(icon.AttrsFromMap(attrs))
}

// RenderIcon renders an icon.
func (b *Library) RenderIcon(a icon.Attrs) string {
	return b.renderer.Render(a)
}

// WriteAdminNotice writes the notice describing load failures, if any.
func (b *Library) WriteAdminNotice(w io.Writer) error {
	return notice.Render(w, b.errors, b.Version())
}

var headTemplate = template.Must(template.New("head").Parse(`<!-- Better Font Awesome PHP variables for use by TinyMCE JavaScript -->
<script type='text/javascript'>
var bfa_vars = {
    'fa_prefix': '{{.Prefix}}',
    'fa_icons': '{{.Icons}}',
};
</script>
<!-- End Better Font Awesome PHP variables for use by TinyMCE JavaScript -->
`))

// WriteHeadVariables writes the script that exposes the prefix and the
// icon list to the editor plugin.
func (b *Library) WriteHeadVariables(w io.Writer) error {
	err := headTemplate.Execute(w, struct {
		Prefix string
		Icons  string
	}{b.prefix, strings.Join(b.icons, ",")})
	if err != nil {
		return fmt.Errorf("head variables: %w", err)
	}
	return nil
}
