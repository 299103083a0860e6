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

package stylesheet

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	json "github.com/goccy/go-json"
	"github.com/spf13/afero"
)

//go:embed fallback
var bundled embed.FS

// DefaultFallbackURL is the URL, relative to the site's plugin directory,
// where the bundled fallback assets are served from.
const DefaultFallbackURL = "lib/fallback-font-awesome/"

// Bundled returns a read-only filesystem over the fallback Font Awesome
// assets embedded in the binary: the published 4.7.0 package.json, minified
// stylesheet, and the webfonts it references.
func Bundled() afero.Fs {
	sub, err := fs.Sub(bundled, "fallback")
	if err != nil {
		panic(err)
	}
	return afero.FromIOFS{FS: sub}
}

// Fallback is the locally available copy of Font Awesome, used when the
// stylesheet cannot be fetched from the CDN.
type Fallback struct {
	Version string
	CSS     string
	// URL the fallback stylesheet is served at.
	URL string
	// Path to the fallback stylesheet within its filesystem.
	Path string
}

type packageJSON struct {
	Version string `json:"version"`
}

func minSuffix(minified bool) string {
	if minified {
		return ".min"
	}
	return ""
}

// LoadFallback reads the fallback stylesheet and its version from the root of
// the given filesystem, which must contain package.json and
// css/font-awesome{.min}.css. If the full stylesheet is requested but only
// the minified one is present, the minified one is used.
func LoadFallback(fsys afero.Fs, baseURL string, minified bool) (Fallback, error) {
	meta, err := afero.ReadFile(fsys, "package.json")
	if err != nil {
		return Fallback{}, err
	}
	var pkg packageJSON
	if err := json.Unmarshal(meta, &pkg); err != nil {
		return Fallback{}, fmt.Errorf("package.json: %w", err)
	}
	if pkg.Version == "" {
		return Fallback{}, fmt.Errorf("package.json: no version")
	}
	cssPath := path.Join("css", "font-awesome"+minSuffix(minified)+".css")
	css, err := afero.ReadFile(fsys, cssPath)
	if err != nil && !minified {
		cssPath = path.Join("css", "font-awesome"+minSuffix(true)+".css")
		css, err = afero.ReadFile(fsys, cssPath)
	}
	if err != nil {
		return Fallback{}, err
	}
	return Fallback{
		Version: pkg.Version,
		CSS:     string(css),
		URL:     joinURL(baseURL, cssPath),
		Path:    cssPath,
	}, nil
}

func joinURL(base, rel string) string {
	if base == "" || base[len(base)-1] == '/' {
		return base + rel
	}
	return base + "/" + rel
}
