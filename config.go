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
	"io"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"

	"github.com/better-font-awesome/bfa/jsdelivr"
	"github.com/better-font-awesome/bfa/stylesheet"
	"github.com/better-font-awesome/bfa/version"
)

// Config controls which Font Awesome release is used and how it is
// integrated into the host site.
type Config struct {
	// Version to use, or "latest".
	Version string `yaml:"version"`
	// Minified selects the minified stylesheet.
	Minified bool `yaml:"minified"`
	// RemoveExistingFA asks the host to remove Font Awesome stylesheets
	// registered by other plugins and themes.
	RemoveExistingFA bool `yaml:"remove_existing_fa"`

	LoadStyles        bool `yaml:"load_styles"`
	LoadAdminStyles   bool `yaml:"load_admin_styles"`
	LoadShortcode     bool `yaml:"load_shortcode"`
	LoadTinyMCEPlugin bool `yaml:"load_tinymce_plugin"`

	// Timeout for each remote request. Zero uses the default timeout.
	Timeout time.Duration `yaml:"timeout"`
	// APITTL and CSSTTL are how long fetched API data and stylesheets are
	// cached for.
	APITTL time.Duration `yaml:"api_ttl"`
	CSSTTL time.Duration `yaml:"css_ttl"`

	// FallbackDir contains the fallback copy of Font Awesome. If empty, the
	// copy embedded in the binary is used.
	FallbackDir string `yaml:"fallback_dir"`
	// FallbackURL is the URL the fallback directory is served at.
	FallbackURL string `yaml:"fallback_url"`
	// CacheDir is where fetched data is kept between runs. If empty, data
	// is only cached in memory.
	CacheDir string `yaml:"cache_dir"`
	// APIURL overrides the jsDelivr API endpoint.
	APIURL string `yaml:"api_url"`
}

const defaultTimeout = 10 * time.Second

// DefaultConfig returns the default configuration: the latest minified
// release, with every integration enabled.
func DefaultConfig() Config {
	return Config{
		Version:           version.Latest,
		Minified:          true,
		LoadStyles:        true,
		LoadAdminStyles:   true,
		LoadShortcode:     true,
		LoadTinyMCEPlugin: true,
		Timeout:           defaultTimeout,
		APITTL:            jsdelivr.DefaultTTL,
		CSSTTL:            stylesheet.DefaultTTL,
		FallbackURL:       stylesheet.DefaultFallbackURL,
		APIURL:            jsdelivr.APIURL,
	}
}

// RequestTimeout returns the timeout for remote requests. Remote requests are
// never made without a timeout.
func (c Config) RequestTimeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultTimeout
	}
	return c.Timeout
}

// LoadConfig reads a YAML configuration file. Keys missing from the file
// keep their default values.
func LoadConfig(fs afero.Fs, path string) (Config, error) {
	cfg := DefaultConfig()
	f, err := fs.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()
	err = yaml.NewDecoder(f).Decode(&cfg)
	if err == io.EOF {
		// An empty file is a valid, if pointless, configuration.
		err = nil
	}
	return cfg, err
}
