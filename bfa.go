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

/*
Package bfa loads Font Awesome for a site: it picks the release to use,
obtains its stylesheet, lists the icons it defines, and renders icon markup.

Remote failures never prevent loading. The jsDelivr API and CDN are tried
first, with their responses cached, and a bundled copy of Font Awesome is
used when the CDN cannot be reached. Failures are recorded so that site
administrators can be told about them:

	lib, err := bfa.Load(ctx, bfa.DefaultConfig(), bfa.Options{})
	if err != nil {
		// Only a missing fallback copy is fatal.
	}
	fmt.Println(lib.Version(), lib.StylesheetURL())
	fmt.Println(lib.RenderShortcode(map[string]string{"name": "car"}))
*/
package bfa // import "github.com/better-font-awesome/bfa"

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/afero"

	"github.com/better-font-awesome/bfa/cache"
	"github.com/better-font-awesome/bfa/catalog"
	"github.com/better-font-awesome/bfa/icon"
	"github.com/better-font-awesome/bfa/jsdelivr"
	l "github.com/better-font-awesome/bfa/logging"
	"github.com/better-font-awesome/bfa/notice"
	"github.com/better-font-awesome/bfa/remote"
	"github.com/better-font-awesome/bfa/stylesheet"
	"github.com/better-font-awesome/bfa/version"
)

var fs = afero.NewOsFs()

// Hooks let the host adjust the results of loading. Nil hooks are skipped.
type Hooks struct {
	// Args may modify the configuration before anything is loaded.
	Args func(Config) Config
	// IconList may modify the sorted list of icon names.
	IconList func([]string) []string
	// Prefix may replace the class prefix.
	Prefix func(string) string
	// IconClass may modify the extra classes of rendered icons, see
	// icon.Renderer.
	IconClass func(class, name string) string
	// Icon may modify the rendered markup of an icon.
	Icon func(markup string) string
}

// Options are the dependencies of Load. All fields are optional.
type Options struct {
	// HTTP client for remote requests. If nil, a client using the
	// configured timeout is created.
	HTTP *http.Client
	// Cache for API data and stylesheets. If nil, a file cache in the
	// configured directory is used, or an in-memory cache if none is set.
	Cache cache.Store
	// FallbackFs contains the fallback copy of Font Awesome at its root.
	// If nil, the configured directory or the embedded copy is used.
	FallbackFs afero.Fs
	Hooks      Hooks
}

// Library is the result of loading Font Awesome. It does not change after
// Load returns, and is safe for concurrent use.
type Library struct {
	config   Config
	sheet    stylesheet.Record
	icons    []string
	prefix   string
	apiData  *jsdelivr.Data
	errors   *notice.Log
	renderer icon.Renderer
}

func (o Options) fallbackFs(cfg Config) afero.Fs {
	switch {
	case o.FallbackFs != nil:
		return o.FallbackFs
	case cfg.FallbackDir != "":
		return afero.NewReadOnlyFs(afero.NewBasePathFs(fs, cfg.FallbackDir))
	default:
		return stylesheet.Bundled()
	}
}

func (o Options) cache(cfg Config) cache.Store {
	if o.Cache != nil {
		return o.Cache
	}
	if cfg.CacheDir != "" {
		store, err := cache.NewFile(fs, cfg.CacheDir)
		if err == nil {
			return store
		}
		l.Log("cache dir %s unusable, caching in memory: %v", cfg.CacheDir, err)
	}
	return cache.NewMemory()
}

func (o Options) httpClient(cfg Config) *http.Client {
	if o.HTTP != nil {
		return o.HTTP
	}
	return &http.Client{Timeout: cfg.RequestTimeout()}
}

// Load loads Font Awesome using the given configuration. It returns an
// error only if the fallback copy cannot be read; remote failures are
// available from Errors on the returned library.
func Load(ctx context.Context, cfg Config, opts Options) (*Library, error) {
	hooks := opts.Hooks
	if hooks.Args != nil {
		cfg = hooks.Args(cfg)
	}
	fallback, err := stylesheet.LoadFallback(opts.fallbackFs(cfg), cfg.FallbackURL, cfg.Minified)
	if err != nil {
		return nil, fmt.Errorf("loading fallback Font Awesome: %w", err)
	}

	client := opts.httpClient(cfg)
	store := opts.cache(cfg)
	errs := &notice.Log{}

	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = jsdelivr.APIURL
	}
	api := &jsdelivr.Client{HTTP: client, Cache: store, TTL: cfg.APITTL, URL: apiURL}
	data, err := api.Versions(ctx)
	if err != nil {
		errs.Set(&notice.Record{
			Category: notice.API,
			Code:     remote.Code(err),
			Message:  fmt.Sprintf("%s (URL: %s)", remote.Message(err), apiURL),
		})
	}

	fetcher := &stylesheet.Fetcher{
		HTTP:     client,
		Cache:    store,
		TTL:      cfg.CSSTTL,
		Fallback: fallback,
	}
	latest := ""
	if data != nil {
		latest = data.LastVersion
	}
	ver := version.Resolve(cfg.Version, latest, fetcher.CachedVersions(), fallback.Version)
	l.Log("using Font Awesome %s (requested %s)", ver, cfg.Version)

	sheet, cssErr := fetcher.Fetch(ctx, ver, jsdelivr.StylesheetURL(ver, cfg.Minified))
	errs.Set(cssErr)

	lib := &Library{
		config:  cfg,
		sheet:   sheet,
		icons:   catalog.Extract(sheet.CSS, hooks.IconList),
		prefix:  icon.Prefix(sheet.Version, hooks.Prefix),
		apiData: data,
		errors:  errs,
	}
	lib.renderer = icon.Renderer{
		Prefix:       lib.prefix,
		ClassFilter:  hooks.IconClass,
		MarkupFilter: hooks.Icon,
	}
	l.Fine("%d icons with prefix %s", len(lib.icons), lib.prefix)
	return lib, nil
}

// Version returns the release in use. This is the fallback's release if the
// requested stylesheet could not be fetched.
func (b *Library) Version() string { return b.sheet.Version }

// StylesheetURL returns the URL of the stylesheet in use.
func (b *Library) StylesheetURL() string { return b.sheet.URL }

// Stylesheet returns the stylesheet in use.
func (b *Library) Stylesheet() stylesheet.Record { return b.sheet }

// Icons returns the names of the available icons.
func (b *Library) Icons() []string {
	return append([]string(nil), b.icons...)
}

// Prefix returns the class prefix of the release in use.
func (b *Library) Prefix() string { return b.prefix }

// APIData returns the release information from jsDelivr, or nil if it could
// not be fetched.
func (b *Library) APIData() *jsdelivr.Data {
	if b.apiData == nil {
		return nil
	}
	d := *b.apiData
	d.Versions = append([]string(nil), d.Versions...)
	return &d
}

// Errors returns the failures encountered while loading.
func (b *Library) Errors() *notice.Log { return b.errors.Clone() }

// Config returns the configuration used, after the Args hook.
func (b *Library) Config() Config { return b.config }
