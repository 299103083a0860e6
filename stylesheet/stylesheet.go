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
Package stylesheet obtains the Font Awesome CSS for a release.

The CSS is taken from the first source that has it:
  - the cache, which keeps the CSS of every fetched release,
  - the CDN, in which case the CSS is added to the cache,
  - the bundled fallback copy, if the CDN request fails.

When the fallback is used, the returned record describes the fallback's own
release and URL rather than the requested ones, and the failure is reported
so that it can be shown to site administrators.
*/
package stylesheet // import "github.com/better-font-awesome/bfa/stylesheet"

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/better-font-awesome/bfa/cache"
	l "github.com/better-font-awesome/bfa/logging"
	"github.com/better-font-awesome/bfa/notice"
	"github.com/better-font-awesome/bfa/remote"
	"github.com/better-font-awesome/bfa/version"
)

// CacheKey is the cache key for the map of release to CSS.
const CacheKey = "bfa-css"

// DefaultTTL is how long fetched CSS is cached for.
const DefaultTTL = 30 * 24 * time.Hour

// Record is a stylesheet and the release and URL it belongs to.
type Record struct {
	Version string
	CSS     string
	URL     string
}

// Fetcher fetches stylesheets. The zero value fetches without caching using
// http.DefaultClient, and falls back to an empty stylesheet.
type Fetcher struct {
	// HTTP client to use, http.DefaultClient if nil.
	HTTP *http.Client
	// Cache to use, no caching if nil.
	Cache cache.Store
	// TTL for the cached CSS, DefaultTTL if zero.
	TTL time.Duration
	// Fallback is used when the CDN cannot be reached.
	Fallback Fallback
	// Limiter paces the requests made by Warm. If nil, one request per
	// second is allowed.
	Limiter *rate.Limiter

	// Serialises read-modify-write cycles of the cached map.
	mu sync.Mutex
}

func (f *Fetcher) ttl() time.Duration {
	if f.TTL == 0 {
		return DefaultTTL
	}
	return f.TTL
}

// cached returns the cached release to CSS map, never nil.
func (f *Fetcher) cached() map[string]string {
	css := map[string]string{}
	if f.Cache == nil {
		return css
	}
	data, ok := f.Cache.Get(CacheKey)
	if !ok {
		return css
	}
	if err := json.Unmarshal(data, &css); err != nil {
		l.Log("discarding corrupt css cache: %v", err)
		return map[string]string{}
	}
	return css
}

// CachedVersions returns the releases whose CSS is cached, oldest first.
func (f *Fetcher) CachedVersions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var versions []string
	for v := range f.cached() {
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool {
		return version.Compare(versions[i], versions[j]) < 0
	})
	return versions
}

func (f *Fetcher) cachedCSS(ver string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cached()[ver]
}

// store adds the CSS for a release to the cached map. The whole map shares
// one expiration, which is reset by every store.
func (f *Fetcher) store(ver, css string) {
	if f.Cache == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	all := f.cached()
	all[ver] = css
	data, err := json.Marshal(all)
	if err == nil {
		err = f.Cache.Set(CacheKey, data, f.ttl())
	}
	if err != nil {
		l.Log("caching css for %s: %v", ver, err)
	}
}

// remote fetches the CSS from the network and caches it on success.
func (f *Fetcher) remote(ctx context.Context, ver, url string) (string, error) {
	body, err := remote.Get(ctx, f.HTTP, url)
	if err != nil {
		return "", err
	}
	css := string(body)
	l.Log("fetched %s of css for %s", humanize.Bytes(uint64(len(css))), ver)
	f.store(ver, css)
	return css, nil
}

// Fetch returns the stylesheet for a release, trying the cache, then url,
// then the fallback. The returned error record is non-nil only if the
// fallback was used, and describes why the CDN request failed.
func (f *Fetcher) Fetch(ctx context.Context, ver, url string) (Record, *notice.Record) {
	if css := f.cachedCSS(ver); css != "" {
		l.Fine("css for %s from cache", ver)
		return Record{Version: ver, CSS: css, URL: url}, nil
	}
	css, err := f.remote(ctx, ver, url)
	if err == nil {
		return Record{Version: ver, CSS: css, URL: url}, nil
	}
	l.Log("using fallback %s for %s: %v", f.Fallback.Version, ver, err)
	return Record{
			Version: f.Fallback.Version,
			CSS:     f.Fallback.CSS,
			URL:     f.Fallback.URL,
		}, &notice.Record{
			Category: notice.CSS,
			Code:     remote.Code(err),
			Message:  fmt.Sprintf("%s (URL: %s)", remote.Message(err), url),
		}
}
