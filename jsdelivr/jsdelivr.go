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
Package jsdelivr provides Font Awesome release information from the jsDelivr
API, and the CDN URLs of the corresponding stylesheets.

API responses are cached, so that a fresh process does not need to reach the
API on every start.
*/
package jsdelivr // import "github.com/better-font-awesome/bfa/jsdelivr"

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/better-font-awesome/bfa/cache"
	l "github.com/better-font-awesome/bfa/logging"
	"github.com/better-font-awesome/bfa/remote"
)

// APIURL is the jsDelivr API endpoint for Font Awesome release information.
const APIURL = "http://api.jsdelivr.com/v1/jsdelivr/libraries/fontawesome/?fields=versions,lastversion"

// CacheKey is the cache key for API data.
const CacheKey = "bfa-api-versions"

// DefaultTTL is how long API data is cached for.
const DefaultTTL = 12 * time.Hour

// StylesheetURL returns the scheme-relative CDN URL for the given version's
// stylesheet.
func StylesheetURL(version string, minified bool) string {
	suffix := ""
	if minified {
		suffix = ".min"
	}
	return fmt.Sprintf("//cdn.jsdelivr.net/fontawesome/%s/css/font-awesome%s.css", version, suffix)
}

// Data is the release information returned by the API.
type Data struct {
	Versions    []string `json:"versions"`
	LastVersion string   `json:"lastversion"`
}

// Client fetches release information, using a cache if provided.
type Client struct {
	// HTTP client to use, http.DefaultClient if nil.
	HTTP *http.Client
	// Cache to use, no caching if nil.
	Cache cache.Store
	// TTL for cached data, DefaultTTL if zero.
	TTL time.Duration
	// URL of the API endpoint, APIURL if empty.
	URL string
}

func (c *Client) url() string {
	if c.URL == "" {
		return APIURL
	}
	return c.URL
}

func (c *Client) ttl() time.Duration {
	if c.TTL == 0 {
		return DefaultTTL
	}
	return c.TTL
}

// decode parses an API response. The v1 API wraps the library object in a
// one-element array, but a bare object is also accepted.
func decode(body []byte) (*Data, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var list []Data
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, err
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("empty API response")
		}
		return &list[0], nil
	}
	d := &Data{}
	if err := json.Unmarshal(body, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Versions returns the release information, from the cache if present,
// otherwise from the API. Fetch errors are returned as-is, see package remote.
func (c *Client) Versions(ctx context.Context) (*Data, error) {
	if c.Cache != nil {
		if cached, ok := c.Cache.Get(CacheKey); ok {
			if d, err := decode(cached); err == nil {
				l.Fine("using cached API data, latest %s", d.LastVersion)
				return d, nil
			}
		}
	}
	url := c.url()
	body, err := remote.Get(ctx, c.HTTP, url)
	if err != nil {
		l.Log("API fetch failed: %v", err)
		return nil, err
	}
	d, err := decode(body)
	if err != nil {
		l.Log("API response from %s: %v", url, err)
		return nil, &remote.TransportError{URL: url, Err: err}
	}
	if c.Cache != nil {
		encoded, _ := json.Marshal(d)
		if err := c.Cache.Set(CacheKey, encoded, c.ttl()); err != nil {
			l.Log("caching API data: %v", err)
		}
	}
	return d, nil
}
