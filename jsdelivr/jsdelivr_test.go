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

package jsdelivr

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/better-font-awesome/bfa/cache"
	"github.com/better-font-awesome/bfa/remote"
	"github.com/better-font-awesome/bfa/testing/cron"
	"github.com/better-font-awesome/bfa/testing/httpclient"
	testServer "github.com/better-font-awesome/bfa/testing/httpserver"
	"github.com/better-font-awesome/bfa/timing"
)

var ts *httptest.Server

func TestMain(m *testing.M) {
	ts = testServer.New()
	defer ts.Close()
	os.Exit(m.Run())
}

func TestStylesheetURL(t *testing.T) {
	require.Equal(t, "//cdn.jsdelivr.net/fontawesome/4.7.0/css/font-awesome.min.css",
		StylesheetURL("4.7.0", true))
	require.Equal(t, "//cdn.jsdelivr.net/fontawesome/3.2.1/css/font-awesome.css",
		StylesheetURL("3.2.1", false))
}

func TestVersionsFromDefaultURL(t *testing.T) {
	c := &Client{HTTP: httpclient.Wrap(ts.Client(), ts.URL)}
	d, err := c.Versions(context.Background())
	require.NoError(t, err)
	require.Equal(t, "4.7.0", d.LastVersion)
	require.Len(t, d.Versions, 10)
	require.Equal(t, "3.2.1", d.Versions[9])
}

func TestVersionsBareObject(t *testing.T) {
	c := &Client{HTTP: ts.Client(), URL: ts.URL + "/static/object.json"}
	d, err := c.Versions(context.Background())
	require.NoError(t, err)
	require.Equal(t, &Data{Versions: []string{"4.6.3", "4.5.0"}, LastVersion: "4.6.3"}, d)
}

func TestVersionsCached(t *testing.T) {
	timing.TestMode()
	defer timing.ExitTestMode()

	store := cache.NewMemory()
	c := &Client{HTTP: ts.Client(), Cache: store, URL: ts.URL + "/static/object.json"}
	d, err := c.Versions(context.Background())
	require.NoError(t, err)
	require.Equal(t, "4.6.3", d.LastVersion)

	// Point the client at an error, the cached value should be used.
	c.URL = ts.URL + "/code/500"
	d, err = c.Versions(context.Background())
	require.NoError(t, err)
	require.Equal(t, "4.6.3", d.LastVersion, "served from cache")

	timing.AdvanceBy(DefaultTTL)
	_, err = c.Versions(context.Background())
	require.Error(t, err, "cache expires after 12h")
}

func TestVersionsCustomTTL(t *testing.T) {
	timing.TestMode()
	defer timing.ExitTestMode()

	store := cache.NewMemory()
	c := &Client{HTTP: ts.Client(), Cache: store, TTL: time.Minute, URL: ts.URL + "/static/object.json"}
	_, err := c.Versions(context.Background())
	require.NoError(t, err)
	timing.AdvanceBy(2 * time.Minute)
	_, ok := store.Get(CacheKey)
	require.False(t, ok)
}

func TestVersionsErrors(t *testing.T) {
	store := cache.NewMemory()
	for _, tc := range []struct {
		desc, path, code string
	}{
		{"http error", "/code/503", "503"},
		{"redirect loop", "/redir", "http_request_failed"},
		{"bad json", "/static/bad.json", "http_request_failed"},
		{"empty array", "/static/empty.json", "http_request_failed"},
	} {
		c := &Client{HTTP: ts.Client(), Cache: store, URL: ts.URL + tc.path}
		d, err := c.Versions(context.Background())
		require.Error(t, err, tc.desc)
		require.Nil(t, d, tc.desc)
		require.Equal(t, tc.code, remote.Code(err), tc.desc)
	}
	_, ok := store.Get(CacheKey)
	require.False(t, ok, "failures are not cached")

	var pErr *remote.ProtocolError
	_, err := (&Client{HTTP: ts.Client(), URL: ts.URL + "/code/404"}).Versions(context.Background())
	require.True(t, errors.As(err, &pErr))
}

func TestLive(t *testing.T) {
	cron.Test(t, func() error {
		d, err := (&Client{HTTP: nil}).Versions(context.Background())
		if err != nil {
			return err
		}
		require.NotEmpty(t, d.LastVersion)
		require.NotEmpty(t, d.Versions)
		return nil
	})
}
