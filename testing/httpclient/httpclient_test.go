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

package httpclient

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/better-font-awesome/bfa/testing/httpserver"
)

func TestWrapper(t *testing.T) {
	var gotPath, gotQuery string
	okServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}))
	defer okServer.Close()

	testServer := httpserver.New()
	defer testServer.Close()
	url404 := testServer.URL + "/code/404"
	redirLoop := testServer.URL + "/redir"

	client := testServer.Client()
	r, err := client.Get(url404)
	require.NoError(t, err)
	require.Equal(t, 404, r.StatusCode)

	_, err = client.Get(redirLoop)
	require.Error(t, err)

	wrapped := Wrap(client, okServer.URL)
	r, err = wrapped.Get(url404)
	require.NoError(t, err)
	require.Equal(t, 200, r.StatusCode)
	body, _ := io.ReadAll(r.Body)
	r.Body.Close()
	require.Equal(t, "ok", string(body))

	_, err = wrapped.Get(redirLoop)
	require.NoError(t, err)

	_, err = wrapped.Get("http://cdn.jsdelivr.net/fontawesome/4.7.0/css/font-awesome.css?v=1")
	require.NoError(t, err, "unreachable hosts are redirected too")
	require.Equal(t, "/fontawesome/4.7.0/css/font-awesome.css", gotPath)
	require.Equal(t, "v=1", gotQuery)

	r, err = client.Get(url404)
	require.NoError(t, err)
	require.Equal(t, 404, r.StatusCode, "original client is untouched")
}

func TestWrapNilTransport(t *testing.T) {
	okServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer okServer.Close()

	r, err := Wrap(&http.Client{}, okServer.URL).Get("http://example.invalid/")
	require.NoError(t, err)
	require.Equal(t, 200, r.StatusCode)
}
