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

// Package httpclient provides an *http.Client whose requests are redirected
// to a test server, so that code with hard-coded remote URLs can be tested
// against canned responses.
package httpclient // import "github.com/better-font-awesome/bfa/testing/httpclient"

import (
	"net/http"
	"net/url"
)

type rewritingTransport struct {
	newURL    *url.URL
	transport http.RoundTripper
}

func (r rewritingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	newReq := req.Clone(req.Context())
	newReq.URL.Scheme = r.newURL.Scheme
	newReq.URL.Host = r.newURL.Host
	newReq.Host = ""
	return r.transport.RoundTrip(newReq)
}

// Wrap returns a copy of client that sends every request to the host of
// newURL, keeping the original path and query. Typical usage would be
// httpclient.Wrap(server.Client(), server.URL), where server is an
// httptest.Server or equivalent.
func Wrap(client *http.Client, newURL string) *http.Client {
	u, err := url.Parse(newURL)
	if err != nil {
		panic(err)
	}
	transport := client.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	wrapped := *client
	wrapped.Transport = rewritingTransport{newURL: u, transport: transport}
	return &wrapped
}
