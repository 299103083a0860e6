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

// Package remote fetches documents over HTTP and classifies failures into
// transport errors (the server could not be reached) and protocol errors
// (the server answered with something other than 200 OK).
package remote // import "github.com/better-font-awesome/bfa/remote"

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	l "github.com/better-font-awesome/bfa/logging"
)

// TransportError is returned when the request could not be completed,
// e.g. DNS failures, refused connections, timeouts, or redirect loops.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Code returns the error code reported for transport failures.
func (e *TransportError) Code() string { return "http_request_failed" }

// Message returns the underlying error without the URL.
func (e *TransportError) Message() string { return e.Err.Error() }

// ProtocolError is returned when the server responds with a status other
// than 200 OK.
type ProtocolError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: %d %s", e.URL, e.StatusCode, e.Status)
}

// Code returns the numeric HTTP status.
func (e *ProtocolError) Code() string { return strconv.Itoa(e.StatusCode) }

// Message returns the HTTP status text.
func (e *ProtocolError) Message() string { return e.Status }

type coded interface {
	Code() string
	Message() string
}

// Code returns the error code of err, or "unknown" for errors that were not
// produced by this package.
func Code(err error) string {
	var c coded
	if errors.As(err, &c) {
		return c.Code()
	}
	return "unknown"
}

// Message returns the human readable part of err.
func Message(err error) string {
	var c coded
	if errors.As(err, &c) {
		return c.Message()
	}
	return err.Error()
}

// WithScheme upgrades scheme-relative URLs ("//host/path") to https.
func WithScheme(url string) string {
	if strings.HasPrefix(url, "//") {
		return "https:" + url
	}
	return url
}

// Get fetches url and returns the response body if the server responded
// with 200 OK. Any other outcome is a *TransportError or *ProtocolError.
func Get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	url = WithScheme(url)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &ProtocolError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
		}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	l.Fine("GET %s: %s", url, humanize.Bytes(uint64(len(body))))
	return body, nil
}
