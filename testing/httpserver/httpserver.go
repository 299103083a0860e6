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

// Package httpserver provides a test http server that can serve some
// canned responses: various http status codes, an infinite redirect loop,
// slow responses, and a mirror of the "testdata" directory that stands in
// for remote hosts.
package httpserver // import "github.com/better-font-awesome/bfa/testing/httpserver"

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
)

var fs = afero.NewOsFs()

// parsePath parses the request path (of the form "/{command}/{arg}")
// into its command and arg components.
func parsePath(path string) (command, arg string) {
	parts := strings.SplitN(path, "/", 3)
	command = parts[1]
	if len(parts) > 2 {
		arg = parts[2]
	}
	return command, arg
}

// handleError returns false if error is nil, otherwise writes a 500
// with the error string and returns true.
func handleError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	w.WriteHeader(500)
	w.Write([]byte(err.Error()))
	return true
}

// handleHTTPCode handles the '/code/' path. It parses the arg as an
// http status code, writes a header with that code, and writes the
// corresponding message in the body (e.g. '/code/404' => 'Not Found').
func handleHTTPCode(w http.ResponseWriter, arg string) {
	code, err := strconv.ParseInt(arg, 10, 32)
	if handleError(w, err) {
		return
	}
	w.WriteHeader(int(code))
	w.Write([]byte(http.StatusText(int(code))))
}

// handleRedirect handles the '/redir/' path. It redirects to itself,
// using HTTP 307.
func handleRedirect(w http.ResponseWriter, urlPath string) {
	w.Header().Set("Location", urlPath)
	w.WriteHeader(307)
}

// handleSlow handles the '/slow/' path. It waits for arg milliseconds (or
// until the client goes away) before responding with 'ok'.
func handleSlow(w http.ResponseWriter, r *http.Request, arg string) {
	ms, err := strconv.ParseInt(arg, 10, 64)
	if handleError(w, err) {
		return
	}
	select {
	case <-time.After(time.Duration(ms) * time.Millisecond):
	case <-r.Context().Done():
		return
	}
	w.Write([]byte("ok"))
}

// serveFile writes the named file from "testdata", or a 404 if it does not
// exist.
func serveFile(w http.ResponseWriter, name string) {
	file, err := fs.Open(filepath.Join("testdata", filepath.FromSlash(name)))
	if os.IsNotExist(err) {
		handleHTTPCode(w, "404")
		return
	}
	if handleError(w, err) {
		return
	}
	defer file.Close()
	if info, err := file.Stat(); err == nil && info.IsDir() {
		handleHTTPCode(w, "404")
		return
	}
	w.WriteHeader(200)
	io.Copy(w, file)
}

// handleMirror serves any other path from "testdata", so that a client
// redirected with httpclient.Wrap sees the same paths as on the real host.
// Paths ending in '/' serve 'index.json' from that directory.
func handleMirror(w http.ResponseWriter, urlPath string) {
	name := path.Clean(urlPath)
	if strings.HasSuffix(urlPath, "/") {
		name = path.Join(name, "index.json")
	}
	serveFile(w, strings.TrimPrefix(name, "/"))
}

// New creates a new test server with some pre-configured special routes.
func New() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cmd, arg := parsePath(r.URL.Path)
		switch cmd {
		case "code":
			handleHTTPCode(w, arg)
		case "redir":
			handleRedirect(w, r.URL.Path)
		case "slow":
			handleSlow(w, r, arg)
		case "static":
			serveFile(w, arg)
		default:
			handleMirror(w, r.URL.Path)
		}
	}))
}
