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

package notice

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLog(t *testing.T) {
	var log Log
	require.True(t, log.Empty())
	require.Empty(t, log.All())
	_, ok := log.Get(CSS)
	require.False(t, ok)

	log.Set(nil)
	require.True(t, log.Empty(), "nil records are ignored")

	log.Set(&Record{CSS, "404", "Not Found (URL: a)"})
	log.Set(&Record{API, "http_request_failed", "timeout"})
	log.Set(&Record{CSS, "500", "Internal Server Error (URL: b)"})

	require.False(t, log.Empty())
	r, ok := log.Get(CSS)
	require.True(t, ok)
	require.Equal(t, Record{CSS, "500", "Internal Server Error (URL: b)"}, r,
		"later record of the same category wins")
	require.Equal(t, []Record{
		{API, "http_request_failed", "timeout"},
		{CSS, "500", "Internal Server Error (URL: b)"},
	}, log.All(), "one record per category, api first")

	log.Set(&Record{"other", "1", "x"})
	require.Len(t, log.All(), 3)
	require.Equal(t, Category("other"), log.All()[2].Category)
}

func TestClone(t *testing.T) {
	var log Log
	log.Set(&Record{API, "503", "Service Unavailable"})
	c := log.Clone()
	log.Set(&Record{CSS, "404", "Not Found"})
	require.Len(t, c.All(), 1, "clone is independent")
	require.Len(t, log.All(), 2)
}

func TestRecordString(t *testing.T) {
	require.Equal(t, "css: 404: Not Found",
		Record{CSS, "404", "Not Found"}.String())
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, &Log{}, "4.7.0"))
	require.Empty(t, buf.String())
	require.NoError(t, Render(&buf, nil, "4.7.0"))
	require.Empty(t, buf.String())
}

func TestRender(t *testing.T) {
	var log Log
	log.Set(&Record{CSS, "http_request_failed", "dial tcp: i/o timeout (URL: https://cdn/x.css)"})

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, &log, "4.7.0"))
	out := buf.String()
	require.True(t, strings.HasPrefix(out, `<div class="error">`))
	require.Contains(t, out, "Remote CSS Error")
	require.NotContains(t, out, "API Error")
	require.Contains(t, out, "<code>http_request_failed: dial tcp: i/o timeout (URL: https://cdn/x.css)</code>")
	require.Contains(t, out, "(version: <code>4.7.0</code>)")
	require.Contains(t, out, `href="`+SupportURL+`"`)

	log.Set(&Record{API, "500", "<script>"})
	buf.Reset()
	require.NoError(t, Render(&buf, &log, "4.7.0"))
	out = buf.String()
	require.Contains(t, out, "API Error")
	require.Contains(t, out, "<code>500: &lt;script&gt;</code>", "messages are escaped")
	require.Less(t, strings.Index(out, "API Error"), strings.Index(out, "Remote CSS Error"))
}
