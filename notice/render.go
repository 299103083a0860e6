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
	"html/template"
	"io"
)

// SupportURL is where administrators are pointed to if errors persist.
const SupportURL = "http://wordpress.org/support/plugin/better-font-awesome"

var noticeTemplate = template.Must(template.New("notice").Parse(`<div class="error">
	<p><b>Better Font Awesome</b></p>
{{- with .API}}
	<p>
		<b>API Error</b><br />
		The attempt to reach the jsDelivr API server failed with the following error: <code>{{.Code}}: {{.Message}}</code>
	</p>
{{- end}}
{{- with .CSS}}
	<p>
		<b>Remote CSS Error</b><br />
		The attempt to fetch the remote Font Awesome stylesheet failed with the following error: <code>{{.Code}}: {{.Message}}</code> <br /> The embedded fallback Font Awesome will be used instead (version: <code>{{$.Version}}</code>).
	</p>
{{- end}}
	<p>
		<b>Solution</b><br />
		This may be the result of a temporary server or connectivity issue which will resolve shortly. However if the problem persists please file a support ticket on the <a href="{{.SupportURL}}" target="_blank" title="Better Font Awesome support forum">plugin forum</a>, citing the errors listed above.
	</p>
</div>
`))

type noticeData struct {
	API        *Record
	CSS        *Record
	Version    string
	SupportURL string
}

// Render writes the administrative notice for the recorded errors. The
// version is the Font Awesome release actually in use. Nothing is written
// if the log is empty.
func Render(w io.Writer, log *Log, version string) error {
	if log == nil || log.Empty() {
		return nil
	}
	data := noticeData{Version: version, SupportURL: SupportURL}
	if r, ok := log.Get(API); ok {
		data.API = &r
	}
	if r, ok := log.Get(CSS); ok {
		data.CSS = &r
	}
	return noticeTemplate.Execute(w, data)
}
