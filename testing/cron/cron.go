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
Package cron provides a function to run a test only in scheduled CI runs,
and retry the test with increasing delays a few times before failing the
build.

The primary purpose of this method is to allow tests that are non-hermetic
and run against the live jsDelivr endpoints. Since the live endpoints could
occasionally throw errors, there is built-in retry with delays between
attempts.
*/
package cron // import "github.com/better-font-awesome/bfa/testing/cron"

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var getenv = os.Getenv
var waits = []time.Duration{1 * time.Second, 3 * time.Second, 7 * time.Second, 15 * time.Second}

// Enabled returns true when running in a scheduled CI build, or when
// BFA_LIVE_TESTS is set to force live tests locally.
func Enabled() bool {
	return getenv("GITHUB_EVENT_NAME") == "schedule" || getenv("BFA_LIVE_TESTS") != ""
}

// Test runs a test if running in a scheduled CI build. It handles retries if
// the test returns an error, but passes through failures to the test suite.
// This allows the test function to retry by returning transient errors, while
// not wasting attempts on non-retryable failures.
func Test(t testing.TB, testFunc func() error) {
	if !Enabled() {
		t.Skipf("Skipping live test outside of scheduled builds")
	}
	for _, wait := range waits {
		err := testFunc()
		if err == nil {
			return
		}
		t.Logf("Waiting %v due to %v", wait, err)
		time.Sleep(wait)
	}
	require.NoError(t, testFunc(), "On last cron attempt")
}
