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
Package timing provides a testable source of the current time.

Code that needs to know the time, e.g. to check whether a cache entry has
expired, should call timing.Now() instead of time.Now(). Tests can then call
TestMode() to freeze time, and AdvanceBy/AdvanceTo to move it forward.
*/
package timing // import "github.com/better-font-awesome/bfa/timing"

import (
	"sync"
	"time"
)

var (
	mu        sync.Mutex
	testMode  bool
	nowInTest time.Time
)

// Now returns the current time, or the frozen test time in test mode.
func Now() time.Time {
	mu.Lock()
	defer mu.Unlock()
	if testMode {
		return nowInTest
	}
	return time.Now()
}

// TestMode freezes time. Time does not pass at all until AdvanceBy or
// AdvanceTo is called.
func TestMode() {
	mu.Lock()
	defer mu.Unlock()
	testMode = true
	// Non-zero so that any IsZero checks don't unexpectedly pass.
	nowInTest = time.Date(2016, time.November, 25, 20, 47, 0, 0, time.UTC)
}

// ExitTestMode returns to real time.
func ExitTestMode() {
	mu.Lock()
	defer mu.Unlock()
	testMode = false
}

// AdvanceBy moves the test time forward by the given duration, and returns
// the new time.
func AdvanceBy(duration time.Duration) time.Time {
	mu.Lock()
	defer mu.Unlock()
	nowInTest = nowInTest.Add(duration)
	return nowInTest
}

// AdvanceTo sets the test time, and returns it.
func AdvanceTo(newTime time.Time) time.Time {
	mu.Lock()
	defer mu.Unlock()
	nowInTest = newTime
	return nowInTest
}
