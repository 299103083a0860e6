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

package stylesheet

import (
	"context"

	"golang.org/x/time/rate"

	l "github.com/better-font-awesome/bfa/logging"
)

var defaultLimiter = rate.NewLimiter(rate.Limit(1), 1)

func (f *Fetcher) limiter() *rate.Limiter {
	if f.Limiter == nil {
		return defaultLimiter
	}
	return f.Limiter
}

// Warm fetches the CSS of each release that is not already cached, so that
// later lookups, including guesses of the latest release, can be served
// from the cache. Requests are paced by the fetcher's limiter. Releases that
// fail to fetch are skipped. It returns the number of releases fetched, and
// an error only if ctx was cancelled.
func (f *Fetcher) Warm(ctx context.Context, versions []string, urlFor func(string) string) (int, error) {
	fetched := 0
	for _, ver := range versions {
		if f.cachedCSS(ver) != "" {
			l.Fine("%s already cached", ver)
			continue
		}
		if err := f.limiter().Wait(ctx); err != nil {
			return fetched, err
		}
		if _, err := f.remote(ctx, ver, urlFor(ver)); err != nil {
			if ctx.Err() != nil {
				return fetched, ctx.Err()
			}
			l.Log("warming %s: %v", ver, err)
			continue
		}
		fetched++
	}
	return fetched, nil
}
