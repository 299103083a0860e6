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

package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
	"github.com/zeebo/xxh3"

	l "github.com/better-font-awesome/bfa/logging"
)

// Shared encoder/decoder, both safe for concurrent use.
var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	zstdDecoder, _ = zstd.NewReader(nil)
)

// envelope is the on-disk form of an entry. The key is kept so that a hash
// collision reads as a miss rather than another key's value.
type envelope struct {
	Key     string    `json:"key"`
	Expires time.Time `json:"expires"`
	Value   []byte    `json:"value"`
}

// File is a Store that keeps one compressed file per key in a directory.
type File struct {
	fs  afero.Fs
	dir string
	mu  sync.Mutex
}

// DefaultDir returns an XDG compliant directory for the file cache.
func DefaultDir() string {
	cacheRoot := os.ExpandEnv("$HOME/.cache")
	if xdgCache, ok := os.LookupEnv("XDG_CACHE_HOME"); ok {
		cacheRoot = xdgCache
	}
	return filepath.Join(cacheRoot, "bfa")
}

// NewFile creates a file-backed store rooted at dir, creating it if needed.
func NewFile(fs afero.Fs, dir string) (*File, error) {
	if err := fs.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return &File{fs: fs, dir: dir}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, fmt.Sprintf("%016x.zst", xxh3.HashString(key)))
}

// Get implements Store. Unreadable or corrupt entries are treated as misses.
func (f *File) Get(key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	path := f.path(key)
	compressed, err := afero.ReadFile(f.fs, path)
	if err != nil {
		return nil, false
	}
	data, err := zstdDecoder.DecodeAll(compressed, nil)
	if err != nil {
		l.Log("%s: corrupt cache entry: %v", path, err)
		return nil, false
	}
	var e envelope
	if err := json.Unmarshal(data, &e); err != nil {
		l.Log("%s: corrupt cache entry: %v", path, err)
		return nil, false
	}
	if e.Key != key {
		l.Fine("%s: holds %q, not %q", path, e.Key, key)
		return nil, false
	}
	if expired(e.Expires) {
		l.Fine("%s expired at %v", key, e.Expires)
		f.fs.Remove(path)
		return nil, false
	}
	return e.Value, true
}

// Set implements Store. The entry is written to a temporary file and renamed
// into place, so a concurrent reader never sees a partial entry.
func (f *File) Set(key string, value []byte, ttl time.Duration) error {
	data, err := json.Marshal(envelope{Key: key, Expires: expiry(ttl), Value: value})
	if err != nil {
		return err
	}
	compressed := zstdEncoder.EncodeAll(data, nil)
	f.mu.Lock()
	defer f.mu.Unlock()
	path := f.path(key)
	tmp := path + ".tmp"
	if err := afero.WriteFile(f.fs, tmp, compressed, 0600); err != nil {
		return err
	}
	if err := f.fs.Rename(tmp, path); err != nil {
		f.fs.Remove(tmp)
		return err
	}
	l.Fine("%s: stored %d bytes (%d on disk)", key, len(value), len(compressed))
	return nil
}
