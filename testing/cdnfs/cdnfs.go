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

// Package cdnfs provides a read-only afero Fs over a published Font Awesome
// package on jsDelivr. It lets live tests load a release from the CDN the
// same way the bundled fallback copy is loaded.
package cdnfs // import "github.com/better-font-awesome/bfa/testing/cdnfs"

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/better-font-awesome/bfa/remote"
)

var root = "https://cdn.jsdelivr.net/npm"

// Fs is a read-only view of one release of the font-awesome npm package.
// Files are fetched on first access and kept in memory.
type Fs struct {
	afero.Fs
	backingFs afero.Fs
	version   string
}

// New returns an Fs for the given release, e.g. New("4.7.0").
func New(version string) afero.Fs {
	backingFs := afero.NewMemMapFs()
	return &Fs{afero.NewReadOnlyFs(backingFs), backingFs, version}
}

func (f *Fs) fetch(name string) error {
	name = strings.TrimPrefix(name, "/")
	if ok, _ := afero.Exists(f.backingFs, name); ok {
		return nil
	}
	url := fmt.Sprintf("%s/font-awesome@%s/%s", root, f.version, name)
	body, err := remote.Get(context.Background(), nil, url)
	if err != nil {
		return &os.PathError{Op: "fetch", Path: name, Err: err}
	}
	return afero.WriteFile(f.backingFs, name, body, 0444)
}

// Open implements afero.Fs.
func (f *Fs) Open(name string) (afero.File, error) {
	if err := f.fetch(name); err != nil {
		return nil, err
	}
	return f.Fs.Open(strings.TrimPrefix(name, "/"))
}

// OpenFile implements afero.Fs.
func (f *Fs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if err := f.fetch(name); err != nil {
		return nil, err
	}
	return f.Fs.OpenFile(strings.TrimPrefix(name, "/"), flag, perm)
}

// Stat implements afero.Fs.
func (f *Fs) Stat(name string) (os.FileInfo, error) {
	if err := f.fetch(name); err != nil {
		return nil, err
	}
	return f.Fs.Stat(strings.TrimPrefix(name, "/"))
}

// Name implements afero.Fs.
func (f *Fs) Name() string {
	return fmt.Sprintf("CdnFS/font-awesome@%s", f.version)
}
