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

// Command bfa resolves, fetches, and inspects Font Awesome releases the same
// way a site using the library would.
//
//	bfa [-config file] [-cache dir] <command> [args]
//
// Commands:
//
//	version   show the release in use and where its stylesheet comes from
//	icons     list the available icons, one per line
//	render    render an icon, e.g. bfa render name=flag class="fw 2x"
//	warm      fetch the stylesheet of every release into the cache
//	notice    print the administrative notice for any load failures
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"

	"github.com/better-font-awesome/bfa"
	"github.com/better-font-awesome/bfa/cache"
	"github.com/better-font-awesome/bfa/jsdelivr"
	"github.com/better-font-awesome/bfa/notice"
	"github.com/better-font-awesome/bfa/stylesheet"
)

var fs = afero.NewOsFs()

// httpClient is used for all requests if set, otherwise one is built from
// the configured timeout.
var httpClient *http.Client

var errUsage = errors.New("usage: bfa [-config file] [-cache dir] <version|icons|render|warm|notice> [args]")

type env struct {
	ctx   context.Context
	lib   *bfa.Library
	cfg   bfa.Config
	http  *http.Client
	store cache.Store
	args  []string
	out   io.Writer
}

var commands = map[string]func(env) error{
	"version": showVersion,
	"icons":   listIcons,
	"render":  render,
	"warm":    warm,
	"notice":  writeNotice,
}

func showVersion(e env) error {
	source := "cdn"
	if rec, ok := e.lib.Errors().Get(notice.CSS); ok {
		source = "fallback (" + rec.Code + ")"
	}
	fmt.Fprintf(e.out, "version:    %s\n", e.lib.Version())
	fmt.Fprintf(e.out, "url:        %s\n", e.lib.StylesheetURL())
	fmt.Fprintf(e.out, "source:     %s\n", source)
	fmt.Fprintf(e.out, "prefix:     %s\n", e.lib.Prefix())
	fmt.Fprintf(e.out, "icons:      %s\n", humanize.Comma(int64(len(e.lib.Icons()))))
	fmt.Fprintf(e.out, "stylesheet: %s\n", humanize.Bytes(uint64(len(e.lib.Stylesheet().CSS))))
	return nil
}

func listIcons(e env) error {
	for _, name := range e.lib.Icons() {
		fmt.Fprintln(e.out, name)
	}
	return nil
}

func render(e env) error {
	attrs := map[string]string{}
	for _, arg := range e.args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("render: expected key=value, got %q", arg)
		}
		attrs[k] = v
	}
	if attrs["name"] == "" {
		return fmt.Errorf("render: name is required")
	}
	fmt.Fprintln(e.out, e.lib.RenderShortcode(attrs))
	return nil
}

func warm(e env) error {
	data := e.lib.APIData()
	if data == nil {
		return fmt.Errorf("warm: release list unavailable: %v", e.lib.Errors().All())
	}
	f := &stylesheet.Fetcher{HTTP: e.http, Cache: e.store, TTL: e.cfg.CSSTTL}
	n, err := f.Warm(e.ctx, data.Versions, func(v string) string {
		return jsdelivr.StylesheetURL(v, e.cfg.Minified)
	})
	fmt.Fprintf(e.out, "fetched %d of %d releases, %d cached\n",
		n, len(data.Versions), len(f.CachedVersions()))
	return err
}

func writeNotice(e env) error {
	return e.lib.WriteAdminNotice(e.out)
}

func newHTTPClient(cfg bfa.Config) *http.Client {
	if httpClient != nil {
		return httpClient
	}
	return &http.Client{Timeout: cfg.RequestTimeout()}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	flags := flag.NewFlagSet("bfa", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	configFile := flags.String("config", "", "YAML configuration file")
	cacheDir := flags.String("cache", "", "cache directory (default "+cache.DefaultDir()+")")
	// Read by the logging package in debug builds.
	flags.String("finelog", "", "packages to log in detail, e.g. bfa:stylesheet")
	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("%v\n%w", err, errUsage)
	}
	if flags.NArg() == 0 {
		return errUsage
	}
	cmd, ok := commands[flags.Arg(0)]
	if !ok {
		return fmt.Errorf("unknown command %q\n%w", flags.Arg(0), errUsage)
	}

	cfg := bfa.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = bfa.LoadConfig(fs, *configFile); err != nil {
			return fmt.Errorf("config %s: %w", *configFile, err)
		}
	}
	switch {
	case *cacheDir != "":
		cfg.CacheDir = *cacheDir
	case cfg.CacheDir == "":
		cfg.CacheDir = cache.DefaultDir()
	}

	store, err := cache.NewFile(fs, cfg.CacheDir)
	if err != nil {
		return fmt.Errorf("cache %s: %w", cfg.CacheDir, err)
	}
	client := newHTTPClient(cfg)
	lib, err := bfa.Load(ctx, cfg, bfa.Options{HTTP: client, Cache: store})
	if err != nil {
		return err
	}
	return cmd(env{
		ctx:   ctx,
		lib:   lib,
		cfg:   lib.Config(),
		http:  client,
		store: store,
		args:  flags.Args()[1:],
		out:   out,
	})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.SetFlags(0)
		log.SetPrefix("bfa: ")
		stop()
		log.Fatal(err)
	}
}
