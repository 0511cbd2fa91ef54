// Copyright (c) 2024, The Tor Project, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bundles

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Probe answers questions about bundles on disk.  It stands in for the
// platform's bundle loader.
type Probe interface {
	// IsLoadable returns true if dir can be opened as a bundle.
	IsLoadable(dir string) bool
	// Localizations returns the locales the bundle declares, sorted.
	Localizations(bundle string) []string
	// LocalizationDir returns the resource directory of the given locale.
	LocalizationDir(bundle, locale string) (string, bool)
}

// resourceDirs are the places a bundle keeps its resources in, in lookup
// order: macOS application bundles, frameworks, flat (iOS style) bundles.
var resourceDirs = []string{
	filepath.Join("Contents", "Resources"),
	"Resources",
	"",
}

// FSProbe is a Probe working on the local filesystem.  Any existing
// directory is a loadable bundle.
type FSProbe struct{}

func (FSProbe) IsLoadable(dir string) bool {
	fi, err := os.Stat(dir)
	return err == nil && fi.IsDir()
}

// ResourceDir returns the directory holding the bundle's localized
// resources.
func (FSProbe) ResourceDir(bundle string) string {
	for _, rel := range resourceDirs {
		dir := filepath.Join(bundle, rel)
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			return dir
		}
	}
	return bundle
}

func (p FSProbe) Localizations(bundle string) []string {
	dir := p.ResourceDir(bundle)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var locales []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, "."+LocaleSuffix) {
			continue
		}
		if !p.IsLoadable(filepath.Join(dir, name)) {
			continue
		}
		locales = append(locales, LocaleName(name))
	}
	sort.Strings(locales)
	return locales
}

func (p FSProbe) LocalizationDir(bundle, locale string) (string, bool) {
	dir := filepath.Join(p.ResourceDir(bundle), locale+"."+LocaleSuffix)
	if !p.IsLoadable(dir) {
		return "", false
	}
	return dir, true
}
