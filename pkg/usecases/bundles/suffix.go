// Copyright (c) 2024, The Tor Project, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bundles

import (
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// StringsExt and LoctableExt are the two resource tables we harvest.
	StringsExt  = ".strings"
	LoctableExt = ".loctable"

	LocaleSuffix = "lproj"
	PassSuffix   = "pass"

	// MaxAncestorDepth is the number of directories, starting with the
	// parent of a strings file, that may own it.
	MaxAncestorDepth = 5
)

var versionSuffix = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// Suffix returns the extension of the last element of path, without the
// leading dot.  It is empty if the element has no extension.
func Suffix(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

// IsBundleSuffix returns true if a directory with the given suffix may be the
// root of a bundle: it has a suffix at all, and the suffix is not a locale
// directory, a pass, or a version number.
func IsBundleSuffix(suffix string) bool {
	if suffix == "" {
		return false
	}
	switch suffix {
	case LocaleSuffix, PassSuffix:
		return false
	}
	return !versionSuffix.MatchString(suffix)
}

// IsLocaleDir returns true if dir holds the resources of a single locale.
func IsLocaleDir(dir string) bool {
	return Suffix(dir) == LocaleSuffix
}

// LocaleName returns the locale a locale directory stands for, e.g. "en" for
// "en.lproj".
func LocaleName(dir string) string {
	return strings.TrimSuffix(filepath.Base(dir), "."+LocaleSuffix)
}

// ancestors returns dir followed by its parents, at most n entries.  The
// list ends early at the filesystem root.
func ancestors(dir string, n int) []string {
	dirs := make([]string, 0, n)
	for len(dirs) < n {
		dirs = append(dirs, dir)
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return dirs
}

// Plan lists the directories that may own a resource table, in the order
// they have to be probed.  Owner is the directory chosen by the suffix
// heuristic; when it is set it must be loadable and Fallbacks is empty.
// Otherwise every fallback is probed in turn and the first loadable one
// owns the table.
type Plan struct {
	Owner     string
	Fallbacks []string
}

// PlanStringsOwner works out which directories may own a strings file that
// sits in dir.  It does not touch the filesystem.
func PlanStringsOwner(dir string) Plan {
	candidates := ancestors(dir, MaxAncestorDepth)
	for _, candidate := range candidates {
		if IsBundleSuffix(Suffix(candidate)) {
			return Plan{Owner: candidate}
		}
	}

	if !IsLocaleDir(dir) {
		return Plan{}
	}
	// Bundles without a suffix, e.g. a bare Resources/en.lproj tree.
	fallbacks := candidates[1:min(3, len(candidates))]
	return Plan{Fallbacks: append([]string(nil), fallbacks...)}
}

// PlanLoctableOwner returns the directory owning a loctable that sits in
// dir: dir itself, or its parent if dir is a locale directory.
func PlanLoctableOwner(dir string) Plan {
	if IsLocaleDir(dir) {
		return Plan{Owner: filepath.Dir(dir)}
	}
	return Plan{Owner: dir}
}
