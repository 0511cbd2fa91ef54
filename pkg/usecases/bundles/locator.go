// Copyright (c) 2024, The Tor Project, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bundles

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/kishikawakatsumi/applelocalization-citools/pkg/core"
)

var (
	// ErrUnresolvable means that no directory could be found that owns a
	// resource table.
	ErrUnresolvable = errors.New("no bundle owns the resource table")
	// ErrNotLoadable means that the directory owning a resource table was
	// rejected by the bundle probe.
	ErrNotLoadable = errors.New("bundle is not loadable")
)

// ResolveError reports a resource table whose bundle could not be
// determined.  It aborts the whole run.
type ResolveError struct {
	File   string
	Bundle string
	Err    error
}

func (e *ResolveError) Error() string {
	if e.Bundle == "" {
		return fmt.Sprintf("%s: %v", e.File, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.File, e.Bundle, e.Err)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// Locator finds the bundles below a set of roots.  A Locator is meant for a
// single run: bundles found through strings files are reported only once,
// even across roots.
type Locator struct {
	probe Probe
	seen  map[string]struct{}
}

func NewLocator(probe Probe) *Locator {
	return &Locator{
		probe: probe,
		seen:  make(map[string]struct{}),
	}
}

// Locate walks root and returns the bundles that own its resource tables,
// in the order they were discovered.  Every loctable yields its own
// reference; a bundle found through strings files yields one reference the
// first time it is seen.  A table whose bundle cannot be resolved stops the
// walk with a *ResolveError.
func (l *Locator) Locate(root string) ([]*core.BundleRef, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		log.Printf("Root %q does not exist, skipping it.", root)
		return nil, nil
	}

	var refs []*core.BundleRef
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path != root && d != nil && d.IsDir() {
				log.Printf("Skipping unreadable directory %q: %v", path, err)
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}

		switch filepath.Ext(path) {
		case LoctableExt:
			bundle, err := l.resolve(path, PlanLoctableOwner(filepath.Dir(path)))
			if err != nil {
				return err
			}
			refs = append(refs, core.NewBundleRef(bundle, path))
		case StringsExt:
			bundle, err := l.resolve(path, PlanStringsOwner(filepath.Dir(path)))
			if err != nil {
				return err
			}
			if _, ok := l.seen[bundle]; ok {
				return nil
			}
			l.seen[bundle] = struct{}{}
			refs = append(refs, core.NewBundleRef(bundle, ""))
		}
		return nil
	})
	return refs, err
}

// resolve turns a plan into a bundle path by asking the probe.
func (l *Locator) resolve(file string, plan Plan) (string, error) {
	if plan.Owner != "" {
		if !l.probe.IsLoadable(plan.Owner) {
			return "", &ResolveError{File: file, Bundle: plan.Owner, Err: ErrNotLoadable}
		}
		return plan.Owner, nil
	}

	for _, candidate := range plan.Fallbacks {
		if l.probe.IsLoadable(candidate) {
			return candidate, nil
		}
	}
	return "", &ResolveError{File: file, Err: ErrUnresolvable}
}
