// Copyright (c) 2021-2024, The Tor Project, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"path/filepath"
	"sort"
)

// BundleRef identifies one resource container found on disk.  Two
// references are the same bundle if they share BundlePath; LoctablePath is
// only set for references created from a consolidated table.
type BundleRef struct {
	Framework    string `json:"framework"`
	BundlePath   string `json:"bundlePath"`
	LoctablePath string `json:"loctablePath,omitempty"`
}

// NewBundleRef returns a reference for the bundle at bundlePath.  The
// framework name is the basename of the bundle directory.
func NewBundleRef(bundlePath, loctablePath string) *BundleRef {
	return &BundleRef{
		Framework:    filepath.Base(bundlePath),
		BundlePath:   bundlePath,
		LoctablePath: loctablePath,
	}
}

// HasLoctable returns true if the reference was created from a consolidated
// table.
func (b *BundleRef) HasLoctable() bool {
	return b.LoctablePath != ""
}

// Uid returns the bundle's unique identifier, derived from its path.
func (b *BundleRef) Uid() Hashkey {
	return NewHashkey(b.BundlePath)
}

// Translation is one localized value of a key, together with the file it
// was read from.
type Translation struct {
	Language string `json:"language"`
	Target   string `json:"target"`
	Filename string `json:"filename"`
}

// Record is a bundle together with every translation found for it.  The
// translations of a key keep the order in which they were discovered.
type Record struct {
	BundleRef
	Localizations map[string][]Translation `json:"localizations"`
}

func NewRecord(ref *BundleRef) *Record {
	return &Record{
		BundleRef:     *ref,
		Localizations: make(map[string][]Translation),
	}
}

// Add appends a translation to the given key.
func (r *Record) Add(key string, t Translation) {
	r.Localizations[key] = append(r.Localizations[key], t)
}

func (r *Record) IsEmpty() bool {
	return len(r.Localizations) == 0
}

// Keys returns the record's translation keys in lexical order.
func (r *Record) Keys() []string {
	keys := make([]string, 0, len(r.Localizations))
	for key := range r.Localizations {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// EntryCount returns the number of translations over all keys.
func (r *Record) EntryCount() int {
	n := 0
	for _, ts := range r.Localizations {
		n += len(ts)
	}
	return n
}
