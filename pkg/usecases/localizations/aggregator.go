// Copyright (c) 2024, The Tor Project, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package localizations

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/kishikawakatsumi/applelocalization-citools/pkg/core"
	"github.com/kishikawakatsumi/applelocalization-citools/pkg/plist"
	"github.com/kishikawakatsumi/applelocalization-citools/pkg/usecases/bundles"
)

// Catalog lists the localized resources of a bundle.
type Catalog interface {
	Localizations(bundle string) []string
	LocalizationDir(bundle, locale string) (string, bool)
}

// Stats counts what the aggregator has read so far.
type Stats struct {
	Bundles      int
	Records      int
	Entries      int
	FilesRead    int
	FilesSkipped int
	// LoctableEntries and StringsEntries split Entries by source.
	LoctableEntries int
	StringsEntries  int
}

// Aggregator collects the translations of bundles.  Unreadable or
// undecodable files are skipped silently and only show up in Stats.
type Aggregator struct {
	catalog Catalog
	Stats   Stats
}

func NewAggregator(catalog Catalog) *Aggregator {
	return &Aggregator{catalog: catalog}
}

// AggregateAll returns one record per bundle reference, in the order of
// refs.  Bundles without any translation are left out.
func (a *Aggregator) AggregateAll(refs []*core.BundleRef) []*core.Record {
	var records []*core.Record
	for _, ref := range refs {
		rec := a.Aggregate(ref)
		if rec.IsEmpty() {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// Aggregate reads the loctable of ref, if any, and then the strings files
// of every locale the bundle declares.
func (a *Aggregator) Aggregate(ref *core.BundleRef) *core.Record {
	a.Stats.Bundles++
	rec := core.NewRecord(ref)

	if ref.HasLoctable() {
		a.addLoctable(rec, ref.LoctablePath)
	}
	for _, locale := range a.catalog.Localizations(ref.BundlePath) {
		dir, ok := a.catalog.LocalizationDir(ref.BundlePath, locale)
		if !ok {
			a.Stats.FilesSkipped++
			continue
		}
		a.addLocaleDir(rec, locale, dir)
	}

	if !rec.IsEmpty() {
		a.Stats.Records++
	}
	return rec
}

func (a *Aggregator) addLoctable(rec *core.Record, path string) {
	tables, err := plist.DecodeTableFile(path)
	if err != nil {
		a.Stats.FilesSkipped++
		return
	}
	a.Stats.FilesRead++

	filename := filepath.Base(path)
	for _, locale := range sortedKeys(tables) {
		table := tables[locale]
		for _, key := range sortedKeys(table) {
			rec.Add(key, core.Translation{
				Language: locale,
				Target:   plist.RenderValue(table[key]),
				Filename: filename,
			})
			a.Stats.Entries++
			a.Stats.LoctableEntries++
		}
	}
}

func (a *Aggregator) addLocaleDir(rec *core.Record, locale, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		a.Stats.FilesSkipped++
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != bundles.StringsExt {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		table, err := plist.DecodeStringsFile(path)
		if err != nil {
			a.Stats.FilesSkipped++
			continue
		}
		a.Stats.FilesRead++

		for _, key := range sortedKeys(table) {
			rec.Add(key, core.Translation{
				Language: locale,
				Target:   table[key],
				Filename: entry.Name(),
			})
			a.Stats.Entries++
			a.Stats.StringsEntries++
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
