// Copyright (c) 2024, The Tor Project, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package json

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kishikawakatsumi/applelocalization-citools/pkg/core"
)

func record(bundle, loctable string, keys ...string) *core.Record {
	rec := core.NewRecord(core.NewBundleRef(bundle, loctable))
	for _, key := range keys {
		rec.Add(key, core.Translation{Language: "en", Target: key + "!", Filename: "App.strings"})
	}
	return rec
}

func TestRecordName(t *testing.T) {
	assert.Equal(t, "UIKit.framework_3",
		RecordName(record("/S/UIKit.framework", ""), 3))
	assert.Equal(t, "UIKit.framework_Localizable.loctable_4",
		RecordName(record("/S/UIKit.framework", "/S/UIKit.framework/Localizable.loctable"), 4))
}

func TestWriteRecords(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "1697000000000000")
	records := []*core.Record{
		record("/S/A.framework", "", "K1"),
		record("/S/Empty.framework", ""),
		record("/S/B.framework", "/S/B.framework/T.loctable", "K2", "K3"),
		record("/S/A.framework", "", "K4"),
	}

	written, err := WriteRecords(dir, records)
	require.NoError(t, err)
	require.Len(t, written, 3)

	var names []string
	for i, w := range written {
		names = append(names, filepath.Base(w.Filename))
		if i > 0 {
			assert.Greater(t, w.Sequence, written[i-1].Sequence)
		}
	}
	assert.Equal(t, []string{
		"A.framework_1.json",
		"B.framework_T.loctable_2.json",
		"A.framework_3.json",
	}, names)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	for _, w := range written {
		var reloaded core.Record
		require.NoError(t, New(strings.TrimSuffix(filepath.Base(w.Filename), Extension), dir).Load(&reloaded))
		assert.False(t, reloaded.IsEmpty())
		assert.Equal(t, w.Record.BundlePath, reloaded.BundlePath)
		assert.Equal(t, w.Record.Localizations, reloaded.Localizations)
	}

	raw, err := os.ReadFile(written[0].Filename)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  \"framework\": \"A.framework\"")
}

func TestWriteRecordsFailure(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	_, err := WriteRecords(filepath.Join(blocker, "out"), []*core.Record{record("/S/A.framework", "", "K1")})
	assert.Error(t, err)
}
