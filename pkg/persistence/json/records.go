// Copyright (c) 2024, The Tor Project, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package json

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/kishikawakatsumi/applelocalization-citools/pkg/core"
	"github.com/kishikawakatsumi/applelocalization-citools/pkg/persistence"
)

// Sequence numbers the record files of a run.  The first file gets
// FirstSequence.
type Sequence int

const FirstSequence Sequence = 1

func (s Sequence) Next() Sequence {
	return s + 1
}

// RecordName returns the file name, without extension, of a record:
// <framework>_<loctable>_<seq> for records built from a loctable and
// <framework>_<seq> otherwise.
func RecordName(rec *core.Record, seq Sequence) string {
	if rec.HasLoctable() {
		return fmt.Sprintf("%s_%s_%d", rec.Framework, filepath.Base(rec.LoctablePath), seq)
	}
	return fmt.Sprintf("%s_%d", rec.Framework, seq)
}

// Written is a record and the file it was written to.
type Written struct {
	Record   *core.Record
	Filename string
	Sequence Sequence
}

// WriteRecords writes every non-empty record into dir, numbering the files
// in order.  Empty records do not consume a sequence number.  The first
// write error stops the emission.
func WriteRecords(dir string, records []*core.Record) ([]Written, error) {
	var written []Written
	seq := FirstSequence
	for _, rec := range records {
		if rec.IsEmpty() {
			continue
		}
		store := New(RecordName(rec, seq), dir)
		if err := persistence.Mechanism(store).Save(rec); err != nil {
			return written, fmt.Errorf("writing %s: %w", store.Filename(), err)
		}
		log.Printf("Wrote %d keys of %s to %q.", len(rec.Localizations), rec.Framework, store.Filename())

		written = append(written, Written{Record: rec, Filename: store.Filename(), Sequence: seq})
		seq = seq.Next()
	}
	return written, nil
}
