// Copyright (c) 2024, The Tor Project, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlite keeps a queryable index of the harvested translations next
// to the JSON records, so that the archive can be loaded without parsing
// every record file.
package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kishikawakatsumi/applelocalization-citools/pkg/core"
)

const (
	PersistenceMethod = "sqlite"
	Filename          = "translations.sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS bundles (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	uid           TEXT NOT NULL,
	framework     TEXT NOT NULL,
	bundle_path   TEXT NOT NULL,
	loctable_path TEXT,
	record_file   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS translations (
	bundle_id INTEGER NOT NULL REFERENCES bundles(id),
	key       TEXT NOT NULL,
	language  TEXT NOT NULL,
	target    TEXT NOT NULL,
	filename  TEXT NOT NULL,
	position  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS translations_key ON translations(key);
CREATE INDEX IF NOT EXISTS translations_language ON translations(language);
`

// Index is an SQLite database holding one row per translation.
type Index struct {
	db *sql.DB
}

// Open creates or opens the index in dir.
func Open(dir string) (*Index, error) {
	db, err := sql.Open("sqlite3", "file:"+filepath.Join(dir, Filename)+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating index schema: %w", err)
	}
	return &Index{db: db}, nil
}

// Add stores a record and all its translations in a single transaction.
// recordFile is the name of the JSON file the record was written to.
func (ix *Index) Add(rec *core.Record, recordFile string) (err error) {
	tx, err := ix.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var loctable sql.NullString
	if rec.HasLoctable() {
		loctable = sql.NullString{String: rec.LoctablePath, Valid: true}
	}
	res, err := tx.Exec(
		`INSERT INTO bundles (uid, framework, bundle_path, loctable_path, record_file) VALUES (?, ?, ?, ?, ?)`,
		rec.Uid().String(), rec.Framework, rec.BundlePath, loctable, filepath.Base(recordFile))
	if err != nil {
		return err
	}
	bundleID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO translations (bundle_id, key, language, target, filename, position) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, key := range rec.Keys() {
		for pos, t := range rec.Localizations[key] {
			if _, err = stmt.Exec(bundleID, key, t.Language, t.Target, t.Filename, pos); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// Lookup returns the translations stored for key, over all bundles.
func (ix *Index) Lookup(key string) ([]core.Translation, error) {
	rows, err := ix.db.Query(
		`SELECT language, target, filename FROM translations WHERE key = ? ORDER BY bundle_id, position`, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var translations []core.Translation
	for rows.Next() {
		var t core.Translation
		if err := rows.Scan(&t.Language, &t.Target, &t.Filename); err != nil {
			return nil, err
		}
		translations = append(translations, t)
	}
	return translations, rows.Err()
}

// Count returns the number of bundles and translations in the index.
func (ix *Index) Count() (bundles int, translations int, err error) {
	if err = ix.db.QueryRow(`SELECT COUNT(*) FROM bundles`).Scan(&bundles); err != nil {
		return
	}
	err = ix.db.QueryRow(`SELECT COUNT(*) FROM translations`).Scan(&translations)
	return
}

func (ix *Index) Close() error {
	return ix.db.Close()
}
