// Copyright (c) 2024, The Tor Project, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plist decodes the property list files that hold localized
// strings: per-locale strings tables and consolidated loctables.  Binary,
// XML and OpenStep encodings are accepted, as well as the bare
// `"key" = "value";` form of strings files in UTF-8 or UTF-16.
package plist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"howett.net/plist"
)

// ProvenanceKey is the bookkeeping entry of a loctable.  It does not hold
// translations.
const ProvenanceKey = "LocProvenance"

var ErrMalformedTable = errors.New("loctable is not a mapping of locales to tables")

// DecodeStrings decodes a strings table into a flat key/value map.  Tables
// with non-string values are rejected.
func DecodeStrings(data []byte) (map[string]string, error) {
	table := make(map[string]string)
	if _, err := plist.Unmarshal(data, &table); err != nil {
		return nil, err
	}
	return table, nil
}

// DecodeStringsFile reads and decodes the strings table at path.
func DecodeStringsFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeStrings(data)
}

// DecodeTable decodes a consolidated table into locale -> key -> value.  The
// provenance entry is removed; any other top-level entry that is not a
// mapping makes the whole table malformed.
func DecodeTable(data []byte) (map[string]map[string]interface{}, error) {
	var raw map[string]interface{}
	if _, err := plist.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	delete(raw, ProvenanceKey)

	tables := make(map[string]map[string]interface{}, len(raw))
	for locale, value := range raw {
		table, ok := value.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: %q holds %T", ErrMalformedTable, locale, value)
		}
		tables[locale] = table
	}
	return tables, nil
}

// DecodeTableFile reads and decodes the loctable at path.
func DecodeTableFile(path string) (map[string]map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeTable(data)
}

// RenderValue turns a loctable value into the text stored as translation.
// Structured values (plural rules, variants) become compact JSON, scalars
// use their default string form.
func RenderValue(v interface{}) string {
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err == nil {
			return string(bytes.TrimRight(buf.Bytes(), "\n"))
		}
	case string:
		return v.(string)
	}
	return fmt.Sprint(v)
}
