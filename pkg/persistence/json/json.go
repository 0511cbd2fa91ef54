// Copyright (c) 2021-2022, The Tor Project, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
)

const (
	PersistenceMethod = "json"
	Extension         = ".json"
)

type JsonPersistence struct {
	filename string
}

// Load decodes the content of f.filename and writes the result to the given
// interface.
func (f *JsonPersistence) Load(i interface{}) error {
	fh, err := os.Open(f.filename)
	if err != nil {
		return err
	}
	defer fh.Close()

	dec := json.NewDecoder(fh)
	return dec.Decode(i)
}

// Save encodes the given interface to f.filename as indented JSON.
func (f *JsonPersistence) Save(i interface{}) (err error) {
	dirPath := path.Dir(f.filename)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return err
	}

	fh, err := os.Create(f.filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fh.Close(); err == nil {
			err = cerr
		}
	}()

	enc := json.NewEncoder(fh)
	enc.SetIndent("", "  ")
	return enc.Encode(i)
}

// Filename returns the file the persistence reads from and writes to.
func (f *JsonPersistence) Filename() string {
	return f.filename
}

// New returns a new JsonPersistence instance.
func New(name string, workingDir string) *JsonPersistence {
	file := fmt.Sprintf("%s%s", name, Extension)
	filename := path.Join(workingDir, file)
	return &JsonPersistence{filename: filename}
}
