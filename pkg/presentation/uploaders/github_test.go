// Copyright (c) 2024, The Tor Project, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uploaders

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/kishikawakatsumi/applelocalization-citools/internal"
	"github.com/stretchr/testify/assert"
)

func newTestGithubUploader(t *testing.T, handler http.Handler) *githubUploader {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	uploader := newGithubUploader(&internal.Github{AuthToken: "secret", Owner: "owner", Repo: "repo"})
	u, err := url.Parse(server.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	uploader.client.BaseURL = u
	uploader.client.UploadURL = u
	return uploader
}

func TestGithubUpload(t *testing.T) {
	archivePath := writeArchive(t, "1700000000000000.tar.zst", []byte("archive content"))

	var (
		release map[string]interface{}
		asset   []byte
	)
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/repo/releases/tags/localizations-1700000000000000", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	})
	mux.HandleFunc("/repos/owner/repo/releases", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&release))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":42}`))
	})
	mux.HandleFunc("/repos/owner/repo/releases/42/assets", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1700000000000000.tar.zst", r.URL.Query().Get("name"))
		asset, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":7,"browser_download_url":"https://github.example/owner/repo/releases/download/localizations-1700000000000000/1700000000000000.tar.zst"}`))
	})
	uploader := newTestGithubUploader(t, mux)

	location, err := uploader.Upload(context.Background(), archivePath)
	assert.NoError(t, err)
	assert.Equal(t, "https://github.example/owner/repo/releases/download/localizations-1700000000000000/1700000000000000.tar.zst", location)
	assert.Equal(t, "localizations-1700000000000000", release["tag_name"])
	assert.Equal(t, []byte("archive content"), asset)
}

func TestGithubReleaseExists(t *testing.T) {
	archivePath := writeArchive(t, "1.tar.zst", []byte("archive"))

	created := false
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/repo/releases/tags/localizations-1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"tag_name":"localizations-1"}`))
	})
	mux.HandleFunc("/repos/owner/repo/releases", func(w http.ResponseWriter, r *http.Request) {
		created = true
	})
	uploader := newTestGithubUploader(t, mux)

	_, err := uploader.Upload(context.Background(), archivePath)
	assert.ErrorIs(t, err, errObjectExists)
	assert.False(t, created)
}

func TestRunID(t *testing.T) {
	assert.Equal(t, "1700000000000000", runID("/tmp/staging/1700000000000000.tar.zst"))
	assert.Equal(t, "other.zip", runID("other.zip"))
}
