// Copyright (c) 2024, The Tor Project, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uploaders

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/kishikawakatsumi/applelocalization-citools/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArchive(t *testing.T, name string, content []byte) string {
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDropboxUpload(t *testing.T) {
	content := []byte("archive content")
	archivePath := writeArchive(t, "1700000000000000.tar.zst", content)

	var (
		arg  map[string]interface{}
		body []byte
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/2/files/upload", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
		assert.NoError(t, json.Unmarshal([]byte(r.Header.Get("Dropbox-API-Arg")), &arg))
		body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"1700000000000000.tar.zst","path_display":"/Harvest/1700000000000000.tar.zst","id":"id:1","size":15}`))
	}))
	defer server.Close()

	uploader := newDropboxUploader(&internal.Dropbox{
		AccessToken: "secret",
		EndpointUrl: server.URL,
		Folder:      "Harvest",
	})
	location, err := uploader.Upload(context.Background(), archivePath)
	require.NoError(t, err)
	assert.Equal(t, "/Harvest/1700000000000000.tar.zst", location)
	assert.Equal(t, content, body)

	assert.Equal(t, "/Harvest/1700000000000000.tar.zst", arg["path"])
	assert.Equal(t, map[string]interface{}{".tag": "add"}, arg["mode"])
	for _, flag := range []string{"autorename", "mute", "strict_conflict"} {
		assert.NotEqual(t, true, arg[flag], flag)
	}
}

func TestDropboxUploadConflict(t *testing.T) {
	archivePath := writeArchive(t, "1.tar.zst", []byte("archive"))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error_summary":"path/conflict/file/..","error":{".tag":"other"}}`))
	}))
	defer server.Close()

	uploader := newDropboxUploader(&internal.Dropbox{AccessToken: "secret", EndpointUrl: server.URL})
	_, err := uploader.Upload(context.Background(), archivePath)

	var uploadErr *UploadError
	require.True(t, errors.As(err, &uploadErr), "%v", err)
	assert.Equal(t, dropboxPlatform, uploadErr.Destination)
	assert.Equal(t, http.StatusConflict, uploadErr.StatusCode)
	assert.Contains(t, uploadErr.Body, "path/conflict")
}

func TestDropboxUploadServerError(t *testing.T) {
	archivePath := writeArchive(t, "1.tar.zst", []byte("archive"))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`Error in call to API function "files/upload": bad request`))
	}))
	defer server.Close()

	uploader := newDropboxUploader(&internal.Dropbox{AccessToken: "secret", EndpointUrl: server.URL})
	_, err := uploader.Upload(context.Background(), archivePath)
	assert.Error(t, err)
}

func TestDropboxDestination(t *testing.T) {
	uploader := newDropboxUploader(&internal.Dropbox{AccessToken: "secret"})
	assert.Equal(t, "/1.tar.zst", uploader.destination("/tmp/1.tar.zst"))

	uploader = newDropboxUploader(&internal.Dropbox{AccessToken: "secret", Folder: "/Harvest/"})
	assert.Equal(t, "/Harvest/1.tar.zst", uploader.destination("/tmp/1.tar.zst"))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"2.tar.zst"}`))
	}))
	defer server.Close()

	uploader = newDropboxUploader(&internal.Dropbox{AccessToken: "secret", EndpointUrl: server.URL})
	location, err := uploader.Upload(context.Background(), writeArchive(t, "2.tar.zst", []byte("x")))
	require.NoError(t, err)
	assert.Equal(t, "/2.tar.zst", location)
}

func TestDropboxMissingArchive(t *testing.T) {
	uploader := newDropboxUploader(&internal.Dropbox{AccessToken: "secret"})
	_, err := uploader.Upload(context.Background(), filepath.Join(t.TempDir(), "missing.tar.zst"))
	assert.Error(t, err)
}
