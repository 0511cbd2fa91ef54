// Copyright (c) 2024, The Tor Project, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uploaders

import (
	"context"
	"errors"
	"testing"

	"github.com/kishikawakatsumi/applelocalization-citools/internal"
	"github.com/stretchr/testify/assert"
)

type fakeUploader struct {
	name     string
	location string
	err      error
	calls    int
}

func (f *fakeUploader) Name() string {
	return f.name
}

func (f *fakeUploader) Upload(ctx context.Context, archivePath string) (string, error) {
	f.calls++
	return f.location, f.err
}

func TestNew(t *testing.T) {
	uploaders := New(&internal.Uploaders{})
	assert.Empty(t, uploaders)

	cfg := internal.Uploaders{
		Dropbox: internal.Dropbox{AccessToken: "secret"},
		S3Uploaders: []internal.S3Uploader{
			{Name: "complete", Bucket: "localizations", EndpointUrl: "https://s3.example.com/"},
			{Name: "incomplete"},
		},
		Github: internal.Github{AuthToken: "secret", Owner: "owner", Repo: "repo"},
		Gitlab: internal.Gitlab{AuthToken: "secret", Project: "42"},
	}
	uploaders = New(&cfg)

	var names []string
	for _, u := range uploaders {
		names = append(names, u.Name())
	}
	assert.Equal(t, []string{"dropbox", "s3:complete", "github", "gitlab"}, names)
}

func TestUploadAll(t *testing.T) {
	failure := errors.New("quota exceeded")
	first := &fakeUploader{name: "first", err: failure}
	second := &fakeUploader{name: "second", location: "/second/1.tar.zst"}

	results, err := UploadAll(context.Background(), []Uploader{first, second}, "1.tar.zst")
	assert.ErrorIs(t, err, failure)
	assert.Contains(t, err.Error(), "first")
	assert.Equal(t, 1, second.calls)

	assert.Len(t, results, 2)
	assert.Equal(t, "first", results[0].Destination)
	assert.ErrorIs(t, results[0].Err, failure)
	assert.Equal(t, "/second/1.tar.zst", results[1].Location)
	assert.NoError(t, results[1].Err)
}

func TestUploadAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	uploader := &fakeUploader{name: "never"}
	results, err := UploadAll(ctx, []Uploader{uploader}, "1.tar.zst")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
	assert.Equal(t, 0, uploader.calls)
}

func TestUploadError(t *testing.T) {
	err := &UploadError{Destination: "dropbox", StatusCode: 409, Body: "conflict"}
	assert.Equal(t, "[dropbox] upload failed with status 409: conflict", err.Error())
}
