// Copyright (c) 2021-2022, The Tor Project, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package uploaders sends the archive of a run to remote storage.
package uploaders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/kishikawakatsumi/applelocalization-citools/internal"
)

// Uploader stores an archive at one destination and returns where it can
// be found.  An existing file at the destination is never overwritten.
type Uploader interface {
	Name() string
	Upload(ctx context.Context, archivePath string) (string, error)
}

var errObjectExists = errors.New("object already exists")

// UploadError reports a destination that answered with a non-2xx status.
type UploadError struct {
	Destination string
	StatusCode  int
	Body        string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("[%s] upload failed with status %d: %s", e.Destination, e.StatusCode, e.Body)
}

// Result is the outcome of one upload.
type Result struct {
	Destination string
	Location    string
	Err         error
}

// New builds an uploader for every destination configured in cfg.
// Destinations that cannot be set up are logged and left out.
func New(cfg *internal.Uploaders) []Uploader {
	var uploaders []Uploader

	if cfg.Dropbox.Enabled() {
		uploaders = append(uploaders, newDropboxUploader(&cfg.Dropbox))
	}

	for i := range cfg.S3Uploaders {
		s3Uploader, err := newS3Uploader(&cfg.S3Uploaders[i])
		if err != nil {
			log.Printf("cannot create S3 uploader: %v", err)
			continue
		}
		uploaders = append(uploaders, s3Uploader)
	}

	if cfg.GoogleDrive.Enabled() {
		googleDrive, err := newGoogleDriveUploader(&cfg.GoogleDrive)
		if err != nil {
			log.Printf("cannot create Google Drive uploader: %v", err)
		} else {
			uploaders = append(uploaders, googleDrive)
		}
	}

	if cfg.Github.Enabled() {
		uploaders = append(uploaders, newGithubUploader(&cfg.Github))
	}

	if cfg.Gitlab.Enabled() {
		gl, err := newGitlabUploader(&cfg.Gitlab)
		if err != nil {
			log.Printf("cannot create GitLab uploader: %v", err)
		} else {
			uploaders = append(uploaders, gl)
		}
	}

	return uploaders
}

// UploadAll sends the archive to every uploader in turn.  A failing
// destination does not stop the others; all failures are returned together.
func UploadAll(ctx context.Context, uploaders []Uploader, archivePath string) ([]Result, error) {
	var (
		results []Result
		errs    []error
	)
	for _, u := range uploaders {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		log.Printf("Uploading %q to %s.", archivePath, u.Name())
		location, err := u.Upload(ctx, archivePath)
		if err != nil {
			log.Printf("[%s] Upload failed: %v", u.Name(), err)
			errs = append(errs, fmt.Errorf("%s: %w", u.Name(), err))
		} else {
			log.Printf("[%s] Uploaded to %s", u.Name(), location)
		}
		results = append(results, Result{Destination: u.Name(), Location: location, Err: err})
	}
	return results, errors.Join(errs...)
}
