// Copyright (c) 2024, The Tor Project, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uploaders

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox"
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"
	"github.com/kishikawakatsumi/applelocalization-citools/internal"
	"golang.org/x/oauth2"
)

const dropboxPlatform = "dropbox"

type dropboxUploader struct {
	cfg *internal.Dropbox
}

func newDropboxUploader(cfg *internal.Dropbox) *dropboxUploader {
	return &dropboxUploader{cfg: cfg}
}

func (d *dropboxUploader) Name() string {
	return dropboxPlatform
}

// destination returns the Dropbox path of an archive.
func (d *dropboxUploader) destination(archivePath string) string {
	return path.Join("/", d.cfg.Folder, filepath.Base(archivePath))
}

// client returns a files client.  A configured endpoint is the base URL of
// every route, in place of the Dropbox hosts.
func (d *dropboxUploader) client(ctx context.Context) files.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: d.cfg.AccessToken})
	config := dropbox.Config{
		Token:    d.cfg.AccessToken,
		LogLevel: dropbox.LogOff,
		Client:   oauth2.NewClient(ctx, ts),
	}
	if d.cfg.EndpointUrl != "" {
		endpoint := d.cfg.EndpointUrl
		config.URLGenerator = func(hostType string, namespace string, route string) string {
			return endpoint + "/2/" + namespace + "/" + route
		}
	}
	return files.New(config)
}

// Upload adds the archive to Dropbox.  An existing file is neither replaced
// nor renamed around.
func (d *dropboxUploader) Upload(ctx context.Context, archivePath string) (string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	arg := &files.UploadArg{
		CommitInfo: files.CommitInfo{
			Path:           d.destination(archivePath),
			Mode:           &files.WriteMode{Tagged: dropbox.Tagged{Tag: files.WriteModeAdd}},
			Autorename:     false,
			Mute:           false,
			StrictConflict: false,
		},
	}

	metadata, err := d.client(ctx).Upload(arg, f)
	if err != nil {
		return "", dropboxError(err)
	}
	if metadata == nil || metadata.PathDisplay == "" {
		return d.destination(archivePath), nil
	}
	return metadata.PathDisplay, nil
}

// dropboxError turns the errors of rejected requests into an *UploadError.
// Endpoint errors are always sent with status 409.
func dropboxError(err error) error {
	var apiErr files.UploadAPIError
	if errors.As(err, &apiErr) {
		return &UploadError{Destination: dropboxPlatform, StatusCode: http.StatusConflict, Body: apiErr.ErrorSummary}
	}
	var apiErrPtr *files.UploadAPIError
	if errors.As(err, &apiErrPtr) {
		return &UploadError{Destination: dropboxPlatform, StatusCode: http.StatusConflict, Body: apiErrPtr.ErrorSummary}
	}
	var sdkErr dropbox.SDKInternalError
	if errors.As(err, &sdkErr) {
		return &UploadError{Destination: dropboxPlatform, StatusCode: sdkErr.StatusCode, Body: sdkErr.Content}
	}
	return err
}
