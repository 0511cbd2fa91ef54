// Copyright (c) 2021-2022, The Tor Project, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uploaders

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kishikawakatsumi/applelocalization-citools/internal"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const googleDrivePlatform = "gdrive"

func newGoogleDriveUploader(cfg *internal.GoogleDriveUploader) (*googleDriveUploader, error) {
	uploader := googleDriveUploader{config: cfg}
	var err error
	uploader.drive, err = uploader.createApiClientFromConfig(context.Background())
	return &uploader, err
}

type googleDriveUploader struct {
	config *internal.GoogleDriveUploader
	drive  *drive.Service
}

func (g *googleDriveUploader) Name() string {
	return googleDrivePlatform
}

func (g *googleDriveUploader) Upload(ctx context.Context, archivePath string) (string, error) {
	filename := filepath.Base(archivePath)
	existing, err := g.findFiles(ctx, g.config.ParentFolderID, filename)
	if err != nil {
		return "", err
	}
	if len(existing) != 0 {
		return "", fmt.Errorf("%w: %s", errObjectExists, filename)
	}

	fd, err := os.Open(archivePath)
	if err != nil {
		return "", err
	}
	defer fd.Close()

	return g.uploadFileAndGetLink(ctx, g.config.ParentFolderID, filename, fd)
}

// tokenFromFile Retrieves a token from a local file.
// reused from https://developers.google.com/drive/api/v3/quickstart/go
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func (g *googleDriveUploader) createApiClientFromConfig(ctx context.Context) (*drive.Service, error) {
	b, err := os.ReadFile(g.config.AppCredentialPath)
	if err != nil {
		return nil, err
	}
	config, err := google.ConfigFromJSON(b, drive.DriveFileScope)
	if err != nil {
		return nil, err
	}

	userToken, err := tokenFromFile(g.config.UserCredentialPath)
	if err != nil {
		return nil, err
	}

	client := config.Client(ctx, userToken)
	srv, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, err
	}

	return srv, nil
}

func (g *googleDriveUploader) findFiles(ctx context.Context, folderID string, filename string) ([]*drive.File, error) {
	query := fmt.Sprintf("'%v' in parents and name = '%v' and trashed = false", folderID, filename)
	fileList, err := g.drive.Files.List().Q(query).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return fileList.Files, nil
}

func (g *googleDriveUploader) uploadFileAndGetLink(ctx context.Context, folderID string, filename string, reader io.Reader) (string, error) {
	file := &drive.File{Name: filename, Parents: []string{folderID}}
	result, err := g.drive.Files.Create(file).Media(reader).Context(ctx).Do()
	if err != nil {
		return "", err
	}

	getResult, err := g.drive.Files.Get(result.Id).Fields("webContentLink").Context(ctx).Do()
	if err != nil {
		return "", err
	}

	return getResult.WebContentLink, err
}
