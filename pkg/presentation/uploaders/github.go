// Copyright (c) 2021-2022, The Tor Project, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uploaders

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-github/v61/github"
	"github.com/kishikawakatsumi/applelocalization-citools/internal"
	"github.com/kishikawakatsumi/applelocalization-citools/pkg/archive"
	"golang.org/x/oauth2"
)

const (
	githubPlatform = "github"
	releaseTag     = "localizations-%s"
	releaseName    = "Localizations %s"
)

var releaseBody = "Localized strings harvested from the system resource bundles."

type githubUploader struct {
	client *github.Client
	cfg    *internal.Github
}

func newGithubUploader(cfg *internal.Github) *githubUploader {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: cfg.AuthToken},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	client := github.NewClient(tc)
	return &githubUploader{client, cfg}
}

func (gh *githubUploader) Name() string {
	return githubPlatform
}

// runID recovers the run an archive belongs to from its file name.
func runID(archivePath string) string {
	return strings.TrimSuffix(filepath.Base(archivePath), "."+archive.Extension)
}

func (gh *githubUploader) Upload(ctx context.Context, archivePath string) (string, error) {
	id := runID(archivePath)
	tag := fmt.Sprintf(releaseTag, id)
	if _, _, err := gh.client.Repositories.GetReleaseByTag(ctx, gh.cfg.Owner, gh.cfg.Repo, tag); err == nil {
		return "", fmt.Errorf("%w: release %s", errObjectExists, tag)
	}

	name := fmt.Sprintf(releaseName, id)
	release := github.RepositoryRelease{
		TagName: &tag,
		Name:    &name,
		Body:    &releaseBody,
	}
	repositoryRelease, _, err := gh.client.Repositories.CreateRelease(ctx, gh.cfg.Owner, gh.cfg.Repo, &release)
	if err != nil {
		return "", fmt.Errorf("creating release %s: %w", tag, err)
	}

	file, err := os.Open(archivePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	options := github.UploadOptions{
		Name: filepath.Base(archivePath),
	}
	asset, _, err := gh.client.Repositories.UploadReleaseAsset(
		ctx, gh.cfg.Owner, gh.cfg.Repo,
		repositoryRelease.GetID(), &options, file)
	if err != nil {
		return "", fmt.Errorf("uploading release asset: %w", err)
	}
	return asset.GetBrowserDownloadURL(), nil
}
