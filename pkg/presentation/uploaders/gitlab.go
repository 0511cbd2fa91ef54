// Copyright (c) 2021-2022, The Tor Project, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uploaders

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kishikawakatsumi/applelocalization-citools/internal"
	"github.com/xanzy/go-gitlab"
)

const (
	gitlabPlatform = "gitlab"
	defaultBranch  = "main"
)

type gitlabUploader struct {
	client *gitlab.Client
	cfg    *internal.Gitlab
}

func newGitlabUploader(cfg *internal.Gitlab) (*gitlabUploader, error) {
	var options []gitlab.ClientOptionFunc
	if cfg.BaseUrl != "" {
		options = append(options, gitlab.WithBaseURL(cfg.BaseUrl))
	}
	client, err := gitlab.NewClient(cfg.AuthToken, options...)
	return &gitlabUploader{client, cfg}, err
}

func (gl *gitlabUploader) Name() string {
	return gitlabPlatform
}

func (gl *gitlabUploader) branch() string {
	if gl.cfg.Branch == "" {
		return defaultBranch
	}
	return gl.cfg.Branch
}

// Upload commits the archive to the configured project.  GitLab refuses to
// create a file that already exists on the branch.
func (gl *gitlabUploader) Upload(ctx context.Context, archivePath string) (string, error) {
	project, _, err := gl.client.Projects.GetProject(gl.cfg.Project, nil, gitlab.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("fetching project %s: %w", gl.cfg.Project, err)
	}

	b, err := os.ReadFile(archivePath)
	if err != nil {
		return "", err
	}
	content := base64.StdEncoding.EncodeToString(b)

	branch := gl.branch()
	filename := filepath.Base(archivePath)
	encoding := "base64"
	fileOptions := gitlab.CreateFileOptions{
		Branch:        &branch,
		CommitMessage: &filename,
		Encoding:      &encoding,
		Content:       &content,
	}
	_, _, err = gl.client.RepositoryFiles.CreateFile(gl.cfg.Project, filename, &fileOptions, gitlab.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", filename, err)
	}

	return fmt.Sprintf("%s/-/raw/%s/%s?inline=false", project.WebURL, branch, filename), nil
}
