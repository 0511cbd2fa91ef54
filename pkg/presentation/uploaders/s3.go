// Copyright (c) 2021-2022, The Tor Project, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uploaders

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/kishikawakatsumi/applelocalization-citools/internal"
)

const s3LinkExpiry = time.Hour * 24 * 6

func newS3Uploader(cfg *internal.S3Uploader) (*s3uploader, error) {
	if cfg.Bucket == "" || cfg.EndpointUrl == "" {
		return nil, fmt.Errorf("s3 uploader %q needs a bucket and an endpoint", cfg.Name)
	}
	s3Client, err := newS3Client(cfg)
	if err != nil {
		return nil, err
	}
	return &s3uploader{config: cfg, s3: s3Client}, nil
}

type s3uploader struct {
	config *internal.S3Uploader
	s3     *s3.Client
}

func (s *s3uploader) Name() string {
	if s.config.Name == "" {
		return "s3"
	}
	return "s3:" + s.config.Name
}

func (s *s3uploader) Upload(ctx context.Context, archivePath string) (string, error) {
	obj := s.formatNameForFile(filepath.Base(archivePath))
	if s.checkObjectExistence(ctx, obj) == nil {
		return "", fmt.Errorf("%w: s3://%s/%s", errObjectExists, obj.bucket, obj.name)
	}

	fd, err := os.Open(archivePath)
	if err != nil {
		return "", err
	}
	defer fd.Close()

	if err := s.createObject(ctx, obj, fd); err != nil {
		return "", err
	}
	return s.createLink(ctx, obj)
}

func (s *s3uploader) checkObjectExistence(ctx context.Context, obj s3Object) error {
	{
		_, err := s.s3.HeadBucket(ctx, &s3.HeadBucketInput{
			Bucket: &obj.bucket,
		})
		if err != nil {
			return err
		}
	}
	{
		_, err := s.s3.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: &obj.bucket,
			Key:    &obj.name,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *s3uploader) ensureBucketExist(ctx context.Context, bucket string) error {
	_, err := s.s3.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: &bucket,
	})
	if err != nil {
		_, errCreateBucket := s.s3.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: &bucket})
		return errCreateBucket
	}
	return nil
}

func (s *s3uploader) createObject(ctx context.Context, obj s3Object, content io.Reader) error {
	if err := s.ensureBucketExist(ctx, obj.bucket); err != nil {
		return err
	}

	_, err := s.s3.PutObject(ctx,
		&s3.PutObjectInput{Key: &obj.name, Bucket: &obj.bucket, Body: content})
	return err
}

func (s *s3uploader) createLink(ctx context.Context, obj s3Object) (string, error) {
	presignClient := s3.NewPresignClient(s.s3)
	presignedResult, err := presignClient.PresignGetObject(ctx,
		&s3.GetObjectInput{Key: &obj.name, Bucket: &obj.bucket}, s3.WithPresignExpires(s3LinkExpiry))
	if err != nil {
		return "", err
	}
	return presignedResult.URL, nil
}

func (s *s3uploader) formatNameForFile(filename string) s3Object {
	return s3Object{name: path.Join(s.config.Prefix, filename), bucket: s.config.Bucket}
}
