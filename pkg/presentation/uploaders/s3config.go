// Copyright (c) 2021-2024, The Tor Project, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uploaders

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/kishikawakatsumi/applelocalization-citools/internal"
)

// defaultS3Region is used to sign requests when the endpoint has no region,
// which is what most S3 compatible services expect.
const defaultS3Region = "us-east-1"

type s3Object struct {
	bucket string
	name   string
}

var errUnknownSigningMethod = errors.New("signing method is not recognized")

// newS3Client returns a client for the configured endpoint.  Buckets are
// addressed by path so that the bucket name never shows up in the host name.
// Only v4 signatures are supported.
func newS3Client(cfg *internal.S3Uploader) (*s3.Client, error) {
	switch cfg.SigningMethod {
	case "", "v4":
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownSigningMethod, cfg.SigningMethod)
	}

	region := cfg.EndpointRegion
	if region == "" {
		region = defaultS3Region
	}
	credentials := aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		return aws.Credentials{AccessKeyID: cfg.AccessKey, SecretAccessKey: cfg.AccessSecret}, nil
	})

	return s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(cfg.EndpointUrl),
		UsePathStyle: true,
		Credentials:  credentials,
	}), nil
}
