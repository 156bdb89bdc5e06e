// ABOUTME: S3 object storage for publishing the headlines snapshot
// ABOUTME: Wraps the AWS SDK v2 client behind the narrow ObjectStorage interface

package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// snapshotCacheControl keeps CDN copies of the snapshot short lived
const snapshotCacheControl = "public, max-age=300"

// PutObjectAPI is the part of *s3.Client the storage uses
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config contains the upload target. Empty values fall back to the AWS default chain.
type Config struct {
	Bucket string
	Prefix string
	Region string

	// Endpoint targets an S3-compatible service and switches to path-style addressing
	Endpoint string
}

// Storage implements interfaces.ObjectStorage for a single bucket
type Storage struct {
	client PutObjectAPI
	bucket string
	prefix string
}

// New loads the AWS configuration and creates the storage
func New(ctx context.Context, cfg Config) (*Storage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}

	var loadOpts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewWithClient(client, cfg.Bucket, cfg.Prefix), nil
}

// NewWithClient creates the storage over an existing client
func NewWithClient(client PutObjectAPI, bucket, prefix string) *Storage {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &Storage{client: client, bucket: bucket, prefix: prefix}
}

// Put uploads data under the prefixed key
func (s *Storage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return errors.New("object key cannot be empty")
	}

	in := &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(s.prefix + key),
		Body:         bytes.NewReader(data),
		CacheControl: aws.String(snapshotCacheControl),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, in); err != nil {
		return fmt.Errorf("failed to upload object to S3: %w", err)
	}
	return nil
}
