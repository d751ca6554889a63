// Copyright (c) 2026 Vidora. All rights reserved.

package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vidora-app/vidora/pkg/uuid"
)

// S3Config holds the settings for an S3-compatible object store
// (AWS S3, Cloudflare R2, MinIO).
type S3Config struct {
	Bucket        string
	Region        string
	Endpoint      string // optional custom endpoint for R2/MinIO
	AccessKey     string
	SecretKey     string
	PublicBaseURL string // base under which stored objects are publicly served
}

// S3Store implements [Store] on top of an S3-compatible bucket.
//
// Objects are stored flat under "<uuid><ext>" keys so that the derived asset
// id (key minus extension) uniquely identifies one object.
type S3Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
	logger        *slog.Logger
}

// NewS3Store builds the S3 client and verifies nothing — bucket reachability
// is asserted lazily on first use, matching the startup budget of the API.
func NewS3Store(ctx context.Context, cfg S3Config, logger *slog.Logger) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("media: bucket must not be empty")
	}

	loadOptions := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	// Static credentials for R2/MinIO deployments; omitted in AWS-native
	// deployments where the default chain (IAM role) applies.
	if cfg.AccessKey != "" {
		loadOptions = append(loadOptions, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, fmt.Errorf("media: failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// Path-style addressing is required by MinIO and most R2 setups.
			o.UsePathStyle = true
		}
	})

	logger.Info("media store configured",
		slog.String("bucket", cfg.Bucket),
		slog.String("region", cfg.Region),
	)

	return &S3Store{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:        logger,
	}, nil
}

// Store uploads the body under a fresh UUIDv7 key and returns the public URL.
func (store *S3Store) Store(ctx context.Context, filename, contentType string, body io.Reader) (*Asset, error) {
	key := uuid.New() + Extension(filename)

	// Buffer the stream so the SDK can compute the content length and
	// checksums; multipart form files are already on disk or in memory.
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("media: failed to read upload stream: %w", err)
	}

	_, err = store.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(store.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("media: failed to store object %s: %w", key, err)
	}

	return &Asset{
		URL:         store.publicBaseURL + "/" + key,
		ContentType: contentType,
		Size:        int64(len(data)),
		UploadedAt:  time.Now(),
	}, nil
}

// Remove deletes every object whose key matches the derived asset id.
//
// The asset id carries no extension, so the concrete key is recovered by
// listing the bucket with the id as prefix — the upload scheme guarantees at
// most one live match plus nothing else sharing the UUID prefix.
func (store *S3Store) Remove(ctx context.Context, assetID string) error {
	if assetID == "" {
		return nil
	}

	listed, err := store.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(store.bucket),
		Prefix: aws.String(assetID),
	})
	if err != nil {
		return fmt.Errorf("media: failed to list objects for %s: %w", assetID, err)
	}

	for _, object := range listed.Contents {
		_, err := store.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(store.bucket),
			Key:    object.Key,
		})
		if err != nil {
			return fmt.Errorf("media: failed to delete object %s: %w", aws.ToString(object.Key), err)
		}
	}

	return nil
}
