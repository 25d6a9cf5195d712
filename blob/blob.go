// Package blob stores photos in S3 buckets and addresses them by public URL.
//
// Customer and product photos live in separate buckets, so identical file
// names in the two namespaces never collide. Uploads additionally prefix
// the object key with a fresh UUID, so repeated uploads of the same
// logical file name never overwrite each other.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// S3API is the subset of the S3 client the store depends on.
// *s3.Client satisfies it.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Config holds addressing configuration for a photo bucket.
type Config struct {
	// Region is the AWS region used to build virtual-hosted URLs.
	Region string

	// Endpoint is an optional custom endpoint (MinIO, LocalStack).
	// When set, object URLs are path-style under this endpoint.
	Endpoint string
}

// Store is a photo store backed by a single public-read bucket.
type Store struct {
	client S3API
	bucket string
	config Config
}

// New creates a photo store for the given bucket.
func New(client S3API, bucket string, config Config) *Store {
	if config.Region == "" {
		config.Region = "us-east-1"
	}
	return &Store{
		client: client,
		bucket: bucket,
		config: config,
	}
}

// Upload writes the photo under a collision-resistant key and returns its
// public URL.
func (s *Store) Upload(ctx context.Context, fileName string, body io.Reader) (string, error) {
	key := uuid.NewString() + "_" + fileName

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(ContentTypeFor(fileName)),
	})
	if err != nil {
		return "", fmt.Errorf("upload photo %q: %w", fileName, err)
	}

	return s.objectURL(key), nil
}

// Delete removes the photo addressed by url. It reports false, without
// error, when the object name cannot be parsed out of the URL or the
// object does not exist.
func (s *Store) Delete(ctx context.Context, photoURL string) (bool, error) {
	key := objectKeyFromURL(photoURL)
	if key == "" {
		return false, nil
	}

	exists, err := s.headObject(ctx, key)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return false, fmt.Errorf("delete photo %q: %w", key, err)
	}
	return true, nil
}

// Exists reports whether the photo addressed by url is present.
func (s *Store) Exists(ctx context.Context, photoURL string) (bool, error) {
	key := objectKeyFromURL(photoURL)
	if key == "" {
		return false, nil
	}
	return s.headObject(ctx, key)
}

// ListURLs returns the public URL of every photo in the bucket.
func (s *Store) ListURLs(ctx context.Context) ([]string, error) {
	var urls []string

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list photos: %w", err)
		}
		for _, obj := range page.Contents {
			urls = append(urls, s.objectURL(aws.ToString(obj.Key)))
		}
	}

	return urls, nil
}

func (s *Store) headObject(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// objectURL builds the publicly addressable URL for an object key.
func (s *Store) objectURL(key string) string {
	escaped := url.PathEscape(key)
	if s.config.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(s.config.Endpoint, "/"), s.bucket, escaped)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.config.Region, escaped)
}

// objectKeyFromURL extracts the object key (last path segment) from a
// photo URL. Returns "" when the URL cannot be parsed.
func objectKeyFromURL(photoURL string) string {
	if photoURL == "" {
		return ""
	}
	u, err := url.Parse(photoURL)
	if err != nil {
		return ""
	}
	segment := path.Base(u.Path)
	if segment == "." || segment == "/" {
		return ""
	}
	key, err := url.PathUnescape(segment)
	if err != nil {
		return ""
	}
	return key
}

// ContentTypeFor maps a file extension to its MIME content type.
func ContentTypeFor(fileName string) string {
	switch strings.ToLower(path.Ext(fileName)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".bmp":
		return "image/bmp"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
