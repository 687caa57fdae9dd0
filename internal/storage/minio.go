package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/s3utils"
)

// S3Config encapsulates the connection info for AWS S3 or any S3-compatible
// service. All fields are fixed for the lifetime of the process.
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// S3Store implements ObjectStore on top of the minio client.
type S3Store struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewS3Store builds a new S3Store. The client is lazy; no network traffic
// happens until the first operation.
func NewS3Store(cfg S3Config) (*S3Store, error) {
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("storage credentials must be provided")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket must be provided")
	}
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("storage endpoint must be provided")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed creating storage client: %w", err)
	}

	scheme := "https"
	if !cfg.UseSSL {
		scheme = "http"
	}

	// Only AWS resolves bucket subdomains; other endpoints serve buckets
	// path-style.
	baseURL := fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	if s3utils.IsAmazonEndpoint(url.URL{Scheme: scheme, Host: cfg.Endpoint}) {
		baseURL = fmt.Sprintf("%s://%s.%s", scheme, cfg.Bucket, cfg.Endpoint)
	}

	return &S3Store{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}, nil
}

// PutObject writes data under key with a public-read ACL so the returned URL
// is immediately servable.
func (s *S3Store) PutObject(ctx context.Context, key string, data []byte, contentType string) error {
	opts := minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{"x-amz-acl": "public-read"},
	}
	if _, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), opts); err != nil {
		return providerError(err)
	}
	return nil
}

// CheckBucket performs a lightweight existence probe against the provider.
func (s *S3Store) CheckBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return providerError(err)
	}
	if !exists {
		return &Error{Code: "NoSuchBucket", Message: fmt.Sprintf("bucket %s does not exist", s.bucket)}
	}
	return nil
}

// Bucket returns the configured bucket name.
func (s *S3Store) Bucket() string {
	return s.bucket
}

// ObjectURL resolves a key to its public URL: virtual-hosted on AWS, e.g.
// https://bucket.s3.eu-north-1.amazonaws.com/folder/file.txt, path-style on
// other endpoints.
func (s *S3Store) ObjectURL(key string) string {
	return s.baseURL + "/" + key
}

var _ ObjectStore = (*S3Store)(nil)

// providerError maps a minio error onto *Error, keeping the provider's code
// and message. Transport failures carry no provider code and fall back to
// "Unknown".
func providerError(err error) *Error {
	resp := minio.ToErrorResponse(err)
	if resp.Code != "" {
		return &Error{Code: resp.Code, Message: resp.Message}
	}
	return &Error{Code: "Unknown", Message: err.Error()}
}
