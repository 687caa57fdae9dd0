package storage

import "context"

// ObjectStore captures the minimal S3-compatible operations the upload
// gateway needs.
type ObjectStore interface {
	// PutObject writes data under key. One write call per invocation, no
	// retries; a failure leaves nothing to clean up.
	PutObject(ctx context.Context, key string, data []byte, contentType string) error
	// CheckBucket verifies the configured bucket is reachable and exists.
	CheckBucket(ctx context.Context) error
	// Bucket returns the configured bucket name.
	Bucket() string
	// ObjectURL returns the public URL the given key is served from.
	ObjectURL(key string) string
}

// Error is a failed provider call, carrying the provider's own error code and
// message verbatim so callers can surface them.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}
