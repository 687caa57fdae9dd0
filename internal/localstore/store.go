package localstore

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrInvalidName marks bucket or key names that would resolve outside the
// data directory.
var ErrInvalidName = errors.New("invalid bucket or object name")

// ErrBucketNotFound marks object writes addressed to a bucket that was never
// created.
var ErrBucketNotFound = errors.New("bucket does not exist")

// DiskStore keeps objects as plain files under root/bucket/key.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) (*DiskStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{root: abs}, nil
}

// objectPath resolves bucket/key to an absolute file path, rejecting names
// that escape the bucket directory.
func (s *DiskStore) objectPath(bucket, key string) (string, error) {
	if err := validBucket(bucket); err != nil {
		return "", err
	}
	if key == "" {
		return "", ErrInvalidName
	}

	bucketDir := filepath.Join(s.root, bucket)
	p := filepath.Join(bucketDir, filepath.FromSlash(key))
	if !strings.HasPrefix(p, bucketDir+string(os.PathSeparator)) {
		return "", ErrInvalidName
	}
	return p, nil
}

func (s *DiskStore) Put(bucket, key string, data []byte) error {
	p, err := s.objectPath(bucket, key)
	if err != nil {
		return err
	}
	if !s.BucketExists(bucket) {
		return ErrBucketNotFound
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}

func (s *DiskStore) Get(bucket, key string) ([]byte, error) {
	p, err := s.objectPath(bucket, key)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(p)
}

func (s *DiskStore) Stat(bucket, key string) (int64, error) {
	p, err := s.objectPath(bucket, key)
	if err != nil {
		return 0, err
	}
	info, err := os.Stat(p)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (s *DiskStore) BucketExists(bucket string) bool {
	if validBucket(bucket) != nil {
		return false
	}
	info, err := os.Stat(filepath.Join(s.root, bucket))
	return err == nil && info.IsDir()
}

func (s *DiskStore) EnsureBucket(bucket string) error {
	if err := validBucket(bucket); err != nil {
		return err
	}
	return os.MkdirAll(filepath.Join(s.root, bucket), 0o755)
}

func validBucket(bucket string) error {
	if bucket == "" || bucket == "." || bucket == ".." || strings.ContainsAny(bucket, `/\`) {
		return ErrInvalidName
	}
	return nil
}

// decodeAWSChunked strips the aws-chunked framing that S3 streaming
// signatures wrap payloads in. Each chunk is
// "<hex-size>;chunk-signature=<sig>\r\n<bytes>\r\n"; a zero-size chunk ends
// the stream. Signatures are not verified, this store trusts its caller.
func decodeAWSChunked(r io.Reader) ([]byte, error) {
	br := bufio.NewReader(r)
	var buf bytes.Buffer
	for {
		header, err := br.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("failed reading chunk header: %w", err)
		}
		sizeHex := strings.TrimRight(header, "\r\n")
		if i := strings.IndexByte(sizeHex, ';'); i >= 0 {
			sizeHex = sizeHex[:i]
		}
		size, err := strconv.ParseUint(strings.TrimSpace(sizeHex), 16, 63)
		if err != nil {
			return nil, fmt.Errorf("invalid chunk size %q: %w", sizeHex, err)
		}
		if size == 0 {
			break
		}
		if _, err := io.CopyN(&buf, br, int64(size)); err != nil {
			return nil, fmt.Errorf("failed reading chunk payload: %w", err)
		}
		// Chunk payloads are terminated by CRLF.
		if _, err := br.Discard(2); err != nil {
			return nil, fmt.Errorf("failed reading chunk terminator: %w", err)
		}
	}
	return buf.Bytes(), nil
}
