package service_test

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/JainamDedhia/Eduthon-backend/internal/domain"
	"github.com/JainamDedhia/Eduthon-backend/internal/service"
	"github.com/JainamDedhia/Eduthon-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	bucket  string
	objects map[string][]byte
	types   map[string]string
	putErr  error
	failKey string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		bucket:  "study-bucket",
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (f *fakeStore) PutObject(ctx context.Context, key string, data []byte, contentType string) error {
	if f.putErr != nil && (f.failKey == "" || f.failKey == key) {
		return f.putErr
	}
	f.objects[key] = data
	f.types[key] = contentType
	return nil
}

func (f *fakeStore) CheckBucket(ctx context.Context) error { return nil }

func (f *fakeStore) Bucket() string { return f.bucket }

func (f *fakeStore) ObjectURL(key string) string {
	return "https://" + f.bucket + ".s3.test/" + key
}

// fileHeader builds a real multipart.FileHeader by writing a form and parsing
// it back, so Open and the part headers behave like production traffic.
func fileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func TestUploadFile(t *testing.T) {
	store := newFakeStore()
	svc := service.NewUploadService(store)

	result, err := svc.UploadFile(context.Background(), fileHeader(t, "report.pdf", "application/pdf", []byte("hello world")), "")
	require.NoError(t, err)

	assert.Equal(t, "report.pdf", result.Filename)
	assert.Equal(t, "report.pdf", result.S3Key)
	assert.Equal(t, "study-bucket", result.Bucket)
	assert.Equal(t, "https://study-bucket.s3.test/report.pdf", result.URL)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.Equal(t, int64(11), result.Size)

	assert.Equal(t, []byte("hello world"), store.objects["report.pdf"])
	assert.Equal(t, "application/pdf", store.types["report.pdf"])
}

func TestUploadFileWithFolder(t *testing.T) {
	store := newFakeStore()
	svc := service.NewUploadService(store)

	result, err := svc.UploadFile(context.Background(), fileHeader(t, "report.pdf", "application/pdf", []byte("x")), "docs/")
	require.NoError(t, err)

	assert.Equal(t, "docs/report.pdf", result.S3Key)
	assert.Equal(t, "https://study-bucket.s3.test/docs/report.pdf", result.URL)
	assert.Contains(t, store.objects, "docs/report.pdf")
}

func TestUploadFileContentTypeFallback(t *testing.T) {
	store := newFakeStore()
	svc := service.NewUploadService(store)

	result, err := svc.UploadFile(context.Background(), fileHeader(t, "blob.bin", "", []byte{0x01, 0x02}), "")
	require.NoError(t, err)

	assert.Equal(t, "application/octet-stream", result.ContentType)
	assert.Equal(t, "application/octet-stream", store.types["blob.bin"])
}

func TestUploadFileEmptyPayload(t *testing.T) {
	store := newFakeStore()
	svc := service.NewUploadService(store)

	result, err := svc.UploadFile(context.Background(), fileHeader(t, "empty.txt", "text/plain", nil), "")
	require.NoError(t, err)

	assert.Equal(t, int64(0), result.Size)
	assert.Contains(t, store.objects, "empty.txt")
}

func TestUploadFileMissingFilename(t *testing.T) {
	store := newFakeStore()
	svc := service.NewUploadService(store)

	_, err := svc.UploadFile(context.Background(), &multipart.FileHeader{}, "")
	require.ErrorIs(t, err, service.ErrMissingFilename)
	assert.Empty(t, store.objects)
}

func TestUploadFileStorageError(t *testing.T) {
	store := newFakeStore()
	store.putErr = &storage.Error{Code: "AccessDenied", Message: "Access Denied."}
	svc := service.NewUploadService(store)

	_, err := svc.UploadFile(context.Background(), fileHeader(t, "note.txt", "text/plain", []byte("hi")), "")

	var storageErr *storage.Error
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "AccessDenied", storageErr.Code)
	assert.Empty(t, store.objects)
}

func TestUploadBatchPartialFailure(t *testing.T) {
	store := newFakeStore()
	store.putErr = &storage.Error{Code: "AccessDenied", Message: "Access Denied."}
	store.failKey = "b.txt"
	svc := service.NewUploadService(store)

	files := []*multipart.FileHeader{
		fileHeader(t, "a.txt", "text/plain", []byte("aaa")),
		fileHeader(t, "b.txt", "text/plain", []byte("bbb")),
		fileHeader(t, "c.txt", "text/plain", []byte("ccc")),
	}

	report := svc.UploadBatch(context.Background(), files, "")

	assert.Equal(t, 3, report.Total)
	require.Len(t, report.Results, 2)
	require.Len(t, report.Errors, 1)

	// Entries keep upload order.
	assert.Equal(t, "a.txt", report.Results[0].Filename)
	assert.Equal(t, "c.txt", report.Results[1].Filename)
	assert.Equal(t, domain.StatusSuccess, report.Results[0].Status)

	assert.Equal(t, "b.txt", report.Errors[0].Filename)
	assert.Equal(t, domain.StatusFailed, report.Errors[0].Status)
	assert.Equal(t, "AccessDenied: Access Denied.", report.Errors[0].Error)
}

func TestUploadBatchAllSuccess(t *testing.T) {
	store := newFakeStore()
	svc := service.NewUploadService(store)

	files := []*multipart.FileHeader{
		fileHeader(t, "a.txt", "text/plain", []byte("aaa")),
		fileHeader(t, "b.txt", "text/plain", []byte("bbb")),
	}

	report := svc.UploadBatch(context.Background(), files, "archive")

	assert.Equal(t, 2, report.Total)
	assert.Len(t, report.Results, 2)
	assert.NotNil(t, report.Errors)
	assert.Empty(t, report.Errors)
	assert.Equal(t, "archive/a.txt", report.Results[0].S3Key)
	assert.Equal(t, "archive/b.txt", report.Results[1].S3Key)
}
