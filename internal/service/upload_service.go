package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/JainamDedhia/Eduthon-backend/internal/domain"
	"github.com/JainamDedhia/Eduthon-backend/internal/storage"
	"github.com/rs/zerolog/log"
)

// ErrMissingFilename is returned when a multipart part arrives without a
// usable file name. Nothing is written to storage in that case.
var ErrMissingFilename = errors.New("missing filename")

// defaultContentType is used when a part carries no Content-Type header.
const defaultContentType = "application/octet-stream"

type UploadService struct {
	store storage.ObjectStore
}

func NewUploadService(store storage.ObjectStore) *UploadService {
	return &UploadService{store: store}
}

// UploadFile stores a single multipart file under the optional folder prefix
// and reports what was written. Exactly one storage write happens on success
// and none on validation failure.
func (s *UploadService) UploadFile(ctx context.Context, file *multipart.FileHeader, folder string) (domain.UploadResult, error) {
	if file.Filename == "" {
		return domain.UploadResult{}, ErrMissingFilename
	}

	// The whole payload is buffered before the write so the storage client
	// knows the exact size upfront.
	data, err := readAll(file)
	if err != nil {
		return domain.UploadResult{}, fmt.Errorf("failed reading %s: %w", file.Filename, err)
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}

	key := domain.BuildObjectKey(folder, file.Filename)
	if err := s.store.PutObject(ctx, key, data, contentType); err != nil {
		return domain.UploadResult{}, err
	}

	log.Info().
		Str("key", key).
		Str("bucket", s.store.Bucket()).
		Int("size", len(data)).
		Msg("object stored")

	return domain.UploadResult{
		Filename:    file.Filename,
		S3Key:       key,
		Bucket:      s.store.Bucket(),
		URL:         s.store.ObjectURL(key),
		ContentType: contentType,
		Size:        int64(len(data)),
	}, nil
}

// UploadBatch stores each file independently, in the order supplied. A failed
// file never aborts the remaining ones; every outcome lands in the report on
// the side it belongs to.
func (s *UploadService) UploadBatch(ctx context.Context, files []*multipart.FileHeader, folder string) domain.BatchReport {
	report := domain.BatchReport{
		Total:   len(files),
		Results: make([]domain.BatchItem, 0, len(files)),
		Errors:  make([]domain.BatchFailure, 0),
	}

	for _, file := range files {
		result, err := s.UploadFile(ctx, file, folder)
		if err != nil {
			log.Error().Err(err).Str("filename", file.Filename).Msg("failed to upload file")
			report.Errors = append(report.Errors, domain.BatchFailure{
				Filename: file.Filename,
				Status:   domain.StatusFailed,
				Error:    err.Error(),
			})
			continue
		}

		report.Results = append(report.Results, domain.BatchItem{
			Filename: result.Filename,
			Status:   domain.StatusSuccess,
			S3Key:    result.S3Key,
			URL:      result.URL,
		})
	}

	return report
}

func readAll(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
