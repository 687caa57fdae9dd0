package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JainamDedhia/Eduthon-backend/internal/domain"
	"github.com/JainamDedhia/Eduthon-backend/internal/service"
	"github.com/JainamDedhia/Eduthon-backend/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type UploadHandler struct {
	uploadService *service.UploadService
}

func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// uploadResponse flattens the stored-object fields next to the message, which
// is the response shape clients depend on.
type uploadResponse struct {
	Message string `json:"message"`
	domain.UploadResult
}

// Upload stores a single file from the "file" form field under the optional
// folder prefix.
func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Upload failed: file field is required"})
		return
	}

	result, err := h.uploadService.UploadFile(c.Request.Context(), file, folderParam(c))
	if err != nil {
		log.Error().Err(err).Str("filename", file.Filename).Msg("upload failed")
		status, detail := uploadErrorDetail(err)
		c.JSON(status, gin.H{"detail": detail})
		return
	}

	c.JSON(http.StatusOK, uploadResponse{
		Message:      "File uploaded successfully",
		UploadResult: result,
	})
}

// UploadMultiple stores every file from the "files" form field independently.
// The response is always 200; per-file failures are data in the report, not a
// request failure.
func (h *UploadHandler) UploadMultiple(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Upload failed: invalid form data"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Upload failed: no files provided"})
		return
	}

	report := h.uploadService.UploadBatch(c.Request.Context(), files, folderParam(c))

	c.JSON(http.StatusOK, gin.H{
		"message":    fmt.Sprintf("Processed %d file(s)", report.Total),
		"successful": len(report.Results),
		"failed":     len(report.Errors),
		"results":    report.Results,
		"errors":     report.Errors,
	})
}

// folderParam accepts the destination folder as a form field, falling back to
// the query string for callers that send it there.
func folderParam(c *gin.Context) string {
	if folder := c.PostForm("folder"); folder != "" {
		return folder
	}
	return c.Query("folder")
}

// uploadErrorDetail translates a failed single upload into the public detail
// string. Provider faults keep the provider's code and message; everything
// else is reported generically. Malformed requests get 400, storage and
// unknown faults keep 500; only the detail text is contractual.
func uploadErrorDetail(err error) (int, string) {
	if errors.Is(err, service.ErrMissingFilename) {
		return http.StatusBadRequest, fmt.Sprintf("Upload failed: %s", err.Error())
	}

	var storageErr *storage.Error
	if errors.As(err, &storageErr) {
		return http.StatusInternalServerError, fmt.Sprintf("S3 upload failed: %s - %s", storageErr.Code, storageErr.Message)
	}

	return http.StatusInternalServerError, fmt.Sprintf("Upload failed: %s", err.Error())
}
