package localstore

import (
	"crypto/md5"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// Handler serves the subset of the S3 HTTP API the upload gateway exercises:
// bucket probes and object put/get. It exists so the gateway can run locally
// without cloud credentials.
type Handler struct {
	store *DiskStore
}

func NewHandler(store *DiskStore) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/{bucket}", h.HeadBucket).Methods(http.MethodHead)
	router.HandleFunc("/{bucket}/", h.HeadBucket).Methods(http.MethodHead)
	router.HandleFunc("/{bucket}/", h.CreateBucket).Methods(http.MethodPut)
	router.HandleFunc("/{bucket}/{key:.+}", h.PutObject).Methods(http.MethodPut)
	router.HandleFunc("/{bucket}/{key:.+}", h.GetObject).Methods(http.MethodGet)
	router.HandleFunc("/{bucket}/{key:.+}", h.HeadObject).Methods(http.MethodHead)
}

func (h *Handler) HeadBucket(w http.ResponseWriter, r *http.Request) {
	bucket := mux.Vars(r)["bucket"]
	if !h.store.BucketExists(bucket) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) CreateBucket(w http.ResponseWriter, r *http.Request) {
	bucket := mux.Vars(r)["bucket"]
	if err := h.store.EnsureBucket(bucket); err != nil {
		writeError(w, r, err)
		return
	}
	log.Info().Str("bucket", bucket).Msg("bucket created")
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) PutObject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bucket, key := vars["bucket"], vars["key"]

	data, err := readBody(r)
	if err != nil {
		writeErrorCode(w, http.StatusBadRequest, "IncompleteBody", err.Error(), r.URL.Path)
		return
	}

	if err := h.store.Put(bucket, key, data); err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("bucket", bucket).Str("key", key).Int("size", len(data)).Msg("object stored")
	w.Header().Set("ETag", fmt.Sprintf("\"%x\"", md5.Sum(data)))
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) GetObject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	data, err := h.store.Get(vars["bucket"], vars["key"])
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handler) HeadObject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	size, err := h.store.Stat(vars["bucket"], vars["key"])
	if err != nil {
		w.WriteHeader(errorStatus(err))
		return
	}

	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.WriteHeader(http.StatusOK)
}

// readBody returns the request payload, undoing the aws-chunked framing that
// streaming-signed clients apply.
func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	if isAWSChunked(r) {
		return decodeAWSChunked(r.Body)
	}
	return io.ReadAll(r.Body)
}

func isAWSChunked(r *http.Request) bool {
	if strings.HasPrefix(r.Header.Get("X-Amz-Content-Sha256"), "STREAMING-") {
		return true
	}
	for _, enc := range r.Header.Values("Content-Encoding") {
		if strings.Contains(enc, "aws-chunked") {
			return true
		}
	}
	return false
}

// errorResponse is the XML error body S3 clients expect.
type errorResponse struct {
	XMLName  xml.Name `xml:"Error"`
	Code     string   `xml:"Code"`
	Message  string   `xml:"Message"`
	Resource string   `xml:"Resource"`
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidName):
		return http.StatusBadRequest
	case os.IsNotExist(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidName):
		writeErrorCode(w, http.StatusBadRequest, "InvalidObjectName", err.Error(), r.URL.Path)
	case errors.Is(err, ErrBucketNotFound):
		writeErrorCode(w, http.StatusNotFound, "NoSuchBucket", "The specified bucket does not exist.", r.URL.Path)
	case os.IsNotExist(err):
		writeErrorCode(w, http.StatusNotFound, "NoSuchKey", "The specified key does not exist.", r.URL.Path)
	default:
		writeErrorCode(w, http.StatusInternalServerError, "InternalError", err.Error(), r.URL.Path)
	}
}

func writeErrorCode(w http.ResponseWriter, status int, code, message, resource string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(status)
	xml.NewEncoder(w).Encode(errorResponse{
		Code:     code,
		Message:  message,
		Resource: resource,
	})
}
