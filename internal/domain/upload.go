package domain

// Statuses reported for batch entries.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// UploadResult describes one file written to object storage. It is built once
// per stored file, serialized into the response, and discarded.
type UploadResult struct {
	Filename    string `json:"filename"`
	S3Key       string `json:"s3_key"`
	Bucket      string `json:"bucket"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// BatchItem is the success entry of a multi-file upload report.
type BatchItem struct {
	Filename string `json:"filename"`
	Status   string `json:"status"`
	S3Key    string `json:"s3_key"`
	URL      string `json:"url"`
}

// BatchFailure is the failure entry of a multi-file upload report. The error
// is a plain string, coarser than the single-upload fault detail.
type BatchFailure struct {
	Filename string `json:"filename"`
	Status   string `json:"status"`
	Error    string `json:"error"`
}

// BatchReport aggregates the outcome of a multi-file upload. Entries keep the
// order the files were supplied in. A partially failed batch is a normal
// outcome, not an error state.
type BatchReport struct {
	Total   int
	Results []BatchItem
	Errors  []BatchFailure
}
