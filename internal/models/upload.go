package models

// Upload statuses reported by POST /upload
const (
	UploadStatusSuccess = "success"
	UploadStatusPartial = "partial"
	UploadStatusError   = "error"
)

// RowError describes a CSV row that could not be stored
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// UploadReport summarizes a CSV batch upload
type UploadReport struct {
	BatchID   string     `json:"batch_id"`
	Column    string     `json:"column"`
	Timestamp string     `json:"timestamp"`
	Count     int        `json:"count"`
	Skipped   int        `json:"skipped"`
	Failed    int        `json:"failed"`
	Errors    []RowError `json:"errors,omitempty"`
}

// Status derives the overall upload status from the counters
func (r *UploadReport) Status() string {
	switch {
	case r.Failed == 0:
		return UploadStatusSuccess
	case r.Count > 0:
		return UploadStatusPartial
	default:
		return UploadStatusError
	}
}

// maxReportedErrors caps the row errors echoed back to the client
const maxReportedErrors = 100

// AddError records a failed row
func (r *UploadReport) AddError(line int, message string) {
	r.Failed++
	if len(r.Errors) < maxReportedErrors {
		r.Errors = append(r.Errors, RowError{Line: line, Message: message})
	}
}
