package domain

import "time"

// DefaultContentType is applied when a request carries no content type.
const DefaultContentType = "application/octet-stream"

// DefaultPresignExpiry is the validity window of an upload authorization.
const DefaultPresignExpiry = 120 * time.Second

// MaxKeyLength is the longest object key S3-compatible stores accept.
const MaxKeyLength = 1024

// SSEAlgorithmAES256 is the server-side encryption directive applied when
// the deployment requires encryption at rest.
const SSEAlgorithmAES256 = "AES256"

// UploadRequest asks the broker for permission to write one object.
type UploadRequest struct {
	Filename    string
	ContentType string
}

// UploadAuthorization is a single-use, time-bounded capability to write
// exactly one object key.
type UploadAuthorization struct {
	URL       string            `json:"url"`
	Key       string            `json:"key"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers,omitempty"`
	ExpiresIn int64             `json:"expires_in"`
}

// Destination is the broker-side storage location. It is never taken from a
// caller.
type Destination struct {
	Bucket     string
	Region     string
	Encryption bool
	KeyPrefix  string
}
