package port

import (
	"context"
	"io"
	"time"
)

// PresignInput describes the single write an authorization should permit.
type PresignInput struct {
	Bucket      string
	Key         string
	ContentType string
	Encryption  bool
	Expiry      time.Duration
}

// PresignOutput is a provider-issued upload capability.
type PresignOutput struct {
	URL     string
	Method  string
	Headers map[string]string
}

// Presigner issues time-limited, write-scoped URLs for one object key.
// Implementations return errors wrapping domain.ErrCredentials when the
// broker's credentials are absent or unusable, and domain.ErrProvider for
// any other provider failure.
type Presigner interface {
	PresignPut(ctx context.Context, input PresignInput) (*PresignOutput, error)
}

// UploadInput encapsulates the parameters needed to upload an object.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
	Encryption  bool
}

// UploadOutput contains the result of a successful upload.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectUploader writes objects on the broker's behalf.
type ObjectUploader interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
}

// ObjectStorage abstracts cloud object storage operations.
type ObjectStorage interface {
	Presigner
	ObjectUploader
}
