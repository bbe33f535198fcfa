package port

import "context"

// ModelInvoker sends a raw request body to a hosted language model and
// returns the raw response body.
type ModelInvoker interface {
	InvokeModel(ctx context.Context, modelID string, body []byte) ([]byte, error)
}
