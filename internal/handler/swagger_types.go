package handler

import "encoding/json"

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// PresignRequest represents the authorization request body.
type PresignRequest struct {
	Filename string `json:"filename" example:"report.pdf"`
	Type     string `json:"type" example:"application/pdf"`
}

// PromptRequest represents the prompt proxy request body.
type PromptRequest struct {
	Prompt  string `json:"prompt" example:"Summarize the uploaded report"`
	ModelID string `json:"modelId,omitempty" example:"anthropic.claude-3-sonnet-20240229-v1:0"`
}

// --- Response Types ---

// DirectUploadResponse is returned after the broker writes an object.
type DirectUploadResponse struct {
	Key string `json:"key" example:"report.pdf"`
}

// PromptResponse wraps the model output.
type PromptResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty" swaggertype:"object"`
	Error   string          `json:"error,omitempty" example:"Failed to process request"`
}

// EnvCheckResponse reports which storage settings are present.
type EnvCheckResponse struct {
	Provider      string `json:"provider" example:"s3"`
	HasAccessKey  bool   `json:"has_access_key"`
	HasSecretKey  bool   `json:"has_secret_key"`
	HasBucket     bool   `json:"has_bucket"`
	Region        string `json:"region" example:"us-east-1"`
	Encryption    bool   `json:"encryption"`
	HasEndpoint   bool   `json:"has_endpoint"`
	PresignExpiry int64  `json:"presign_expiry_seconds" example:"120"`
}
