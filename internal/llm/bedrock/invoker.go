// Package bedrock wraps the Bedrock runtime for the prompt proxy.
package bedrock

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"uploadbroker/internal/config"
	"uploadbroker/internal/port"
)

const contentTypeJSON = "application/json"

// Invoker implements port.ModelInvoker with the Bedrock InvokeModel API.
type Invoker struct {
	client *bedrockruntime.Client
}

var _ port.ModelInvoker = (*Invoker)(nil)

// NewInvoker creates an Invoker in the model region. It reuses the storage
// key pair when one is configured.
func NewInvoker(ctx context.Context, model *config.ModelConfig, storage *config.StorageConfig) (*Invoker, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if model.Region != "" {
		opts = append(opts, awsconfig.WithRegion(model.Region))
	}
	if storage != nil && storage.HasStaticCredentials() {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(storage.AccessKey, storage.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	return newInvoker(awsCfg, ""), nil
}

func newInvoker(awsCfg aws.Config, endpoint string) *Invoker {
	var clientOpts []func(*bedrockruntime.Options)
	if endpoint != "" {
		clientOpts = append(clientOpts, func(o *bedrockruntime.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
	}
	return &Invoker{client: bedrockruntime.NewFromConfig(awsCfg, clientOpts...)}
}

// InvokeModel sends body to modelID and returns the raw response body.
func (i *Invoker) InvokeModel(ctx context.Context, modelID string, body []byte) ([]byte, error) {
	out, err := i.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(modelID),
		Body:        body,
		ContentType: aws.String(contentTypeJSON),
		Accept:      aws.String(contentTypeJSON),
	})
	if err != nil {
		return nil, fmt.Errorf("bedrock invoke %s: %w", modelID, err)
	}
	return out.Body, nil
}
