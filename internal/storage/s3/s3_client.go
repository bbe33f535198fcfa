package s3

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"uploadbroker/internal/config"
	"uploadbroker/internal/domain"
	"uploadbroker/internal/port"
)

type s3Client struct {
	creds     aws.CredentialsProvider
	client    *s3.Client
	presigner *s3.PresignClient
	uploader  *manager.Uploader
}

// NewS3Client creates a new S3-backed ObjectStorage implementation. Static
// keys are used when both are configured, otherwise the default AWS
// credential chain (environment, shared config, instance role).
func NewS3Client(ctx context.Context, cfg *config.StorageConfig) (port.ObjectStorage, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}

	if cfg.HasStaticCredentials() {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	return newClient(awsCfg, cfg.Endpoint), nil
}

func newClient(awsCfg aws.Config, endpoint string) *s3Client {
	var s3Opts []func(*s3.Options)
	if endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Opts...)
	return &s3Client{
		creds:     awsCfg.Credentials,
		client:    client,
		presigner: s3.NewPresignClient(client),
		uploader:  manager.NewUploader(client),
	}
}

// checkCredentials resolves the credential chain up front so that a missing
// or malformed key pair is reported as a credential failure rather than an
// opaque signing error.
func (c *s3Client) checkCredentials(ctx context.Context) error {
	if c.creds == nil {
		return fmt.Errorf("%w: no credential provider", domain.ErrCredentials)
	}
	creds, err := c.creds.Retrieve(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrCredentials, err)
	}
	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return fmt.Errorf("%w: empty key pair", domain.ErrCredentials)
	}
	return nil
}

func (c *s3Client) PresignPut(ctx context.Context, input port.PresignInput) (*port.PresignOutput, error) {
	if err := c.checkCredentials(ctx); err != nil {
		return nil, err
	}

	putInput := &s3.PutObjectInput{
		Bucket:      aws.String(input.Bucket),
		Key:         aws.String(input.Key),
		ContentType: aws.String(input.ContentType),
	}
	if input.Encryption {
		putInput.ServerSideEncryption = types.ServerSideEncryptionAes256
	}

	expiry := input.Expiry
	if expiry <= 0 {
		expiry = domain.DefaultPresignExpiry
	}

	result, err := c.presigner.PresignPutObject(ctx, putInput, s3.WithPresignExpires(expiry))
	if err != nil {
		return nil, fmt.Errorf("%w: s3 presign: %w", domain.ErrProvider, err)
	}

	return &port.PresignOutput{
		URL:     result.URL,
		Method:  result.Method,
		Headers: clientHeaders(result.SignedHeader),
	}, nil
}

// clientHeaders keeps the signed headers a caller must replay. Host is set
// by every HTTP client from the URL.
func clientHeaders(signed http.Header) map[string]string {
	headers := make(map[string]string, len(signed))
	for name, values := range signed {
		if http.CanonicalHeaderKey(name) == "Host" || len(values) == 0 {
			continue
		}
		headers[http.CanonicalHeaderKey(name)] = values[0]
	}
	return headers
}

func (c *s3Client) Upload(ctx context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	if err := c.checkCredentials(ctx); err != nil {
		return nil, err
	}

	putInput := &s3.PutObjectInput{
		Bucket:      aws.String(input.Bucket),
		Key:         aws.String(input.Key),
		Body:        input.Body,
		ContentType: aws.String(input.ContentType),
	}
	if input.Encryption {
		putInput.ServerSideEncryption = types.ServerSideEncryptionAes256
	}

	result, err := c.uploader.Upload(ctx, putInput)
	if err != nil {
		return nil, fmt.Errorf("%w: s3 upload: %w", domain.ErrProvider, err)
	}

	etag := ""
	if result.ETag != nil {
		etag = *result.ETag
	}

	return &port.UploadOutput{
		Location: result.Location,
		ETag:     etag,
	}, nil
}
