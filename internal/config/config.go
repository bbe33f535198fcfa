package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"uploadbroker/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Log       LogConfig
	Model     ModelConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// StorageConfig holds the upload destination and the broker's credentials.
type StorageConfig struct {
	Provider      string        `mapstructure:"provider"`
	Bucket        string        `mapstructure:"bucket"`
	Region        string        `mapstructure:"region"`
	Endpoint      string        `mapstructure:"endpoint"`
	AccessKey     string        `mapstructure:"access_key"`
	SecretKey     string        `mapstructure:"secret_key"`
	UseSSL        bool          `mapstructure:"use_ssl"`
	Encryption    bool          `mapstructure:"encryption"`
	KeyPrefix     string        `mapstructure:"key_prefix"`
	PresignExpiry time.Duration `mapstructure:"presign_expiry"`
	MaxUploadMB   int64         `mapstructure:"max_upload_mb"`
}

// Destination returns the configured storage location, or ErrConfiguration
// when bucket or region is missing.
func (s *StorageConfig) Destination() (domain.Destination, error) {
	var missing []string
	if strings.TrimSpace(s.Bucket) == "" {
		missing = append(missing, "bucket")
	}
	if strings.TrimSpace(s.Region) == "" {
		missing = append(missing, "region")
	}
	if len(missing) > 0 {
		return domain.Destination{}, fmt.Errorf("%w: missing %s", domain.ErrConfiguration, strings.Join(missing, ", "))
	}
	return domain.Destination{
		Bucket:     strings.TrimSpace(s.Bucket),
		Region:     strings.TrimSpace(s.Region),
		Encryption: s.Encryption,
		KeyPrefix:  s.KeyPrefix,
	}, nil
}

// HasStaticCredentials reports whether both halves of a static key pair are set.
func (s *StorageConfig) HasStaticCredentials() bool {
	return s.AccessKey != "" && s.SecretKey != ""
}

// String keeps credential material out of logs and error messages.
func (s StorageConfig) String() string {
	return fmt.Sprintf("provider=%s bucket=%q region=%q endpoint=%q access_key=%s secret_key=%s encryption=%t",
		s.Provider, s.Bucket, s.Region, s.Endpoint, redact(s.AccessKey), redact(s.SecretKey), s.Encryption)
}

func redact(v string) string {
	if v == "" {
		return "<unset>"
	}
	return "<redacted>"
}

// AuthConfig holds the optional bearer-token guard. An empty secret disables it.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

// Enabled reports whether requests must carry a bearer token.
func (a *AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

// RateLimitConfig caps broker request throughput. RPS <= 0 disables it.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ModelConfig holds settings for the prompt proxy.
type ModelConfig struct {
	Region       string `mapstructure:"region"`
	DefaultModel string `mapstructure:"default_model"`
	MaxTokens    int    `mapstructure:"max_tokens"`
}

// Load reads configuration from an optional .env file and environment
// variables with the UPLOADBROKER_ prefix.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("UPLOADBROKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// Storage defaults. Bucket and region deliberately have none.
	v.SetDefault("storage.provider", "s3")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.region", "")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.use_ssl", true)
	v.SetDefault("storage.encryption", false)
	v.SetDefault("storage.key_prefix", "")
	v.SetDefault("storage.presign_expiry", domain.DefaultPresignExpiry.String())
	v.SetDefault("storage.max_upload_mb", 50)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "uploadbroker")

	v.SetDefault("rate_limit.rps", 10)
	v.SetDefault("rate_limit.burst", 20)

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("model.region", "")
	v.SetDefault("model.default_model", "anthropic.claude-3-sonnet-20240229-v1:0")
	v.SetDefault("model.max_tokens", 1000)

	// Nested keys need explicit bindings. Storage keys also honour the
	// variable names used by earlier deployments.
	envBindings := map[string][]string{
		"server.port":            {"UPLOADBROKER_SERVER_PORT"},
		"server.read_timeout":    {"UPLOADBROKER_SERVER_READ_TIMEOUT"},
		"server.write_timeout":   {"UPLOADBROKER_SERVER_WRITE_TIMEOUT"},
		"server.environment":     {"UPLOADBROKER_SERVER_ENVIRONMENT"},
		"storage.provider":       {"UPLOADBROKER_STORAGE_PROVIDER"},
		"storage.bucket":         {"UPLOADBROKER_STORAGE_BUCKET", "S3_UPLOAD_BUCKET"},
		"storage.region":         {"UPLOADBROKER_STORAGE_REGION", "AWS_REGION", "AWS_DEFAULT_REGION"},
		"storage.endpoint":       {"UPLOADBROKER_STORAGE_ENDPOINT"},
		"storage.access_key":     {"UPLOADBROKER_STORAGE_ACCESS_KEY"},
		"storage.secret_key":     {"UPLOADBROKER_STORAGE_SECRET_KEY"},
		"storage.use_ssl":        {"UPLOADBROKER_STORAGE_USE_SSL"},
		"storage.encryption":     {"UPLOADBROKER_STORAGE_ENCRYPTION", "S3_ENCRYPTION"},
		"storage.key_prefix":     {"UPLOADBROKER_STORAGE_KEY_PREFIX"},
		"storage.presign_expiry": {"UPLOADBROKER_STORAGE_PRESIGN_EXPIRY"},
		"storage.max_upload_mb":  {"UPLOADBROKER_STORAGE_MAX_UPLOAD_MB"},
		"auth.jwt_secret":        {"UPLOADBROKER_AUTH_JWT_SECRET"},
		"auth.issuer":            {"UPLOADBROKER_AUTH_ISSUER"},
		"rate_limit.rps":         {"UPLOADBROKER_RATE_LIMIT_RPS"},
		"rate_limit.burst":       {"UPLOADBROKER_RATE_LIMIT_BURST"},
		"cors.allowed_origins":   {"UPLOADBROKER_CORS_ALLOWED_ORIGINS"},
		"log.level":              {"UPLOADBROKER_LOG_LEVEL"},
		"log.format":             {"UPLOADBROKER_LOG_FORMAT"},
		"model.region":           {"UPLOADBROKER_MODEL_REGION"},
		"model.default_model":    {"UPLOADBROKER_MODEL_DEFAULT_MODEL"},
		"model.max_tokens":       {"UPLOADBROKER_MODEL_MAX_TOKENS"},
	}
	for key, envs := range envBindings {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}

	cfg := &Config{}

	// Platform-provided PORT wins unless the prefixed variable is explicit.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("UPLOADBROKER_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Storage = StorageConfig{
		Provider:      strings.ToLower(strings.TrimSpace(v.GetString("storage.provider"))),
		Bucket:        strings.TrimSpace(v.GetString("storage.bucket")),
		Region:        strings.TrimSpace(v.GetString("storage.region")),
		Endpoint:      strings.TrimSpace(v.GetString("storage.endpoint")),
		AccessKey:     strings.TrimSpace(v.GetString("storage.access_key")),
		SecretKey:     strings.TrimSpace(v.GetString("storage.secret_key")),
		UseSSL:        v.GetBool("storage.use_ssl"),
		Encryption:    v.GetBool("storage.encryption"),
		KeyPrefix:     v.GetString("storage.key_prefix"),
		PresignExpiry: v.GetDuration("storage.presign_expiry"),
		MaxUploadMB:   v.GetInt64("storage.max_upload_mb"),
	}
	if cfg.Storage.PresignExpiry <= 0 {
		cfg.Storage.PresignExpiry = domain.DefaultPresignExpiry
	}
	switch cfg.Storage.Provider {
	case "s3", "minio":
	default:
		return nil, fmt.Errorf("unsupported storage provider %q", cfg.Storage.Provider)
	}

	cfg.Auth = AuthConfig{
		JWTSecret: v.GetString("auth.jwt_secret"),
		Issuer:    v.GetString("auth.issuer"),
	}
	cfg.RateLimit = RateLimitConfig{
		RPS:   v.GetFloat64("rate_limit.rps"),
		Burst: v.GetInt("rate_limit.burst"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	cfg.Model = ModelConfig{
		Region:       v.GetString("model.region"),
		DefaultModel: v.GetString("model.default_model"),
		MaxTokens:    v.GetInt("model.max_tokens"),
	}
	if cfg.Model.Region == "" {
		cfg.Model.Region = cfg.Storage.Region
	}

	return cfg, nil
}
