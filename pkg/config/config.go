package config

import "time"

// Store backend type constants
const (
	// StoreTypeMongoDB represents MongoDB document storage
	StoreTypeMongoDB = "mongodb"
	// StoreTypeDynamoDB represents AWS DynamoDB document storage
	StoreTypeDynamoDB = "dynamodb"
	// StoreTypeMemory represents in-process storage for development and tests
	StoreTypeMemory = "memory"
)

// Cache backend type constants
const (
	// CacheTypeMemory keeps the reference cache in process memory
	CacheTypeMemory = "memory"
	// CacheTypeRedis shares the reference cache through Redis
	CacheTypeRedis = "redis"
)

// Upload backend type constants
const (
	// UploadTypeLocal stores images on the local filesystem
	UploadTypeLocal = "local"
	// UploadTypeS3 stores images in an S3 bucket
	UploadTypeS3 = "s3"
)

// Config is the root configuration structure for the service
type Config struct {
	Service       ServiceConfig
	HTTP          HTTPConfig
	CORS          CORSConfig
	Auth          AuthConfig
	Store         StoreConfig
	Cache         CacheConfig
	Upload        UploadConfig
	Email         EmailConfig
	RateLimit     RateLimitConfig `mapstructure:"rate_limit"`
	Observability ObservabilityConfig
}

// ServiceConfig configures service identity metadata.
type ServiceConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// HTTPConfig configures the public API server
type HTTPConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// CORSConfig configures CORS headers for browser-based clients.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
	MaxAge         int      `mapstructure:"max_age"`
}

// AuthConfig configures token verification and the super-admin account.
type AuthConfig struct {
	Secret     string `mapstructure:"secret"`
	Issuer     string `mapstructure:"issuer"`
	Audience   string `mapstructure:"audience"`
	AdminEmail string `mapstructure:"admin_email"`
}

// StoreConfig selects and configures the document storage backend.
type StoreConfig struct {
	Type     string         `mapstructure:"type"`
	MongoDB  MongoDBConfig  `mapstructure:"mongodb"`
	DynamoDB DynamoDBConfig `mapstructure:"dynamodb"`
}

// MongoDBConfig configures the MongoDB backend.
type MongoDBConfig struct {
	URL              string        `mapstructure:"url"`
	Database         string        `mapstructure:"database"`
	ConnectTimeout   time.Duration `mapstructure:"connect_timeout"`
	OperationTimeout time.Duration `mapstructure:"operation_timeout"`
}

// DynamoDBConfig configures the DynamoDB backend.
type DynamoDBConfig struct {
	Region           string        `mapstructure:"region"`
	Endpoint         string        `mapstructure:"endpoint"`
	AccessKeyID      string        `mapstructure:"access_key_id"`
	SecretAccessKey  string        `mapstructure:"secret_access_key"`
	SessionToken     string        `mapstructure:"session_token"`
	TablePrefix      string        `mapstructure:"table_prefix"`
	OperationTimeout time.Duration `mapstructure:"operation_timeout"`
}

// CacheConfig selects and configures the reference cache backend.
type CacheConfig struct {
	Type  string        `mapstructure:"type"`
	TTL   time.Duration `mapstructure:"ttl"`
	Redis RedisConfig   `mapstructure:"redis"`
}

// RedisConfig configures the Redis connection used by the shared
// reference cache.
type RedisConfig struct {
	URL              string        `mapstructure:"url"`
	MaxConns         int           `mapstructure:"max_conns"`
	OperationTimeout time.Duration `mapstructure:"operation_timeout"`
}

// UploadConfig selects and configures image upload storage.
type UploadConfig struct {
	Type    string         `mapstructure:"type"`
	MaxSize int64          `mapstructure:"max_size"`
	BaseURL string         `mapstructure:"base_url"`
	Local   LocalConfig    `mapstructure:"local"`
	S3      S3UploadConfig `mapstructure:"s3"`
}

// LocalConfig configures filesystem upload storage.
type LocalConfig struct {
	Dir string `mapstructure:"dir"`
}

// S3UploadConfig configures S3 upload storage.
type S3UploadConfig struct {
	Bucket           string        `mapstructure:"bucket"`
	Region           string        `mapstructure:"region"`
	Endpoint         string        `mapstructure:"endpoint"`
	AccessKeyID      string        `mapstructure:"access_key_id"`
	SecretAccessKey  string        `mapstructure:"secret_access_key"`
	SessionToken     string        `mapstructure:"session_token"`
	UsePathStyle     bool          `mapstructure:"use_path_style"`
	KeyPrefix        string        `mapstructure:"key_prefix"`
	OperationTimeout time.Duration `mapstructure:"operation_timeout"`
}

// EmailConfig configures SMTP inquiry notifications.
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	To       string `mapstructure:"to"`
}

// RateLimitConfig configures the per-client limiter on public
// endpoints.
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// ObservabilityConfig configures logging.
type ObservabilityConfig struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// DefaultConfig returns the configuration used when nothing overrides
// it.
func DefaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			Name:        "campusbridge",
			Environment: "development",
		},
		HTTP: HTTPConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
			MaxAge:         600,
		},
		Store: StoreConfig{
			Type: StoreTypeMongoDB,
			MongoDB: MongoDBConfig{
				URL:              "mongodb://localhost:27017",
				Database:         "campusbridge",
				ConnectTimeout:   10 * time.Second,
				OperationTimeout: 10 * time.Second,
			},
			DynamoDB: DynamoDBConfig{
				Region:           "us-east-1",
				TablePrefix:      "campusbridge_",
				OperationTimeout: 10 * time.Second,
			},
		},
		Cache: CacheConfig{
			Type: CacheTypeMemory,
			TTL:  10 * time.Second,
			Redis: RedisConfig{
				URL:              "redis://localhost:6379/0",
				MaxConns:         10,
				OperationTimeout: 5 * time.Second,
			},
		},
		Upload: UploadConfig{
			Type:    UploadTypeLocal,
			MaxSize: 5 << 20,
			BaseURL: "/uploads",
			Local: LocalConfig{
				Dir: "./uploads",
			},
			S3: S3UploadConfig{
				Region:           "us-east-1",
				KeyPrefix:        "uploads/",
				OperationTimeout: 30 * time.Second,
			},
		},
		Email: EmailConfig{
			Enabled: false,
			Port:    587,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 1,
			Burst:             5,
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "json",
		},
	}
}
