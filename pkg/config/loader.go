package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Loader defines the interface for loading configuration
type Loader interface {
	Load() (*Config, error)
	Validate(*Config) error
}

// ViperLoader implements Loader using Viper for configuration management
type ViperLoader struct {
	configFile string
	envPrefix  string
}

// NewViperLoader creates a new ViperLoader
// configFile: path to configuration file (optional, can be empty)
// envPrefix: prefix for environment variables (e.g., "CAMPUSBRIDGE")
func NewViperLoader(configFile, envPrefix string) *ViperLoader {
	return &ViperLoader{
		configFile: configFile,
		envPrefix:  envPrefix,
	}
}

// Load loads configuration with precedence: ENV > file > defaults
func (l *ViperLoader) Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	l.setDefaults(v, defaults)

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", l.configFile, err)
		}
	}

	v.SetEnvPrefix(l.envPrefix)

	// Bind all environment variables explicitly for nested structs
	l.bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := l.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// bindEnvVars explicitly binds environment variables for nested structs
func (l *ViperLoader) bindEnvVars(v *viper.Viper) {
	// Service
	v.BindEnv("service.name", l.prefixedEnv("SERVICE_NAME"))
	v.BindEnv("service.environment", l.prefixedEnv("SERVICE_ENVIRONMENT"), l.prefixedEnv("ENVIRONMENT"))

	// HTTP
	v.BindEnv("http.port", l.prefixedEnv("HTTP_PORT"))
	v.BindEnv("http.read_timeout", l.prefixedEnv("HTTP_READ_TIMEOUT"))
	v.BindEnv("http.write_timeout", l.prefixedEnv("HTTP_WRITE_TIMEOUT"))
	v.BindEnv("http.idle_timeout", l.prefixedEnv("HTTP_IDLE_TIMEOUT"))
	v.BindEnv("http.shutdown_timeout", l.prefixedEnv("HTTP_SHUTDOWN_TIMEOUT"))

	// CORS
	v.BindEnv("cors.allowed_origins", l.prefixedEnv("CORS_ALLOWED_ORIGINS"))
	v.BindEnv("cors.allowed_methods", l.prefixedEnv("CORS_ALLOWED_METHODS"))
	v.BindEnv("cors.allowed_headers", l.prefixedEnv("CORS_ALLOWED_HEADERS"))
	v.BindEnv("cors.max_age", l.prefixedEnv("CORS_MAX_AGE"))

	// Auth
	v.BindEnv("auth.secret", l.prefixedEnv("AUTH_SECRET"))
	v.BindEnv("auth.issuer", l.prefixedEnv("AUTH_ISSUER"))
	v.BindEnv("auth.audience", l.prefixedEnv("AUTH_AUDIENCE"))
	v.BindEnv("auth.admin_email", l.prefixedEnv("AUTH_ADMIN_EMAIL"))

	// Store
	v.BindEnv("store.type", l.prefixedEnv("STORE_TYPE"))
	v.BindEnv("store.mongodb.url", l.prefixedEnv("STORE_MONGODB_URL"))
	v.BindEnv("store.mongodb.database", l.prefixedEnv("STORE_MONGODB_DATABASE"))
	v.BindEnv("store.mongodb.connect_timeout", l.prefixedEnv("STORE_MONGODB_CONNECT_TIMEOUT"))
	v.BindEnv("store.mongodb.operation_timeout", l.prefixedEnv("STORE_MONGODB_OPERATION_TIMEOUT"))
	v.BindEnv("store.dynamodb.region", l.prefixedEnv("STORE_DYNAMODB_REGION"))
	v.BindEnv("store.dynamodb.endpoint", l.prefixedEnv("STORE_DYNAMODB_ENDPOINT"))
	v.BindEnv("store.dynamodb.access_key_id", l.prefixedEnv("STORE_DYNAMODB_ACCESS_KEY_ID"))
	v.BindEnv("store.dynamodb.secret_access_key", l.prefixedEnv("STORE_DYNAMODB_SECRET_ACCESS_KEY"))
	v.BindEnv("store.dynamodb.session_token", l.prefixedEnv("STORE_DYNAMODB_SESSION_TOKEN"))
	v.BindEnv("store.dynamodb.table_prefix", l.prefixedEnv("STORE_DYNAMODB_TABLE_PREFIX"))
	v.BindEnv("store.dynamodb.operation_timeout", l.prefixedEnv("STORE_DYNAMODB_OPERATION_TIMEOUT"))

	// Cache
	v.BindEnv("cache.type", l.prefixedEnv("CACHE_TYPE"))
	v.BindEnv("cache.ttl", l.prefixedEnv("CACHE_TTL"))
	v.BindEnv("cache.redis.url", l.prefixedEnv("CACHE_REDIS_URL"))
	v.BindEnv("cache.redis.max_conns", l.prefixedEnv("CACHE_REDIS_MAX_CONNS"))
	v.BindEnv("cache.redis.operation_timeout", l.prefixedEnv("CACHE_REDIS_OPERATION_TIMEOUT"))

	// Upload
	v.BindEnv("upload.type", l.prefixedEnv("UPLOAD_TYPE"))
	v.BindEnv("upload.max_size", l.prefixedEnv("UPLOAD_MAX_SIZE"))
	v.BindEnv("upload.base_url", l.prefixedEnv("UPLOAD_BASE_URL"))
	v.BindEnv("upload.local.dir", l.prefixedEnv("UPLOAD_LOCAL_DIR"))
	v.BindEnv("upload.s3.bucket", l.prefixedEnv("UPLOAD_S3_BUCKET"))
	v.BindEnv("upload.s3.region", l.prefixedEnv("UPLOAD_S3_REGION"))
	v.BindEnv("upload.s3.endpoint", l.prefixedEnv("UPLOAD_S3_ENDPOINT"))
	v.BindEnv("upload.s3.access_key_id", l.prefixedEnv("UPLOAD_S3_ACCESS_KEY_ID"))
	v.BindEnv("upload.s3.secret_access_key", l.prefixedEnv("UPLOAD_S3_SECRET_ACCESS_KEY"))
	v.BindEnv("upload.s3.session_token", l.prefixedEnv("UPLOAD_S3_SESSION_TOKEN"))
	v.BindEnv("upload.s3.use_path_style", l.prefixedEnv("UPLOAD_S3_USE_PATH_STYLE"))
	v.BindEnv("upload.s3.key_prefix", l.prefixedEnv("UPLOAD_S3_KEY_PREFIX"))
	v.BindEnv("upload.s3.operation_timeout", l.prefixedEnv("UPLOAD_S3_OPERATION_TIMEOUT"))

	// Email
	v.BindEnv("email.enabled", l.prefixedEnv("EMAIL_ENABLED"))
	v.BindEnv("email.host", l.prefixedEnv("EMAIL_HOST"))
	v.BindEnv("email.port", l.prefixedEnv("EMAIL_PORT"))
	v.BindEnv("email.username", l.prefixedEnv("EMAIL_USERNAME"))
	v.BindEnv("email.password", l.prefixedEnv("EMAIL_PASSWORD"))
	v.BindEnv("email.from", l.prefixedEnv("EMAIL_FROM"))
	v.BindEnv("email.to", l.prefixedEnv("EMAIL_TO"))

	// Rate limit
	v.BindEnv("rate_limit.enabled", l.prefixedEnv("RATE_LIMIT_ENABLED"))
	v.BindEnv("rate_limit.requests_per_second", l.prefixedEnv("RATE_LIMIT_REQUESTS_PER_SECOND"))
	v.BindEnv("rate_limit.burst", l.prefixedEnv("RATE_LIMIT_BURST"))

	// Observability
	v.BindEnv("observability.log_level", l.prefixedEnv("OBSERVABILITY_LOG_LEVEL"), l.prefixedEnv("LOG_LEVEL"))
	v.BindEnv("observability.log_format", l.prefixedEnv("OBSERVABILITY_LOG_FORMAT"), l.prefixedEnv("LOG_FORMAT"))
}

func (l *ViperLoader) prefixedEnv(suffix string) string {
	prefix := strings.TrimSpace(l.envPrefix)
	if prefix == "" {
		prefix = "CAMPUSBRIDGE"
	}
	return fmt.Sprintf("%s_%s", strings.ToUpper(prefix), suffix)
}

// setDefaults sets default values in Viper from the default config
func (l *ViperLoader) setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("service.name", cfg.Service.Name)
	v.SetDefault("service.environment", cfg.Service.Environment)

	v.SetDefault("http.port", cfg.HTTP.Port)
	v.SetDefault("http.read_timeout", cfg.HTTP.ReadTimeout)
	v.SetDefault("http.write_timeout", cfg.HTTP.WriteTimeout)
	v.SetDefault("http.idle_timeout", cfg.HTTP.IdleTimeout)
	v.SetDefault("http.shutdown_timeout", cfg.HTTP.ShutdownTimeout)

	v.SetDefault("cors.allowed_origins", cfg.CORS.AllowedOrigins)
	v.SetDefault("cors.allowed_methods", cfg.CORS.AllowedMethods)
	v.SetDefault("cors.allowed_headers", cfg.CORS.AllowedHeaders)
	v.SetDefault("cors.max_age", cfg.CORS.MaxAge)

	v.SetDefault("store.type", cfg.Store.Type)
	v.SetDefault("store.mongodb.url", cfg.Store.MongoDB.URL)
	v.SetDefault("store.mongodb.database", cfg.Store.MongoDB.Database)
	v.SetDefault("store.mongodb.connect_timeout", cfg.Store.MongoDB.ConnectTimeout)
	v.SetDefault("store.mongodb.operation_timeout", cfg.Store.MongoDB.OperationTimeout)
	v.SetDefault("store.dynamodb.region", cfg.Store.DynamoDB.Region)
	v.SetDefault("store.dynamodb.table_prefix", cfg.Store.DynamoDB.TablePrefix)
	v.SetDefault("store.dynamodb.operation_timeout", cfg.Store.DynamoDB.OperationTimeout)

	v.SetDefault("cache.type", cfg.Cache.Type)
	v.SetDefault("cache.ttl", cfg.Cache.TTL)
	v.SetDefault("cache.redis.url", cfg.Cache.Redis.URL)
	v.SetDefault("cache.redis.max_conns", cfg.Cache.Redis.MaxConns)
	v.SetDefault("cache.redis.operation_timeout", cfg.Cache.Redis.OperationTimeout)

	v.SetDefault("upload.type", cfg.Upload.Type)
	v.SetDefault("upload.max_size", cfg.Upload.MaxSize)
	v.SetDefault("upload.base_url", cfg.Upload.BaseURL)
	v.SetDefault("upload.local.dir", cfg.Upload.Local.Dir)
	v.SetDefault("upload.s3.region", cfg.Upload.S3.Region)
	v.SetDefault("upload.s3.key_prefix", cfg.Upload.S3.KeyPrefix)
	v.SetDefault("upload.s3.operation_timeout", cfg.Upload.S3.OperationTimeout)

	v.SetDefault("email.enabled", cfg.Email.Enabled)
	v.SetDefault("email.port", cfg.Email.Port)

	v.SetDefault("rate_limit.enabled", cfg.RateLimit.Enabled)
	v.SetDefault("rate_limit.requests_per_second", cfg.RateLimit.RequestsPerSecond)
	v.SetDefault("rate_limit.burst", cfg.RateLimit.Burst)

	v.SetDefault("observability.log_level", cfg.Observability.LogLevel)
	v.SetDefault("observability.log_format", cfg.Observability.LogFormat)
}

// Validate validates the configuration and returns detailed errors
func (l *ViperLoader) Validate(cfg *Config) error {
	var errs []error

	if cfg.HTTP.Port < 1 || cfg.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("http.port must be between 1 and 65535, got %d", cfg.HTTP.Port))
	}

	if cfg.Auth.Secret == "" {
		errs = append(errs, errors.New("auth.secret is required"))
	}

	switch cfg.Store.Type {
	case StoreTypeMongoDB:
		if cfg.Store.MongoDB.URL == "" {
			errs = append(errs, errors.New("store.mongodb.url is required when store.type is mongodb"))
		}
		if cfg.Store.MongoDB.Database == "" {
			errs = append(errs, errors.New("store.mongodb.database is required when store.type is mongodb"))
		}
	case StoreTypeDynamoDB:
		if cfg.Store.DynamoDB.Region == "" {
			errs = append(errs, errors.New("store.dynamodb.region is required when store.type is dynamodb"))
		}
	case StoreTypeMemory:
	default:
		errs = append(errs, fmt.Errorf("invalid store.type: %s (must be one of: mongodb, dynamodb, memory)", cfg.Store.Type))
	}

	switch cfg.Cache.Type {
	case CacheTypeMemory:
	case CacheTypeRedis:
		if cfg.Cache.Redis.URL == "" {
			errs = append(errs, errors.New("cache.redis.url is required when cache.type is redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid cache.type: %s (must be one of: memory, redis)", cfg.Cache.Type))
	}
	if cfg.Cache.TTL <= 0 {
		errs = append(errs, errors.New("cache.ttl must be positive"))
	}

	switch cfg.Upload.Type {
	case UploadTypeLocal:
		if cfg.Upload.Local.Dir == "" {
			errs = append(errs, errors.New("upload.local.dir is required when upload.type is local"))
		}
	case UploadTypeS3:
		if cfg.Upload.S3.Bucket == "" {
			errs = append(errs, errors.New("upload.s3.bucket is required when upload.type is s3"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid upload.type: %s (must be one of: local, s3)", cfg.Upload.Type))
	}
	if cfg.Upload.MaxSize <= 0 {
		errs = append(errs, errors.New("upload.max_size must be positive"))
	}

	if cfg.Email.Enabled {
		if cfg.Email.Host == "" {
			errs = append(errs, errors.New("email.host is required when email is enabled"))
		}
		if cfg.Email.From == "" || cfg.Email.To == "" {
			errs = append(errs, errors.New("email.from and email.to are required when email is enabled"))
		}
	}

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.RequestsPerSecond <= 0 {
			errs = append(errs, errors.New("rate_limit.requests_per_second must be positive"))
		}
		if cfg.RateLimit.Burst < 1 {
			errs = append(errs, errors.New("rate_limit.burst must be at least 1"))
		}
	}

	return errors.Join(errs...)
}
