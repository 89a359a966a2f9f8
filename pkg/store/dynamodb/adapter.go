// Package dynamodb provides DynamoDB connectivity for deployments that
// run the document store on AWS.
package dynamodb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/campusbridge/campusbridge/pkg/observability/logger"
)

// Config holds DynamoDB adapter configuration. Endpoint is used for
// local development against dynamodb-local.
type Config struct {
	Region           string
	Endpoint         string
	AccessKeyID      string
	SecretAccessKey  string
	SessionToken     string
	TablePrefix      string
	OperationTimeout time.Duration
}

// Adapter wraps a DynamoDB client. One table backs each collection,
// named prefix + collection.
type Adapter struct {
	client      *dynamodb.Client
	log         logger.Logger
	tablePrefix string
	timeout     time.Duration
	mu          sync.RWMutex
	closed      bool
}

// NewAdapter builds the SDK client and verifies connectivity. It does
// not create tables.
func NewAdapter(cfg Config, log logger.Logger) (*Adapter, error) {
	if cfg.Region == "" {
		return nil, fmt.Errorf("aws region is required")
	}
	if cfg.OperationTimeout <= 0 {
		cfg.OperationTimeout = 5 * time.Second
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" || cfg.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	var opts []func(*dynamodb.Options)
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	a := &Adapter{
		client:      dynamodb.NewFromConfig(awsCfg, opts...),
		log:         log,
		tablePrefix: cfg.TablePrefix,
		timeout:     cfg.OperationTimeout,
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.OperationTimeout)
	defer cancel()
	if err := a.Ping(ctx); err != nil {
		return nil, err
	}

	log.Info("dynamodb adapter initialized", "region", cfg.Region, "endpoint", cfg.Endpoint)
	return a, nil
}

// Client returns the underlying SDK client.
func (a *Adapter) Client() *dynamodb.Client {
	return a.client
}

// TableName maps a collection name to its backing table.
func (a *Adapter) TableName(collection string) string {
	return a.tablePrefix + collection
}

// WithOperationTimeout derives a context bounded by the configured
// operation timeout, unless the caller already set a deadline.
func (a *Adapter) WithOperationTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return ctx, func() {}
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, a.timeout)
}

// Ping issues a cheap ListTables call to verify connectivity.
func (a *Adapter) Ping(ctx context.Context) error {
	a.mu.RLock()
	closed := a.closed
	a.mu.RUnlock()
	if closed {
		return fmt.Errorf("dynamodb adapter is closed")
	}

	opCtx, cancel := a.WithOperationTimeout(ctx)
	defer cancel()
	if _, err := a.client.ListTables(opCtx, &dynamodb.ListTablesInput{Limit: aws.Int32(1)}); err != nil {
		return fmt.Errorf("dynamodb ping failed: %w", err)
	}
	return nil
}

// HealthCheck pings with a short deadline.
func (a *Adapter) HealthCheck(ctx context.Context) error {
	hcCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := a.Ping(hcCtx); err != nil {
		a.log.Error("dynamodb health check failed", "error", err)
		return fmt.Errorf("dynamodb health check failed: %w", err)
	}
	return nil
}

// Close marks the adapter closed. The SDK client holds no connections
// that need explicit teardown.
func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	return nil
}
