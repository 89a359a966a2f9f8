// Package app wires configuration, storage, middleware, and routes into
// a runnable service.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campusbridge/campusbridge/pkg/auth"
	"github.com/campusbridge/campusbridge/pkg/config"
	"github.com/campusbridge/campusbridge/pkg/controller"
	"github.com/campusbridge/campusbridge/pkg/email"
	"github.com/campusbridge/campusbridge/pkg/health"
	"github.com/campusbridge/campusbridge/pkg/middleware/authn"
	"github.com/campusbridge/campusbridge/pkg/middleware/cors"
	"github.com/campusbridge/campusbridge/pkg/middleware/logging"
	"github.com/campusbridge/campusbridge/pkg/middleware/metrics"
	"github.com/campusbridge/campusbridge/pkg/middleware/ratelimit"
	"github.com/campusbridge/campusbridge/pkg/middleware/recovery"
	"github.com/campusbridge/campusbridge/pkg/middleware/requestid"
	"github.com/campusbridge/campusbridge/pkg/models"
	"github.com/campusbridge/campusbridge/pkg/observability/logger"
	"github.com/campusbridge/campusbridge/pkg/repository/document"
	"github.com/campusbridge/campusbridge/pkg/server"
	"github.com/campusbridge/campusbridge/pkg/server/router"
	ginrouter "github.com/campusbridge/campusbridge/pkg/server/router/gin"
	dynamostore "github.com/campusbridge/campusbridge/pkg/store/dynamodb"
	mongostore "github.com/campusbridge/campusbridge/pkg/store/mongodb"
	redisstore "github.com/campusbridge/campusbridge/pkg/store/redis"
	s3store "github.com/campusbridge/campusbridge/pkg/store/s3"
	"github.com/campusbridge/campusbridge/pkg/upload"
)

// Run builds the service from configuration and serves until the
// context is cancelled or an interrupt signal arrives.
func Run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	registry := health.NewRegistry()

	var closers []func() error
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Error("shutdown cleanup failed", "error", err)
			}
		}
	}()

	client, err := buildStoreClient(cfg, log, registry, &closers)
	if err != nil {
		return fmt.Errorf("build store client: %w", err)
	}

	cache, err := buildRefCache(cfg, log, registry, &closers)
	if err != nil {
		return fmt.Errorf("build reference cache: %w", err)
	}

	repos := controller.NewRepos(client, cache)

	verifier, err := auth.NewHMACVerifier(auth.Config{
		Secret:   cfg.Auth.Secret,
		Issuer:   cfg.Auth.Issuer,
		Audience: cfg.Auth.Audience,
	})
	if err != nil {
		return fmt.Errorf("build token verifier: %w", err)
	}
	authMW := authn.New(verifier, repos.Users, log)

	uploads, err := buildUploadStorage(cfg, log, registry, &closers)
	if err != nil {
		return fmt.Errorf("build upload storage: %w", err)
	}

	var notifier email.Notifier
	if cfg.Email.Enabled {
		mailer, err := email.NewMailer(email.Config{
			Host:     cfg.Email.Host,
			Port:     cfg.Email.Port,
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			From:     cfg.Email.From,
			To:       cfg.Email.To,
		}, log)
		if err != nil {
			return fmt.Errorf("build mailer: %w", err)
		}
		notifier = mailer
	}

	r := ginrouter.NewRouter()
	r.Use(
		requestid.RequestID(),
		recovery.Recovery(log),
		logging.WithConfig(log, logging.Config{
			Enabled:              true,
			ExcludedPathPrefixes: []string{"/healthz", "/metrics"},
		}),
		metrics.Metrics(),
		cors.CORS(cors.Config{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			AllowedMethods: cfg.CORS.AllowedMethods,
			AllowedHeaders: cfg.CORS.AllowedHeaders,
			MaxAge:         cfg.CORS.MaxAge,
		}),
	)

	RegisterRoutes(r, cfg, repos, authMW, uploads, notifier, registry, log)

	srv := server.NewServer(server.Config{
		Port:            cfg.HTTP.Port,
		ReadTimeout:     cfg.HTTP.ReadTimeout,
		WriteTimeout:    cfg.HTTP.WriteTimeout,
		IdleTimeout:     cfg.HTTP.IdleTimeout,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}, r, log)

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Start(runCtx)
}

// RegisterRoutes attaches every endpoint to the router.
func RegisterRoutes(
	r *ginrouter.GinRouter,
	cfg *config.Config,
	repos *controller.Repos,
	authMW *authn.Middleware,
	uploads upload.Storage,
	notifier email.Notifier,
	registry *health.Registry,
	log logger.Logger,
) {
	api := r.Group("/api")

	authCtl := controller.NewAuthController(repos.Users, cfg.Auth.AdminEmail, log)
	authGroup := api.Group("/auth", authMW.Authenticate())
	authGroup.POST("/register", authCtl.Register)
	authGroup.GET("/me", authCtl.Me)

	statsCtl := controller.NewStatsController(repos, log)

	industry := api.Group("/industry", authMW.Authenticate())
	industry.GET("/stats", statsCtl.Industry)
	registerEntityRoutes(industry, "/jobs", repos.Jobs, uploads, log, authMW, models.RoleIndustry)
	registerEntityRoutes(industry, "/internships", repos.Internships, uploads, log, authMW, models.RoleIndustry)
	registerEntityRoutes(industry, "/research", repos.Research, uploads, log, authMW, models.RoleIndustry)
	registerEntityRoutes(industry, "/challenges", repos.Challenges, uploads, log, authMW, models.RoleIndustry)
	registerEntityRoutes(industry, "/speakers", repos.Speakers, uploads, log, authMW, models.RoleIndustry)

	university := api.Group("/university", authMW.Authenticate())
	university.GET("/stats", statsCtl.University)
	registerEntityRoutes(university, "/fyps", repos.FYPs, uploads, log, authMW, models.RoleUniversity)
	registerEntityRoutes(university, "/projects", repos.Projects, uploads, log, authMW, models.RoleUniversity)
	registerEntityRoutes(university, "/courses", repos.Courses, uploads, log, authMW, models.RoleUniversity)
	registerEntityRoutes(university, "/trainings", repos.Trainings, uploads, log, authMW, models.RoleUniversity)
	registerEntityRoutes(university, "/collaborations", repos.Collaborations, uploads, log, authMW, models.RoleUniversity)

	inquiryCtl := controller.NewInquiryController(repos.Inquiries, notifier, log)
	if cfg.RateLimit.Enabled {
		limiter := ratelimit.NewTokenBucketLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		api.POST("/inquiries", inquiryCtl.Create, ratelimit.RateLimit(limiter, ratelimit.Config{}))
	} else {
		api.POST("/inquiries", inquiryCtl.Create)
	}

	adminCtl := controller.NewAdminController(repos, log)
	admin := api.Group("/admin", authMW.Authenticate(), authMW.RequireRole(models.RoleAdmin))
	admin.GET("/stats", adminCtl.Stats)
	admin.GET("/users", adminCtl.ListUsers)
	admin.PUT("/users/:id/verify", adminCtl.VerifyUser)
	admin.DELETE("/users/:id", adminCtl.DeleteUser)
	admin.GET("/inquiries", adminCtl.ListInquiries)
	admin.PUT("/inquiries/:id/status", adminCtl.UpdateInquiryStatus)
	admin.DELETE("/inquiries/:id", adminCtl.DeleteInquiry)
	admin.GET("/content", adminCtl.ContentList)
	admin.DELETE("/content/:id", adminCtl.ContentDelete)

	r.GET("/healthz", healthHandler(registry))
	r.GET("/metrics", func(c router.Context) error {
		promhttp.Handler().ServeHTTP(c.Response(), c.Request())
		return nil
	})
	r.NoRoute(func(c router.Context) error {
		return c.JSON(http.StatusNotFound, controller.ErrorResponse{Message: "route not found"})
	})
}

// registerEntityRoutes mounts the standard CRUD surface for one content
// collection. Reads need only a valid token; writes need the sector
// role or admin.
func registerEntityRoutes[T any, PT document.EntityPtr[T]](
	g router.Router,
	path string,
	repo *document.Repository[T, PT],
	uploads upload.Storage,
	log logger.Logger,
	authMW *authn.Middleware,
	role models.Role,
) {
	h := controller.NewCRUD(repo, uploads, log)
	requireRole := authMW.RequireRole(role, models.RoleAdmin)

	g.GET(path, h.GetAll)
	g.POST(path, h.CreateOne, requireRole)
	g.GET(path+"/:id", h.GetOne)
	g.PUT(path+"/:id", h.UpdateOne, requireRole)
	g.DELETE(path+"/:id", h.DeleteOne, requireRole)
}

func healthHandler(registry *health.Registry) router.HandlerFunc {
	return func(c router.Context) error {
		result := registry.Check(c.Request().Context())
		status := http.StatusOK
		if !result.IsHealthy() {
			status = http.StatusServiceUnavailable
		}
		return c.JSON(status, result)
	}
}

func buildStoreClient(cfg *config.Config, log logger.Logger, registry *health.Registry, closers *[]func() error) (document.Client, error) {
	switch cfg.Store.Type {
	case config.StoreTypeMongoDB:
		adapter, err := mongostore.NewAdapter(mongostore.Config{
			URL:              cfg.Store.MongoDB.URL,
			Database:         cfg.Store.MongoDB.Database,
			ConnectTimeout:   cfg.Store.MongoDB.ConnectTimeout,
			OperationTimeout: cfg.Store.MongoDB.OperationTimeout,
		}, log)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, adapter.Close)
		registry.Register("mongodb", adapter)
		return document.NewMongoClient(adapter)
	case config.StoreTypeDynamoDB:
		adapter, err := dynamostore.NewAdapter(dynamostore.Config{
			Region:           cfg.Store.DynamoDB.Region,
			Endpoint:         cfg.Store.DynamoDB.Endpoint,
			AccessKeyID:      cfg.Store.DynamoDB.AccessKeyID,
			SecretAccessKey:  cfg.Store.DynamoDB.SecretAccessKey,
			SessionToken:     cfg.Store.DynamoDB.SessionToken,
			TablePrefix:      cfg.Store.DynamoDB.TablePrefix,
			OperationTimeout: cfg.Store.DynamoDB.OperationTimeout,
		}, log)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, adapter.Close)
		registry.Register("dynamodb", adapter)
		return document.NewDynamoClient(adapter)
	case config.StoreTypeMemory:
		client := document.NewMemoryClient()
		registry.Register("store", client)
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported store type: %s", cfg.Store.Type)
	}
}

func buildRefCache(cfg *config.Config, log logger.Logger, registry *health.Registry, closers *[]func() error) (document.RefCache, error) {
	switch cfg.Cache.Type {
	case config.CacheTypeMemory:
		return document.NewMemoryRefCache(cfg.Cache.TTL), nil
	case config.CacheTypeRedis:
		adapter, err := redisstore.NewAdapter(redisstore.Config{
			URL:              cfg.Cache.Redis.URL,
			MaxConns:         cfg.Cache.Redis.MaxConns,
			OperationTimeout: cfg.Cache.Redis.OperationTimeout,
		}, log)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, adapter.Close)
		registry.Register("redis", adapter)
		return document.NewRedisRefCache(adapter, cfg.Cache.TTL), nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.Cache.Type)
	}
}

func buildUploadStorage(cfg *config.Config, log logger.Logger, registry *health.Registry, closers *[]func() error) (upload.Storage, error) {
	switch cfg.Upload.Type {
	case config.UploadTypeLocal:
		return upload.NewLocalStorage(cfg.Upload.Local.Dir, cfg.Upload.BaseURL, cfg.Upload.MaxSize)
	case config.UploadTypeS3:
		adapter, err := s3store.NewAdapter(s3store.Config{
			Bucket:           cfg.Upload.S3.Bucket,
			Region:           cfg.Upload.S3.Region,
			Endpoint:         cfg.Upload.S3.Endpoint,
			AccessKeyID:      cfg.Upload.S3.AccessKeyID,
			SecretAccessKey:  cfg.Upload.S3.SecretAccessKey,
			SessionToken:     cfg.Upload.S3.SessionToken,
			UsePathStyle:     cfg.Upload.S3.UsePathStyle,
			OperationTimeout: cfg.Upload.S3.OperationTimeout,
		}, log)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, adapter.Close)
		registry.Register("s3", adapter)
		return upload.NewS3Storage(adapter, cfg.Upload.S3.KeyPrefix, cfg.Upload.BaseURL, cfg.Upload.MaxSize)
	default:
		return nil, fmt.Errorf("unsupported upload type: %s", cfg.Upload.Type)
	}
}
