package main

import (
	"context"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/config"
	"github.com/Abraxas-365/jobboard/pkg/iam/auth"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/Abraxas-365/jobboard/recruitment/application"
	"github.com/Abraxas-365/jobboard/recruitment/application/applicationinfra"
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/Abraxas-365/jobboard/recruitment/job/jobapi"
	"github.com/Abraxas-365/jobboard/recruitment/job/jobinfra"
	"github.com/Abraxas-365/jobboard/recruitment/job/jobsrv"
	"github.com/Abraxas-365/jobboard/recruitment/savedjob"
	"github.com/Abraxas-365/jobboard/recruitment/savedjob/savedjobinfra"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const devJWTSecret = "dev-secret-please-change-me"

// listingStore is what both the postgres and the in-memory job stores provide
type listingStore interface {
	job.Store
	job.ViewSink
	job.ViewStore
	Ping(ctx context.Context) error
}

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Clock  kernel.Clock

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	Store      listingStore
	ViewBuffer *jobinfra.RedisViewBuffer

	// Lookups
	Applications application.Lookup
	SavedJobs    savedjob.Lookup

	// Services
	TokenService *auth.TokenService
	SearchEngine *jobsrv.SearchEngine
	ViewCounter  *jobsrv.ViewCounter
	ViewFlusher  *jobsrv.ViewFlusher

	// API Handlers
	JobHandlers *jobapi.Handlers

	// Middleware
	AuthMiddleware *auth.Middleware
}

// NewContainer initializes the dependency injection container
func NewContainer(cfg *config.Config) *Container {
	c := &Container{Config: cfg, Clock: kernel.SystemClock}
	c.initInfrastructure()
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	if c.Config.Database.Driver == "postgres" {
		db, err := sqlx.Connect("postgres", c.Config.Database.DSN())
		if err != nil {
			logx.Fatalf("Failed to connect to database: %v", err)
		}
		db.SetMaxOpenConns(c.Config.Database.MaxOpenConns)
		db.SetMaxIdleConns(c.Config.Database.MaxIdleConns)
		db.SetConnMaxLifetime(c.Config.Database.ConnMaxLifetime)
		c.DB = db
	}

	// 2. Redis Connection
	if c.Config.Views.Sink == "redis" {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     c.Config.Redis.Addr,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
		if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
			logx.Warnf("Failed to connect to Redis: %v", err)
		}
	}

	// 3. Auth Config
	if c.Config.Auth.JWTSecret == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		c.Config.Auth.JWTSecret = devJWTSecret
	}
}

func (c *Container) initRepositories() {
	if c.DB != nil {
		c.Store = jobinfra.NewPostgresJobStore(c.DB)
		c.Applications = applicationinfra.NewPostgresApplicationRepository(c.DB)
		c.SavedJobs = savedjobinfra.NewPostgresSavedJobRepository(c.DB)
		return
	}

	logx.Warn("STORE_DRIVER=memory, serving demo listings")
	c.Store = jobinfra.NewMemoryJobStore(jobinfra.DemoListings(c.Clock())...)
	c.Applications = applicationinfra.NewMemoryApplicationRepository()
	c.SavedJobs = savedjobinfra.NewMemorySavedJobRepository()
}

func (c *Container) initServices() {
	// Token Service
	c.TokenService = auth.NewJWTService(
		c.Config.Auth.JWTSecret,
		c.Config.Auth.AccessTokenTTL,
		c.Config.Auth.Issuer,
	)

	// View counting: direct increments, or buffered in redis and flushed on a schedule
	var sink job.ViewSink = c.Store
	if c.Redis != nil {
		c.ViewBuffer = jobinfra.NewRedisViewBuffer(c.Redis, c.Config.Views.RedisKey)
		sink = c.ViewBuffer
		c.ViewFlusher = jobsrv.NewViewFlusher(c.ViewBuffer, c.Store, c.Config.Views.FlushSpec, c.Config.Views.Timeout)
	}
	c.ViewCounter = jobsrv.NewViewCounter(
		sink,
		c.Config.Views.Workers,
		c.Config.Views.QueueSize,
		c.Config.Views.Timeout,
	)

	c.SearchEngine = jobsrv.NewSearchEngine(
		c.Store,
		jobsrv.NewAnnotator(c.Applications, c.SavedJobs),
		c.ViewCounter,
		c.Clock,
		c.Config.Search.QueryTimeout,
	)

	// --- Handlers ---
	c.JobHandlers = jobapi.NewHandlers(c.SearchEngine)

	// --- Middleware ---
	c.AuthMiddleware = auth.NewMiddleware(c.TokenService)
}

// Start launches the background view pipeline
func (c *Container) Start() error {
	c.ViewCounter.Start()
	if c.ViewFlusher != nil {
		return c.ViewFlusher.Start()
	}
	return nil
}

// Close drains background work and releases connections
func (c *Container) Close(timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := c.ViewCounter.Stop(ctx); err != nil {
		logx.Warnf("View counter did not drain: %v", err)
	}
	if c.ViewFlusher != nil {
		c.ViewFlusher.Stop(ctx)
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Warnf("Failed to close Redis: %v", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Warnf("Failed to close database: %v", err)
		}
	}
}

// Health reports reachability of each backing service
func (c *Container) Health(ctx context.Context) map[string]bool {
	status := map[string]bool{"store": c.Store.Ping(ctx) == nil}
	if c.ViewBuffer != nil {
		status["redis"] = c.ViewBuffer.Ping(ctx) == nil
	}
	return status
}
