package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Abraxas-365/seeker/pkg/fsx"
	"github.com/Abraxas-365/seeker/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/seeker/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/seeker/pkg/iam/auth"
	"github.com/Abraxas-365/seeker/pkg/logx"
	"github.com/Abraxas-365/seeker/pkg/migrations"
	"github.com/Abraxas-365/seeker/recruitment/candidate/candidateapi"
	"github.com/Abraxas-365/seeker/recruitment/candidate/candidateinfra"
	"github.com/Abraxas-365/seeker/recruitment/candidate/candidatesrv"
	"github.com/Abraxas-365/seeker/recruitment/profile/profileapi"
	"github.com/Abraxas-365/seeker/recruitment/profile/profileinfra"
	"github.com/Abraxas-365/seeker/recruitment/profile/profilesrv"
	"github.com/Abraxas-365/seeker/recruitment/resume/resumeapi"
	"github.com/Abraxas-365/seeker/recruitment/resume/resumeinfra"
	"github.com/Abraxas-365/seeker/recruitment/resume/resumesrv"
	"github.com/Abraxas-365/seeker/recruitment/resume/worker"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client
	// LocalFilesDir is set when uploads are kept on disk instead of S3
	LocalFilesDir string

	// Services
	TokenService     auth.TokenService
	ProfileService   *profilesrv.Service
	CandidateService *candidatesrv.CandidateService
	ResumeService    *resumesrv.Service
	ResumeWorker     *worker.ResumeWorker

	// API Handlers
	ProfileHandlers   *profileapi.Handlers
	CandidateHandlers *candidateapi.Handlers
	ResumeHandlers    *resumeapi.ResumeHandlers

	// Middleware
	AuthMiddleware fiber.Handler
}

// NewContainer initializes the dependency injection container
func NewContainer(ctx context.Context) *Container {
	c := &Container{}
	c.initInfrastructure(ctx)
	c.initServices()
	return c
}

func (c *Container) initInfrastructure(ctx context.Context) {
	// 1. Database Connection
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_USER"),
			os.Getenv("DB_PASS"), os.Getenv("DB_NAME"))
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	if err := migrations.Up(ctx, db.DB); err != nil {
		logx.Fatalf("Failed to migrate database: %v", err)
	}

	// 2. Redis Connection
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASS"),
		DB:       0,
	})
	if _, err := c.Redis.Ping(ctx).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. File storage: S3 when a bucket is configured, local disk otherwise
	if bucket := os.Getenv("AWS_BUCKET"); bucket != "" {
		cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(os.Getenv("AWS_REGION")))
		if err != nil {
			logx.Fatalf("unable to load SDK config, %v", err)
		}
		c.S3Client = s3.NewFromConfig(cfg)
		s3fs := fsxs3.NewS3FileSystem(c.S3Client, bucket, "uploads")
		if publicURL := os.Getenv("AWS_PUBLIC_URL"); publicURL != "" {
			s3fs = s3fs.WithPublicURL(publicURL)
		}
		c.FileSystem = s3fs
	} else {
		c.LocalFilesDir = envOr("LOCAL_STORAGE_DIR", "./uploads")
		baseURL := envOr("PUBLIC_BASE_URL", "http://localhost:"+envOr("PORT", "8080")) + "/files"
		logx.Warnf("AWS_BUCKET is not set, storing uploads in %s", c.LocalFilesDir)
		c.FileSystem = fsxlocal.NewLocalFileSystem(c.LocalFilesDir, baseURL)
	}

	// 4. Auth
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		secret = "super-secret-key-please-change-me-in-production"
	}
	ttl, err := time.ParseDuration(envOr("JWT_TTL", "24h"))
	if err != nil {
		logx.Fatalf("Invalid JWT_TTL: %v", err)
	}
	c.TokenService = auth.NewJWTService(secret, envOr("JWT_ISSUER", "seeker"), ttl)
}

func (c *Container) initServices() {
	// --- Repositories ---
	profileRepo := profileinfra.NewPostgresProfileRepository(c.DB)
	candidateRepo := candidateinfra.NewPostgresCandidateRepository(c.DB)
	resumeQueue := resumeinfra.NewRedisQueue(c.Redis, "seeker:resume_extraction")

	// --- Domain Services ---
	c.ProfileService = profilesrv.NewService(profileRepo)
	c.ResumeService = resumesrv.NewService(resumeQueue, c.FileSystem, candidateRepo)
	c.CandidateService = candidatesrv.NewCandidateService(candidateRepo, c.FileSystem, c.ResumeService)

	workers, err := strconv.Atoi(envOr("RESUME_WORKERS", "2"))
	if err != nil || workers < 1 {
		logx.Warnf("Invalid RESUME_WORKERS %q, using 2", os.Getenv("RESUME_WORKERS"))
		workers = 2
	}
	c.ResumeWorker = worker.NewResumeWorker(c.ResumeService, resumeQueue, workers)

	// --- Handlers ---
	c.ProfileHandlers = profileapi.NewHandlers(c.ProfileService)
	c.CandidateHandlers = candidateapi.NewHandlers(c.CandidateService)
	c.ResumeHandlers = resumeapi.NewResumeHandlers(c.ResumeService, candidateRepo)

	// --- Middleware ---
	c.AuthMiddleware = auth.Middleware(c.TokenService)
}

// Close releases the connections opened by the container
func (c *Container) Close() {
	if err := c.Redis.Close(); err != nil {
		logx.Warnf("Failed to close Redis: %v", err)
	}
	if err := c.DB.Close(); err != nil {
		logx.Warnf("Failed to close database: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
