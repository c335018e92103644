package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Ethansurfas/launchpad/config"
	"github.com/Ethansurfas/launchpad/internal/api/handlers"
	"github.com/Ethansurfas/launchpad/internal/api/routes"
	"github.com/Ethansurfas/launchpad/internal/logger"
	"github.com/Ethansurfas/launchpad/internal/providers/llm"
	"github.com/Ethansurfas/launchpad/internal/providers/stt"
	"github.com/Ethansurfas/launchpad/internal/providers/video"
	mongorepo "github.com/Ethansurfas/launchpad/internal/repositories/mongo"
	pgrepo "github.com/Ethansurfas/launchpad/internal/repositories/postgres"
	"github.com/Ethansurfas/launchpad/internal/services"
	"github.com/Ethansurfas/launchpad/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config error: %v", err)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Init PostgreSQL
	if err := config.InitPostgres(cfg.Postgres); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := pgrepo.AutoMigrate(config.PostgresDB); err != nil {
		log.Fatalf("PostgreSQL migrate error: %v", err)
	}
	log.Info("PostgreSQL connected")

	// Init Redis
	if err := config.InitRedis(cfg.Redis); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	if config.RedisClient == nil {
		log.Warn("REDIS_ADDR not set, rate limiting disabled")
	}

	// Init MongoDB
	if err := config.InitMongo(cfg.Mongo); err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	var events mongorepo.EventRepository = mongorepo.NopEventRepo{}
	if db := config.MongoDatabase(cfg.Mongo); db != nil {
		if err := config.EnsureMongoIndexes(db); err != nil {
			log.Fatalf("MongoDB index error: %v", err)
		}
		events = mongorepo.NewEventRepo(db)
		log.Info("MongoDB connected")
	} else {
		log.Warn("MONGO_URI not set, interview events are not recorded")
	}

	// Providers. Clients must outlive the signal context.
	bg := context.Background()
	var closers []io.Closer

	videoProvider := video.NewDaily(cfg.Daily.APIKey, cfg.Daily.BaseURL, cfg.Daily.RoomTTL, cfg.Daily.Timeout)

	speech, err := newTranscriber(bg, cfg.STT)
	if err != nil {
		log.Fatalf("speech client error: %v", err)
	}
	closers = append(closers, speech)

	analyzer, err := newAnalyzer(bg, cfg.LLM)
	if err != nil {
		log.Fatalf("llm client error: %v", err)
	}
	closers = append(closers, analyzer)

	uploader, err := newUploader(bg, cfg.Storage)
	if err != nil {
		log.Fatalf("storage error: %v", err)
	}
	if c, ok := uploader.(io.Closer); ok {
		closers = append(closers, c)
	}

	defer func() {
		for _, c := range closers {
			if err := c.Close(); err != nil {
				log.WithError(err).Warn("close provider")
			}
		}
	}()

	// Repositories
	db := config.PostgresDB
	users := pgrepo.NewUserRepo(db)
	companies := pgrepo.NewCompanyRepo(db)
	jobs := pgrepo.NewJobRepo(db)
	apps := pgrepo.NewApplicationRepo(db)
	interviews := pgrepo.NewInterviewRepo(db)
	reviews := pgrepo.NewReviewRepo(db)
	career := pgrepo.NewCareerReviewRepo(db)
	profiles := pgrepo.NewProfileRepo(db)

	// Services
	userSvc := services.NewUserService(users)
	jobSvc := services.NewJobService(jobs, apps, users)
	appSvc := services.NewApplicationService(apps, jobs, users)
	interviewSvc := services.NewInterviewService(interviews, apps, users, events, log)
	roomSvc := services.NewRoomService(interviews, users, videoProvider, cfg.Daily.Timeout, events, log)
	feedbackSvc := services.NewFeedbackService(interviews, users, videoProvider, speech, analyzer, services.FeedbackTimeouts{
		Video: cfg.Daily.Timeout,
		STT:   cfg.STT.Timeout,
		LLM:   cfg.LLM.Timeout,
	})
	reviewSvc := services.NewReviewService(reviews, apps, companies, users)
	companySvc := services.NewCompanyService(companies, jobs, reviews, users)
	adminSvc := services.NewAdminService(companies, jobs, reviews, career)
	profileSvc := services.NewProfileService(profiles, users)
	uploadSvc := services.NewUploadService(uploader, cfg.Storage.Timeout)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Auth:    cfg.Auth,
		Limits:  cfg.Limits,
		Redis:   config.RedisClient,
		Users:   userSvc,
		Log:     log,

		Jobs:         handlers.NewJobHandler(jobSvc),
		Applications: handlers.NewApplicationHandler(appSvc),
		Interviews:   handlers.NewInterviewHandler(interviewSvc, roomSvc, feedbackSvc),
		Reviews:      handlers.NewReviewHandler(reviewSvc),
		Companies:    handlers.NewCompanyHandler(companySvc),
		Admin:        handlers.NewAdminHandler(adminSvc),
		Profile:      handlers.NewProfileHandler(profileSvc),
		Upload:       handlers.NewUploadHandler(uploadSvc),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown")
	}
	if config.MongoClient != nil {
		_ = config.MongoClient.Disconnect(shutdownCtx)
	}
	if config.RedisClient != nil {
		_ = config.RedisClient.Close()
	}
}

func newTranscriber(ctx context.Context, cfg config.STTConfig) (stt.Provider, error) {
	switch cfg.Provider {
	case "google":
		return stt.NewGoogleSpeech(ctx, cfg.Language, cfg.Encoding, cfg.SampleRateHz)
	default:
		return stt.NewWhisper(cfg.OpenAIAPIKey, cfg.Model, cfg.Language), nil
	}
}

func newAnalyzer(ctx context.Context, cfg config.LLMConfig) (llm.Analyzer, error) {
	switch cfg.Provider {
	case "anthropic":
		return llm.NewAnthropic(cfg.AnthropicAPIKey, cfg.Model)
	default:
		return llm.NewVertexGemini(ctx, cfg.GCPProject, cfg.GCPLocation, cfg.Model)
	}
}

func newUploader(ctx context.Context, cfg config.StorageConfig) (storage.Uploader, error) {
	switch cfg.Driver {
	case "minio":
		return storage.NewMinIOUploader(storage.MinIOConfig{
			Endpoint:      cfg.MinIOEndpoint,
			AccessKey:     cfg.MinIOAccessKey,
			SecretKey:     cfg.MinIOSecretKey,
			UseSSL:        cfg.MinIOUseSSL,
			Bucket:        cfg.Bucket,
			PublicBaseURL: cfg.PublicBaseURL,
		})
	default:
		return storage.NewGCSUploader(ctx, cfg.Bucket)
	}
}
