package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	googleauth "wevolve-backend/internal/auth"
	"wevolve-backend/internal/jobs"
	"wevolve-backend/internal/matches"
	"wevolve-backend/internal/queue"
	"wevolve-backend/internal/services/health"
	"wevolve-backend/internal/shared/auth"
	"wevolve-backend/internal/shared/config"
	"wevolve-backend/internal/shared/server"
	"wevolve-backend/internal/shared/storage/db"
	"wevolve-backend/internal/shared/storage/object"
	localstore "wevolve-backend/internal/shared/storage/object/local"
	s3store "wevolve-backend/internal/shared/storage/object/s3"
	"wevolve-backend/internal/shared/telemetry"
	"wevolve-backend/internal/uploads"
	"wevolve-backend/internal/users"
	"wevolve-backend/match/engine"
)

// App holds shared dependencies and the HTTP router.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Store          object.ObjectStore
	Queue          queue.Client
	Tokens         *auth.Tokens
	UsersService   *users.Service
	JobsService    *jobs.Service
	MatchesService *matches.Service
	UploadsService *uploads.Service
	closers        []func() error
}

// Build prepares dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB}
	if sqlDB != nil {
		app.closers = append(app.closers, sqlDB.Close)
	}

	store, presigner, err := buildStore(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Store = store

	app.Queue, err = buildQueue(cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	if c, ok := app.Queue.(*queue.AMQPClient); ok {
		app.closers = append(app.closers, c.Close)
	}

	if err := buildServices(ctx, app, presigner); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// Close releases connections opened by Build.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			telemetry.Error("bootstrap.close_failed", map[string]any{"error": err})
		}
	}
	a.closers = nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_repositories", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Error("bootstrap.database_unavailable", map[string]any{"error": err})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, uploads.Presigner, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return localstore.New(cfg.LocalStoreDir), nil, nil
	}
}

func buildQueue(cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.RabbitMQURL) == "" {
		return queue.NopClient{}, nil
	}
	client, err := queue.NewAMQPClient(cfg.RabbitMQURL, cfg.MatchEventsExchange)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Error("bootstrap.queue_unavailable", map[string]any{"error": err})
			return queue.NopClient{}, nil
		}
		return nil, err
	}
	return client, nil
}

func buildServices(ctx context.Context, app *App, presigner uploads.Presigner) error {
	cfg := app.Config

	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.Env, time.Duration(cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return err
	}
	passwords, err := auth.NewPasswords(cfg.BcryptCost, cfg.PasswordPepper)
	if err != nil {
		return err
	}

	var (
		userRepo   users.Repo
		jobRepo    jobs.Repo
		resumeRepo uploads.Repo
	)
	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		jobRepo = &jobs.PGRepo{DB: app.DB}
		resumeRepo = &uploads.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		jobRepo = jobs.NewMemoryRepo()
		resumeRepo = uploads.NewMemoryRepo()
	}

	userSvc := users.NewService(userRepo, passwords)
	jobSvc := jobs.NewService(jobRepo)
	if app.DB == nil && isDevLike(cfg.Env) {
		if err := jobSvc.Seed(ctx); err != nil {
			return err
		}
	}
	matchSvc := matches.NewService(userSvc, jobSvc, engine.Default(), app.Queue)
	uploadSvc := uploads.NewService(app.Store, resumeRepo, jobSvc, userSvc)
	uploadSvc.Presigner = presigner

	secure := cfg.Env == "production" || cfg.Env == "staging"
	googleAuth := googleauth.NewGoogleService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		cfg.UIRedirectURL,
		userSvc,
		tokens,
		secure,
	)

	app.Tokens = tokens
	app.UsersService = userSvc
	app.JobsService = jobSvc
	app.MatchesService = matchSvc
	app.UploadsService = uploadSvc
	app.Router = server.NewRouter(server.RouterDeps{
		Config:        cfg,
		Tokens:        tokens,
		Health:        health.NewService(app.DB),
		UserHandler:   users.NewHandler(userSvc, tokens, secure),
		JobHandler:    jobs.NewHandler(jobSvc),
		MatchHandler:  matches.NewHandler(matchSvc),
		UploadHandler: uploads.NewHandler(uploadSvc),
		GoogleAuth:    googleAuth,
	})
	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}
