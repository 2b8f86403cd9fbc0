package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/enhance"
	"resume-builder/internal/enhance/gemini"
	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/server"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/storage/object/local"
	objects3 "resume-builder/internal/shared/storage/object/s3"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/users"
)

// App is the assembled application.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
}

// Close releases long-lived resources.
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// Build wires configuration, storage, services and the HTTP router.
// Without DATABASE_URL outside production, everything runs on in-memory
// repositories so the server works in dev with zero setup.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	var (
		database   *sql.DB
		userRepo   users.Repo
		resumeRepo resumes.Repo
	)

	switch {
	case cfg.DatabaseURL != "":
		var err error
		database, err = db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		if err := db.RunMigrations(ctx, database); err != nil {
			database.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		userRepo = &users.PGRepo{DB: database}
		resumeRepo = &resumes.PGRepo{DB: database}
	case cfg.Env == "production":
		return nil, fmt.Errorf("DATABASE_URL is required in production")
	default:
		telemetry.Info("storage.memory_fallback", map[string]any{
			"env": cfg.Env,
		})
		userRepo = users.NewMemoryRepo()
		resumeRepo = resumes.NewMemoryRepo()
	}

	store, err := buildObjectStore(ctx, cfg)
	if err != nil {
		if database != nil {
			database.Close()
		}
		return nil, err
	}

	var enhanceClient enhance.Client
	if cfg.GeminiAPIKey != "" {
		enhanceClient = gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel)
	} else {
		telemetry.Info("enhance.disabled", map[string]any{
			"reason": "GEMINI_API_KEY not set",
		})
	}

	router := server.NewRouter(server.RouterDeps{
		Config:  cfg,
		Users:   users.NewHandler(users.NewService(userRepo), cfg.JWTSecret),
		Resumes: resumes.NewHandler(resumes.NewService(resumeRepo, store)),
		Enhance: enhance.NewHandler(enhanceClient),
	})

	return &App{Config: cfg, Router: router, DB: database}, nil
}

func buildObjectStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	if cfg.ObjectStoreType == "s3" {
		store, err := objects3.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			return nil, fmt.Errorf("init s3 store: %w", err)
		}
		return store, nil
	}
	return local.New(cfg.LocalStoreDir), nil
}
