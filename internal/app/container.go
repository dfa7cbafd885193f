// Package app assembles the service: the container builds every dependency
// from config, the bootstrap mounts them on a fiber app.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"talentsift/internal/config"
	"talentsift/internal/database"
	"talentsift/internal/database/migration"
	dbpostgres "talentsift/internal/database/postgres"
	"talentsift/internal/database/seeder"
	"talentsift/internal/domain/matching"
	"talentsift/internal/importer"
	"talentsift/internal/infrastructure/cache"
	"talentsift/internal/pipeline"
	"talentsift/internal/pkg/jwt"
	"talentsift/internal/repository"
	"talentsift/internal/usecase"
	"talentsift/internal/ws"
)

// Container owns every long-lived dependency. Close releases them in
// reverse construction order.
type Container struct {
	Config config.Config
	Logger *zap.Logger

	DB    database.DB
	Redis *cache.Redis

	Engine *matching.Engine
	JWT    jwt.Service
	Hub    *ws.Hub

	Auth      usecase.AuthUsecase
	Resumes   usecase.ResumeUsecase
	Jobs      usecase.JobUsecase
	JobImport usecase.JobImportUsecase
	Matching  usecase.MatchingUsecase
	Screening usecase.ScreeningUsecase
	Skills    usecase.SkillUsecase
	Status    usecase.StatusUsecase
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := (migration.Runner{}).Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	if err := seeder.Run(ctx, db, seeder.Defaults()...); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed database: %w", err)
	}

	redis := cache.NewRedis(cfg.Cache, logger)

	engine, err := matching.NewEngine(matching.Config{
		Weights: matching.Weights{
			Skill:   cfg.Match.SkillWeight,
			Keyword: cfg.Match.KeywordWeight,
		},
	})
	if err != nil {
		_ = redis.Close()
		_ = db.Close()
		return nil, fmt.Errorf("build matching engine: %w", err)
	}

	jwtSvc := jwt.NewHMACService(
		cfg.Auth.JWTSecret,
		cfg.Auth.JWTRefreshSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)

	hub := ws.NewHub(logger)
	ws.SetDefaultHub(hub)

	users := repository.NewPostgresUserRepository(db)
	resumes := repository.NewPostgresResumeRepository(db)
	jobs := repository.NewPostgresJobRepository(db)
	runs := repository.NewPostgresScreeningRepository(db)
	skills := repository.NewPostgresSkillRepository(db)
	status := repository.NewPostgresStatusRepository(db)

	runner := pipeline.NewRunner(engine, jobs, resumes, runs, ws.ScreeningNotifier{}, logger)

	jobUC := usecase.NewJobUsecase(jobs, engine, redis, logger)
	fetcher := importer.New(cfg.Importer, logger)

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Redis:  redis,
		Engine: engine,
		JWT:    jwtSvc,
		Hub:    hub,

		Auth:      usecase.NewAuthUsecase(users, jwtSvc),
		Resumes:   usecase.NewResumeUsecase(resumes, engine),
		Jobs:      jobUC,
		JobImport: usecase.NewJobImportUsecase(fetcher, jobUC, logger),
		Matching:  usecase.NewMatchingUsecase(resumes, jobs, engine, redis),
		Screening: usecase.NewScreeningUsecase(runs, jobs, runner, redis, cfg.Match.ScreeningWorkers, logger),
		Skills:    usecase.NewSkillUsecase(skills, redis),
		Status:    usecase.NewStatusUsecase(status, db, redis, redis, logger),
	}
	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	ws.SetDefaultHub(nil)

	var firstErr error
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
