package usecase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"talentsift/internal/domain"
	"talentsift/internal/infrastructure/cache"
)

// statusCacheTTL keeps the overview counts warm between dashboard polls.
// Health pings are never cached.
const statusCacheTTL = 30 * time.Second

// statusStore is the slice of the status repository the overview reads.
type statusStore interface {
	TotalResumes(ctx context.Context) (int, error)
	TotalJobs(ctx context.Context) (int, error)
	RunsToday(ctx context.Context) (int, error)
	ResultBands(ctx context.Context) ([]domain.BandStat, error)
}

type StatusUsecase interface {
	GetStatus(ctx context.Context) (domain.ServiceStatus, error)
}

type Status struct {
	store  statusStore
	db     interface{ Ping(ctx context.Context) error }
	redis  interface{ Ping(ctx context.Context) error }
	cache  Cache
	logger *zap.Logger
	now    func() time.Time
}

func NewStatusUsecase(store statusStore, db interface{ Ping(ctx context.Context) error }, redis *cache.Redis, c Cache, logger *zap.Logger) *Status {
	var redisPing interface{ Ping(ctx context.Context) error }
	if redis != nil {
		redisPing = redis
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Status{store: store, db: db, redis: redisPing, cache: c, logger: logger, now: time.Now}
}

type statusCounts struct {
	TotalResumes int               `json:"total_resumes"`
	TotalJobs    int               `json:"total_jobs"`
	RunsToday    int               `json:"runs_today"`
	Bands        []domain.BandStat `json:"bands"`
}

// GetStatus never fails: unavailable dependencies surface as unhealthy
// flags and zeroed counts, not as an error response.
func (u *Status) GetStatus(ctx context.Context) (domain.ServiceStatus, error) {
	counts := u.loadCounts(ctx)

	out := domain.ServiceStatus{
		TotalResumes: counts.TotalResumes,
		TotalJobs:    counts.TotalJobs,
		RunsToday:    counts.RunsToday,
		Bands:        counts.Bands,
		ServerTime:   u.now().UTC(),
	}
	if out.Bands == nil {
		out.Bands = make([]domain.BandStat, 0)
	}

	if u.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		out.DatabaseHealthy = u.db.Ping(pingCtx) == nil
		cancel()
	}
	if u.redis != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		out.RedisHealthy = u.redis.Ping(pingCtx) == nil
		cancel()
	}

	return out, nil
}

func (u *Status) loadCounts(ctx context.Context) statusCounts {
	var counts statusCounts
	if u.store == nil {
		return counts
	}

	if u.cache != nil {
		if hit, err := u.cache.GetJSON(ctx, StatusCacheKey, &counts); err == nil && hit {
			return counts
		}
	}

	var (
		errResumes error
		errJobs    error
		errRuns    error
		errBands   error
	)

	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		counts.TotalResumes, errResumes = u.store.TotalResumes(ctx)
		if errResumes != nil {
			u.logger.Warn("status count failed", zap.String("metric", "total_resumes"), zap.Error(errResumes))
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		counts.TotalJobs, errJobs = u.store.TotalJobs(ctx)
		if errJobs != nil {
			u.logger.Warn("status count failed", zap.String("metric", "total_jobs"), zap.Error(errJobs))
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		counts.RunsToday, errRuns = u.store.RunsToday(ctx)
		if errRuns != nil {
			u.logger.Warn("status count failed", zap.String("metric", "runs_today"), zap.Error(errRuns))
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		counts.Bands, errBands = u.store.ResultBands(ctx)
		if errBands != nil {
			u.logger.Warn("status count failed", zap.String("metric", "result_bands"), zap.Error(errBands))
		}
	}()

	wg.Wait()

	allOK := errResumes == nil && errJobs == nil && errRuns == nil && errBands == nil
	if allOK && u.cache != nil {
		_ = u.cache.SetJSON(ctx, StatusCacheKey, counts, statusCacheTTL)
	}
	return counts
}
