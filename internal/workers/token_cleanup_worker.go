package workers

import (
	"context"
	"time"

	"hrportal_backend/internal/logger"
	"hrportal_backend/internal/repositories"

	"gorm.io/gorm"
)

type TokenCleanupWorker struct {
	db           *gorm.DB
	employeeRepo repositories.EmployeeRepository
	interval     time.Duration
	now          func() time.Time
}

func NewTokenCleanupWorker(db *gorm.DB, employeeRepo repositories.EmployeeRepository, interval time.Duration) *TokenCleanupWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &TokenCleanupWorker{
		db:           db,
		employeeRepo: employeeRepo,
		interval:     interval,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Start запускает фоновую очистку просроченных кодов и токенов сброса
func (w *TokenCleanupWorker) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *TokenCleanupWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Token cleanup worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce - один проход очистки; ошибки только логируются
func (w *TokenCleanupWorker) RunOnce(ctx context.Context) int64 {
	cleared, err := w.employeeRepo.ClearExpiredTokens(w.db.WithContext(ctx), w.now())
	if err != nil {
		logger.CtxWithError(ctx, "failed to clear expired tokens", err)
		return 0
	}
	if cleared > 0 {
		logger.CtxInfo(ctx, "expired tokens cleared", "count", cleared)
	}
	return cleared
}
