package allowance

//go:generate mockgen -source=allowance.go -destination=mock_allowance.go -package=allowance

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/securebank/internal/config"
	"github.com/GlebRadaev/securebank/internal/domain"
)

const (
	defaultBatchSize = 1000
	defaultWorkers   = 10
)

type AccountRepo interface {
	FindDueForReset(ctx context.Context, periodStart time.Time, limit int) ([]int, error)
	ResetWithdrawalLimit(ctx context.Context, id int, limit int, periodStart time.Time) (bool, error)
}

// Service gives every open account its monthly withdrawal allowance back once a new month starts.
type Service struct {
	accountRepo    AccountRepo
	workerPool     WorkerPoolI
	allowance      int
	batchSize      uint32
	updateInterval time.Duration
	now            func() time.Time

	inFlight sync.Map
}

func New(cfg *config.Config, accountRepo AccountRepo) *Service {
	interval := cfg.AllowanceInterval
	if interval <= 0 {
		interval = time.Minute
	}
	return &Service{
		accountRepo:    accountRepo,
		workerPool:     NewWorkerPool(defaultWorkers),
		allowance:      cfg.WithdrawalLimit,
		batchSize:      defaultBatchSize,
		updateInterval: interval,
		now:            time.Now,
	}
}

// Start blocks until ctx is done and every queued reset has finished.
func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Allowance service started", zap.Duration("interval", s.updateInterval))
	s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()
	defer s.workerPool.Close()

	s.processAccounts(ctx)
	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping allowance service")
			return
		case <-ticker.C:
			s.processAccounts(ctx)
		}
	}
}

func (s *Service) processAccounts(ctx context.Context) {
	periodStart := domain.AllowancePeriodStart(s.now())
	ids, err := s.accountRepo.FindDueForReset(ctx, periodStart, int(atomic.LoadUint32(&s.batchSize)))
	if err != nil {
		zap.L().Error("Failed to fetch accounts due for allowance reset", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, id := range ids {
		id := id

		if _, loaded := s.inFlight.LoadOrStore(id, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer s.inFlight.Delete(id)
				return s.resetAccount(ctx, id, periodStart)
			})
			if err != nil {
				s.inFlight.Delete(id)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error scheduling allowance resets", zap.Error(err))
	}
}

func (s *Service) resetAccount(ctx context.Context, id int, periodStart time.Time) error {
	updated, err := s.accountRepo.ResetWithdrawalLimit(ctx, id, s.allowance, periodStart)
	if err != nil {
		return fmt.Errorf("failed to reset allowance for account %d: %w", id, err)
	}
	if updated {
		zap.L().Info("Withdrawal allowance reset",
			zap.Int("accountID", id),
			zap.Int("allowance", s.allowance),
			zap.Time("period", periodStart),
		)
	}
	return nil
}
