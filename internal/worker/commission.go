package worker

import (
	"context"
	"sync"
	"time"

	"tonix_miniapp/internal/model"
	"tonix_miniapp/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CommissionPayer interface {
	PayCommission(ctx context.Context, referredID uuid.UUID, amount decimal.Decimal) (*model.CommissionResult, error)
}

type commissionJob struct {
	referredID uuid.UUID
	amount     decimal.Decimal
}

// CommissionWorker drains collect-triggered commission jobs off a buffered
// channel. Failures are logged and swallowed, never retried or surfaced to
// the collecting user.
type CommissionWorker struct {
	payer CommissionPayer
	jobs  chan commissionJob
	done  chan struct{}

	mu      sync.Mutex
	stopped bool
}

func NewCommissionWorker(payer CommissionPayer, queueSize int) *CommissionWorker {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &CommissionWorker{
		payer: payer,
		jobs:  make(chan commissionJob, queueSize),
		done:  make(chan struct{}),
	}
}

func (w *CommissionWorker) Start() {
	go w.run()
	logger.Logger().Info("Commission worker started")
}

func (w *CommissionWorker) run() {
	defer close(w.done)

	for job := range w.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		result, err := w.payer.PayCommission(ctx, job.referredID, job.amount)
		cancel()

		log := logger.Logger()
		if err != nil {
			log.Error("commission payout failed",
				zap.String("referred_id", job.referredID.String()),
				zap.String("collected_amount", job.amount.String()),
				zap.Error(err))
			continue
		}

		if !result.Referred {
			continue
		}

		log.Info("commission paid",
			zap.String("referrer_id", result.ReferrerID.String()),
			zap.String("commission_amount", result.CommissionAmount.String()))
	}
}

// Dispatch enqueues a job without blocking. A full queue or a stopped worker
// drops the job with a warning; commission is best-effort.
func (w *CommissionWorker) Dispatch(referredID uuid.UUID, amount decimal.Decimal) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		logger.Logger().Warn("commission worker stopped, dropping job",
			zap.String("referred_id", referredID.String()))
		return
	}

	select {
	case w.jobs <- commissionJob{referredID: referredID, amount: amount}:
	default:
		logger.Logger().Warn("commission queue full, dropping job",
			zap.String("referred_id", referredID.String()))
	}
}

func (w *CommissionWorker) Stop() {
	w.mu.Lock()
	if !w.stopped {
		w.stopped = true
		close(w.jobs)
	}
	w.mu.Unlock()

	<-w.done
}
