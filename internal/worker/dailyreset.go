package worker

import (
	"context"
	"time"

	"tonix_miniapp/internal/service"
	"tonix_miniapp/pkg/logger"

	"go.uber.org/zap"
)

type TodayEarningsResetter interface {
	ResetTodayEarnings(ctx context.Context) (int64, error)
}

// DailyResetWorker zeroes every profile's today_earnings at each daily
// boundary. Without it the counter accumulates forever.
type DailyResetWorker struct {
	repo  TodayEarningsResetter
	clock *service.GameClock
	stop  chan struct{}
	done  chan struct{}
}

func NewDailyResetWorker(repo TodayEarningsResetter, clock *service.GameClock) *DailyResetWorker {
	return &DailyResetWorker{
		repo:  repo,
		clock: clock,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

func (w *DailyResetWorker) Start() {
	go w.run()
	logger.Logger().Info("Daily reset worker started")
}

func (w *DailyResetWorker) run() {
	defer close(w.done)

	for {
		timer := time.NewTimer(w.clock.UntilDailyReset())

		select {
		case <-timer.C:
			w.reset()
		case <-w.stop:
			timer.Stop()
			return
		}
	}
}

func (w *DailyResetWorker) reset() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	log := logger.Logger()

	count, err := w.repo.ResetTodayEarnings(ctx)
	if err != nil {
		log.Error("failed to reset today earnings", zap.Error(err))
		return
	}

	log.Info("today earnings reset", zap.Int64("profiles", count))
}

func (w *DailyResetWorker) Stop() {
	close(w.stop)
	<-w.done
}
