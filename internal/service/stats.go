package service

import (
	"context"
	"errors"
	"fmt"

	"tonix_miniapp/internal/model"
	"tonix_miniapp/internal/repository"
)

type StatsService struct {
	repo     StatsRepository
	clock    *GameClock
	capHours int
}

func NewStatsService(repo StatsRepository, clock *GameClock, capHours int) *StatsService {
	if capHours <= 0 {
		capHours = DefaultCapHours
	}
	return &StatsService{
		repo:     repo,
		clock:    clock,
		capHours: capHours,
	}
}

// GetStats assembles the composite read view for the client. Pure read: the
// accrual is recomputed fresh for display but never persisted here.
func (s *StatsService) GetStats(ctx context.Context, telegramID int64) (*model.UserStats, error) {
	profile, err := s.repo.GetProfileByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	farming := accrual(profile, s.clock.Now(), s.capHours)
	profile.ReadyToCollect = farming.ReadyToCollect

	completions, err := s.repo.ListTaskCompletions(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task completions: %w", err)
	}

	referrals, err := s.repo.ListReferralsByReferrer(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get referrals: %w", err)
	}

	today := s.clock.Today()
	hasCheckedInToday := profile.LastCheckIn != nil && *profile.LastCheckIn == today

	return &model.UserStats{
		Profile:         profile,
		TaskCompletions: completions,
		Referrals:       referrals,
		Timers: model.StatsTimers{
			HasCheckedInToday:    hasCheckedInToday,
			TimeUntilReset:       s.clock.UntilDailyReset().Milliseconds(),
			TimeUntilWeeklyReset: s.clock.UntilWeeklyReset().Milliseconds(),
		},
		Farming: farming,
	}, nil
}
