package service

import (
	"context"
	"errors"
	"fmt"

	"tonix_miniapp/internal/model"
	"tonix_miniapp/internal/repository"
)

type CheckInService struct {
	repo  CheckInRepository
	clock *GameClock
}

func NewCheckInService(repo CheckInRepository, clock *GameClock) *CheckInService {
	return &CheckInService{
		repo:  repo,
		clock: clock,
	}
}

// CheckIn advances the daily streak, or resets it to 1 after a missed day.
// A second check-in on the same day always rejects, never double-counts.
func (s *CheckInService) CheckIn(ctx context.Context, telegramID int64) (*model.CheckInResult, error) {
	profile, err := s.repo.GetProfileByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	today := s.clock.Today()
	if profile.LastCheckIn != nil && *profile.LastCheckIn == today {
		return nil, ErrAlreadyCheckedIn
	}

	newStreak := 1
	if profile.LastCheckIn != nil && *profile.LastCheckIn == s.clock.Yesterday() {
		newStreak = profile.DailyStreak + 1
	}

	err = s.repo.SetCheckIn(ctx, telegramID, today, newStreak, s.clock.Now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to persist check-in: %w", err)
	}

	return &model.CheckInResult{
		NewStreak:   newStreak,
		CheckInDate: today,
	}, nil
}
