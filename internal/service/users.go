package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tonix_miniapp/internal/model"
	"tonix_miniapp/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var DefaultFarmingRate = decimal.NewFromInt(1)

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// RegisterUser is an idempotent find-or-create keyed on the Telegram id.
// An existing profile is returned as-is; display fields are not rewritten.
func (s *UserService) RegisterUser(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	existing, err := s.repo.GetProfileByTelegramID(ctx, profile.TelegramID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}

	now := time.Now().UTC()
	profile.ID = uuid.New()
	profile.TonixBalance = decimal.Zero
	profile.FarmingRate = DefaultFarmingRate
	profile.ReadyToCollect = decimal.Zero
	profile.TodayEarnings = decimal.Zero
	profile.DailyStreak = 0
	profile.CreatedAt = now
	profile.UpdatedAt = now

	err = s.repo.CreateProfile(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return profile, nil
}

func (s *UserService) GetUserByTelegramID(ctx context.Context, telegramID int64) (*model.Profile, error) {
	profile, err := s.repo.GetProfileByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

func (s *UserService) SetFarmingRate(ctx context.Context, telegramID int64, rate decimal.Decimal) error {
	err := s.repo.SetFarmingRate(ctx, telegramID, rate)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to set farming rate: %w", err)
	}
	return nil
}
