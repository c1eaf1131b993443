package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"tonix_miniapp/internal/model"
	"tonix_miniapp/internal/repository"

	"github.com/shopspring/decimal"
)

const DefaultCapHours = 48

// DefaultMinCollect is the epsilon below which a collect is rejected.
var DefaultMinCollect = decimal.NewFromFloat(0.001)

type FarmingService struct {
	repo        FarmingRepository
	commissions CommissionDispatcher
	capHours    int
	minCollect  decimal.Decimal
	now         func() time.Time
}

func NewFarmingService(repo FarmingRepository, commissions CommissionDispatcher, capHours int, minCollect decimal.Decimal) *FarmingService {
	if capHours <= 0 {
		capHours = DefaultCapHours
	}
	if !minCollect.IsPositive() {
		minCollect = DefaultMinCollect
	}
	return &FarmingService{
		repo:        repo,
		commissions: commissions,
		capHours:    capHours,
		minCollect:  minCollect,
		now:         time.Now,
	}
}

// accrual computes the buffered amount for a profile at the given instant:
// min(elapsed hours, cap) * farming rate, measured from the last collection
// or account creation.
func accrual(p *model.Profile, now time.Time, capHours int) *model.FarmingStatus {
	ref := p.ReferenceTime()

	elapsedHours := now.Sub(ref).Hours()
	if elapsedHours < 0 {
		elapsedHours = 0
	}

	cappedHours := math.Min(elapsedHours, float64(capHours))
	accrued := p.FarmingRate.Mul(decimal.NewFromFloat(cappedHours))
	maxAccrual := p.FarmingRate.Mul(decimal.NewFromInt(int64(capHours)))

	return &model.FarmingStatus{
		ReadyToCollect: accrued,
		MaxAccrual:     maxAccrual,
		FarmingRate:    p.FarmingRate,
		ReferenceTime:  ref,
		ElapsedHours:   elapsedHours,
	}
}

func (s *FarmingService) Accrue(ctx context.Context, telegramID int64) (*model.FarmingStatus, error) {
	profile, err := s.repo.GetProfileByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	now := s.now().UTC()
	status := accrual(profile, now, s.capHours)

	err = s.repo.SetReadyToCollect(ctx, telegramID, status.ReadyToCollect, now)
	if err != nil {
		return nil, fmt.Errorf("failed to persist accrual: %w", err)
	}

	return status, nil
}

func (s *FarmingService) Collect(ctx context.Context, telegramID int64) (*model.CollectResult, error) {
	profile, err := s.repo.GetProfileByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	now := s.now().UTC()
	status := accrual(profile, now, s.capHours)

	if status.ReadyToCollect.LessThan(s.minCollect) {
		return nil, ErrNothingToCollect
	}

	newBalance, newTodayEarnings, err := s.repo.ApplyCollect(ctx, telegramID, status.ReadyToCollect, now)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to apply collect: %w", err)
	}

	// Commission is a secondary effect: its failure never rolls back or
	// fails the collection.
	s.commissions.Dispatch(profile.ID, status.ReadyToCollect)

	return &model.CollectResult{
		Collected:        status.ReadyToCollect,
		NewBalance:       newBalance,
		NewTodayEarnings: newTodayEarnings,
	}, nil
}
