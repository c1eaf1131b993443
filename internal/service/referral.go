package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tonix_miniapp/internal/model"
	"tonix_miniapp/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	DefaultReferralBonus  = decimal.NewFromInt(5)
	DefaultCommissionRate = decimal.NewFromFloat(0.1)
)

type ReferralService struct {
	repo           ReferralRepository
	bonus          decimal.Decimal
	commissionRate decimal.Decimal
}

// NewReferralService accepts zero for either amount as a configured value;
// only negative inputs fall back to the defaults.
func NewReferralService(repo ReferralRepository, bonus, commissionRate decimal.Decimal) *ReferralService {
	if bonus.IsNegative() {
		bonus = DefaultReferralBonus
	}
	if commissionRate.IsNegative() {
		commissionRate = DefaultCommissionRate
	}
	return &ReferralService{
		repo:           repo,
		bonus:          bonus,
		commissionRate: commissionRate,
	}
}

// SubmitReferral records a referrer→referred edge once per referred user,
// ever, and pays the joining bonus to both parties. The code is the
// referrer's Telegram id as a numeric string.
func (s *ReferralService) SubmitReferral(ctx context.Context, telegramID int64, code string) (*model.ReferralResult, error) {
	referrerTelegramID, err := strconv.ParseInt(strings.TrimSpace(code), 10, 64)
	if err != nil {
		return nil, ErrInvalidReferralCode
	}

	if referrerTelegramID == telegramID {
		return nil, ErrSelfReferral
	}

	submitter, err := s.repo.GetProfileByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	referrer, err := s.repo.GetProfileByTelegramID(ctx, referrerTelegramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReferrerNotFound
		}
		return nil, fmt.Errorf("failed to get referrer profile: %w", err)
	}

	_, err = s.repo.GetReferralByReferredID(ctx, submitter.ID)
	if err == nil {
		return nil, ErrAlreadyReferred
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing referral: %w", err)
	}

	newBalance, err := s.repo.CreateReferral(ctx, referrer.ID, submitter.ID, s.bonus)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyReferred) {
			return nil, ErrAlreadyReferred
		}
		return nil, fmt.Errorf("failed to create referral: %w", err)
	}

	referrerName := referrer.FirstName
	if referrerName == "" {
		referrerName = "User"
	}

	return &model.ReferralResult{
		BonusAmount:  s.bonus,
		NewBalance:   newBalance,
		ReferrerName: referrerName,
	}, nil
}

// PayCommission credits the referrer a share of a referred user's collection.
// It runs on every collection for the lifetime of the referral. The credit
// goes to the balance only, never to today's earnings.
func (s *ReferralService) PayCommission(ctx context.Context, referredID uuid.UUID, amount decimal.Decimal) (*model.CommissionResult, error) {
	referral, err := s.repo.GetReferralByReferredID(ctx, referredID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &model.CommissionResult{Referred: false}, nil
		}
		return nil, fmt.Errorf("failed to look up referral: %w", err)
	}

	commission := amount.Mul(s.commissionRate)

	err = s.repo.CreditBalance(ctx, referral.ReferrerID, commission)
	if err != nil {
		return nil, fmt.Errorf("failed to credit commission: %w", err)
	}

	return &model.CommissionResult{
		Referred:         true,
		CommissionAmount: commission,
		ReferrerID:       referral.ReferrerID,
	}, nil
}
