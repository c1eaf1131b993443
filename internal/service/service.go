package service

import (
	"context"
	"errors"
	"time"

	"tonix_miniapp/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrNothingToCollect     = errors.New("nothing to collect")
	ErrAlreadyCheckedIn     = errors.New("already checked in today")
	ErrInvalidTaskType      = errors.New("invalid task type")
	ErrTaskAlreadyCompleted = errors.New("task already completed")
	ErrInvalidReferralCode  = errors.New("invalid referral code")
	ErrSelfReferral         = errors.New("cannot refer yourself")
	ErrReferrerNotFound     = errors.New("referrer not found")
	ErrAlreadyReferred      = errors.New("user already has a referrer")
)

type UserServiceI interface {
	RegisterUser(ctx context.Context, profile *model.Profile) (*model.Profile, error)
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*model.Profile, error)
	SetFarmingRate(ctx context.Context, telegramID int64, rate decimal.Decimal) error
}

type UserRepository interface {
	CreateProfile(ctx context.Context, p *model.Profile) error
	GetProfileByTelegramID(ctx context.Context, telegramID int64) (*model.Profile, error)
	SetFarmingRate(ctx context.Context, telegramID int64, rate decimal.Decimal) error
}

type FarmingServiceI interface {
	Accrue(ctx context.Context, telegramID int64) (*model.FarmingStatus, error)
	Collect(ctx context.Context, telegramID int64) (*model.CollectResult, error)
}

type FarmingRepository interface {
	GetProfileByTelegramID(ctx context.Context, telegramID int64) (*model.Profile, error)
	SetReadyToCollect(ctx context.Context, telegramID int64, amount decimal.Decimal, now time.Time) error
	ApplyCollect(ctx context.Context, telegramID int64, amount decimal.Decimal, now time.Time) (decimal.Decimal, decimal.Decimal, error)
}

// CommissionDispatcher hands a collected amount off to the async commission
// worker. Dispatch must never block the collect path.
type CommissionDispatcher interface {
	Dispatch(referredID uuid.UUID, amount decimal.Decimal)
}

type CheckInServiceI interface {
	CheckIn(ctx context.Context, telegramID int64) (*model.CheckInResult, error)
}

type CheckInRepository interface {
	GetProfileByTelegramID(ctx context.Context, telegramID int64) (*model.Profile, error)
	SetCheckIn(ctx context.Context, telegramID int64, date string, streak int, now time.Time) error
}

type TaskServiceI interface {
	CompleteTask(ctx context.Context, telegramID int64, taskType model.TaskType, taskID string, reward decimal.Decimal) (*model.TaskResult, error)
}

type TaskRepository interface {
	GetProfileByTelegramID(ctx context.Context, telegramID int64) (*model.Profile, error)
	HasTaskCompletion(ctx context.Context, userID uuid.UUID, taskType model.TaskType, taskID string, since *time.Time) (bool, error)
	CompleteTask(ctx context.Context, completion *model.TaskCompletion) (decimal.Decimal, decimal.Decimal, error)
}

type ReferralServiceI interface {
	SubmitReferral(ctx context.Context, telegramID int64, code string) (*model.ReferralResult, error)
	PayCommission(ctx context.Context, referredID uuid.UUID, amount decimal.Decimal) (*model.CommissionResult, error)
}

type ReferralRepository interface {
	GetProfileByTelegramID(ctx context.Context, telegramID int64) (*model.Profile, error)
	GetReferralByReferredID(ctx context.Context, referredID uuid.UUID) (*model.Referral, error)
	CreateReferral(ctx context.Context, referrerID, referredID uuid.UUID, bonus decimal.Decimal) (decimal.Decimal, error)
	CreditBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
}

type StatsServiceI interface {
	GetStats(ctx context.Context, telegramID int64) (*model.UserStats, error)
}

type StatsRepository interface {
	GetProfileByTelegramID(ctx context.Context, telegramID int64) (*model.Profile, error)
	ListTaskCompletions(ctx context.Context, userID uuid.UUID) ([]*model.TaskCompletion, error)
	ListReferralsByReferrer(ctx context.Context, referrerID uuid.UUID) ([]*model.Referral, error)
}
