package mocks

import (
	"context"
	"time"

	"tonix_miniapp/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockFarmingRepository struct {
	mock.Mock
}

func (m *MockFarmingRepository) GetProfileByTelegramID(ctx context.Context, telegramID int64) (*model.Profile, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockFarmingRepository) SetReadyToCollect(ctx context.Context, telegramID int64, amount decimal.Decimal, now time.Time) error {
	args := m.Called(ctx, telegramID, amount, now)
	return args.Error(0)
}

func (m *MockFarmingRepository) ApplyCollect(ctx context.Context, telegramID int64, amount decimal.Decimal, now time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, telegramID, amount, now)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

type MockCommissionDispatcher struct {
	mock.Mock
}

func (m *MockCommissionDispatcher) Dispatch(referredID uuid.UUID, amount decimal.Decimal) {
	m.Called(referredID, amount)
}

type MockCheckInRepository struct {
	mock.Mock
}

func (m *MockCheckInRepository) GetProfileByTelegramID(ctx context.Context, telegramID int64) (*model.Profile, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockCheckInRepository) SetCheckIn(ctx context.Context, telegramID int64, date string, streak int, now time.Time) error {
	args := m.Called(ctx, telegramID, date, streak, now)
	return args.Error(0)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) GetProfileByTelegramID(ctx context.Context, telegramID int64) (*model.Profile, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockTaskRepository) HasTaskCompletion(ctx context.Context, userID uuid.UUID, taskType model.TaskType, taskID string, since *time.Time) (bool, error) {
	args := m.Called(ctx, userID, taskType, taskID, since)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepository) CompleteTask(ctx context.Context, completion *model.TaskCompletion) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, completion)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

type MockReferralRepository struct {
	mock.Mock
}

func (m *MockReferralRepository) GetProfileByTelegramID(ctx context.Context, telegramID int64) (*model.Profile, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockReferralRepository) GetReferralByReferredID(ctx context.Context, referredID uuid.UUID) (*model.Referral, error) {
	args := m.Called(ctx, referredID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Referral), args.Error(1)
}

func (m *MockReferralRepository) CreateReferral(ctx context.Context, referrerID, referredID uuid.UUID, bonus decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, referrerID, referredID, bonus)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReferralRepository) CreditBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) GetProfileByTelegramID(ctx context.Context, telegramID int64) (*model.Profile, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockStatsRepository) ListTaskCompletions(ctx context.Context, userID uuid.UUID) ([]*model.TaskCompletion, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.TaskCompletion), args.Error(1)
}

func (m *MockStatsRepository) ListReferralsByReferrer(ctx context.Context, referrerID uuid.UUID) ([]*model.Referral, error) {
	args := m.Called(ctx, referrerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Referral), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateProfile(ctx context.Context, p *model.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockUserRepository) GetProfileByTelegramID(ctx context.Context, telegramID int64) (*model.Profile, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockUserRepository) SetFarmingRate(ctx context.Context, telegramID int64, rate decimal.Decimal) error {
	args := m.Called(ctx, telegramID, rate)
	return args.Error(0)
}
