package service

import (
	"context"
	"testing"

	"tonix_miniapp/internal/model"
	"tonix_miniapp/internal/repository"
	"tonix_miniapp/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newReferralService(repo *mocks.MockReferralRepository) *ReferralService {
	return NewReferralService(repo, DefaultReferralBonus, DefaultCommissionRate)
}

func TestReferralService_SubmitReferral(t *testing.T) {
	submitterID := uuid.New()
	referrerID := uuid.New()

	submitter := &model.Profile{ID: submitterID, TelegramID: 100}
	referrer := &model.Profile{ID: referrerID, TelegramID: 200, FirstName: "Alice"}

	t.Run("non-numeric code is invalid", func(t *testing.T) {
		mockRepo := &mocks.MockReferralRepository{}
		service := newReferralService(mockRepo)

		_, err := service.SubmitReferral(context.Background(), 100, "not-a-number")
		assert.ErrorIs(t, err, ErrInvalidReferralCode)
	})

	t.Run("own id is self-referral", func(t *testing.T) {
		mockRepo := &mocks.MockReferralRepository{}
		service := newReferralService(mockRepo)

		_, err := service.SubmitReferral(context.Background(), 100, "100")
		assert.ErrorIs(t, err, ErrSelfReferral)
	})

	t.Run("unknown referrer", func(t *testing.T) {
		mockRepo := &mocks.MockReferralRepository{}
		service := newReferralService(mockRepo)

		mockRepo.On("GetProfileByTelegramID", mock.Anything, int64(100)).
			Return(submitter, nil)
		mockRepo.On("GetProfileByTelegramID", mock.Anything, int64(999)).
			Return(nil, repository.ErrNotFound)

		_, err := service.SubmitReferral(context.Background(), 100, "999")
		assert.ErrorIs(t, err, ErrReferrerNotFound)
	})

	t.Run("already referred", func(t *testing.T) {
		mockRepo := &mocks.MockReferralRepository{}
		service := newReferralService(mockRepo)

		mockRepo.On("GetProfileByTelegramID", mock.Anything, int64(100)).
			Return(submitter, nil)
		mockRepo.On("GetProfileByTelegramID", mock.Anything, int64(200)).
			Return(referrer, nil)
		mockRepo.On("GetReferralByReferredID", mock.Anything, submitterID).
			Return(&model.Referral{ReferrerID: referrerID, ReferredID: submitterID}, nil)

		_, err := service.SubmitReferral(context.Background(), 100, "200")
		assert.ErrorIs(t, err, ErrAlreadyReferred)
		mockRepo.AssertNotCalled(t, "CreateReferral",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("valid submission credits bonus to both parties", func(t *testing.T) {
		mockRepo := &mocks.MockReferralRepository{}
		service := newReferralService(mockRepo)

		mockRepo.On("GetProfileByTelegramID", mock.Anything, int64(100)).
			Return(submitter, nil)
		mockRepo.On("GetProfileByTelegramID", mock.Anything, int64(200)).
			Return(referrer, nil)
		mockRepo.On("GetReferralByReferredID", mock.Anything, submitterID).
			Return(nil, repository.ErrNotFound)
		mockRepo.On("CreateReferral", mock.Anything, referrerID, submitterID, decimalEq(decimal.NewFromInt(5))).
			Return(decimal.NewFromInt(5), nil)

		result, err := service.SubmitReferral(context.Background(), 100, "200")

		assert.NoError(t, err)
		assert.True(t, result.BonusAmount.Equal(decimal.NewFromInt(5)))
		assert.True(t, result.NewBalance.Equal(decimal.NewFromInt(5)))
		assert.Equal(t, "Alice", result.ReferrerName)

		mockRepo.AssertExpectations(t)
	})

	t.Run("referrer without a first name falls back to User", func(t *testing.T) {
		mockRepo := &mocks.MockReferralRepository{}
		service := newReferralService(mockRepo)

		anon := &model.Profile{ID: referrerID, TelegramID: 200}
		mockRepo.On("GetProfileByTelegramID", mock.Anything, int64(100)).
			Return(submitter, nil)
		mockRepo.On("GetProfileByTelegramID", mock.Anything, int64(200)).
			Return(anon, nil)
		mockRepo.On("GetReferralByReferredID", mock.Anything, submitterID).
			Return(nil, repository.ErrNotFound)
		mockRepo.On("CreateReferral", mock.Anything, referrerID, submitterID, mock.Anything).
			Return(decimal.NewFromInt(5), nil)

		result, err := service.SubmitReferral(context.Background(), 100, "200")

		assert.NoError(t, err)
		assert.Equal(t, "User", result.ReferrerName)
	})
}

func TestReferralService_PayCommission(t *testing.T) {
	referredID := uuid.New()
	referrerID := uuid.New()

	t.Run("not referred is a no-op success", func(t *testing.T) {
		mockRepo := &mocks.MockReferralRepository{}
		service := newReferralService(mockRepo)

		mockRepo.On("GetReferralByReferredID", mock.Anything, referredID).
			Return(nil, repository.ErrNotFound)

		result, err := service.PayCommission(context.Background(), referredID, decimal.NewFromInt(10))

		assert.NoError(t, err)
		assert.False(t, result.Referred)
		mockRepo.AssertNotCalled(t, "CreditBalance", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ten percent of the collected amount goes to the referrer", func(t *testing.T) {
		mockRepo := &mocks.MockReferralRepository{}
		service := newReferralService(mockRepo)

		mockRepo.On("GetReferralByReferredID", mock.Anything, referredID).
			Return(&model.Referral{ReferrerID: referrerID, ReferredID: referredID}, nil)
		mockRepo.On("CreditBalance", mock.Anything, referrerID, decimalEq(decimal.NewFromInt(1))).
			Return(nil)

		result, err := service.PayCommission(context.Background(), referredID, decimal.NewFromInt(10))

		assert.NoError(t, err)
		assert.True(t, result.Referred)
		assert.True(t, result.CommissionAmount.Equal(decimal.NewFromInt(1)))
		assert.Equal(t, referrerID, result.ReferrerID)

		mockRepo.AssertExpectations(t)
	})
}

func TestNewReferralService_ConfiguredAmounts(t *testing.T) {
	referredID := uuid.New()
	referrerID := uuid.New()

	t.Run("explicit zero rate pays zero commission", func(t *testing.T) {
		mockRepo := &mocks.MockReferralRepository{}
		service := NewReferralService(mockRepo, decimal.Zero, decimal.Zero)

		mockRepo.On("GetReferralByReferredID", mock.Anything, referredID).
			Return(&model.Referral{ReferrerID: referrerID, ReferredID: referredID}, nil)
		mockRepo.On("CreditBalance", mock.Anything, referrerID, decimalEq(decimal.Zero)).
			Return(nil)

		result, err := service.PayCommission(context.Background(), referredID, decimal.NewFromInt(10))

		assert.NoError(t, err)
		assert.True(t, result.CommissionAmount.IsZero())
	})

	t.Run("negative amounts fall back to the defaults", func(t *testing.T) {
		mockRepo := &mocks.MockReferralRepository{}
		service := NewReferralService(mockRepo, decimal.NewFromInt(-1), decimal.NewFromInt(-1))

		mockRepo.On("GetReferralByReferredID", mock.Anything, referredID).
			Return(&model.Referral{ReferrerID: referrerID, ReferredID: referredID}, nil)
		mockRepo.On("CreditBalance", mock.Anything, referrerID, decimalEq(decimal.NewFromInt(1))).
			Return(nil)

		result, err := service.PayCommission(context.Background(), referredID, decimal.NewFromInt(10))

		assert.NoError(t, err)
		assert.True(t, result.CommissionAmount.Equal(decimal.NewFromInt(1)))
	})
}
