package service

import (
	"context"
	"testing"
	"time"

	"tonix_miniapp/internal/model"
	"tonix_miniapp/internal/repository"
	"tonix_miniapp/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestStatsService_GetStats(t *testing.T) {
	clock := pinnedClock(t, "2024-03-15T10:00:00Z")
	now := clock.Now()
	userID := uuid.New()

	t.Run("user not found", func(t *testing.T) {
		mockRepo := &mocks.MockStatsRepository{}
		service := NewStatsService(mockRepo, clock, DefaultCapHours)

		mockRepo.On("GetProfileByTelegramID", mock.Anything, int64(1)).
			Return(nil, repository.ErrNotFound)

		_, err := service.GetStats(context.Background(), 1)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("recomputes accrual fresh and assembles the view", func(t *testing.T) {
		mockRepo := &mocks.MockStatsRepository{}
		service := NewStatsService(mockRepo, clock, DefaultCapHours)

		profile := &model.Profile{
			ID:          userID,
			TelegramID:  1,
			FarmingRate: decimal.NewFromInt(1),
			// Stale cache on purpose: the aggregator must ignore it.
			ReadyToCollect: decimal.NewFromInt(999),
			LastCheckIn:    strPtr("2024-03-15"),
			CreatedAt:      now.Add(-3 * time.Hour),
		}

		completions := []*model.TaskCompletion{
			{UserID: userID, TaskType: model.TaskTypeSpecial, TaskID: "join_channel"},
		}
		referrals := []*model.Referral{
			{ReferrerID: userID, ReferredID: uuid.New()},
		}

		mockRepo.On("GetProfileByTelegramID", mock.Anything, int64(1)).
			Return(profile, nil)
		mockRepo.On("ListTaskCompletions", mock.Anything, userID).
			Return(completions, nil)
		mockRepo.On("ListReferralsByReferrer", mock.Anything, userID).
			Return(referrals, nil)

		stats, err := service.GetStats(context.Background(), 1)

		assert.NoError(t, err)
		assert.True(t, stats.Profile.ReadyToCollect.Equal(decimal.NewFromInt(3)))
		assert.True(t, stats.Farming.ReadyToCollect.Equal(decimal.NewFromInt(3)))
		assert.Len(t, stats.TaskCompletions, 1)
		assert.Len(t, stats.Referrals, 1)
		assert.True(t, stats.Timers.HasCheckedInToday)
		assert.Equal(t, clock.UntilDailyReset().Milliseconds(), stats.Timers.TimeUntilReset)
		assert.Equal(t, clock.UntilWeeklyReset().Milliseconds(), stats.Timers.TimeUntilWeeklyReset)

		mockRepo.AssertExpectations(t)
	})
}
