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

func sinceEq(expected time.Time) interface{} {
	return mock.MatchedBy(func(since *time.Time) bool {
		return since != nil && since.Equal(expected)
	})
}

func TestTaskService_CompleteTask(t *testing.T) {
	clock := pinnedClock(t, "2024-03-15T10:00:00Z")
	userID := uuid.New()
	reward := decimal.NewFromInt(100)

	profile := &model.Profile{ID: userID, TelegramID: 1}

	t.Run("invalid task type", func(t *testing.T) {
		mockRepo := &mocks.MockTaskRepository{}
		service := NewTaskService(mockRepo, clock)

		_, err := service.CompleteTask(context.Background(), 1, model.TaskType("monthly"), "t1", reward)
		assert.ErrorIs(t, err, ErrInvalidTaskType)
	})

	t.Run("user not found", func(t *testing.T) {
		mockRepo := &mocks.MockTaskRepository{}
		service := NewTaskService(mockRepo, clock)

		mockRepo.On("GetProfileByTelegramID", mock.Anything, int64(1)).
			Return(nil, repository.ErrNotFound)

		_, err := service.CompleteTask(context.Background(), 1, model.TaskTypeSpecial, "t1", reward)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("special task checked against all history", func(t *testing.T) {
		mockRepo := &mocks.MockTaskRepository{}
		service := NewTaskService(mockRepo, clock)

		mockRepo.On("GetProfileByTelegramID", mock.Anything, int64(1)).
			Return(profile, nil)
		mockRepo.On("HasTaskCompletion", mock.Anything, userID, model.TaskTypeSpecial, "join_channel", (*time.Time)(nil)).
			Return(false, nil)
		mockRepo.On("CompleteTask", mock.Anything, mock.MatchedBy(func(c *model.TaskCompletion) bool {
			return c.UserID == userID &&
				c.TaskType == model.TaskTypeSpecial &&
				c.TaskID == "join_channel" &&
				c.RewardAmount.Equal(reward)
		})).Return(decimal.NewFromInt(100), decimal.NewFromInt(100), nil)

		result, err := service.CompleteTask(context.Background(), 1, model.TaskTypeSpecial, "join_channel", reward)

		assert.NoError(t, err)
		assert.True(t, result.RewardAmount.Equal(reward))
		assert.True(t, result.NewBalance.Equal(decimal.NewFromInt(100)))

		mockRepo.AssertExpectations(t)
	})

	t.Run("special task claimed twice fails", func(t *testing.T) {
		mockRepo := &mocks.MockTaskRepository{}
		service := NewTaskService(mockRepo, clock)

		mockRepo.On("GetProfileByTelegramID", mock.Anything, int64(1)).
			Return(profile, nil)
		mockRepo.On("HasTaskCompletion", mock.Anything, userID, model.TaskTypeSpecial, "join_channel", (*time.Time)(nil)).
			Return(true, nil)

		_, err := service.CompleteTask(context.Background(), 1, model.TaskTypeSpecial, "join_channel", reward)

		assert.ErrorIs(t, err, ErrTaskAlreadyCompleted)
		mockRepo.AssertNotCalled(t, "CompleteTask", mock.Anything, mock.Anything)
	})

	t.Run("distinct special task ids are independent", func(t *testing.T) {
		mockRepo := &mocks.MockTaskRepository{}
		service := NewTaskService(mockRepo, clock)

		mockRepo.On("GetProfileByTelegramID", mock.Anything, int64(1)).
			Return(profile, nil)
		mockRepo.On("HasTaskCompletion", mock.Anything, userID, model.TaskTypeSpecial, "join_channel", (*time.Time)(nil)).
			Return(true, nil)
		mockRepo.On("HasTaskCompletion", mock.Anything, userID, model.TaskTypeSpecial, "follow_x", (*time.Time)(nil)).
			Return(false, nil)
		mockRepo.On("CompleteTask", mock.Anything, mock.Anything).
			Return(decimal.NewFromInt(100), decimal.NewFromInt(100), nil)

		_, err := service.CompleteTask(context.Background(), 1, model.TaskTypeSpecial, "join_channel", reward)
		assert.ErrorIs(t, err, ErrTaskAlreadyCompleted)

		result, err := service.CompleteTask(context.Background(), 1, model.TaskTypeSpecial, "follow_x", reward)
		assert.NoError(t, err)
		assert.NotNil(t, result)
	})

	t.Run("daily task checked against the current day window", func(t *testing.T) {
		mockRepo := &mocks.MockTaskRepository{}
		service := NewTaskService(mockRepo, clock)

		mockRepo.On("GetProfileByTelegramID", mock.Anything, int64(1)).
			Return(profile, nil)
		mockRepo.On("HasTaskCompletion", mock.Anything, userID, model.TaskTypeDaily, "daily_login", sinceEq(clock.DayStart())).
			Return(false, nil)
		mockRepo.On("CompleteTask", mock.Anything, mock.Anything).
			Return(decimal.NewFromInt(50), decimal.NewFromInt(50), nil)

		_, err := service.CompleteTask(context.Background(), 1, model.TaskTypeDaily, "daily_login", decimal.NewFromInt(50))
		assert.NoError(t, err)

		mockRepo.AssertExpectations(t)
	})

	t.Run("weekly task checked against the current week window", func(t *testing.T) {
		mockRepo := &mocks.MockTaskRepository{}
		service := NewTaskService(mockRepo, clock)

		mockRepo.On("GetProfileByTelegramID", mock.Anything, int64(1)).
			Return(profile, nil)
		mockRepo.On("HasTaskCompletion", mock.Anything, userID, model.TaskTypeWeekly, "weekly_streak", sinceEq(clock.WeekStart())).
			Return(true, nil)

		_, err := service.CompleteTask(context.Background(), 1, model.TaskTypeWeekly, "weekly_streak", reward)
		assert.ErrorIs(t, err, ErrTaskAlreadyCompleted)
	})
}
