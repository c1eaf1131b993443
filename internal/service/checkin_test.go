package service

import (
	"context"
	"testing"

	"tonix_miniapp/internal/model"
	"tonix_miniapp/internal/repository"
	"tonix_miniapp/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func strPtr(s string) *string { return &s }

func TestCheckInService_CheckIn(t *testing.T) {
	// Game-local date for this instant is 2024-03-15.
	clock := pinnedClock(t, "2024-03-15T10:00:00Z")

	tests := []struct {
		name           string
		telegramID     int64
		mockSetup      func(repo *mocks.MockCheckInRepository)
		expectedError  error
		expectedStreak int
	}{
		{
			name:       "user not found",
			telegramID: 123,
			mockSetup: func(repo *mocks.MockCheckInRepository) {
				repo.On("GetProfileByTelegramID", mock.Anything, int64(123)).
					Return(nil, repository.ErrNotFound)
			},
			expectedError: ErrUserNotFound,
		},
		{
			name:       "first ever check-in starts streak at 1",
			telegramID: 124,
			mockSetup: func(repo *mocks.MockCheckInRepository) {
				repo.On("GetProfileByTelegramID", mock.Anything, int64(124)).
					Return(&model.Profile{TelegramID: 124, LastCheckIn: nil, DailyStreak: 0}, nil)
				repo.On("SetCheckIn", mock.Anything, int64(124), "2024-03-15", 1, mock.Anything).
					Return(nil)
			},
			expectedStreak: 1,
		},
		{
			name:       "consecutive day increments streak",
			telegramID: 125,
			mockSetup: func(repo *mocks.MockCheckInRepository) {
				repo.On("GetProfileByTelegramID", mock.Anything, int64(125)).
					Return(&model.Profile{TelegramID: 125, LastCheckIn: strPtr("2024-03-14"), DailyStreak: 2}, nil)
				repo.On("SetCheckIn", mock.Anything, int64(125), "2024-03-15", 3, mock.Anything).
					Return(nil)
			},
			expectedStreak: 3,
		},
		{
			name:       "missed days reset streak to 1",
			telegramID: 126,
			mockSetup: func(repo *mocks.MockCheckInRepository) {
				repo.On("GetProfileByTelegramID", mock.Anything, int64(126)).
					Return(&model.Profile{TelegramID: 126, LastCheckIn: strPtr("2024-03-11"), DailyStreak: 7}, nil)
				repo.On("SetCheckIn", mock.Anything, int64(126), "2024-03-15", 1, mock.Anything).
					Return(nil)
			},
			expectedStreak: 1,
		},
		{
			name:       "same-day repeat rejects",
			telegramID: 127,
			mockSetup: func(repo *mocks.MockCheckInRepository) {
				repo.On("GetProfileByTelegramID", mock.Anything, int64(127)).
					Return(&model.Profile{TelegramID: 127, LastCheckIn: strPtr("2024-03-15"), DailyStreak: 4}, nil)
			},
			expectedError: ErrAlreadyCheckedIn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockCheckInRepository{}
			service := NewCheckInService(mockRepo, clock)

			tt.mockSetup(mockRepo)

			result, err := service.CheckIn(context.Background(), tt.telegramID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				mockRepo.AssertNotCalled(t, "SetCheckIn",
					mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStreak, result.NewStreak)
			assert.Equal(t, "2024-03-15", result.CheckInDate)

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCheckInService_StreakSequence(t *testing.T) {
	days := []string{
		"2024-03-13T09:00:00Z",
		"2024-03-14T09:00:00Z",
		"2024-03-15T09:00:00Z",
	}

	var lastCheckIn *string
	streak := 0

	for i, day := range days {
		clock := pinnedClock(t, day)

		mockRepo := &mocks.MockCheckInRepository{}
		mockRepo.On("GetProfileByTelegramID", mock.Anything, int64(1)).
			Return(&model.Profile{TelegramID: 1, LastCheckIn: lastCheckIn, DailyStreak: streak}, nil)
		mockRepo.On("SetCheckIn", mock.Anything, int64(1), mock.Anything, i+1, mock.Anything).
			Return(nil)

		service := NewCheckInService(mockRepo, clock)
		result, err := service.CheckIn(context.Background(), 1)

		assert.NoError(t, err)
		assert.Equal(t, i+1, result.NewStreak)

		lastCheckIn = strPtr(result.CheckInDate)
		streak = result.NewStreak
	}
}
