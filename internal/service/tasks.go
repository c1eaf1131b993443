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

type TaskService struct {
	repo  TaskRepository
	clock *GameClock
}

func NewTaskService(repo TaskRepository, clock *GameClock) *TaskService {
	return &TaskService{
		repo:  repo,
		clock: clock,
	}
}

// CompleteTask records a completion and pays the flat reward, enforcing the
// per-period uniqueness of the task type: special tasks are one-time ever,
// daily tasks once per day, weekly tasks once per week. Distinct task ids of
// the same type are tracked independently.
func (s *TaskService) CompleteTask(ctx context.Context, telegramID int64, taskType model.TaskType, taskID string, reward decimal.Decimal) (*model.TaskResult, error) {
	if !taskType.Valid() {
		return nil, ErrInvalidTaskType
	}

	profile, err := s.repo.GetProfileByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var since *time.Time
	switch taskType {
	case model.TaskTypeDaily:
		dayStart := s.clock.DayStart()
		since = &dayStart
	case model.TaskTypeWeekly:
		weekStart := s.clock.WeekStart()
		since = &weekStart
	}

	completed, err := s.repo.HasTaskCompletion(ctx, profile.ID, taskType, taskID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to check task completion: %w", err)
	}
	if completed {
		return nil, ErrTaskAlreadyCompleted
	}

	completion := &model.TaskCompletion{
		ID:           uuid.New(),
		UserID:       profile.ID,
		TaskType:     taskType,
		TaskID:       taskID,
		RewardAmount: reward,
		CompletedAt:  s.clock.Now(),
	}

	newBalance, newTodayEarnings, err := s.repo.CompleteTask(ctx, completion)
	if err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	return &model.TaskResult{
		RewardAmount:     reward,
		NewBalance:       newBalance,
		NewTodayEarnings: newTodayEarnings,
	}, nil
}
