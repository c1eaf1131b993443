package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TaskType string

const (
	TaskTypeDaily   TaskType = "daily"
	TaskTypeWeekly  TaskType = "weekly"
	TaskTypeSpecial TaskType = "special"
)

func (t TaskType) Valid() bool {
	switch t {
	case TaskTypeDaily, TaskTypeWeekly, TaskTypeSpecial:
		return true
	}
	return false
}

type TaskCompletion struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	TaskType     TaskType
	TaskID       string
	RewardAmount decimal.Decimal
	CompletedAt  time.Time
}

type TaskResult struct {
	RewardAmount     decimal.Decimal
	NewBalance       decimal.Decimal
	NewTodayEarnings decimal.Decimal
}
