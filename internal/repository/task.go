package repository

import (
	"context"
	"fmt"
	"time"

	"tonix_miniapp/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type taskCompletionRow struct {
	ID           uuid.UUID       `db:"id"`
	UserID       uuid.UUID       `db:"user_id"`
	TaskType     string          `db:"task_type"`
	TaskID       string          `db:"task_id"`
	RewardAmount decimal.Decimal `db:"reward_amount"`
	CompletedAt  time.Time       `db:"completed_at"`
}

// HasTaskCompletion reports whether a completion row exists for the given
// task, optionally restricted to rows at or after `since` (nil means ever).
func (r *Repository) HasTaskCompletion(ctx context.Context, userID uuid.UUID, taskType model.TaskType, taskID string, since *time.Time) (bool, error) {
	builder := squirrel.
		Select("COUNT(1)").
		From("task_completions").
		Where(squirrel.Eq{
			"user_id":   userID,
			"task_type": string(taskType),
			"task_id":   taskID,
		})

	if since != nil {
		builder = builder.Where(squirrel.GtOrEq{"completed_at": *since})
	}

	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return false, err
	}

	var count int
	err = r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// CompleteTask inserts the completion row and credits the reward in one
// transaction, returning the updated balances.
func (r *Repository) CompleteTask(ctx context.Context, completion *model.TaskCompletion) (decimal.Decimal, decimal.Decimal, error) {
	var newBalance, newTodayEarnings decimal.Decimal

	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := squirrel.
			Insert("task_completions").
			SetMap(map[string]interface{}{
				"id":            completion.ID,
				"user_id":       completion.UserID,
				"task_type":     string(completion.TaskType),
				"task_id":       completion.TaskID,
				"reward_amount": completion.RewardAmount,
				"completed_at":  completion.CompletedAt,
			}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build task completion insert query: %w", err)
		}

		_, err = tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to insert task completion: %w", err)
		}

		if err := r.creditEarningsWithTx(ctx, tx, completion.UserID, completion.RewardAmount); err != nil {
			return fmt.Errorf("failed to credit task reward: %w", err)
		}

		newBalance, newTodayEarnings, err = r.getBalancesWithTx(ctx, tx, completion.UserID)
		return err
	})
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return newBalance, newTodayEarnings, nil
}

func (r *Repository) ListTaskCompletions(ctx context.Context, userID uuid.UUID) ([]*model.TaskCompletion, error) {
	query, args, err := squirrel.
		Select("id", "user_id", "task_type", "task_id", "reward_amount", "completed_at").
		From("task_completions").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("completed_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var rows []*taskCompletionRow
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get task completions: %w", err)
	}

	completions := make([]*model.TaskCompletion, len(rows))
	for i, row := range rows {
		completions[i] = &model.TaskCompletion{
			ID:           row.ID,
			UserID:       row.UserID,
			TaskType:     model.TaskType(row.TaskType),
			TaskID:       row.TaskID,
			RewardAmount: row.RewardAmount,
			CompletedAt:  row.CompletedAt,
		}
	}

	return completions, nil
}
