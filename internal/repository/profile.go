package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tonix_miniapp/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type profileRow struct {
	ID             uuid.UUID       `db:"id"`
	TelegramID     int64           `db:"telegram_id"`
	FirstName      string          `db:"first_name"`
	LastName       string          `db:"last_name"`
	Username       string          `db:"username"`
	TonixBalance   decimal.Decimal `db:"tonix_balance"`
	FarmingRate    decimal.Decimal `db:"farming_rate"`
	ReadyToCollect decimal.Decimal `db:"ready_to_collect"`
	TodayEarnings  decimal.Decimal `db:"today_earnings"`
	LastCollect    *time.Time      `db:"last_collect"`
	LastCheckIn    sql.NullTime    `db:"last_check_in"`
	DailyStreak    int             `db:"daily_streak"`
	IsAdmin        bool            `db:"is_admin"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

var profileColumns = []string{
	"id",
	"telegram_id",
	"first_name",
	"last_name",
	"username",
	"tonix_balance",
	"farming_rate",
	"ready_to_collect",
	"today_earnings",
	"last_collect",
	"last_check_in",
	"daily_streak",
	"is_admin",
	"created_at",
	"updated_at",
}

// checkInDateLayout renders the DATE column the way the check-in logic
// compares it: a plain calendar date, no time component.
const checkInDateLayout = "2006-01-02"

func (p *profileRow) toModel() *model.Profile {
	var lastCheckIn *string
	if p.LastCheckIn.Valid {
		date := p.LastCheckIn.Time.Format(checkInDateLayout)
		lastCheckIn = &date
	}

	return &model.Profile{
		ID:             p.ID,
		TelegramID:     p.TelegramID,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Username:       p.Username,
		TonixBalance:   p.TonixBalance,
		FarmingRate:    p.FarmingRate,
		ReadyToCollect: p.ReadyToCollect,
		TodayEarnings:  p.TodayEarnings,
		LastCollect:    p.LastCollect,
		LastCheckIn:    lastCheckIn,
		DailyStreak:    p.DailyStreak,
		IsAdmin:        p.IsAdmin,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (r *Repository) CreateProfile(ctx context.Context, p *model.Profile) error {
	query, args, err := squirrel.
		Insert("profiles").
		SetMap(map[string]interface{}{
			"id":               p.ID,
			"telegram_id":      p.TelegramID,
			"first_name":       p.FirstName,
			"last_name":        p.LastName,
			"username":         p.Username,
			"tonix_balance":    p.TonixBalance,
			"farming_rate":     p.FarmingRate,
			"ready_to_collect": p.ReadyToCollect,
			"today_earnings":   p.TodayEarnings,
			"daily_streak":     p.DailyStreak,
			"created_at":       p.CreatedAt,
			"updated_at":       p.UpdatedAt,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build profile insert query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}

	return nil
}

func (r *Repository) GetProfileByTelegramID(ctx context.Context, telegramID int64) (*model.Profile, error) {
	var row profileRow
	query, args, err := squirrel.
		Select(profileColumns...).
		From("profiles").
		Where(squirrel.Eq{"telegram_id": telegramID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &row, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return row.toModel(), nil
}

func (r *Repository) GetProfileByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var row profileRow
	query, args, err := squirrel.
		Select(profileColumns...).
		From("profiles").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &row, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return row.toModel(), nil
}

// SetReadyToCollect refreshes the cached accrual amount. The cache is always
// recomputable from last_collect, farming_rate and the clock.
func (r *Repository) SetReadyToCollect(ctx context.Context, telegramID int64, amount decimal.Decimal, now time.Time) error {
	query, args, err := squirrel.
		Update("profiles").
		SetMap(map[string]interface{}{
			"ready_to_collect": amount,
			"updated_at":       now,
		}).
		Where(squirrel.Eq{"telegram_id": telegramID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// ApplyCollect finalizes an accrual into the durable balance in a single
// atomic statement so concurrent collects cannot lose an update.
func (r *Repository) ApplyCollect(ctx context.Context, telegramID int64, amount decimal.Decimal, now time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var newBalance, newTodayEarnings decimal.Decimal

	query, args, err := squirrel.
		Update("profiles").
		Set("tonix_balance", squirrel.Expr("tonix_balance + ?", amount)).
		Set("today_earnings", squirrel.Expr("today_earnings + ?", amount)).
		Set("ready_to_collect", decimal.Zero).
		Set("last_collect", now).
		Set("updated_at", now).
		Where(squirrel.Eq{"telegram_id": telegramID}).
		Suffix("RETURNING tonix_balance, today_earnings").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	err = r.db.QueryRowxContext(ctx, query, args...).Scan(&newBalance, &newTodayEarnings)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, decimal.Zero, ErrNotFound
		}
		return decimal.Zero, decimal.Zero, err
	}

	return newBalance, newTodayEarnings, nil
}

func parseCheckInDate(date string) (time.Time, error) {
	return time.Parse(checkInDateLayout, date)
}

func (r *Repository) SetCheckIn(ctx context.Context, telegramID int64, date string, streak int, now time.Time) error {
	day, err := parseCheckInDate(date)
	if err != nil {
		return fmt.Errorf("invalid check-in date %q: %w", date, err)
	}

	query, args, err := squirrel.
		Update("profiles").
		SetMap(map[string]interface{}{
			"last_check_in": day,
			"daily_streak":  streak,
			"updated_at":    now,
		}).
		Where(squirrel.Eq{"telegram_id": telegramID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// CreditBalance adds to the durable balance only. Used for referral
// commission, which never counts toward today's earnings.
func (r *Repository) CreditBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	query, args, err := squirrel.
		Update("profiles").
		Set("tonix_balance", squirrel.Expr("tonix_balance + ?", amount)).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *Repository) SetFarmingRate(ctx context.Context, telegramID int64, rate decimal.Decimal) error {
	query, args, err := squirrel.
		Update("profiles").
		SetMap(map[string]interface{}{
			"farming_rate": rate,
			"updated_at":   time.Now().UTC(),
		}).
		Where(squirrel.Eq{"telegram_id": telegramID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// ResetTodayEarnings zeroes the daily earnings counter for every profile.
// Runs from the daily reset worker at the day boundary.
func (r *Repository) ResetTodayEarnings(ctx context.Context) (int64, error) {
	query, args, err := squirrel.
		Update("profiles").
		Set("today_earnings", decimal.Zero).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Gt{"today_earnings": decimal.Zero}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *Repository) creditEarningsWithTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, amount decimal.Decimal) error {
	query, args, err := squirrel.
		Update("profiles").
		Set("tonix_balance", squirrel.Expr("tonix_balance + ?", amount)).
		Set("today_earnings", squirrel.Expr("today_earnings + ?", amount)).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *Repository) getBalancesWithTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	var balance, todayEarnings decimal.Decimal

	query, args, err := squirrel.
		Select("tonix_balance", "today_earnings").
		From("profiles").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	err = tx.QueryRowxContext(ctx, query, args...).Scan(&balance, &todayEarnings)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, decimal.Zero, ErrNotFound
		}
		return decimal.Zero, decimal.Zero, err
	}

	return balance, todayEarnings, nil
}
