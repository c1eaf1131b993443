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

type referralRow struct {
	ID         uuid.UUID `db:"id"`
	ReferrerID uuid.UUID `db:"referrer_id"`
	ReferredID uuid.UUID `db:"referred_id"`
	CreatedAt  time.Time `db:"created_at"`
}

// GetReferralByReferredID finds the at-most-one referral edge where the given
// user is the referred party.
func (r *Repository) GetReferralByReferredID(ctx context.Context, referredID uuid.UUID) (*model.Referral, error) {
	var row referralRow
	query, args, err := squirrel.
		Select("id", "referrer_id", "referred_id", "created_at").
		From("referrals").
		Where(squirrel.Eq{"referred_id": referredID}).
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

	return &model.Referral{
		ID:         row.ID,
		ReferrerID: row.ReferrerID,
		ReferredID: row.ReferredID,
		CreatedAt:  row.CreatedAt,
	}, nil
}

// CreateReferral inserts the referral edge and credits the joining bonus to
// both parties in one transaction. Returns the referred user's new balance.
func (r *Repository) CreateReferral(ctx context.Context, referrerID, referredID uuid.UUID, bonus decimal.Decimal) (decimal.Decimal, error) {
	var newBalance decimal.Decimal

	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		countQuery, countArgs, err := squirrel.
			Select("COUNT(1)").
			From("referrals").
			Where(squirrel.Eq{"referred_id": referredID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		var count int
		if err := tx.GetContext(ctx, &count, countQuery, countArgs...); err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyReferred
		}

		query, args, err := squirrel.
			Insert("referrals").
			SetMap(map[string]interface{}{
				"id":          uuid.New(),
				"referrer_id": referrerID,
				"referred_id": referredID,
				"created_at":  time.Now().UTC(),
			}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build referral insert query: %w", err)
		}

		_, err = tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to insert referral: %w", err)
		}

		if err := r.creditEarningsWithTx(ctx, tx, referredID, bonus); err != nil {
			return fmt.Errorf("failed to credit referred bonus: %w", err)
		}
		if err := r.creditEarningsWithTx(ctx, tx, referrerID, bonus); err != nil {
			return fmt.Errorf("failed to credit referrer bonus: %w", err)
		}

		newBalance, _, err = r.getBalancesWithTx(ctx, tx, referredID)
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}

	return newBalance, nil
}

func (r *Repository) ListReferralsByReferrer(ctx context.Context, referrerID uuid.UUID) ([]*model.Referral, error) {
	query, args, err := squirrel.
		Select("id", "referrer_id", "referred_id", "created_at").
		From("referrals").
		Where(squirrel.Eq{"referrer_id": referrerID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var rows []*referralRow
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get referrals: %w", err)
	}

	referrals := make([]*model.Referral, len(rows))
	for i, row := range rows {
		referrals[i] = &model.Referral{
			ID:         row.ID,
			ReferrerID: row.ReferrerID,
			ReferredID: row.ReferredID,
			CreatedAt:  row.CreatedAt,
		}
	}

	return referrals, nil
}
