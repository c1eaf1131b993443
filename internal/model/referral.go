package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Referral struct {
	ID         uuid.UUID
	ReferrerID uuid.UUID
	ReferredID uuid.UUID
	CreatedAt  time.Time
}

type ReferralResult struct {
	BonusAmount  decimal.Decimal
	NewBalance   decimal.Decimal
	ReferrerName string
}

type CommissionResult struct {
	Referred         bool
	CommissionAmount decimal.Decimal
	ReferrerID       uuid.UUID
}
