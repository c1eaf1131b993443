package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Profile struct {
	ID             uuid.UUID
	TelegramID     int64
	FirstName      string
	LastName       string
	Username       string
	TonixBalance   decimal.Decimal
	FarmingRate    decimal.Decimal
	ReadyToCollect decimal.Decimal
	TodayEarnings  decimal.Decimal
	LastCollect    *time.Time
	LastCheckIn    *string
	DailyStreak    int
	IsAdmin        bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ReferenceTime is the start of the current accrual window: the last
// collection if there ever was one, account creation otherwise.
func (p *Profile) ReferenceTime() time.Time {
	if p.LastCollect != nil {
		return *p.LastCollect
	}
	return p.CreatedAt
}
