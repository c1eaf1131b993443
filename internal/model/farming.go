package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FarmingStatus is the accrual snapshot returned by the accumulator and
// pushed over the live farming feed.
type FarmingStatus struct {
	ReadyToCollect decimal.Decimal
	MaxAccrual     decimal.Decimal
	FarmingRate    decimal.Decimal
	ReferenceTime  time.Time
	ElapsedHours   float64
}

type CollectResult struct {
	Collected        decimal.Decimal
	NewBalance       decimal.Decimal
	NewTodayEarnings decimal.Decimal
}

type CheckInResult struct {
	NewStreak   int
	CheckInDate string
}
