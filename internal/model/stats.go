package model

type StatsTimers struct {
	HasCheckedInToday    bool
	TimeUntilReset       int64
	TimeUntilWeeklyReset int64
}

// UserStats is the composite read view hydrating the client screens.
type UserStats struct {
	Profile         *Profile
	TaskCompletions []*TaskCompletion
	Referrals       []*Referral
	Timers          StatsTimers
	Farming         *FarmingStatus
}
