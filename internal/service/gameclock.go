package service

import "time"

// All day and week boundaries in the game run on a fixed UTC+4 clock:
// daily resets at midnight UTC+4, weekly resets at Monday 00:00 UTC+4.
var gameZone = time.FixedZone("UTC+4", 4*60*60)

const dateLayout = "2006-01-02"

type GameClock struct {
	now func() time.Time
}

func NewGameClock() *GameClock {
	return &GameClock{now: time.Now}
}

// NewGameClockAt pins the clock to the given source. Used in tests.
func NewGameClockAt(now func() time.Time) *GameClock {
	return &GameClock{now: now}
}

func (c *GameClock) Now() time.Time {
	return c.now().UTC()
}

func (c *GameClock) local() time.Time {
	return c.now().In(gameZone)
}

func (c *GameClock) Today() string {
	return c.local().Format(dateLayout)
}

func (c *GameClock) Yesterday() string {
	return c.local().AddDate(0, 0, -1).Format(dateLayout)
}

// DayStart is the most recent daily boundary as an instant.
func (c *GameClock) DayStart() time.Time {
	t := c.local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, gameZone)
}

// WeekStart is the most recent Monday 00:00 boundary as an instant.
func (c *GameClock) WeekStart() time.Time {
	t := c.local()
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -daysSinceMonday)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, gameZone)
}

func (c *GameClock) UntilDailyReset() time.Duration {
	return c.DayStart().AddDate(0, 0, 1).Sub(c.now())
}

func (c *GameClock) UntilWeeklyReset() time.Duration {
	return c.WeekStart().AddDate(0, 0, 7).Sub(c.now())
}
