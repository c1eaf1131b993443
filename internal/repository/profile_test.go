package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProfileRow_LastCheckInDate(t *testing.T) {
	// The driver hands DATE columns back as midnight instants. The model must
	// carry the plain calendar date, since the streak logic compares it
	// against strings like "2024-03-15".
	row := profileRow{
		LastCheckIn: sql.NullTime{
			Time:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			Valid: true,
		},
	}

	profile := row.toModel()
	if assert.NotNil(t, profile.LastCheckIn) {
		assert.Equal(t, "2024-03-15", *profile.LastCheckIn)
	}
}

func TestProfileRow_LastCheckInNull(t *testing.T) {
	row := profileRow{}
	assert.Nil(t, row.toModel().LastCheckIn)
}

func TestParseCheckInDate(t *testing.T) {
	day, err := parseCheckInDate("2024-03-15")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), day)

	// Round trip: what SetCheckIn writes is what toModel reads back.
	assert.Equal(t, "2024-03-15", day.Format(checkInDateLayout))

	_, err = parseCheckInDate("2024-03-15T00:00:00Z")
	assert.Error(t, err)
}
