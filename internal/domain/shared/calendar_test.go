package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDay(t *testing.T) {
	loc := time.FixedZone("EAT", 3*3600)
	in := time.Date(2024, 6, 10, 23, 30, 0, 0, loc)

	got := Day(in)

	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), got)
}

func TestDaysBetween(t *testing.T) {
	base := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		to   time.Time
		want int
	}{
		{"same day", base.Add(20 * time.Hour), 0},
		{"next day", base.AddDate(0, 0, 1), 1},
		{"two days later late evening", base.AddDate(0, 0, 2).Add(23 * time.Hour), 2},
		{"previous day", base.AddDate(0, 0, -1), -1},
		{"across month", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), 21},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(base, tt.to))
		})
	}
}

func TestParseDay(t *testing.T) {
	got, err := ParseDay("2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDay("10/06/2024")
	assert.Error(t, err)
}
