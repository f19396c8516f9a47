package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2025-03", MonthKey(time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2024-12", MonthKey(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)))
}

func TestStartOfDay(t *testing.T) {
	instant := time.Date(2025, 3, 15, 18, 45, 12, 500, time.UTC)

	start := StartOfDay(instant)

	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), start)
}

func TestEndOfDay(t *testing.T) {
	instant := time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)

	end := EndOfDay(instant)

	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Minute())
	assert.Equal(t, 59, end.Second())
	assert.Equal(t, int(999*time.Millisecond), end.Nanosecond())
	assert.True(t, end.Before(StartOfDay(instant.AddDate(0, 0, 1))))
}

func TestParseDate(t *testing.T) {
	t.Run("Data válida no formato ISO", func(t *testing.T) {
		date, err := ParseDate("2025-03-15")

		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), *date)
	})

	t.Run("Data malformada retorna erro", func(t *testing.T) {
		_, err := ParseDate("15/03/2025")

		assert.Error(t, err)
	})

	t.Run("Data vazia retorna o zero de time.Time", func(t *testing.T) {
		date, err := ParseDate("")

		require.NoError(t, err)
		assert.True(t, date.IsZero())
	})
}
