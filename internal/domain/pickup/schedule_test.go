package pickup

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecurringSchedule(t *testing.T) {
	locationID := uuid.New()

	t.Run("creates a weekly window", func(t *testing.T) {
		s, err := NewRecurringSchedule(locationID, 6, "09:00", "13:00", 10)
		require.NoError(t, err)
		assert.Equal(t, ScheduleRecurring, s.Kind)
		assert.Equal(t, 6, s.DayOfWeek)
		assert.True(t, s.Active)
	})

	t.Run("rejects invalid day of week", func(t *testing.T) {
		_, err := NewRecurringSchedule(locationID, 7, "09:00", "13:00", 10)
		require.Error(t, err)
	})

	t.Run("rejects end before start", func(t *testing.T) {
		_, err := NewRecurringSchedule(locationID, 1, "13:00", "09:00", 10)
		require.Error(t, err)
	})

	t.Run("rejects malformed time", func(t *testing.T) {
		_, err := NewRecurringSchedule(locationID, 1, "9am", "13:00", 10)
		require.Error(t, err)
	})

	t.Run("rejects negative capacity", func(t *testing.T) {
		_, err := NewRecurringSchedule(locationID, 1, "09:00", "13:00", -1)
		require.Error(t, err)
	})
}

func TestNewOneTimeSchedule(t *testing.T) {
	locationID := uuid.New()

	t.Run("creates a single date window", func(t *testing.T) {
		s, err := NewOneTimeSchedule(locationID, "2026-12-19", "10:00", "16:00", 25)
		require.NoError(t, err)
		assert.Equal(t, ScheduleOneTime, s.Kind)
		assert.Equal(t, "2026-12-19", s.Date)
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		_, err := NewOneTimeSchedule(locationID, "12/19/2026", "10:00", "16:00", 25)
		require.Error(t, err)
	})
}

func TestCoversDate(t *testing.T) {
	locationID := uuid.New()
	saturday := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)

	t.Run("recurring matches its weekday only", func(t *testing.T) {
		s, err := NewRecurringSchedule(locationID, 6, "09:00", "13:00", 10)
		require.NoError(t, err)
		assert.True(t, s.CoversDate(saturday))
		assert.False(t, s.CoversDate(sunday))
	})

	t.Run("blackout dates are excluded", func(t *testing.T) {
		s, err := NewRecurringSchedule(locationID, 6, "09:00", "13:00", 10)
		require.NoError(t, err)
		require.NoError(t, s.AddBlackoutDate("2026-09-05"))
		assert.False(t, s.CoversDate(saturday))

		s.RemoveBlackoutDate("2026-09-05")
		assert.True(t, s.CoversDate(saturday))
	})

	t.Run("one-time matches its date only", func(t *testing.T) {
		s, err := NewOneTimeSchedule(locationID, "2026-09-05", "10:00", "16:00", 25)
		require.NoError(t, err)
		assert.True(t, s.CoversDate(saturday))
		assert.False(t, s.CoversDate(sunday))
	})

	t.Run("inactive schedules never match", func(t *testing.T) {
		s, err := NewRecurringSchedule(locationID, 6, "09:00", "13:00", 10)
		require.NoError(t, err)
		s.Deactivate()
		assert.False(t, s.CoversDate(saturday))
	})
}

func TestCapacity(t *testing.T) {
	locationID := uuid.New()

	t.Run("capacity caps bookings", func(t *testing.T) {
		s, err := NewRecurringSchedule(locationID, 6, "09:00", "13:00", 2)
		require.NoError(t, err)
		assert.True(t, s.HasRoom(1))
		assert.False(t, s.HasRoom(2))
		assert.Equal(t, 1, s.Remaining(1))
		assert.Equal(t, 0, s.Remaining(5))
	})

	t.Run("zero capacity means unlimited", func(t *testing.T) {
		s, err := NewRecurringSchedule(locationID, 6, "09:00", "13:00", 0)
		require.NoError(t, err)
		assert.True(t, s.Unlimited())
		assert.True(t, s.HasRoom(1000))
		assert.Equal(t, -1, s.Remaining(1000))
	})
}
