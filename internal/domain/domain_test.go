package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPoolSettings_IsBreak(t *testing.T) {
	settings := DefaultPoolSettings()
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	assert.True(t, settings.IsBreak(monday, 12))
	assert.False(t, settings.IsBreak(monday, 11))
	assert.False(t, settings.IsBreak(saturday, 12))
}

func TestNewAvailabilitySlot(t *testing.T) {
	settings := DefaultPoolSettings()
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	t.Run("regular hour", func(t *testing.T) {
		slot := NewAvailabilitySlot(settings, monday, 9, 1)
		assert.False(t, slot.IsBreak)
		assert.Equal(t, 1, slot.BusyLanes)
		assert.Equal(t, 9, slot.FreeLanes)
		assert.Equal(t, 108, slot.FreePlaces)
	})

	t.Run("overbooked is clamped", func(t *testing.T) {
		slot := NewAvailabilitySlot(settings, monday, 9, 14)
		assert.Equal(t, 10, slot.BusyLanes)
		assert.Equal(t, 0, slot.FreeLanes)
		assert.Equal(t, 0, slot.FreePlaces)
		assert.True(t, slot.IsFull())
	})

	t.Run("break hour forces zero", func(t *testing.T) {
		slot := NewAvailabilitySlot(settings, monday, 12, 0)
		assert.True(t, slot.IsBreak)
		assert.Equal(t, 0, slot.FreeLanes)
		assert.Equal(t, 0, slot.FreePlaces)
		assert.Equal(t, 100.0, slot.OccupancyRate())
	})

	t.Run("invariants hold for any busy count", func(t *testing.T) {
		for busy := 0; busy <= 15; busy++ {
			for hour := settings.OpenHour; hour <= settings.CloseHour; hour++ {
				slot := NewAvailabilitySlot(settings, monday, hour, busy)
				assert.LessOrEqual(t, slot.BusyLanes, slot.TotalLanes)
				assert.GreaterOrEqual(t, slot.FreeLanes, 0)
				assert.LessOrEqual(t, slot.FreeLanes, slot.TotalLanes)
				if !slot.IsBreak {
					assert.Equal(t, slot.FreeLanes*slot.LaneCapacity, slot.FreePlaces)
				}
			}
		}
	})
}

func TestVerificationSession_AttemptedCodes(t *testing.T) {
	s := NewVerificationSession("s1", "79001234567", "r1", time.Now())

	assert.True(t, s.AcceptsCode())
	assert.False(t, s.WasAttempted("1234"))

	s.RememberRejected("1234")
	assert.True(t, s.WasAttempted("1234"))
	assert.False(t, s.WasAttempted("4321"))
}

func TestCustomer_FullName(t *testing.T) {
	assert.Equal(t, "Иван Петрович", (&Customer{FirstName: "Иван", LastName: "Сидоров", Patronymic: "Петрович"}).FullName())
	assert.Equal(t, "Иван", (&Customer{FirstName: "Иван"}).FullName())
	assert.Equal(t, "", (&Customer{}).FullName())
}
