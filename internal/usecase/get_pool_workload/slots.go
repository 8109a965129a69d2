package get_pool_workload

import (
	"regexp"
	"time"

	"github.com/m04kA/SMC-PoolBooking/internal/domain"
)

// slotKey ключ часа в снимке загруженности
type slotKey struct {
	date string
	hour int
}

func keyOf(date time.Time, hour int) slotKey {
	return slotKey{date: date.Format(domain.DateFormat), hour: hour}
}

// laneResolver определяет, какую дорожку занимает прием
type laneResolver struct {
	mode    string
	pattern *regexp.Regexp
}

// laneOf возвращает идентификатор дорожки приема.
// В режиме location номер берется из поля location; без совпадения прием занимает отдельную дорожку
func (r laneResolver) laneOf(a domain.Appointment) string {
	if r.mode == LaneModeLocation && r.pattern != nil {
		if m := r.pattern.FindStringSubmatch(a.Location); len(m) > 1 && m[1] != "" {
			return "lane:" + m[1]
		}
	}
	return "appointment:" + a.ID
}

// countBusyLanes считает количество различных занятых дорожек в каждом часе
func countBusyLanes(appointments []domain.Appointment, resolver laneResolver) map[slotKey]int {
	lanes := make(map[slotKey]map[string]struct{})

	for _, a := range appointments {
		key := keyOf(a.Date(), a.Hour())
		if lanes[key] == nil {
			lanes[key] = make(map[string]struct{})
		}
		lanes[key][resolver.laneOf(a)] = struct{}{}
	}

	busy := make(map[slotKey]int, len(lanes))
	for key, set := range lanes {
		busy[key] = len(set)
	}
	return busy
}

// buildSlots строит слоты для каждой даты и часа окна запроса
func buildSlots(settings domain.PoolSettings, busy map[slotKey]int, w window) []domain.AvailabilitySlot {
	slots := make([]domain.AvailabilitySlot, 0)

	for date := w.startDate; !date.After(w.endDate); date = date.AddDate(0, 0, 1) {
		for hour := w.startHour; hour <= w.endHour; hour++ {
			slots = append(slots, domain.NewAvailabilitySlot(settings, date, hour, busy[keyOf(date, hour)]))
		}
	}

	return slots
}

// resolveCurrent вычисляет загруженность "сейчас": текущий час, иначе предыдущий, иначе нет данных
func resolveCurrent(settings domain.PoolSettings, busy map[slotKey]int, now time.Time) domain.CurrentOccupancy {
	today := domain.DateOf(now)
	hour := now.Hour()

	if settings.IsOperatingHour(hour) {
		slot := domain.NewAvailabilitySlot(settings, today, hour, busy[keyOf(today, hour)])
		return domain.CurrentOccupancy{Source: domain.OccupancySourceExact, At: slot.StartsAt(), Slot: &slot}
	}

	if prev := hour - 1; prev >= 0 && settings.IsOperatingHour(prev) {
		slot := domain.NewAvailabilitySlot(settings, today, prev, busy[keyOf(today, prev)])
		return domain.CurrentOccupancy{Source: domain.OccupancySourcePreviousHour, At: slot.StartsAt(), Slot: &slot}
	}

	return domain.CurrentOccupancy{Source: domain.OccupancySourceNone, At: now}
}
