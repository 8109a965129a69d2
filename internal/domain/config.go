package domain

import "time"

// PoolSettings describes the fixed capacity and schedule of the pool
type PoolSettings struct {
	TotalLanes    int
	LaneCapacity  int
	OpenHour      int
	CloseHour     int // inclusive
	BreakHour     int
	BreakWeekdays []time.Weekday
}

// DefaultPoolSettings returns 10 lanes x 12 places, 07:00-21:00, break at 12:00 on weekdays
func DefaultPoolSettings() PoolSettings {
	return PoolSettings{
		TotalLanes:   DefaultTotalLanes,
		LaneCapacity: DefaultLaneCapacity,
		OpenHour:     DefaultOpenHour,
		CloseHour:    DefaultCloseHour,
		BreakHour:    DefaultBreakHour,
		BreakWeekdays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
	}
}

// IsBreak returns true if the pool is closed for the midday break at the given date and hour
func (p PoolSettings) IsBreak(date time.Time, hour int) bool {
	if hour != p.BreakHour {
		return false
	}
	weekday := date.Weekday()
	for _, wd := range p.BreakWeekdays {
		if wd == weekday {
			return true
		}
	}
	return false
}

// IsOperatingHour returns true if hour is inside the operating window
func (p PoolSettings) IsOperatingHour(hour int) bool {
	return hour >= p.OpenHour && hour <= p.CloseHour
}

// TotalPlaces returns the pool capacity in people
func (p PoolSettings) TotalPlaces() int {
	return p.TotalLanes * p.LaneCapacity
}
