package domain

import "time"

// AvailabilitySlot is the derived occupancy of the pool for one (date, hour)
type AvailabilitySlot struct {
	Date         time.Time
	Hour         int
	IsBreak      bool
	TotalLanes   int
	LaneCapacity int
	BusyLanes    int
	FreeLanes    int
	FreePlaces   int
}

// NewAvailabilitySlot builds a slot from the number of busy lanes.
// BusyLanes and FreeLanes are clamped to [0, TotalLanes]; a break hour has no free lanes or places.
func NewAvailabilitySlot(settings PoolSettings, date time.Time, hour int, busyLanes int) AvailabilitySlot {
	if busyLanes < 0 {
		busyLanes = 0
	}
	if busyLanes > settings.TotalLanes {
		busyLanes = settings.TotalLanes
	}

	slot := AvailabilitySlot{
		Date:         DateOf(date),
		Hour:         hour,
		IsBreak:      settings.IsBreak(date, hour),
		TotalLanes:   settings.TotalLanes,
		LaneCapacity: settings.LaneCapacity,
		BusyLanes:    busyLanes,
	}

	if slot.IsBreak {
		return slot
	}

	slot.FreeLanes = settings.TotalLanes - busyLanes
	slot.FreePlaces = slot.FreeLanes * settings.LaneCapacity
	return slot
}

// TotalPlaces returns the slot capacity in people
func (s *AvailabilitySlot) TotalPlaces() int {
	return s.TotalLanes * s.LaneCapacity
}

// IsFull returns true if the slot has no free places
func (s *AvailabilitySlot) IsFull() bool {
	return s.FreePlaces <= 0
}

// OccupancyRate returns the share of occupied places as a percentage (0-100).
// A break hour is reported as fully occupied.
func (s *AvailabilitySlot) OccupancyRate() float64 {
	total := s.TotalPlaces()
	if total == 0 {
		return 0
	}
	occupied := total - s.FreePlaces
	return float64(occupied) / float64(total) * 100
}

// StartsAt returns the slot start as a point in time
func (s *AvailabilitySlot) StartsAt() time.Time {
	return s.Date.Add(time.Duration(s.Hour) * time.Hour)
}

// OccupancySource tells where the "right now" figure comes from
type OccupancySource string

const (
	OccupancySourceExact        OccupancySource = "exact"
	OccupancySourcePreviousHour OccupancySource = "previousHour"
	OccupancySourceNone         OccupancySource = "none"
)

// CurrentOccupancy is the occupancy reported for the current moment
type CurrentOccupancy struct {
	Source OccupancySource
	At     time.Time
	Slot   *AvailabilitySlot // nil when Source is none
}
