package get_pool_workload

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-PoolBooking/internal/domain"
	getPoolWorkload "github.com/m04kA/SMC-PoolBooking/internal/usecase/get_pool_workload"
)

// SlotResponse загруженность одного часа
type SlotResponse struct {
	Date             string  `json:"date"` // "2025-06-02"
	Hour             int     `json:"hour"`
	IsBreak          bool    `json:"isBreak"`
	TotalLanes       int     `json:"totalLanes"`
	LaneCapacity     int     `json:"laneCapacity"`
	BusyLanes        int     `json:"busyLanes"`
	FreeLanes        int     `json:"freeLanes"`
	FreePlaces       int     `json:"freePlaces"`
	TotalPlaces      int     `json:"totalPlaces"`
	OccupancyPercent float64 `json:"occupancyPercent"`
}

// CurrentNowResponse загруженность "сейчас"
type CurrentNowResponse struct {
	Source string        `json:"source"` // exact | previousHour | none
	At     string        `json:"at"`
	Slot   *SlotResponse `json:"slot,omitempty"`
}

// MetaResponse параметры ответа
type MetaResponse struct {
	ServiceID    string `json:"serviceId"`
	TotalLanes   int    `json:"totalLanes"`
	LaneCapacity int    `json:"laneCapacity"`
	TotalPlaces  int    `json:"totalPlaces"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	StartHour    int    `json:"startHour"`
	EndHour      int    `json:"endHour"`
	LaneMode     string `json:"laneMode"`
	Timezone     string `json:"timezone"`
	Appointments int    `json:"appointments"`
	GeneratedAt  string `json:"generatedAt"`
}

// WorkloadResponse HTTP response model
type WorkloadResponse struct {
	Slots      []SlotResponse     `json:"slots"`
	CurrentNow CurrentNowResponse `json:"currentNow"`
	Meta       MetaResponse       `json:"meta"`
}

// ToUseCaseRequest разбирает query параметры. Пустые параметры остаются nil
func ToUseCaseRequest(query url.Values) (*getPoolWorkload.Request, error) {
	req := &getPoolWorkload.Request{}

	var err error
	if req.StartDate, err = parseDate(query.Get("start_date")); err != nil {
		return nil, fmt.Errorf("start_date: %w", err)
	}
	if req.EndDate, err = parseDate(query.Get("end_date")); err != nil {
		return nil, fmt.Errorf("end_date: %w", err)
	}
	if req.StartHour, err = parseHour(query.Get("start_hour")); err != nil {
		return nil, fmt.Errorf("start_hour: %w", err)
	}
	if req.EndHour, err = parseHour(query.Get("end_hour")); err != nil {
		return nil, fmt.Errorf("end_hour: %w", err)
	}

	return req, nil
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := time.Parse(domain.DateFormat, value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func parseHour(value string) (*int, error) {
	if value == "" {
		return nil, nil
	}
	hour, err := strconv.Atoi(value)
	if err != nil {
		return nil, err
	}
	return &hour, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getPoolWorkload.Response) *WorkloadResponse {
	result := &WorkloadResponse{
		Slots: make([]SlotResponse, 0, len(resp.Slots)),
		CurrentNow: CurrentNowResponse{
			Source: string(resp.CurrentNow.Source),
			At:     resp.CurrentNow.At.Format(time.RFC3339),
		},
		Meta: MetaResponse{
			ServiceID:    resp.Meta.ServiceID,
			TotalLanes:   resp.Meta.TotalLanes,
			LaneCapacity: resp.Meta.LaneCapacity,
			TotalPlaces:  resp.Meta.TotalPlaces,
			StartDate:    resp.Meta.StartDate.Format(domain.DateFormat),
			EndDate:      resp.Meta.EndDate.Format(domain.DateFormat),
			StartHour:    resp.Meta.StartHour,
			EndHour:      resp.Meta.EndHour,
			LaneMode:     resp.Meta.LaneMode,
			Timezone:     resp.Meta.Timezone,
			Appointments: resp.Meta.Appointments,
			GeneratedAt:  resp.Meta.GeneratedAt.Format(time.RFC3339),
		},
	}

	for i := range resp.Slots {
		result.Slots = append(result.Slots, fromSlot(&resp.Slots[i]))
	}

	if resp.CurrentNow.Slot != nil {
		slot := fromSlot(resp.CurrentNow.Slot)
		result.CurrentNow.Slot = &slot
	}

	return result
}

func fromSlot(s *domain.AvailabilitySlot) SlotResponse {
	return SlotResponse{
		Date:             s.Date.Format(domain.DateFormat),
		Hour:             s.Hour,
		IsBreak:          s.IsBreak,
		TotalLanes:       s.TotalLanes,
		LaneCapacity:     s.LaneCapacity,
		BusyLanes:        s.BusyLanes,
		FreeLanes:        s.FreeLanes,
		FreePlaces:       s.FreePlaces,
		TotalPlaces:      s.TotalPlaces(),
		OccupancyPercent: math.Round(s.OccupancyRate()*10) / 10,
	}
}
