package crm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-PoolBooking/internal/domain"
)

// SlotsFetcher источник сырых записей CRM
type SlotsFetcher interface {
	GetSlots(ctx context.Context) ([]Slot, error)
}

// SlotSource адаптер CRM: оставляет только записи услуги бассейна
// и переводит наивное время начала в часовой пояс бассейна
type SlotSource struct {
	fetcher   SlotsFetcher
	serviceID string
	location  *time.Location
	log       Logger
}

// NewSlotSource создает адаптер для указанной услуги
func NewSlotSource(fetcher SlotsFetcher, serviceID string, location *time.Location, log Logger) *SlotSource {
	if location == nil {
		location = time.Local
	}
	return &SlotSource{
		fetcher:   fetcher,
		serviceID: serviceID,
		location:  location,
		log:       log,
	}
}

// FetchAppointments получает приемы услуги. Записи с нераспознанным временем пропускаются
func (s *SlotSource) FetchAppointments(ctx context.Context) ([]domain.Appointment, error) {
	slots, err := s.fetcher.GetSlots(ctx)
	if err != nil {
		return nil, err
	}

	appointments := make([]domain.Appointment, 0, len(slots))
	skipped := 0

	for _, slot := range slots {
		if slot.ServiceID.String() != s.serviceID {
			continue
		}

		startAt, err := ParseStartDate(slot.StartDate, s.location)
		if err != nil {
			skipped++
			s.log.Warn("SlotSource: skip appointment id=%s: %v", slot.AppointmentID, err)
			continue
		}

		appointments = append(appointments, domain.Appointment{
			ID:        slot.AppointmentID.String(),
			ServiceID: slot.ServiceID.String(),
			StartAt:   startAt,
			Location:  slot.Location,
			Title:     slot.Title,
		})
	}

	s.log.Info("SlotSource: %d of %d records matched service=%s (skipped=%d)",
		len(appointments), len(slots), s.serviceID, skipped)
	return appointments, nil
}

// ParseStartDate разбирает наивное время CRM в указанном часовом поясе
func ParseStartDate(value string, location *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range domain.CRMDateTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unsupported start_date %q", ErrInvalidResponse, value)
}
