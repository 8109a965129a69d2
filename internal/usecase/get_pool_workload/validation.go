package get_pool_workload

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-PoolBooking/internal/domain"
)

// resolveWindow подставляет значения по умолчанию и приводит даты к часовому поясу бассейна
func resolveWindow(req *Request, opts Options, now time.Time) window {
	today := domain.DateOf(now)

	w := window{
		startDate: today,
		endDate:   today.AddDate(0, 0, domain.DefaultRangeDays-1),
		startHour: opts.Settings.OpenHour,
		endHour:   opts.Settings.CloseHour,
	}

	if req.StartDate != nil {
		w.startDate = inLocation(*req.StartDate, opts.Location)
		if req.EndDate == nil {
			w.endDate = w.startDate.AddDate(0, 0, domain.DefaultRangeDays-1)
		}
	}
	if req.EndDate != nil {
		w.endDate = inLocation(*req.EndDate, opts.Location)
	}
	if req.StartHour != nil {
		w.startHour = *req.StartHour
	}
	if req.EndHour != nil {
		w.endHour = *req.EndHour
	}

	return w
}

// validateWindow проверяет диапазон дат и часов
func validateWindow(w window, opts Options) error {
	settings := opts.Settings

	if !settings.IsOperatingHour(w.startHour) {
		return fmt.Errorf("%w: start_hour must be within %d..%d", ErrInvalidInput, settings.OpenHour, settings.CloseHour)
	}

	if !settings.IsOperatingHour(w.endHour) {
		return fmt.Errorf("%w: end_hour must be within %d..%d", ErrInvalidInput, settings.OpenHour, settings.CloseHour)
	}

	if w.startHour > w.endHour {
		return fmt.Errorf("%w: start_hour must not be greater than end_hour", ErrInvalidInput)
	}

	if w.endDate.Before(w.startDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", ErrInvalidInput)
	}

	if opts.MaxRangeDays > 0 && w.endDate.After(w.startDate.AddDate(0, 0, opts.MaxRangeDays-1)) {
		return fmt.Errorf("%w: date range must not exceed %d days", ErrInvalidInput, opts.MaxRangeDays)
	}

	return nil
}

// inLocation переносит календарную дату в часовой пояс бассейна без сдвига дня
func inLocation(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
}
