package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-PoolBooking/internal/domain"
	"github.com/m04kA/SMC-PoolBooking/pkg/phone"
)

const smsDateFormat = "02.01.2006"

// notification данные подтверждающего SMS
type notification struct {
	Phone string
	Text  string
}

// buildNotification собирает SMS о записи.
// Возвращает false, если не хватает имени, телефона (меньше 11 цифр) или времени начала
func buildNotification(outcome *domain.BookingOutcome) (notification, bool) {
	number := phone.Normalize(outcome.Customer.Phone)
	if len(number) < 11 {
		return notification{}, false
	}

	name := outcome.Customer.FullName()
	if name == "" {
		return notification{}, false
	}

	start := outcome.Appointment.StartAt
	if start == nil || start.IsZero() {
		return notification{}, false
	}

	text := fmt.Sprintf("%s, вы записаны в бассейн %s в %s.",
		name, start.Format(smsDateFormat), start.Format(domain.TimeFormat))
	if outcome.Appointment.Title != "" {
		text += " " + outcome.Appointment.Title + "."
	}

	return notification{Phone: number, Text: text}, true
}
