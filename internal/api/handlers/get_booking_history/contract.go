package get_booking_history

import (
	"context"

	"github.com/m04kA/SMC-PoolBooking/internal/service/bookings/models"
)

type BookingsService interface {
	GetHistory(ctx context.Context, req *models.GetHistoryRequest) (*models.AttemptListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
