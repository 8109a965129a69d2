package journal

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-PoolBooking/internal/domain"
	"github.com/m04kA/SMC-PoolBooking/pkg/psqlbuilder"
)

const tableBookingAttempts = "booking_attempts"

// Repository журнал попыток бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Record сохраняет завершенную попытку бронирования
func (r *Repository) Record(ctx context.Context, attempt *domain.BookingAttempt) (*domain.BookingAttempt, error) {
	query, args, err := psqlbuilder.Insert(tableBookingAttempts).
		Columns(
			"session_id",
			"phone",
			"appointment_id",
			"step",
			"success",
			"error_text",
			"sms_status",
		).
		Values(
			attempt.SessionID,
			attempt.Phone,
			attempt.AppointmentID,
			string(attempt.Step),
			attempt.Success,
			nullString(attempt.ErrorText),
			nullString(string(attempt.SMSStatus)),
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Record - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&attempt.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Record - execute insert: %v", ErrExecQuery, err)
	}
	attempt.CreatedAt = createdAt.Time

	return attempt, nil
}

// ListByPhone возвращает последние попытки бронирования по номеру телефона
func (r *Repository) ListByPhone(ctx context.Context, phone string, limit uint64) ([]*domain.BookingAttempt, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"session_id",
		"phone",
		"appointment_id",
		"step",
		"success",
		"error_text",
		"sms_status",
		"created_at",
	).
		From(tableBookingAttempts).
		Where(squirrel.Eq{"phone": phone}).
		OrderBy("created_at DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPhone - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPhone - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	attempts := make([]*domain.BookingAttempt, 0)
	for rows.Next() {
		var (
			attempt   domain.BookingAttempt
			step      string
			errorText sql.NullString
			smsStatus sql.NullString
		)
		if err := rows.Scan(
			&attempt.ID,
			&attempt.SessionID,
			&attempt.Phone,
			&attempt.AppointmentID,
			&step,
			&attempt.Success,
			&errorText,
			&smsStatus,
			&attempt.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByPhone: %v", ErrScanRow, err)
		}
		attempt.Step = domain.BookingStep(step)
		attempt.ErrorText = errorText.String
		attempt.SMSStatus = domain.SMSStatus(smsStatus.String)
		attempts = append(attempts, &attempt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByPhone - rows: %v", ErrScanRow, err)
	}

	return attempts, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Noop журнал-заглушка, используется при выключенной базе данных
type Noop struct{}

func (Noop) Record(_ context.Context, attempt *domain.BookingAttempt) (*domain.BookingAttempt, error) {
	return attempt, nil
}

func (Noop) ListByPhone(_ context.Context, _ string, _ uint64) ([]*domain.BookingAttempt, error) {
	return []*domain.BookingAttempt{}, nil
}
