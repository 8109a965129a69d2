package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-PoolBooking/internal/domain"
	crmClient "github.com/m04kA/SMC-PoolBooking/internal/integrations/crm"
	"github.com/m04kA/SMC-PoolBooking/internal/integrations/smsgateway"
	"github.com/m04kA/SMC-PoolBooking/internal/service/verification"
)

// UseCase use case транзакции бронирования:
// код -> set_password -> профиль клиента -> book -> SMS
type UseCase struct {
	verifier Verifier
	crm      CRMClient
	sms      SMSSender
	journal  Journal
	metrics  Metrics
	smsOpts  SMSOptions
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	verifier Verifier,
	crm CRMClient,
	sms SMSSender,
	journal Journal,
	metrics Metrics,
	smsOpts SMSOptions,
	logger Logger,
) *UseCase {
	if smsOpts.Location == nil {
		smsOpts.Location = time.Local
	}
	return &UseCase{
		verifier: verifier,
		crm:      crm,
		sms:      sms,
		journal:  journal,
		metrics:  metrics,
		smsOpts:  smsOpts,
		logger:   logger,
	}
}

// Execute выполняет транзакцию бронирования.
// Каждый шаг выполняется только после успеха предыдущего; ошибка SMS не отменяет запись
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.BookingOutcome, error) {
	uc.logger.Info("CreateBooking: session=%s, appointment=%s", req.SessionID, req.AppointmentID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверка кода (или уже подтвержденная сессия)
	if req.Code != "" {
		if err := uc.verify(ctx, req); err != nil {
			return nil, err
		}
	}

	// 3. Забираем pass_token: с этого момента сессия принадлежит транзакции
	session, err := uc.verifier.Claim(ctx, req.SessionID)
	if err != nil {
		return nil, uc.mapClaimError(req.SessionID, err)
	}

	attempt := &domain.BookingAttempt{
		SessionID:     session.ID,
		Phone:         session.Phone,
		AppointmentID: req.AppointmentID,
	}

	// 4. Установка пароля. pass_token одноразовый: при ошибке сессия истекает
	attempt.Step = domain.BookingStepSetPassword
	userToken, err := uc.crm.SetPassword(ctx, session.Phone, session.PassToken)
	if err != nil {
		return nil, uc.fail(ctx, attempt, ErrSetPassword, err)
	}
	uc.metrics.ObserveBookingStep(string(attempt.Step), stepStatusOK)

	// 5. Профиль клиента: нужен только для прогрева сессии CRM
	attempt.Step = domain.BookingStepClient
	profile, err := uc.crm.GetClient(ctx, userToken)
	if err != nil {
		return nil, uc.fail(ctx, attempt, ErrClientProfile, err)
	}
	uc.metrics.ObserveBookingStep(string(attempt.Step), stepStatusOK)

	// 6. Бронирование приема
	attempt.Step = domain.BookingStepBook
	booked, err := uc.crm.Book(ctx, req.AppointmentID, userToken)
	if err != nil {
		return nil, uc.fail(ctx, attempt, ErrBooking, err)
	}
	uc.metrics.ObserveBookingStep(string(attempt.Step), stepStatusOK)

	outcome := uc.buildOutcome(booked, profile, session, req.AppointmentID)
	uc.logger.Info("CreateBooking: session=%s booked appointment=%s", session.ID, outcome.Appointment.ID)

	// Запись создана: дальнейшие шаги не должны зависеть от отмены запроса
	doneCtx := context.WithoutCancel(ctx)

	// 7. Подтверждающее SMS (best-effort)
	attempt.Step = domain.BookingStepNotify
	outcome.SMSNotificationStatus, outcome.SMSDetail = uc.notify(doneCtx, outcome)
	uc.metrics.ObserveBookingStep(string(attempt.Step), string(outcome.SMSNotificationStatus))

	// 8. Завершение сессии и журнал
	if err := uc.verifier.Complete(doneCtx, session.ID); err != nil {
		uc.logger.Error("CreateBooking: failed to complete session=%s: %v", session.ID, err)
	}

	attempt.Success = true
	attempt.SMSStatus = outcome.SMSNotificationStatus
	uc.record(doneCtx, attempt)

	return outcome, nil
}

// verify проверяет код через сервис подтверждения
func (uc *UseCase) verify(ctx context.Context, req *Request) error {
	result, err := uc.verifier.VerifyCode(ctx, req.SessionID, req.Code)
	if err != nil {
		uc.metrics.ObserveBookingStep(string(domain.BookingStepVerifyCode), stepStatusError)
		switch {
		case errors.Is(err, verification.ErrInvalidCodeFormat):
			return fmt.Errorf("%w: code must be %d digits", ErrInvalidInput, domain.ConfirmationCodeLength)
		case errors.Is(err, verification.ErrSessionNotFound):
			return ErrSessionNotFound
		case errors.Is(err, verification.ErrSessionExpired):
			return ErrSessionExpired
		case errors.Is(err, verification.ErrUpstreamUnavailable):
			uc.logger.Error("CreateBooking: session=%s verification unavailable: %v", req.SessionID, err)
			return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		default:
			uc.logger.Error("CreateBooking: session=%s verification failed: %v", req.SessionID, err)
			return fmt.Errorf("%w: verify code: %v", ErrInternal, err)
		}
	}

	switch result.Outcome {
	case verification.OutcomeVerified:
		uc.metrics.ObserveBookingStep(string(domain.BookingStepVerifyCode), stepStatusOK)
		return nil
	case verification.OutcomeRejected:
		uc.metrics.ObserveBookingStep(string(domain.BookingStepVerifyCode), stepStatusError)
		uc.logger.Warn("CreateBooking: session=%s code rejected", req.SessionID)
		return ErrInvalidCode
	default:
		uc.metrics.ObserveBookingStep(string(domain.BookingStepVerifyCode), stepStatusIgnored)
		uc.logger.Info("CreateBooking: session=%s submission ignored", req.SessionID)
		return ErrSubmissionIgnored
	}
}

func (uc *UseCase) mapClaimError(sessionID string, err error) error {
	switch {
	case errors.Is(err, verification.ErrSessionNotFound):
		return ErrSessionNotFound
	case errors.Is(err, verification.ErrSessionExpired):
		return ErrSessionExpired
	case errors.Is(err, verification.ErrSessionBusy):
		uc.logger.Info("CreateBooking: session=%s is busy, submission ignored", sessionID)
		return ErrSubmissionIgnored
	case errors.Is(err, verification.ErrNotVerified):
		return fmt.Errorf("%w: code is required", ErrInvalidInput)
	default:
		uc.logger.Error("CreateBooking: failed to claim session=%s: %v", sessionID, err)
		return fmt.Errorf("%w: claim session: %v", ErrInternal, err)
	}
}

// fail завершает транзакцию ошибкой шага: сессия истекает, попытка пишется в журнал
func (uc *UseCase) fail(ctx context.Context, attempt *domain.BookingAttempt, sentinel, cause error) error {
	detail := upstreamDetail(cause)
	uc.logger.Error("CreateBooking: session=%s step=%s failed: %v", attempt.SessionID, attempt.Step, cause)
	uc.metrics.ObserveBookingStep(string(attempt.Step), stepStatusError)

	doneCtx := context.WithoutCancel(ctx)
	if err := uc.verifier.Expire(doneCtx, attempt.SessionID); err != nil {
		uc.logger.Error("CreateBooking: failed to expire session=%s: %v", attempt.SessionID, err)
	}

	attempt.ErrorText = detail
	uc.record(doneCtx, attempt)

	return &BookingError{Step: attempt.Step, Err: sentinel, Detail: detail}
}

func (uc *UseCase) record(ctx context.Context, attempt *domain.BookingAttempt) {
	if _, err := uc.journal.Record(ctx, attempt); err != nil {
		uc.logger.Error("CreateBooking: failed to record attempt for session=%s: %v", attempt.SessionID, err)
	}
}

// notify отправляет подтверждающее SMS и возвращает его статус
func (uc *UseCase) notify(ctx context.Context, outcome *domain.BookingOutcome) (domain.SMSStatus, string) {
	n, ok := buildNotification(outcome)
	if !ok {
		uc.logger.Warn("CreateBooking: sms skipped, not enough data for appointment=%s", outcome.Appointment.ID)
		return domain.SMSStatusSkipped, ""
	}

	err := uc.sms.Send(ctx, smsgateway.Message{
		SenderID:             uc.smsOpts.SenderID,
		UseRecipientTimeZone: uc.smsOpts.UseRecipientTimeZone,
		PhoneNumber:          n.Phone,
		Text:                 n.Text,
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: sms for appointment=%s failed: %v", outcome.Appointment.ID, err)
		return domain.SMSStatusFailed, err.Error()
	}

	return domain.SMSStatusSent, ""
}

// buildOutcome собирает результат из ответа book, профиля клиента и сессии
func (uc *UseCase) buildOutcome(
	booked *crmClient.BookResponse,
	profile *crmClient.ClientProfile,
	session *domain.VerificationSession,
	appointmentID string,
) *domain.BookingOutcome {
	appointment := booked.Data.Data.Appointment
	customer := booked.Data.Data.Customer

	result := &domain.BookingOutcome{
		Appointment: domain.BookedAppointment{
			ID:    firstNonEmpty(appointment.Identifier(), appointmentID),
			Title: appointment.DisplayTitle(),
		},
		Customer: domain.Customer{
			FirstName:  customer.First(),
			LastName:   customer.Last(),
			Patronymic: customer.Middle(),
			Phone:      customer.Phone.String(),
		},
	}

	if raw := appointment.StartValue(); raw != "" {
		if start, err := crmClient.ParseStartDate(raw, uc.smsOpts.Location); err == nil {
			result.Appointment.StartAt = &start
		} else {
			result.Appointment.RawTime = raw
		}
	}

	if profile != nil {
		result.Customer.FirstName = firstNonEmpty(result.Customer.FirstName, profile.Name)
		result.Customer.LastName = firstNonEmpty(result.Customer.LastName, profile.Surname)
		result.Customer.Phone = firstNonEmpty(result.Customer.Phone, profile.Phone.String())
	}
	result.Customer.Phone = firstNonEmpty(result.Customer.Phone, session.Phone)

	return result
}

// upstreamDetail возвращает исходный текст ошибки CRM, если он есть
func upstreamDetail(err error) string {
	var upErr *crmClient.UpstreamError
	if errors.As(err, &upErr) && upErr.Detail != "" {
		return upErr.Detail
	}
	return err.Error()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
