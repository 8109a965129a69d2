package get_pool_workload

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PoolBooking/internal/domain"
)

// UseCase use case для получения загруженности бассейна по часам
type UseCase struct {
	source       AppointmentSource
	opts         Options
	resolver     laneResolver
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(source AppointmentSource, opts Options, logger Logger) *UseCase {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.LaneMode == "" {
		opts.LaneMode = LaneModeAppointments
	}

	return &UseCase{
		source:       source,
		opts:         opts,
		resolver:     laneResolver{mode: opts.LaneMode, pattern: opts.LanePattern},
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения загруженности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	now := uc.timeProvider.Now().In(uc.opts.Location)

	// 1. Окно запроса и валидация
	w := resolveWindow(req, uc.opts, now)
	if err := validateWindow(w, uc.opts); err != nil {
		uc.logger.Warn("GetPoolWorkload: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetPoolWorkload: dates=%s..%s, hours=%d..%d",
		w.startDate.Format(domain.DateFormat), w.endDate.Format(domain.DateFormat), w.startHour, w.endHour)

	// 2. Снимок приемов из CRM. Частичных результатов не бывает
	appointments, err := uc.source.FetchAppointments(ctx)
	if err != nil {
		uc.logger.Error("GetPoolWorkload: failed to fetch appointments: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	// 3. Занятые дорожки по часам
	busy := countBusyLanes(appointments, uc.resolver)

	// 4. Слоты окна и текущая загруженность из того же снимка
	slots := buildSlots(uc.opts.Settings, busy, w)
	current := resolveCurrent(uc.opts.Settings, busy, now)

	uc.logger.Info("GetPoolWorkload: built %d slots from %d appointments, current=%s",
		len(slots), len(appointments), current.Source)

	return &Response{
		Slots:      slots,
		CurrentNow: current,
		Meta: Meta{
			ServiceID:    uc.opts.ServiceID,
			TotalLanes:   uc.opts.Settings.TotalLanes,
			LaneCapacity: uc.opts.Settings.LaneCapacity,
			TotalPlaces:  uc.opts.Settings.TotalPlaces(),
			StartDate:    w.startDate,
			EndDate:      w.endDate,
			StartHour:    w.startHour,
			EndHour:      w.endHour,
			LaneMode:     uc.opts.LaneMode,
			Timezone:     uc.opts.Location.String(),
			Appointments: len(appointments),
			GeneratedAt:  now,
		},
	}, nil
}
