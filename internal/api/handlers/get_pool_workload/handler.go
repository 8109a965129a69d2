package get_pool_workload

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PoolBooking/internal/api/handlers"
	getPoolWorkload "github.com/m04kA/SMC-PoolBooking/internal/usecase/get_pool_workload"
)

const (
	msgInvalidParams       = "некорректные параметры запроса: даты YYYY-MM-DD, часы числом"
	msgInvalidRange        = "некорректный диапазон дат или часов"
	msgUpstreamUnavailable = "не удалось получить расписание, попробуйте обновить позже"
)

type Handler struct {
	useCase GetPoolWorkloadUseCase
	logger  Logger
}

func NewHandler(useCase GetPoolWorkloadUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/pool-workload
// Query params: start_date, end_date (YYYY-MM-DD), start_hour, end_hour (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /pool-workload - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getPoolWorkload.ErrInvalidInput):
			h.logger.Warn("GET /pool-workload - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getPoolWorkload.ErrUpstreamUnavailable):
			h.logger.Error("GET /pool-workload - Upstream unavailable: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgUpstreamUnavailable)

		default:
			h.logger.Error("GET /pool-workload - Failed to get workload: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /pool-workload - Workload built: slots=%d, current=%s",
		len(result.Slots), result.CurrentNow.Source)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
