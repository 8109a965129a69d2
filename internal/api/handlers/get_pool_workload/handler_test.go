package get_pool_workload

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PoolBooking/internal/domain"
	getPoolWorkload "github.com/m04kA/SMC-PoolBooking/internal/usecase/get_pool_workload"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *getPoolWorkload.Request) (*getPoolWorkload.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getPoolWorkload.Response), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandler_Handle(t *testing.T) {
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	slot := domain.NewAvailabilitySlot(domain.DefaultPoolSettings(), date, 9, 1)

	useCase := new(MockUseCase)
	useCase.On("Execute", mock.Anything, mock.MatchedBy(func(req *getPoolWorkload.Request) bool {
		return req.StartDate != nil && req.StartDate.Format(domain.DateFormat) == "2025-06-02" &&
			req.EndDate == nil &&
			req.StartHour != nil && *req.StartHour == 9 &&
			req.EndHour != nil && *req.EndHour == 9
	})).Return(&getPoolWorkload.Response{
		Slots:      []domain.AvailabilitySlot{slot},
		CurrentNow: domain.CurrentOccupancy{Source: domain.OccupancySourceExact, At: slot.StartsAt(), Slot: &slot},
		Meta:       getPoolWorkload.Meta{ServiceID: "S", TotalLanes: 10, LaneCapacity: 12, StartDate: date, EndDate: date},
	}, nil)

	h := NewHandler(useCase, nopLogger{})
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/pool-workload?start_date=2025-06-02&start_hour=9&end_hour=9", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body WorkloadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Slots, 1)
	assert.Equal(t, "2025-06-02", body.Slots[0].Date)
	assert.Equal(t, 1, body.Slots[0].BusyLanes)
	assert.Equal(t, 9, body.Slots[0].FreeLanes)
	assert.Equal(t, 108, body.Slots[0].FreePlaces)
	assert.Equal(t, 120, body.Slots[0].TotalPlaces)
	assert.Equal(t, 10.0, body.Slots[0].OccupancyPercent)
	assert.Equal(t, "exact", body.CurrentNow.Source)
	require.NotNil(t, body.CurrentNow.Slot)
	assert.Equal(t, "S", body.Meta.ServiceID)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		err        error
		wantStatus int
	}{
		{name: "bad date", query: "?start_date=02.06.2025", wantStatus: http.StatusBadRequest},
		{name: "bad hour", query: "?start_hour=nine", wantStatus: http.StatusBadRequest},
		{name: "invalid range", query: "", err: fmt.Errorf("%w: start after end", getPoolWorkload.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{name: "upstream", query: "", err: getPoolWorkload.ErrUpstreamUnavailable, wantStatus: http.StatusBadGateway},
		{name: "internal", query: "", err: getPoolWorkload.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useCase := new(MockUseCase)
			if tt.err != nil {
				useCase.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			h := NewHandler(useCase, nopLogger{})
			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/pool-workload"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
