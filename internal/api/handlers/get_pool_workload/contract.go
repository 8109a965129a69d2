package get_pool_workload

import (
	"context"

	getPoolWorkload "github.com/m04kA/SMC-PoolBooking/internal/usecase/get_pool_workload"
)

type GetPoolWorkloadUseCase interface {
	Execute(ctx context.Context, req *getPoolWorkload.Request) (*getPoolWorkload.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
