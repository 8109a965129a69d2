package crm

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics учет ошибок внешних вызовов
type Metrics interface {
	ObserveUpstreamError(upstream, operation string)
}

type nopMetrics struct{}

func (nopMetrics) ObserveUpstreamError(string, string) {}
