package get_pool_workload

import (
	"regexp"
	"time"

	"github.com/m04kA/SMC-PoolBooking/internal/domain"
)

// Режимы определения занятой дорожки
const (
	LaneModeAppointments = "appointments" // один прием = одна дорожка
	LaneModeLocation     = "location"     // номер дорожки из поля location
)

// Options параметры бассейна, общие для всех запросов
type Options struct {
	ServiceID    string
	Settings     domain.PoolSettings
	Location     *time.Location
	MaxRangeDays int
	LaneMode     string
	LanePattern  *regexp.Regexp // используется в режиме location
}

// Request модель запроса загруженности.
// Пустые поля заменяются значениями по умолчанию: сегодня..+6 дней, все рабочие часы
type Request struct {
	StartDate *time.Time
	EndDate   *time.Time // включительно
	StartHour *int
	EndHour   *int // включительно
}

// Response модель ответа с загруженностью по часам
type Response struct {
	Slots      []domain.AvailabilitySlot
	CurrentNow domain.CurrentOccupancy
	Meta       Meta
}

// Meta сводные параметры ответа
type Meta struct {
	ServiceID    string
	TotalLanes   int
	LaneCapacity int
	TotalPlaces  int
	StartDate    time.Time
	EndDate      time.Time
	StartHour    int
	EndHour      int
	LaneMode     string
	Timezone     string
	Appointments int // количество приемов услуги в снимке
	GeneratedAt  time.Time
}

// window разрешенные параметры запроса
type window struct {
	startDate time.Time
	endDate   time.Time
	startHour int
	endHour   int
}
