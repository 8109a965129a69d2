package domain

// Pool capacity defaults
const (
	DefaultTotalLanes   = 10
	DefaultLaneCapacity = 12 // people per lane
	DefaultOpenHour     = 7
	DefaultCloseHour    = 21 // inclusive
	DefaultBreakHour    = 12
	DefaultRangeDays    = 7 // today and the six following days
)

// Verification constants
const (
	ConfirmationCodeLength = 4
	ConfirmationMethodSMS  = "sms"
)

// Time format constants
const (
	DateFormat     = "2006-01-02"          // YYYY-MM-DD
	DateTimeFormat = "2006-01-02 15:04:05" // naive CRM timestamp
	TimeFormat     = "15:04"               // HH:MM
)

// CRMDateTimeLayouts layouts accepted for upstream start_date, in order
var CRMDateTimeLayouts = []string{
	DateTimeFormat,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}
