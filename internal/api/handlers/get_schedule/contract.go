package get_schedule

import "time"

type SchedulePolicy interface {
	IsOpenWeekday(date time.Time) bool
	Describe(date time.Time) string
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
