package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/41hairstudio/HS-BookingService/internal/domain"
)

const icsTimeLayout = "20060102T150405Z"

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Builder генерирует файлы iCalendar для добавления записи в календарь клиента
type Builder struct {
	businessName string
	address      string
	domainName   string
	loc          *time.Location
	timeProvider TimeProvider
}

// NewBuilder создает генератор календарных файлов
// domainName используется в UID событий, loc - зона заведения,
// в которой интерпретируются дата и время бронирования
func NewBuilder(businessName, address, domainName string, loc *time.Location) *Builder {
	return &Builder{
		businessName: businessName,
		address:      address,
		domainName:   domainName,
		loc:          loc,
		timeProvider: &RealTimeProvider{},
	}
}

// Build собирает содержимое .ics файла для бронирования
// withReminder добавляет напоминание за день до визита
func (b *Builder) Build(res *domain.Reservation, withReminder bool) string {
	start := res.StartTime.OnDate(res.Date, b.loc).UTC()
	end := start.Add(domain.SlotDurationMinutes * time.Minute)

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		fmt.Sprintf("PRODID:-//%s//Reservas//ES", escapeText(b.businessName)),
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		fmt.Sprintf("UID:%s@%s", uuid.NewString(), b.domainName),
		fmt.Sprintf("DTSTAMP:%s", b.timeProvider.Now().UTC().Format(icsTimeLayout)),
		fmt.Sprintf("DTSTART:%s", start.Format(icsTimeLayout)),
		fmt.Sprintf("DTEND:%s", end.Format(icsTimeLayout)),
		fmt.Sprintf("SUMMARY:Cita en %s", escapeText(b.businessName)),
		fmt.Sprintf("DESCRIPTION:Reserva a nombre de %s", escapeText(res.Name)),
		fmt.Sprintf("LOCATION:%s", escapeText(b.address)),
		"STATUS:CONFIRMED",
	}

	if withReminder {
		lines = append(lines,
			"BEGIN:VALARM",
			"TRIGGER:-P1D",
			"ACTION:DISPLAY",
			fmt.Sprintf("DESCRIPTION:Mañana tienes cita en %s", escapeText(b.businessName)),
			"END:VALARM",
		)
	}

	lines = append(lines, "END:VEVENT", "END:VCALENDAR")

	return strings.Join(lines, "\r\n") + "\r\n"
}

// FileName возвращает имя .ics файла для бронирования
func (b *Builder) FileName(res *domain.Reservation) string {
	return fmt.Sprintf("cita-%s.ics", res.Date.Format(domain.DateFormat))
}

// escapeText экранирует спецсимволы по RFC 5545
func escapeText(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
	)
	return r.Replace(s)
}
