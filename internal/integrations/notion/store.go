package notion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/41hairstudio/HS-BookingService/internal/domain"
	"github.com/41hairstudio/HS-BookingService/internal/infra/storage"
	"github.com/41hairstudio/HS-BookingService/pkg/types"
)

// Store хранилище бронирований поверх базы данных Notion
// Каждое бронирование - страница базы, отмена - архивация страницы
//
// Notion не предоставляет ограничения уникальности на (дата, время):
// в этом режиме проверка слота перед записью - единственная защита от
// двойного бронирования, и одновременные подтверждения могут её обойти
type Store struct {
	client *Client
	loc    *time.Location
	log    Logger
}

// NewStore создает хранилище бронирований на базе Notion
// loc - временная зона заведения, используется при записи даты со временем
func NewStore(client *Client, loc *time.Location, log Logger) *Store {
	return &Store{
		client: client,
		loc:    loc,
		log:    log,
	}
}

// Create создает новое бронирование
func (s *Store) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	props := s.buildProperties(res)

	page, err := s.client.CreatePage(ctx, props)
	if err != nil {
		return nil, fmt.Errorf("notion store: Create: %w", err)
	}

	created := s.parsePage(page)
	return created, nil
}

// GetByID получает бронирование по ID страницы
func (s *Store) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	page, err := s.client.GetPage(ctx, id)
	if err != nil {
		if errors.Is(err, ErrPageNotFound) {
			return nil, storage.ErrReservationNotFound
		}
		return nil, fmt.Errorf("notion store: GetByID: %w", err)
	}

	return s.parsePage(page), nil
}

// ListByDate получает все активные бронирования на указанную дату,
// упорядоченные по времени начала
func (s *Store) ListByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
	day := date.Format(domain.DateFormat)
	nextDay := date.AddDate(0, 0, 1).Format(domain.DateFormat)

	resp, err := s.client.QueryDatabase(ctx, &QueryRequest{
		Filter: map[string]interface{}{
			"and": []interface{}{
				map[string]interface{}{
					"property": propDate,
					"date":     map[string]string{"on_or_after": day},
				},
				map[string]interface{}{
					"property": propDate,
					"date":     map[string]string{"before": nextDay},
				},
			},
		},
		Sorts: []QuerySort{{Property: propDate, Direction: "ascending"}},
	})
	if err != nil {
		return nil, fmt.Errorf("notion store: ListByDate: %w", err)
	}

	return s.parsePages(resp.Results), nil
}

// ListByPhone получает активные бронирования клиента, начиная с указанной даты,
// упорядоченные по дате и времени начала
func (s *Store) ListByPhone(ctx context.Context, phone string, from time.Time) ([]*domain.Reservation, error) {
	cleanPhone := strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
	if cleanPhone == "" {
		return []*domain.Reservation{}, nil
	}

	resp, err := s.client.QueryDatabase(ctx, &QueryRequest{
		Filter: map[string]interface{}{
			"and": []interface{}{
				map[string]interface{}{
					"property":     propPhone,
					"phone_number": map[string]string{"equals": cleanPhone},
				},
				map[string]interface{}{
					"property": propDate,
					"date":     map[string]string{"on_or_after": from.Format(domain.DateFormat)},
				},
			},
		},
		Sorts: []QuerySort{{Property: propDate, Direction: "ascending"}},
	})
	if err != nil {
		return nil, fmt.Errorf("notion store: ListByPhone: %w", err)
	}

	return s.parsePages(resp.Results), nil
}

// Cancel отменяет бронирование, архивируя страницу
// Заархивированные страницы не попадают в результаты запросов,
// поэтому слот освобождается сразу
func (s *Store) Cancel(ctx context.Context, id string) error {
	if err := s.client.ArchivePage(ctx, id); err != nil {
		if errors.Is(err, ErrPageNotFound) {
			return storage.ErrReservationNotFound
		}
		return fmt.Errorf("notion store: Cancel: %w", err)
	}
	return nil
}

// Update переносит бронирование на новые дату и время
func (s *Store) Update(ctx context.Context, id string, date time.Time, startTime types.TimeString) error {
	props := &PageProperties{
		Date: &DateProperty{
			Date: &DateValue{Start: s.dateTimeStart(date, startTime)},
		},
	}

	if _, err := s.client.UpdatePage(ctx, id, props); err != nil {
		if errors.Is(err, ErrPageNotFound) {
			return storage.ErrReservationNotFound
		}
		return fmt.Errorf("notion store: Update: %w", err)
	}
	return nil
}

// buildProperties собирает свойства страницы из бронирования
func (s *Store) buildProperties(res *domain.Reservation) *PageProperties {
	props := &PageProperties{
		Name: &TitleProperty{
			Title: []RichTextItem{{Text: &TextContent{Content: res.Name}}},
		},
		Email: &EmailProperty{Email: &res.Email},
		Phone: &PhoneProperty{PhoneNumber: &res.Phone},
		Date: &DateProperty{
			Date: &DateValue{Start: s.dateTimeStart(res.Date, res.StartTime)},
		},
	}

	if res.Amount != nil {
		props.Amount = &NumberProperty{Number: res.Amount}
	}
	if res.PaymentType != nil {
		props.PaymentType = &SelectProperty{Select: &SelectValue{Name: *res.PaymentType}}
	}

	return props
}

// dateTimeStart совмещает дату и время со смещением зоны заведения,
// чтобы Notion не интерпретировал время как UTC
func (s *Store) dateTimeStart(date time.Time, startTime types.TimeString) string {
	return startTime.OnDate(date, s.loc).Format(time.RFC3339)
}

// parsePage конвертирует страницу Notion в бронирование
func (s *Store) parsePage(page *Page) *domain.Reservation {
	res := &domain.Reservation{
		ID:        page.ID,
		Status:    domain.StatusActive,
		CreatedAt: page.CreatedTime,
	}
	if page.Archived {
		res.Status = domain.StatusCancelled
	}

	props := page.Properties

	if props.Name != nil && len(props.Name.Title) > 0 {
		res.Name = props.Name.Title[0].PlainText
	}
	if props.Email != nil && props.Email.Email != nil {
		res.Email = *props.Email.Email
	}
	if props.Phone != nil && props.Phone.PhoneNumber != nil {
		res.Phone = *props.Phone.PhoneNumber
	}
	if props.Amount != nil {
		res.Amount = props.Amount.Number
	}
	if props.PaymentType != nil && props.PaymentType.Select != nil {
		res.PaymentType = &props.PaymentType.Select.Name
	}

	if props.Date != nil && props.Date.Date != nil {
		s.parseDateStart(props.Date.Date.Start, res)
	}

	return res
}

// parseDateStart разбирает значение "Fecha": дату либо дату со временем
func (s *Store) parseDateStart(start string, res *domain.Reservation) {
	if start == "" {
		return
	}

	if !strings.Contains(start, "T") {
		if date, err := time.ParseInLocation(domain.DateFormat, start, s.loc); err == nil {
			res.Date = date
		}
		return
	}

	parsed, err := time.Parse(time.RFC3339, start)
	if err != nil {
		s.log.Warn("Notion store: failed to parse date %q for page=%s: %v", start, res.ID, err)
		return
	}

	local := parsed.In(s.loc)
	res.Date = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	res.StartTime = types.NewTimeString(local)
}

// parsePages конвертирует страницы, пропуская записи без времени
// (страницы, заведённые владельцем вручную только с датой, слот не занимают)
func (s *Store) parsePages(pages []Page) []*domain.Reservation {
	reservations := make([]*domain.Reservation, 0, len(pages))
	for i := range pages {
		res := s.parsePage(&pages[i])
		if res.StartTime.IsZero() {
			continue
		}
		reservations = append(reservations, res)
	}
	return reservations
}
