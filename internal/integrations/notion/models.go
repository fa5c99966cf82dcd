package notion

import "time"

// Имена свойств базы данных Notion, заданные владельцем при её создании
const (
	propName        = "Nombre"
	propEmail       = "Correo Electrónico"
	propPhone       = "Teléfono"
	propDate        = "Fecha"
	propAmount      = "Monto"
	propPaymentType = "Tipo de pago"
)

// Page страница базы данных Notion
type Page struct {
	ID          string         `json:"id"`
	CreatedTime time.Time      `json:"created_time"`
	Archived    bool           `json:"archived"`
	Properties  PageProperties `json:"properties"`
}

// PageProperties свойства страницы-бронирования
// Ключи соответствуют колонкам базы данных Notion
type PageProperties struct {
	Name        *TitleProperty  `json:"Nombre,omitempty"`
	Email       *EmailProperty  `json:"Correo Electrónico,omitempty"`
	Phone       *PhoneProperty  `json:"Teléfono,omitempty"`
	Date        *DateProperty   `json:"Fecha,omitempty"`
	Amount      *NumberProperty `json:"Monto,omitempty"`
	PaymentType *SelectProperty `json:"Tipo de pago,omitempty"`
}

// TitleProperty свойство типа title
type TitleProperty struct {
	Title []RichTextItem `json:"title"`
}

// RichTextItem элемент rich text
type RichTextItem struct {
	PlainText string       `json:"plain_text,omitempty"`
	Text      *TextContent `json:"text,omitempty"`
}

// TextContent содержимое текстового элемента
type TextContent struct {
	Content string `json:"content"`
}

// EmailProperty свойство типа email
type EmailProperty struct {
	Email *string `json:"email"`
}

// PhoneProperty свойство типа phone_number
type PhoneProperty struct {
	PhoneNumber *string `json:"phone_number"`
}

// DateProperty свойство типа date
// Start содержит дату либо дату со временем и смещением зоны
type DateProperty struct {
	Date *DateValue `json:"date"`
}

// DateValue значение даты
type DateValue struct {
	Start string `json:"start"`
}

// NumberProperty свойство типа number
type NumberProperty struct {
	Number *float64 `json:"number"`
}

// SelectProperty свойство типа select
type SelectProperty struct {
	Select *SelectValue `json:"select"`
}

// SelectValue значение select
type SelectValue struct {
	Name string `json:"name"`
}

// QueryRequest запрос к базе данных Notion
type QueryRequest struct {
	Filter interface{}   `json:"filter,omitempty"`
	Sorts  []QuerySort   `json:"sorts,omitempty"`
}

// QuerySort сортировка результатов запроса
type QuerySort struct {
	Property  string `json:"property"`
	Direction string `json:"direction"`
}

// QueryResponse ответ на запрос к базе данных
type QueryResponse struct {
	Results []Page `json:"results"`
}

// ErrorResponse модель ошибки от Notion API
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
