package notion

import "errors"

var (
	// ErrPageNotFound возвращается, когда страница не найдена в Notion
	ErrPageNotFound = errors.New("notion client: page not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notion client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от API
	ErrInvalidResponse = errors.New("notion client: invalid response")
)
