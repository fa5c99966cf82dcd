package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Версия Notion API, с которой работает клиент
const notionVersion = "2022-06-28"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент Notion REST API
type Client struct {
	baseURL    string
	token      string
	databaseID string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента Notion
func NewClient(baseURL, token, databaseID string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		databaseID: databaseID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// QueryDatabase выполняет запрос к базе данных с фильтром и сортировкой
// Заархивированные страницы в результаты не попадают
func (c *Client) QueryDatabase(ctx context.Context, req *QueryRequest) (*QueryResponse, error) {
	url := fmt.Sprintf("%s/databases/%s/query", c.baseURL, c.databaseID)

	var response QueryResponse
	if err := c.do(ctx, http.MethodPost, url, req, &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// CreatePage создает страницу-бронирование в базе данных
func (c *Client) CreatePage(ctx context.Context, properties *PageProperties) (*Page, error) {
	url := fmt.Sprintf("%s/pages", c.baseURL)

	body := map[string]interface{}{
		"parent":     map[string]string{"database_id": c.databaseID},
		"properties": properties,
	}

	var page Page
	if err := c.do(ctx, http.MethodPost, url, body, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// GetPage получает страницу по ID
func (c *Client) GetPage(ctx context.Context, pageID string) (*Page, error) {
	url := fmt.Sprintf("%s/pages/%s", c.baseURL, pageID)

	var page Page
	if err := c.do(ctx, http.MethodGet, url, nil, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// UpdatePage обновляет свойства страницы
func (c *Client) UpdatePage(ctx context.Context, pageID string, properties *PageProperties) (*Page, error) {
	url := fmt.Sprintf("%s/pages/%s", c.baseURL, pageID)

	body := map[string]interface{}{
		"properties": properties,
	}

	var page Page
	if err := c.do(ctx, http.MethodPatch, url, body, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// ArchivePage архивирует страницу (логическое удаление в Notion)
func (c *Client) ArchivePage(ctx context.Context, pageID string) error {
	url := fmt.Sprintf("%s/pages/%s", c.baseURL, pageID)

	body := map[string]interface{}{
		"archived": true,
	}

	var page Page
	return c.do(ctx, http.MethodPatch, url, body, &page)
}

func (c *Client) do(ctx context.Context, method, url string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", notionVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return ErrPageNotFound
	default:
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
			return fmt.Errorf("%w: unexpected status code %d", ErrInvalidResponse, resp.StatusCode)
		}
		return fmt.Errorf("%w: status %d, code=%s: %s", ErrInvalidResponse, resp.StatusCode, errResp.Code, errResp.Message)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
