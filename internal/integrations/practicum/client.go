package practicum

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-HomeworkNotifier/internal/domain"
)

// maxErrorBodySize ограничение на размер тела ответа, сохраняемого в ошибке
const maxErrorBodySize = 4096

// Client клиент для API статусов домашних работ
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewClient создает новый экземпляр клиента
func NewClient(endpoint, token string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Endpoint возвращает адрес API
func (c *Client) Endpoint() string {
	return c.endpoint
}

// GetHomeworkStatuses запрашивает статусы работ, изменившиеся начиная с fromDate
// Возвращает декодированный JSON без проверки структуры
func (c *Client) GetHomeworkStatuses(ctx context.Context, fromDate int64) (interface{}, error) {
	reqURL, err := c.buildURL(fromDate)
	if err != nil {
		return nil, &domain.TransportError{Endpoint: c.endpoint, FromDate: fromDate, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &domain.TransportError{Endpoint: c.endpoint, FromDate: fromDate, Err: err}
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Endpoint: c.endpoint, FromDate: fromDate, Err: err}
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, &domain.APIStatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       errorBody(body),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Endpoint: c.endpoint, FromDate: fromDate, Err: fmt.Errorf("read body: %w", err)}
	}

	// Парсим ответ, числа сохраняем как json.Number чтобы не терять точность
	var payload interface{}
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		return nil, &domain.SchemaError{Reason: domain.SchemaReasonNotJSON, Err: err}
	}

	return payload, nil
}

// buildURL добавляет параметр from_date к адресу API
func (c *Client) buildURL(fromDate int64) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}

	query := u.Query()
	query.Set("from_date", strconv.FormatInt(fromDate, 10))
	u.RawQuery = query.Encode()

	return u.String(), nil
}

// errorBody приводит обрезанное тело ответа к валидному UTF-8
// Обрезка по maxErrorBodySize может разрезать многобайтовый символ в конце
func errorBody(body []byte) string {
	// Хвост неполного символа занимает не больше utf8.UTFMax-1 байт
	for trimmed := 0; trimmed < utf8.UTFMax-1 && len(body) > 0 && !utf8.Valid(body); trimmed++ {
		r, size := utf8.DecodeLastRune(body)
		if r != utf8.RuneError || size != 1 {
			break
		}
		body = body[:len(body)-1]
	}

	return strings.ToValidUTF8(string(bytes.TrimSpace(body)), "\uFFFD")
}
