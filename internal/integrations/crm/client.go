package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-PoolBooking/internal/domain"
)

const maxErrorBodyBytes = 64 << 10

// Client клиент прокси CRM
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    Metrics
	log        Logger
}

// NewClient создает новый экземпляр клиента CRM.
// timeout = 0 оставляет таймаут http.Client по умолчанию
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: nopMetrics{},
		log:     log,
	}
}

// WithMetrics включает учет неудачных вызовов
func (c *Client) WithMetrics(m Metrics) *Client {
	if m != nil {
		c.metrics = m
	}
	return c
}

// GetSlots получает список приемов из CRM
func (c *Client) GetSlots(ctx context.Context) ([]Slot, error) {
	var resp SlotsResponse
	if err := c.doJSON(ctx, "slots", http.MethodGet, "/api/slots", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Slots, nil
}

// RequestCode запрашивает отправку SMS-кода на номер
func (c *Client) RequestCode(ctx context.Context, phone, requestID string) error {
	body := ConfirmPhoneRequest{
		Phone:     phone,
		RequestID: requestID,
		Method:    domain.ConfirmationMethodSMS,
	}
	if err := c.doJSON(ctx, "request_code", http.MethodPost, "/api/confirm_phone", body, nil); err != nil {
		return err
	}

	c.log.Info("CRM: confirmation code requested for phone=%s request_id=%s", maskPhone(phone), requestID)
	return nil
}

// ConfirmCode проверяет код подтверждения и возвращает pass_token.
// Ответ не 2xx или ответ без токена возвращают ErrCodeRejected
func (c *Client) ConfirmCode(ctx context.Context, phone, code, requestID string) (string, error) {
	body := ConfirmPhoneRequest{
		Phone:            phone,
		ConfirmationCode: code,
		RequestID:        requestID,
		Method:           domain.ConfirmationMethodSMS,
	}

	var resp ConfirmPhoneResponse
	err := c.doJSON(ctx, "confirm_code", http.MethodPost, "/api/confirm_phone", body, &resp)
	if err != nil {
		var upstreamErr *UpstreamError
		if errors.As(err, &upstreamErr) {
			return "", fmt.Errorf("%w: %s", ErrCodeRejected, upstreamErr.Detail)
		}
		if errors.Is(err, ErrInvalidResponse) {
			return "", fmt.Errorf("%w: %v", ErrCodeRejected, err)
		}
		return "", err
	}

	token := resp.Token()
	if token == "" {
		return "", fmt.Errorf("%w: pass_token is missing", ErrCodeRejected)
	}
	return token, nil
}

// SetPassword устанавливает пароль по pass_token и возвращает токен пользователя.
// Если CRM не вернула отдельный токен, используется pass_token
func (c *Client) SetPassword(ctx context.Context, phone, passToken string) (string, error) {
	body := SetPasswordRequest{
		Phone:     phone,
		PassToken: passToken,
	}

	raw, _, err := c.do(ctx, "set_password", http.MethodPost, "/api/set_password", body)
	if err != nil {
		return "", err
	}

	// успех определяется статусом 2xx, тело может быть любым
	var resp SetPasswordResponse
	if err := decode("set_password", raw, &resp); err != nil {
		c.log.Warn("CRM: set_password body is not a token object, using pass_token: %v", err)
		return passToken, nil
	}

	if token := resp.UserToken(); token != "" {
		return token, nil
	}
	return passToken, nil
}

// GetClient получает профиль клиента. Пустой профиль допустим
func (c *Client) GetClient(ctx context.Context, userToken string) (*ClientProfile, error) {
	raw, _, err := c.do(ctx, "client", http.MethodPost, "/api/client", UserTokenRequest{UserToken: userToken})
	if err != nil {
		return nil, err
	}

	var profile ClientProfile
	if err := decode("client", raw, &profile); err != nil {
		c.log.Warn("CRM: client profile is not an object, continuing with empty profile: %v", err)
		return &ClientProfile{}, nil
	}
	return &profile, nil
}

// Book бронирует прием
func (c *Client) Book(ctx context.Context, appointmentID, userToken string) (*BookResponse, error) {
	body := BookRequest{
		AppointmentID: appointmentID,
		UserToken:     userToken,
	}

	raw, status, err := c.do(ctx, "book", http.MethodPost, "/api/book", body)
	if err != nil {
		return nil, err
	}

	var resp BookResponse
	if err := decode("book", raw, &resp); err != nil {
		detail := ExtractErrorDetail(raw)
		c.log.Warn("CRM: book returned status %d with unexpected body: %s", status, detail)
		return nil, &UpstreamError{
			Operation:  "book",
			StatusCode: status,
			Detail:     detail,
		}
	}
	return &resp, nil
}

// doJSON выполняет запрос и декодирует JSON-ответ в out (если out != nil).
// Пустое тело ответа допустимо
func (c *Client) doJSON(ctx context.Context, operation, method, path string, in, out interface{}) error {
	raw, _, err := c.do(ctx, operation, method, path, in)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decode(operation, raw, out)
}

// do выполняет запрос и возвращает тело и статус ответа 2xx.
// Ответ не 2xx возвращается как *UpstreamError
func (c *Client) do(ctx context.Context, operation, method, path string, in interface{}) ([]byte, int, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %s: failed to encode request: %v", ErrInternal, operation, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s: failed to create request: %v", ErrInternal, operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("CRM: %s %s failed: %v", method, path, err)
		c.metrics.ObserveUpstreamError("crm", operation)
		return nil, 0, fmt.Errorf("%w: %s: %v", ErrUnavailable, operation, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s: failed to read response: %v", ErrUnavailable, operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := ExtractErrorDetail(raw)
		if detail == "" {
			detail = http.StatusText(resp.StatusCode)
		}
		c.log.Warn("CRM: %s %s returned status %d: %s", method, path, resp.StatusCode, detail)
		c.metrics.ObserveUpstreamError("crm", operation)
		return nil, resp.StatusCode, &UpstreamError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Detail:     detail,
		}
	}

	return raw, resp.StatusCode, nil
}

func decode(operation string, raw []byte, out interface{}) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s: failed to decode response: %v", ErrInvalidResponse, operation, err)
	}
	return nil
}

// ExtractErrorDetail достает текст ошибки из тела ответа:
// поле error (строка или объект с message), поле message или сырой текст
func ExtractErrorDetail(raw []byte) string {
	if len(raw) > maxErrorBodyBytes {
		raw = raw[:maxErrorBodyBytes]
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return ""
	}

	var parsed errorBody
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return text
	}

	if len(parsed.Error) > 0 && string(parsed.Error) != "null" {
		var s string
		if err := json.Unmarshal(parsed.Error, &s); err == nil && s != "" {
			return s
		}
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(parsed.Error, &nested); err == nil && nested.Message != "" {
			return nested.Message
		}
		return strings.TrimSpace(string(parsed.Error))
	}

	if parsed.Message != "" {
		return parsed.Message
	}
	return text
}

// maskPhone скрывает середину номера в логах
func maskPhone(phone string) string {
	if len(phone) < 7 {
		return phone
	}
	return phone[:4] + strings.Repeat("*", len(phone)-6) + phone[len(phone)-2:]
}
