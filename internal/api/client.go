// Package api реализует клиент удалённого REST API админ-панели.
//
// Клиент владеет жизненным циклом bearer-токена: подставляет его во все
// исходящие запросы, сбрасывает сессию при ответе 401 и сохраняет токены
// через внедрённое хранилище. Все ошибки приводятся к единому типу Error,
// а ответы сервера с разными формами конверта нормализуются к фиксированным
// структурам до возврата вызывающему коду.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/subflow/admin-client/internal/config"
	"github.com/subflow/admin-client/internal/lib/sl"
	"github.com/subflow/admin-client/internal/metrics"
	"github.com/subflow/admin-client/internal/notify"
	"github.com/subflow/admin-client/internal/tokenstore"
)

// ErrMissingAccessToken возвращается, когда сервер ответил успехом на логин,
// но ни одна из допустимых форм ответа не содержит access-токен.
var ErrMissingAccessToken = errors.New("login response missing access token")

// Error — единственная форма ошибки, которую клиент отдаёт вызывающему коду.
// Message берётся из поля message ответа сервера, если оно есть, иначе из
// текста транспортной ошибки. Status по умолчанию 500, если транспорт
// не вернул HTTP-статус. Data содержит сырое тело ответа, когда оно было.
type Error struct {
	Message string
	Status  int
	Data    json.RawMessage
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// Client выполняет запросы к REST API и владеет токеном сессии.
// Экземпляр создаётся явно со всеми зависимостями, глобального
// состояния пакет не содержит.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
	store      tokenstore.Store
	notifier   notify.Notifier
	limiter    *rate.Limiter

	onUnauthorized func()

	mu    sync.RWMutex
	token string
}

// New создаёт клиент API с переданными зависимостями.
func New(cfg config.API, log *slog.Logger, store tokenstore.Store, notifier notify.Notifier) *Client {
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: metrics.NewRoundTripper(nil),
		},
		log:      log,
		store:    store,
		notifier: notifier,
		limiter:  limiter,
	}
}

// OnUnauthorized регистрирует обработчик, вызываемый ровно один раз на каждый
// запрос, завершившийся статусом 401. Аналог редиректа на страницу логина.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// Token возвращает текущий access-токен или пустую строку.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken принимает токен для всех последующих запросов и сохраняет его
// в долговременное хранилище. Ошибка сохранения не прерывает работу сессии.
func (c *Client) SetToken(ctx context.Context, token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	if err := c.store.SaveAccess(ctx, token); err != nil {
		c.log.Warn("failed to persist access token", sl.Err(err))
	}
}

// SetRefreshToken сохраняет refresh-токен рядом с access-токеном.
// Никакой логики автообновления сессии с ним не связано.
func (c *Client) SetRefreshToken(ctx context.Context, token string) {
	if err := c.store.SaveRefresh(ctx, token); err != nil {
		c.log.Warn("failed to persist refresh token", sl.Err(err))
	}
}

// ClearToken сбрасывает токен в памяти и удаляет оба сохранённых токена.
// Идемпотентен.
func (c *Client) ClearToken(ctx context.Context) {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()

	if err := c.store.Clear(ctx); err != nil {
		c.log.Warn("failed to clear token store", sl.Err(err))
	}
}

// LoadToken восстанавливает ранее сохранённый токен при старте процесса.
// Если токен не сохранён, ничего не происходит.
func (c *Client) LoadToken(ctx context.Context) {
	access, _, err := c.store.Load(ctx)
	if err != nil {
		c.log.Warn("failed to load persisted token", sl.Err(err))
		return
	}
	if access == "" {
		return
	}
	c.mu.Lock()
	c.token = access
	c.mu.Unlock()
	c.log.Debug("session token restored", sl.Secret("token", access))
}

// do выполняет запрос с JSON-телом и возвращает сырое тело ответа.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, &Error{Message: err.Error(), Status: http.StatusInternalServerError}
		}
	}
	return c.doRaw(ctx, method, path, query, &buf, "application/json")
}

// doRaw выполняет запрос с произвольным телом. Единая точка прохождения
// всех ответов: здесь подставляется bearer-токен, обрабатывается 401
// и все ошибки заворачиваются в *Error.
func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (json.RawMessage, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &Error{Message: err.Error(), Status: http.StatusInternalServerError}
		}
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, &Error{Message: err.Error(), Status: http.StatusInternalServerError}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Request-Id", uuid.NewString())
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Message: err.Error(), Status: http.StatusInternalServerError}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Message: err.Error(), Status: http.StatusInternalServerError}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.log.Warn("unauthorized response, clearing session",
			slog.String("method", method),
			slog.String("path", path),
		)
		c.ClearToken(ctx)
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, newServerError(resp.StatusCode, raw)
	}
	return raw, nil
}

// newServerError формирует *Error из ответа сервера с кодом ошибки.
func newServerError(status int, raw []byte) *Error {
	msg := http.StatusText(status)
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		msg = body.Message
	}
	return &Error{Message: msg, Status: status, Data: raw}
}

// unwrapData снимает необязательный конверт {"data": ...} с ответа сервера.
// Если конверта нет, возвращается исходное тело.
func unwrapData(raw json.RawMessage) json.RawMessage {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return raw
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return raw
	}
	return envelope.Data
}

// firstNonEmpty возвращает первое непустое значение из списка.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
