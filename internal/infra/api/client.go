// Package api is the client for the marketplace REST services. Every
// service listens on its own port of the same host.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	logs "storefront/internal/infra/log"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/fx"
)

const (
	maxErrorBody = 4 << 10

	requestIDHeader = "X-Request-Id"
)

// Params defines the required parameters
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// Result exposes the client under each marketplace port.
type Result struct {
	fx.Out

	AuthAPI          service.AuthAPI
	ProductAPI       service.ProductAPI
	PaymentMethodAPI service.PaymentMethodAPI
	AddressAPI       service.AddressAPI
	OrderAPI         service.OrderAPI
	CartAPI          service.CartAPI
}

// Client talks to the marketplace services through one circuit breaker.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	ports      config.ServicePorts
	breaker    *gobreaker.CircuitBreaker[[]byte]
	logger     *slog.Logger
}

// New builds the client and provides it for every marketplace port.
func New(params Params) (Result, error) {
	client, err := NewClient(params.Config.API, params.Logger)
	if err != nil {
		return Result{}, err
	}

	return Result{
		AuthAPI:          client,
		ProductAPI:       client,
		PaymentMethodAPI: client,
		AddressAPI:       client,
		OrderAPI:         client,
		CartAPI:          client,
	}, nil
}

// NewClient builds a Client from the api config section.
func NewClient(cfg *config.APIConfig, logger *slog.Logger) (*Client, error) {
	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid api base url %q", cfg.BaseURL)
	}
	if baseURL.Scheme == "" || baseURL.Hostname() == "" {
		return nil, errors.Errorf("api base url %q needs a scheme and host", cfg.BaseURL)
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    baseURL,
		ports:      cfg.Ports,
		breaker:    newBreaker(cfg.Breaker, logger),
		logger:     logger,
	}, nil
}

func newBreaker(cfg config.BreakerConfig, logger *slog.Logger) *gobreaker.CircuitBreaker[[]byte] {
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "marketplace-api",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			var statusErr *statusError
			if errors.As(err, &statusErr) {
				return statusErr.code < http.StatusInternalServerError
			}

			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})
}

// statusError is a non-2xx response.
type statusError struct {
	code    int
	message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("remote returned %d: %s", e.code, e.message)
}

// endpoint resolves an escaped path, with an optional query, on the service listening on port.
func (c *Client) endpoint(port int, path string) string {
	u := *c.baseURL
	u.Host = net.JoinHostPort(c.baseURL.Hostname(), strconv.Itoa(port))
	u.RawQuery = ""
	if ref, err := url.Parse(path); err == nil {
		u.Path, u.RawPath, u.RawQuery = ref.Path, ref.RawPath, ref.RawQuery
	} else {
		u.Path = path
	}

	return u.String()
}

// do sends a JSON request and decodes a JSON response into out (when non-nil).
func (c *Client) do(ctx context.Context, method string, port int, path, token string, body, out any) error {
	endpoint := c.endpoint(port, path)

	payload, err := c.breaker.Execute(func() ([]byte, error) {
		return c.send(ctx, method, endpoint, token, body)
	})
	if err != nil {
		logs.FromContext(ctx, c.logger).WarnContext(ctx, "Marketplace request failed",
			slog.String("method", method),
			slog.String("url", endpoint),
			slog.Any("error", err),
		)

		return toAppError(err)
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return domainerrors.ErrRemoteRequestFailed.WithDetails("unexpected response from " + path)
	}

	return nil
}

func (c *Client) send(ctx context.Context, method, endpoint, token string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if requestID := logs.RequestID(ctx); requestID != "" {
		req.Header.Set(requestIDHeader, requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, endpoint)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &statusError{code: resp.StatusCode, message: errorMessage(payload, resp.StatusCode)}
	}

	return payload, nil
}

// errorMessage prefers the backend's {"message": "..."} body.
func errorMessage(payload []byte, code int) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(payload, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}

	if len(payload) > 0 && len(payload) <= maxErrorBody && payload[0] != '<' {
		return string(bytes.TrimSpace(payload))
	}

	return http.StatusText(code)
}

func toAppError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return domainerrors.ErrRemoteUnavailable.WithDetails(err.Error())
	}

	var statusErr *statusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.code == http.StatusNotFound:
			return domainerrors.ErrNotFound.WithDetails(statusErr.message)
		case statusErr.code == http.StatusUnauthorized || statusErr.code == http.StatusForbidden:
			return domainerrors.ErrInvalidToken.WithDetails(statusErr.message)
		case statusErr.code >= http.StatusInternalServerError:
			return domainerrors.ErrRemoteUnavailable.WithDetails(statusErr.message)
		default:
			return domainerrors.ErrRemoteRequestFailed.WithDetails(statusErr.message)
		}
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	return domainerrors.ErrRemoteUnavailable.WithDetails(err.Error())
}
