// Package catalogapi is the HTTP client for the remote catalog REST API.
//
// Every call goes through one circuit breaker: after repeated failures the
// client fails fast with a RemoteError until the breaker half-opens again.
// The client never retries. Responses the API rejected (4xx) do not count
// against the breaker, since they say nothing about the API's health.
package catalogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/JonMunkholm/catalog-admin/internal/config"
	"github.com/JonMunkholm/catalog-admin/internal/core"
	"github.com/JonMunkholm/catalog-admin/internal/logging"
)

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 32 << 20

// Client talks to the catalog API. It satisfies core.CatalogClient.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	tracer  trace.Tracer
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default instrumented HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// New creates a client for cfg.BaseURL.
func New(cfg config.CatalogConfig, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: newBreaker("catalog-api", cfg),
		tracer:  otel.Tracer("github.com/JonMunkholm/catalog-admin/internal/catalogapi"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newBreaker(name string, cfg config.CatalogConfig) *gobreaker.CircuitBreaker[[]byte] {
	minRequests := uint32(max(cfg.BreakerMinRequests, 1))
	ratio := cfg.BreakerFailureRatio
	if ratio <= 0 {
		ratio = 0.6
	}

	var st gobreaker.Settings
	st.Name = name
	st.Timeout = cfg.BreakerOpenTimeout
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= minRequests && failureRatio >= ratio
	}
	st.IsSuccessful = func(err error) bool {
		if err == nil || errors.Is(err, context.Canceled) {
			return true
		}
		var re *core.RemoteError
		return errors.As(err, &re) && re.ClientError()
	}
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		slog.Warn("circuit breaker state changed",
			"breaker", name,
			"from", from.String(),
			"to", to.String(),
		)
	}

	return gobreaker.NewCircuitBreaker[[]byte](st)
}

// BreakerState reports the breaker state ("closed", "half-open", "open").
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

// ListProducts fetches every product.
func (c *Client) ListProducts(ctx context.Context) ([]core.Product, error) {
	body, err := c.do(ctx, core.OpListProducts, http.MethodGet, "/products", nil)
	if err != nil {
		return nil, err
	}

	var products []core.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, decodeError(core.OpListProducts, err)
	}
	return products, nil
}

// ListCategories fetches every category.
func (c *Client) ListCategories(ctx context.Context) ([]core.Category, error) {
	body, err := c.do(ctx, core.OpListCategories, http.MethodGet, "/categories", nil)
	if err != nil {
		return nil, err
	}

	var categories []core.Category
	if err := json.Unmarshal(body, &categories); err != nil {
		return nil, decodeError(core.OpListCategories, err)
	}
	return categories, nil
}

// CreateProduct posts a new product and returns the created record.
func (c *Client) CreateProduct(ctx context.Context, in core.ProductInput) (core.Product, error) {
	body, err := c.do(ctx, core.OpCreateProduct, http.MethodPost, "/products", newPayload(in))
	if err != nil {
		return core.Product{}, err
	}

	var p core.Product
	if err := json.Unmarshal(body, &p); err != nil {
		return core.Product{}, decodeError(core.OpCreateProduct, err)
	}
	return p, nil
}

// UpdateProduct puts the product and returns only the fields present in the
// response.
func (c *Client) UpdateProduct(ctx context.Context, id int, in core.ProductInput) (core.ProductPatch, error) {
	body, err := c.do(ctx, core.OpUpdateProduct, http.MethodPut, fmt.Sprintf("/products/%d", id), newPayload(in))
	if err != nil {
		return core.ProductPatch{}, err
	}

	patch, err := decodePatch(body)
	if err != nil {
		return core.ProductPatch{}, decodeError(core.OpUpdateProduct, err)
	}
	return patch, nil
}

// do runs one request through the breaker and returns the response body of a
// 2xx reply. Every failure is a *core.RemoteError.
func (c *Client) do(ctx context.Context, op, method, path string, payload any) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "catalogapi."+strings.ReplaceAll(op, " ", "_"),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("catalog.path", path),
		),
	)
	defer span.End()

	start := time.Now()
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.roundTrip(ctx, op, method, path, payload)
	})

	logger := logging.WithFields(ctx, "op", op, "method", method, "path", path,
		"duration_ms", time.Since(start).Milliseconds())

	if err != nil {
		var re *core.RemoteError
		if !errors.As(err, &re) {
			// Breaker rejections arrive unwrapped.
			re = &core.RemoteError{Op: op, Err: err}
		}
		span.RecordError(re)
		span.SetStatus(codes.Error, re.Error())
		logger.Warn("catalog request failed", "status", re.Status, "error", re)
		return nil, re
	}

	logger.Debug("catalog request completed", "bytes", len(body))
	return body, nil
}

func (c *Client) roundTrip(ctx context.Context, op, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, &core.RemoteError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, &core.RemoteError{Op: op, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &core.RemoteError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &core.RemoteError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &core.RemoteError{
			Op:      op,
			Status:  resp.StatusCode,
			Message: serverMessage(body),
		}
	}
	return body, nil
}

func decodeError(op string, err error) error {
	return &core.RemoteError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
}
