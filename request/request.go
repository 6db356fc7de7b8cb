package request

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"maps"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/infigaming-com/xe-bot/util"
	"go.uber.org/zap"
)

const (
	defaultCorrelationIdHeader = "X-Correlation-ID"
	maxRetryBackoff            = 5 * time.Second
	redactedHeaderValue        = "****"
)

// secretHeaders are masked before headers reach a log line.
var secretHeaders = map[string]struct{}{
	"apikey":        {},
	"authorization": {},
	"x-api-key":     {},
}

var defaultClient = &http.Client{}

type requestOption struct {
	lg                   *zap.Logger
	client               *http.Client
	debugEnabled         bool
	queryParams          map[string]string
	requestHeaders       map[string]string
	requestBody          []byte
	recorder             RequestRecorder
	correlationIdHeader  string
	correlationId        string
	requestTimeout       time.Duration
	slowRequestThreshold time.Duration
	maxRetries           int
}

type Option interface {
	apply(option *requestOption) error
}

type optionFunc func(option *requestOption) error

func (f optionFunc) apply(option *requestOption) error {
	return f(option)
}

func defaultRequestOption() *requestOption {
	return &requestOption{
		lg:                   zap.L(),
		client:               defaultClient,
		queryParams:          map[string]string{},
		requestHeaders:       map[string]string{},
		correlationIdHeader:  defaultCorrelationIdHeader,
		requestTimeout:       3 * time.Second,
		slowRequestThreshold: 5 * time.Second,
	}
}

func WithLogger(lg *zap.Logger) Option {
	return optionFunc(func(option *requestOption) error {
		option.lg = lg
		return nil
	})
}

// WithHTTPClient replaces the shared client, e.g. to set a custom transport.
func WithHTTPClient(client *http.Client) Option {
	return optionFunc(func(option *requestOption) error {
		if client != nil {
			option.client = client
		}
		return nil
	})
}

// WithDebugEnabled logs every exchange, not only failures.
func WithDebugEnabled(debugEnabled bool) Option {
	return optionFunc(func(option *requestOption) error {
		option.debugEnabled = debugEnabled
		return nil
	})
}

func WithQueryParams(queryParams map[string]string) Option {
	return optionFunc(func(option *requestOption) error {
		maps.Copy(option.queryParams, queryParams)
		return nil
	})
}

func WithRequestHeaders(requestHeaders map[string]string) Option {
	return optionFunc(func(option *requestOption) error {
		maps.Copy(option.requestHeaders, requestHeaders)
		return nil
	})
}

// WithCorrelationId sends correlationId under header instead of the one on
// the context.
func WithCorrelationId(header, correlationId string) Option {
	return optionFunc(func(option *requestOption) error {
		option.correlationIdHeader = header
		option.correlationId = correlationId
		return nil
	})
}

func WithRequestBody(requestBody []byte) Option {
	return optionFunc(func(option *requestOption) error {
		option.requestBody = requestBody
		return nil
	})
}

func WithRequestBodyFromJson(requestBody any) Option {
	return optionFunc(func(option *requestOption) error {
		jsonBody, err := json.Marshal(requestBody)
		if err != nil {
			return ErrFailedToMarshalRequestBody.Wrap(err)
		}
		option.requestBody = jsonBody
		return nil
	})
}

func WithRequestRecorder(recorder RequestRecorder) Option {
	return optionFunc(func(option *requestOption) error {
		option.recorder = recorder
		return nil
	})
}

// WithRequestTimeout bounds each attempt. Non-positive values are ignored.
func WithRequestTimeout(requestTimeout time.Duration) Option {
	return optionFunc(func(option *requestOption) error {
		if requestTimeout > 0 {
			option.requestTimeout = requestTimeout
		}
		return nil
	})
}

func WithSlowRequestThreshold(slowRequestThreshold time.Duration) Option {
	return optionFunc(func(option *requestOption) error {
		if slowRequestThreshold <= 0 {
			return ErrInvalidSlowRequestThreshold.Wrap(fmt.Errorf("threshold %v", slowRequestThreshold))
		}
		option.slowRequestThreshold = slowRequestThreshold
		return nil
	})
}

// WithRetry retries transient failures (timeouts, refused or reset
// connections, DNS errors) up to maxRetries times with linear backoff.
// HTTP error statuses are never retried.
func WithRetry(maxRetries int) Option {
	return optionFunc(func(option *requestOption) error {
		option.maxRetries = max(maxRetries, 0)
		return nil
	})
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, context.DeadlineExceeded) ||
		stderrors.Is(err, syscall.ECONNREFUSED) ||
		stderrors.Is(err, syscall.ECONNRESET) ||
		stderrors.Is(err, syscall.ENETUNREACH) {
		return true
	}
	var dnsErr *net.DNSError
	if stderrors.As(err, &dnsErr) {
		return true
	}
	var netErr net.Error
	return stderrors.As(err, &netErr) && netErr.Timeout()
}

func redactHeaders(headers map[string]string) map[string]string {
	redacted := make(map[string]string, len(headers))
	for k, v := range headers {
		if _, secret := secretHeaders[strings.ToLower(k)]; secret {
			v = redactedHeaderValue
		}
		redacted[k] = v
	}
	return redacted
}

func (o *requestOption) logFields(method, requestUrl string, httpStatusCode int, responseBody []byte, elapsed time.Duration) []zap.Field {
	return []zap.Field{
		zap.String("method", method),
		zap.String("url", requestUrl),
		zap.Any("queryParams", o.queryParams),
		zap.Any("requestHeaders", redactHeaders(o.requestHeaders)),
		zap.ByteString("requestBody", o.requestBody),
		zap.Int("httpStatusCode", httpStatusCode),
		zap.ByteString("responseBody", responseBody),
		zap.Duration("duration", elapsed),
	}
}

// Request performs an HTTP call and returns the status code and full body.
// A non-2xx status is not an error; callers inspect httpStatusCode.
func Request(ctx context.Context, method string, requestUrl string, options ...Option) (httpStatusCode int, responseBody []byte, err error) {
	start := time.Now()

	option := defaultRequestOption()
	for _, opt := range options {
		if err := opt.apply(option); err != nil {
			option.lg.Error("[HTTP-REQUEST-ERROR: invalid option]", zap.Error(err), zap.String("url", requestUrl))
			return 0, nil, err
		}
	}

	defer func() {
		elapsed := time.Since(start)
		if option.recorder != nil {
			option.recorder(newRecordData(method, requestUrl, option.queryParams, httpStatusCode, responseBody, err, elapsed))
		}

		switch {
		case err != nil:
			option.lg.Error("[HTTP-REQUEST-ERROR]", append(option.logFields(method, requestUrl, httpStatusCode, responseBody, elapsed), zap.Error(err))...)
		case option.debugEnabled:
			option.lg.Debug("[HTTP-REQUEST-DEBUG]", option.logFields(method, requestUrl, httpStatusCode, responseBody, elapsed)...)
		}
	}()

	attempts := option.maxRetries + 1
	for attempt := 1; ; attempt++ {
		httpStatusCode, responseBody, err = doRequest(ctx, method, requestUrl, option)
		if err == nil || attempt == attempts || !isRetryableError(err) {
			return httpStatusCode, responseBody, err
		}

		backoff := min(time.Duration(attempt)*time.Second, maxRetryBackoff)
		option.lg.Warn("[HTTP-REQUEST-RETRY]",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", attempts),
			zap.Duration("backoff", backoff),
			zap.String("method", method),
			zap.String("url", requestUrl),
		)

		select {
		case <-ctx.Done():
			return 0, nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

func doRequest(ctx context.Context, method string, requestUrl string, option *requestOption) (int, []byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, option.requestTimeout)
	defer cancel()

	var bodyReader io.Reader
	if len(option.requestBody) > 0 {
		bodyReader = bytes.NewReader(option.requestBody)
	}
	req, err := http.NewRequestWithContext(timeoutCtx, method, requestUrl, bodyReader)
	if err != nil {
		return 0, nil, ErrFailedToCreateRequest.Wrap(err)
	}

	query := req.URL.Query()
	for k, v := range option.queryParams {
		query.Set(k, v)
	}
	req.URL.RawQuery = query.Encode()

	req.Header.Set(option.correlationIdHeader, correlationIdFor(ctx, option))
	for k, v := range option.requestHeaders {
		req.Header.Set(k, v)
	}

	sent := time.Now()
	resp, err := option.client.Do(req)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return 0, nil, ErrRequestTimeout.Wrap(err)
		}
		return 0, nil, ErrFailedToSendRequest.Wrap(err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, ErrFailedToReadResponseBody.Wrap(err)
	}

	if elapsed := time.Since(sent); elapsed > option.slowRequestThreshold {
		option.lg.Warn("[HTTP-REQUEST-SLOW]",
			zap.String("method", method),
			zap.String("url", requestUrl),
			zap.Int("httpStatusCode", resp.StatusCode),
			zap.Duration("duration", elapsed),
		)
	}

	return resp.StatusCode, responseBody, nil
}

func correlationIdFor(ctx context.Context, option *requestOption) string {
	if option.correlationId != "" {
		return option.correlationId
	}
	if correlationId, err := util.CorrelationIdFromCtx(ctx); err == nil {
		return correlationId
	}
	return util.NewUUID()
}

func Get(ctx context.Context, requestUrl string, options ...Option) (httpStatusCode int, responseBody []byte, err error) {
	return Request(ctx, http.MethodGet, requestUrl, options...)
}

// PutJson sends v as a JSON body with PUT.
func PutJson(ctx context.Context, requestUrl string, v any, options ...Option) (httpStatusCode int, responseBody []byte, err error) {
	options = append(options,
		WithRequestHeaders(map[string]string{"Content-Type": "application/json"}),
		WithRequestBodyFromJson(v),
	)
	return Request(ctx, http.MethodPut, requestUrl, options...)
}
