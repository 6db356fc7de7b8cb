package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/infigaming-com/xe-bot/util"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const maxLoggedResponseBody = 1024

type loggingConfig struct {
	lg           *zap.Logger
	debugEnabled bool
	excludePaths []string
}

type LoggingMiddlewareOption func(*loggingConfig)

func WithLogger(lg *zap.Logger) LoggingMiddlewareOption {
	return func(c *loggingConfig) { c.lg = lg }
}

// WithDebugEnabled adds request and response bodies to the access log.
func WithDebugEnabled(debugEnabled bool) LoggingMiddlewareOption {
	return func(c *loggingConfig) { c.debugEnabled = debugEnabled }
}

// WithExcludePaths skips logging for exact path matches, e.g. health checks.
func WithExcludePaths(excludePaths []string) LoggingMiddlewareOption {
	return func(c *loggingConfig) { c.excludePaths = excludePaths }
}

// LoggingMiddleware writes one access log line per request. Server errors
// are logged at error level, everything else at info, or at debug with
// bodies attached when debug is enabled.
func LoggingMiddleware(opts ...LoggingMiddlewareOption) gin.HandlerFunc {
	cfg := &loggingConfig{lg: zap.L()}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(c *gin.Context) {
		if lo.Contains(cfg.excludePaths, c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		requestBody := cfg.captureRequestBody(c.Request)
		tee := &responseWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}, limit: maxLoggedResponseBody}
		c.Writer = tee

		c.Next()

		correlationId, err := util.CorrelationIdFromCtx(c.Request.Context())
		if err != nil {
			correlationId = c.Writer.Header().Get(CorrelationIdKey)
		}
		fields := []zap.Field{
			zap.String("correlationId", correlationId),
			zap.String("method", c.Request.Method),
			zap.String("url", c.Request.URL.String()),
			zap.Int("status", tee.Status()),
			zap.Duration("duration", time.Since(start)),
		}

		level := zapcore.InfoLevel
		if cfg.debugEnabled {
			level = zapcore.DebugLevel
			fields = append(fields,
				zap.Any("queryParams", c.Request.URL.Query()),
				zap.ByteString("requestBody", requestBody),
				zap.ByteString("responseBody", tee.body.Bytes()),
			)
		}
		if tee.Status() >= http.StatusInternalServerError {
			level = zapcore.ErrorLevel
		}
		cfg.lg.Log(level, "[Logging]", fields...)
	}
}

// captureRequestBody reads the body for the debug log and puts it back for
// the handler.
func (cfg *loggingConfig) captureRequestBody(r *http.Request) []byte {
	if !cfg.debugEnabled || r.Body == nil {
		return nil
	}
	body, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(body))
	return body
}
