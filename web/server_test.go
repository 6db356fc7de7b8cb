package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/infigaming-com/xe-bot/interaction"
	"github.com/infigaming-com/xe-bot/web/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingCommand struct {
	err error
}

func (c *failingCommand) Name() string                         { return "fail" }
func (c *failingCommand) Description() string                  { return "always fails" }
func (c *failingCommand) Options() []interaction.CommandOption { return nil }

func (c *failingCommand) Respond(ctx context.Context, options []interaction.DataOption) (*interaction.MessageData, error) {
	return nil, c.err
}

func (c *failingCommand) Autocomplete(ctx context.Context, options []interaction.DataOption) (*interaction.AutocompleteData, error) {
	return &interaction.AutocompleteData{Choices: []interaction.Choice{}}, nil
}

type helloCommand struct{}

func (c *helloCommand) Name() string                         { return "hey" }
func (c *helloCommand) Description() string                  { return "says hello" }
func (c *helloCommand) Options() []interaction.CommandOption { return nil }

func (c *helloCommand) Respond(ctx context.Context, options []interaction.DataOption) (*interaction.MessageData, error) {
	return &interaction.MessageData{Content: "hello"}, nil
}

func (c *helloCommand) Autocomplete(ctx context.Context, options []interaction.DataOption) (*interaction.AutocompleteData, error) {
	return &interaction.AutocompleteData{Choices: []interaction.Choice{}}, nil
}

func newTestEngine(cmds ...interaction.Command) *gin.Engine {
	lg := zap.NewNop()
	dispatcher := interaction.NewDispatcher(lg, interaction.NewRegistry(cmds...))
	return NewEngine(
		WithMode(gin.TestMode),
		WithCustomHandler(middleware.CorrelationIdMiddleware()),
		WithCustomHandler(middleware.LoggingMiddleware(
			middleware.WithLogger(lg),
			middleware.WithDebugEnabled(true),
			middleware.WithExcludePaths([]string{"/healthcheck"}),
		)),
		WithRoutes(InteractionRoutes(lg, dispatcher)),
	)
}

func serve(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	engine.ServeHTTP(w, req)
	return w
}

func TestServer_Healthcheck(t *testing.T) {
	engine := newTestEngine()

	for _, path := range []string{"/", "/healthcheck", "/api/healthcheck"} {
		w := serve(engine, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := serve(engine, http.MethodGet, "/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_CorrelationId(t *testing.T) {
	engine := newTestEngine()

	w := serve(engine, http.MethodGet, "/", "")
	assert.NotEmpty(t, w.Header().Get(middleware.CorrelationIdKey))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.CorrelationIdKey, "abc-123")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(middleware.CorrelationIdKey))
}

func TestInteractions(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "ping",
			body:       `{"id":"1","type":1,"token":"t"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"type":1}`,
		},
		{
			name:       "command",
			body:       `{"id":"2","type":2,"token":"t","data":{"name":"hey"},"user":{"id":"1","username":"alice"}}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"type":4,"data":{"content":"hello"}}`,
		},
		{
			name:       "autocomplete",
			body:       `{"id":"3","type":4,"token":"t","data":{"name":"hey"}}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"type":8,"data":{"choices":[]}}`,
		},
		{
			name:       "malformed body",
			body:       `{"type":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"code":30000,"message":"invalid interaction payload"}`,
		},
		{
			name:       "unknown command",
			body:       `{"id":"4","type":2,"token":"t","data":{"name":"nope"},"user":{"id":"1","username":"alice"}}`,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"code":30001,"message":"unknown command","details":{"command":"nope"}}`,
		},
		{
			name:       "unsupported type",
			body:       `{"id":"5","type":3,"token":"t"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"code":30002,"message":"unsupported interaction type","details":{"type":3}}`,
		},
	}

	engine := newTestEngine(&helloCommand{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(engine, http.MethodPost, InteractionsPath, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestInteractions_UncodedErrorIsInternal(t *testing.T) {
	engine := newTestEngine(&failingCommand{err: assert.AnError})

	w := serve(engine, http.MethodPost, InteractionsPath,
		`{"id":"1","type":2,"token":"t","data":{"name":"fail"},"user":{"id":"1","username":"alice"}}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"code":40000,"message":"internal server error"}`, w.Body.String())
}

func TestStartServer_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- StartServer(ctx, zap.NewNop(), WithMode(gin.TestMode), WithPort(0))
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestWithShutdownTimeout(t *testing.T) {
	mode := WithMode(gin.TestMode)
	assert.Equal(t, 15*time.Second, newServer(mode).shutdownTimeout)
	assert.Equal(t, 3*time.Second, newServer(mode, WithShutdownTimeout(3*time.Second)).shutdownTimeout)
	assert.Equal(t, 15*time.Second, newServer(mode, WithShutdownTimeout(-time.Second)).shutdownTimeout)
}
