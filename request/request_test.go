package request

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/infigaming-com/xe-bot/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGet_QueryParamsAndHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "JPY", r.URL.Query().Get("symbols"))
		assert.Equal(t, "USD", r.URL.Query().Get("base"))
		assert.Equal(t, "secret-key", r.Header.Get("apiKey"))
		assert.Equal(t, "corr-1", r.Header.Get("X-Correlation-ID"))
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	ctx := util.CorrelationIdToCtx(context.Background(), "corr-1")
	statusCode, responseBody, err := Get(ctx, server.URL+"/latest",
		WithLogger(zap.NewNop()),
		WithQueryParams(map[string]string{"symbols": "JPY", "base": "USD"}),
		WithRequestHeaders(map[string]string{"apiKey": "secret-key"}),
	)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, statusCode)
	assert.JSONEq(t, `{"success":true}`, string(responseBody))
}

func TestGet_GeneratesCorrelationId(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("X-Correlation-ID"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	statusCode, _, err := Get(context.Background(), server.URL, WithLogger(zap.NewNop()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, statusCode)
}

func TestGet_NonOkStatusIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"message":"rate limited"}`))
	}))
	defer server.Close()

	statusCode, responseBody, err := Get(context.Background(), server.URL, WithLogger(zap.NewNop()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, statusCode)
	assert.Contains(t, string(responseBody), "rate limited")
}

func TestGet_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer server.Close()

	_, _, err := Get(context.Background(), server.URL,
		WithLogger(zap.NewNop()),
		WithRequestTimeout(50*time.Millisecond),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequestTimeout)
}

func TestGet_ConnectionRefusedWithoutRetry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	var records []*RequestRecordData
	_, _, err := Get(context.Background(), url,
		WithLogger(zap.NewNop()),
		WithRequestRecorder(func(record *RequestRecordData) {
			records = append(records, record)
		}),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFailedToSendRequest)
	require.Len(t, records, 1)
	assert.NotEmpty(t, records[0].Error)
	assert.Equal(t, 0, records[0].HttpStatusCode)
}

func TestRequest_RetryOnTransientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			time.Sleep(200 * time.Millisecond)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	statusCode, responseBody, err := Get(context.Background(), server.URL,
		WithLogger(zap.NewNop()),
		WithRequestTimeout(100*time.Millisecond),
		WithRetry(1),
	)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, statusCode)
	assert.Equal(t, "ok", string(responseBody))
	assert.Equal(t, int32(2), calls.Load())
}

func TestPutJson(t *testing.T) {
	type command struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bot token", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var got []command
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, []command{{Name: "xe", Description: "Convert"}}, got)

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	statusCode, _, err := PutJson(context.Background(), server.URL,
		[]command{{Name: "xe", Description: "Convert"}},
		WithLogger(zap.NewNop()),
		WithRequestHeaders(map[string]string{"Authorization": "Bot token"}),
	)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, statusCode)
}

func TestWithSlowRequestThreshold_Invalid(t *testing.T) {
	_, _, err := Get(context.Background(), "http://127.0.0.1:0",
		WithLogger(zap.NewNop()),
		WithSlowRequestThreshold(0),
	)
	assert.ErrorIs(t, err, ErrInvalidSlowRequestThreshold)
}

func TestRedactHeaders(t *testing.T) {
	redacted := redactHeaders(map[string]string{
		"apiKey":        "secret",
		"Authorization": "Bot token",
		"Accept":        "application/json",
	})

	assert.Equal(t, "****", redacted["apiKey"])
	assert.Equal(t, "****", redacted["Authorization"])
	assert.Equal(t, "application/json", redacted["Accept"])
}

func TestRequest_ExplicitCorrelationIdAndBody(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "fixed-id", r.Header.Get("X-Trace"))
		assert.Empty(t, r.Header.Get("X-Correlation-ID"))
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	statusCode, _, err := Request(context.Background(), http.MethodPost, server.URL,
		WithLogger(zap.NewNop()),
		WithHTTPClient(server.Client()),
		WithDebugEnabled(true),
		WithCorrelationId("X-Trace", "fixed-id"),
		WithRequestBody([]byte("payload")),
	)
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, statusCode)
	assert.Equal(t, "payload", string(gotBody))
}

func TestRequest_RecordData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	var record *RequestRecordData
	_, _, err := Get(context.Background(), server.URL+"/latest",
		WithLogger(zap.NewNop()),
		WithQueryParams(map[string]string{"base": "USD", "symbols": "JPY"}),
		WithRequestRecorder(func(r *RequestRecordData) { record = r }),
	)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, http.MethodGet, record.Method)
	assert.Equal(t, "base=USD&symbols=JPY", record.QueryParams)
	assert.Equal(t, http.StatusOK, record.HttpStatusCode)
	assert.Empty(t, record.Error)
}
