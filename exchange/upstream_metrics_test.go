package exchange

import (
	"net/http"
	"testing"

	"github.com/infigaming-com/xe-bot/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUpstreamRecorder(t *testing.T) {
	recorder := &fakeRecorder{}
	record := UpstreamRecorder(zap.NewNop(), recorder)

	record(&request.RequestRecordData{
		Url:            "https://api.apilayer.com/fixer/latest",
		HttpStatusCode: http.StatusOK,
		Duration:       42,
	})
	record(&request.RequestRecordData{
		Url:            "https://api.apilayer.com/fixer/timeseries",
		HttpStatusCode: http.StatusTooManyRequests,
		Duration:       7,
	})
	record(&request.RequestRecordData{
		Url:   "https://api.apilayer.com/fixer/latest",
		Error: "connection refused",
	})

	require.Len(t, recorder.counters, 3)
	assert.Equal(t, map[string]string{"endpoint": "latest", "outcome": "success"}, recorder.counters[0].attributes)
	assert.Equal(t, map[string]string{"endpoint": "timeseries", "outcome": "failure"}, recorder.counters[1].attributes)
	assert.Equal(t, map[string]string{"endpoint": "latest", "outcome": "failure"}, recorder.counters[2].attributes)
	assert.Equal(t, []string{"xe.upstream.duration", "xe.upstream.duration", "xe.upstream.duration"}, recorder.histograms)
}
