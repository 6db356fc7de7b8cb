package exchange

import (
	"context"
	"net/http"
	"path"

	"github.com/infigaming-com/xe-bot/observability/metrics"
	"github.com/infigaming-com/xe-bot/request"
	"go.uber.org/zap"
)

const (
	metricUpstreamRequests = "xe.upstream.requests"
	metricUpstreamDuration = "xe.upstream.duration"
)

// UpstreamRecorder turns every upstream rate call into a request counter and
// a latency histogram, tagged with the endpoint hit and its outcome.
func UpstreamRecorder(lg *zap.Logger, recorder metrics.Recorder) request.RequestRecorder {
	return func(record *request.RequestRecordData) {
		ctx := context.Background()

		endpoint := path.Base(record.Url)
		outcome := "success"
		if record.Error != "" || record.HttpStatusCode != http.StatusOK {
			outcome = "failure"
		}

		if err := recorder.RecordCounter(ctx, metricUpstreamRequests, "upstream rate API requests", "1", 1, map[string]string{
			"endpoint": endpoint,
			"outcome":  outcome,
		}); err != nil {
			lg.Warn("failed to record metric", zap.String("metric", metricUpstreamRequests), zap.Error(err))
		}
		if err := recorder.RecordHistogram(ctx, metricUpstreamDuration, "upstream rate API latency", "ms", float64(record.Duration), map[string]string{
			"endpoint": endpoint,
		}); err != nil {
			lg.Warn("failed to record metric", zap.String("metric", metricUpstreamDuration), zap.Error(err))
		}
	}
}
