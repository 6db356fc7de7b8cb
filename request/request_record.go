package request

import (
	"net/url"
	"time"
)

// RequestRecorder receives one record per completed Request call, success or
// not. It runs synchronously on the caller's goroutine.
type RequestRecorder func(record *RequestRecordData)

type RequestRecordData struct {
	Method         string
	Url            string
	QueryParams    string
	HttpStatusCode int
	ResponseBody   string
	Error          string
	Duration       int64 // milliseconds
}

func newRecordData(method, requestUrl string, queryParams map[string]string, httpStatusCode int, responseBody []byte, err error, elapsed time.Duration) *RequestRecordData {
	record := &RequestRecordData{
		Method:         method,
		Url:            requestUrl,
		QueryParams:    encodeQuery(queryParams),
		HttpStatusCode: httpStatusCode,
		ResponseBody:   string(responseBody),
		Duration:       elapsed.Milliseconds(),
	}
	if err != nil {
		record.Error = err.Error()
	}
	return record
}

func encodeQuery(queryParams map[string]string) string {
	values := make(url.Values, len(queryParams))
	for k, v := range queryParams {
		values.Set(k, v)
	}
	return values.Encode()
}
