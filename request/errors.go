package request

import (
	"net/http"

	"github.com/infigaming-com/xe-bot/errors"
)

const (
	ErrCodeInvalidRequestBody = 10100 + iota
	ErrCodeInvalidSlowRequestThreshold
	ErrCodeFailedToCreateRequest
	ErrCodeFailedToSendRequest
	ErrCodeFailedToReadResponseBody
	ErrCodeRequestTimeout
)

var (
	ErrFailedToMarshalRequestBody  = errors.NewError(ErrCodeInvalidRequestBody, "failed to marshal request body", nil)
	ErrInvalidSlowRequestThreshold = errors.NewError(ErrCodeInvalidSlowRequestThreshold, "invalid slow request threshold", nil)
	ErrFailedToCreateRequest       = errors.NewError(ErrCodeFailedToCreateRequest, "failed to create request", nil)
	ErrFailedToSendRequest         = errors.NewError(ErrCodeFailedToSendRequest, "failed to send request", nil).WithStatusCode(http.StatusBadGateway)
	ErrFailedToReadResponseBody    = errors.NewError(ErrCodeFailedToReadResponseBody, "failed to read response body", nil).WithStatusCode(http.StatusBadGateway)
	ErrRequestTimeout              = errors.NewError(ErrCodeRequestTimeout, "request timeout", nil).WithStatusCode(http.StatusGatewayTimeout)
)
