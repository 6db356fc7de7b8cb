package rate

import (
	"net/http"

	"github.com/infigaming-com/xe-bot/errors"
)

const (
	ErrCodeUnexpectedStatus = 10200 + iota
	ErrCodeInvalidResponse
	ErrCodeUnsuccessfulResponse
)

var (
	ErrUnexpectedStatus     = errors.NewError(ErrCodeUnexpectedStatus, "unexpected upstream status", nil).WithStatusCode(http.StatusBadGateway)
	ErrInvalidResponse      = errors.NewError(ErrCodeInvalidResponse, "invalid upstream response", nil).WithStatusCode(http.StatusBadGateway)
	ErrUnsuccessfulResponse = errors.NewError(ErrCodeUnsuccessfulResponse, "upstream reported failure", nil).WithStatusCode(http.StatusBadGateway)
)
