package interaction

import (
	"net/http"

	"github.com/infigaming-com/xe-bot/errors"
)

const (
	ErrCodeInvalidPayload = 30000 + iota
	ErrCodeUnknownCommand
	ErrCodeUnsupportedInteraction
	ErrCodeRegistrationRejected
)

var (
	ErrInvalidPayload         = errors.NewError(ErrCodeInvalidPayload, "invalid interaction payload", nil).WithStatusCode(http.StatusBadRequest)
	ErrUnknownCommand         = errors.NewError(ErrCodeUnknownCommand, "unknown command", nil).WithStatusCode(http.StatusNotFound)
	ErrUnsupportedInteraction = errors.NewError(ErrCodeUnsupportedInteraction, "unsupported interaction type", nil).WithStatusCode(http.StatusBadRequest)
	ErrRegistrationRejected   = errors.NewError(ErrCodeRegistrationRejected, "command registration rejected", nil).WithStatusCode(http.StatusBadGateway)
)
