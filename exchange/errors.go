package exchange

import (
	"net/http"

	"github.com/infigaming-com/xe-bot/errors"
)

const (
	ErrCodeUpstream = 20000 + iota
	ErrCodeStoreWrite
)

var (
	ErrUpstream   = errors.NewError(ErrCodeUpstream, "exchange rate unavailable", nil).WithStatusCode(http.StatusBadGateway)
	ErrStoreWrite = errors.NewError(ErrCodeStoreWrite, "failed to write to store", nil).WithStatusCode(http.StatusInternalServerError)
)
