package cache

import (
	"github.com/infigaming-com/xe-bot/errors"
)

const (
	ErrCodeKeyNotFound = 10300 + iota
	ErrCodeJsonMarshal
	ErrCodeJsonUnmarshal
)

var (
	ErrKeyNotFound   = errors.NewError(ErrCodeKeyNotFound, "key not found", nil)
	ErrJsonMarshal   = errors.NewError(ErrCodeJsonMarshal, "failed to marshal value to json", nil)
	ErrJsonUnmarshal = errors.NewError(ErrCodeJsonUnmarshal, "failed to unmarshal value from json", nil)
)
