package util

import (
	"context"
	"fmt"
)

type ContextKey string

const (
	CorrelationIdKey ContextKey = "CorrelationId"
	UsernameKey      ContextKey = "Username"
)

func valueToCtx[T any](ctx context.Context, key ContextKey, value T) context.Context {
	return context.WithValue(ctx, key, value)
}

func valueFromCtx[T any](ctx context.Context, key ContextKey) (T, error) {
	valueFromCtx := ctx.Value(key)
	if valueFromCtx == nil {
		return *new(T), ErrValueNotFoundInContext.Wrap(fmt.Errorf("%v not found in context", key))
	}
	value, ok := valueFromCtx.(T)
	if !ok {
		return *new(T), ErrInvalidValueInContext.Wrap(fmt.Errorf("%v is not of type %T on context", key, *new(T)))
	}
	return value, nil
}

func CorrelationIdToCtx(ctx context.Context, correlationId string) context.Context {
	return valueToCtx(ctx, CorrelationIdKey, correlationId)
}

func CorrelationIdFromCtx(ctx context.Context) (string, error) {
	return valueFromCtx[string](ctx, CorrelationIdKey)
}

// UsernameToCtx records the chat user an interaction was issued by.
func UsernameToCtx(ctx context.Context, username string) context.Context {
	return valueToCtx(ctx, UsernameKey, username)
}

func UsernameFromCtx(ctx context.Context) (string, error) {
	return valueFromCtx[string](ctx, UsernameKey)
}
