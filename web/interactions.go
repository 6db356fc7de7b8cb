package web

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/infigaming-com/xe-bot/errors"
	"github.com/infigaming-com/xe-bot/interaction"
	"go.uber.org/zap"
)

const InteractionsPath = "/interactions"

const (
	ErrCodeInternal = 40000 + iota
	ErrCodeReadBody
)

var (
	ErrInternal = errors.NewError(ErrCodeInternal, "internal server error", nil).WithStatusCode(http.StatusInternalServerError)
	ErrReadBody = errors.NewError(ErrCodeReadBody, "failed to read request body", nil).WithStatusCode(http.StatusBadRequest)
)

// InteractionRoutes mounts the webhook endpoint.
func InteractionRoutes(lg *zap.Logger, dispatcher *interaction.Dispatcher) func(*gin.Engine) {
	return func(engine *gin.Engine) {
		engine.POST(InteractionsPath, InteractionHandler(lg, dispatcher))
	}
}

// InteractionHandler decodes the webhook body, dispatches it and writes the
// interaction response. Failures become a {code, message, details?} body
// with the status carried by the error.
func InteractionHandler(lg *zap.Logger, dispatcher *interaction.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			abortWithError(c, lg, ErrReadBody.Wrap(err))
			return
		}

		i, err := interaction.Decode(body)
		if err != nil {
			abortWithError(c, lg, err)
			return
		}

		resp, err := dispatcher.Handle(c.Request.Context(), i)
		if err != nil {
			abortWithError(c, lg, err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

func abortWithError(c *gin.Context, lg *zap.Logger, err error) {
	status := errors.StatusOf(err)
	e, ok := errors.As(err)
	if !ok {
		e = ErrInternal.Wrap(err)
	}

	if status >= http.StatusInternalServerError {
		lg.Error("interaction failed", zap.Error(err), zap.Int("status", status))
	} else {
		lg.Warn("interaction rejected", zap.Error(err), zap.Int("status", status))
	}

	body := gin.H{
		"code":    e.GetCode(),
		"message": e.GetMessage(),
	}
	if details := e.GetDetails(); details != nil {
		body["details"] = details
	}
	c.AbortWithStatusJSON(status, body)
}
