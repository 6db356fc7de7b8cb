package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/infigaming-com/xe-bot/util"
)

const CorrelationIdKey string = "X-Correlation-ID"

// CorrelationIdMiddleware reuses an inbound X-Correlation-ID or mints one,
// echoes it on the response and stores it on the request context.
func CorrelationIdMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationId := c.GetHeader(CorrelationIdKey)
		if correlationId == "" {
			correlationId = util.NewUUID()
		}
		c.Header(CorrelationIdKey, correlationId)
		ctx := util.CorrelationIdToCtx(c.Request.Context(), correlationId)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
