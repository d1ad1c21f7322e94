package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ssc-pay-api/internal/idgen"
	"ssc-pay-api/internal/logger"
)

// TraceKey 请求级 trace_id 在 gin context 里的键
const TraceKey = "trace_id"

func RequestLogger() gin.HandlerFunc {
	infoLog := logger.NewLogger("info")
	errorLog := logger.NewLogger("error")

	return func(c *gin.Context) {
		start := time.Now()
		traceID := strconv.FormatUint(idgen.New(), 10)
		c.Set(TraceKey, traceID)

		c.Next()
		latency := time.Since(start)

		entry := map[string]interface{}{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"ip":         c.ClientIP(),
			"latency":    latency.String(),
			"user-agent": c.Request.UserAgent(),
			"trace_id":   traceID,
		}

		if len(c.Errors) > 0 {
			errorLog.WithFields(entry).Error(c.Errors.String())
		} else {
			infoLog.WithFields(entry).Info("request completed")
		}
	}
}
