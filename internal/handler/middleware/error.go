package middleware

import (
	"log/slog"
	"net/http"

	"conference-booking/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler writes the envelope of the last public error when the handler did not,
// and logs every business-rule rejection with its reason.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		resp, ok := lastPublicError(c)
		if ok {
			if reason := resp.Reason(); reason != "" {
				logger.LogAttrs(c.Request.Context(), slog.LevelInfo, "Request rejected",
					slog.String("reason", reason),
					slog.Int("status_code", resp.Status),
					slog.String("route", c.FullPath()),
				)
			}
		}

		if c.Writer.Written() {
			return
		}
		if ok {
			c.JSON(resp.Status, resp)
			return
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, httperr.New(http.StatusInternalServerError, httperr.InternalMessage, nil))
	}
}

func lastPublicError(c *gin.Context) (httperr.Response, bool) {
	for i := len(c.Errors) - 1; i >= 0; i-- {
		err := c.Errors[i]
		if !err.IsType(gin.ErrorTypePublic) {
			continue
		}
		if resp, ok := err.Meta.(httperr.Response); ok {
			return resp, true
		}
	}
	return httperr.Response{}, false
}

func CustomRecovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.ErrorContext(c.Request.Context(), "Recovered from panic", "error", err, "path", c.Request.URL.Path)

				c.AbortWithStatusJSON(http.StatusInternalServerError, httperr.New(http.StatusInternalServerError, httperr.InternalMessage, nil))
			}
		}()
		c.Next()
	}
}
