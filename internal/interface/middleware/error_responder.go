package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const internalErrorBody = "Something went wrong"

// ErrorResponder logs errors attached with c.Error and recovered panics, and
// answers them with a plain-text 500 unless a response was already written.
// Error details never reach the client.
func ErrorResponder(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.WithFields(logrus.Fields{
					"request_id": c.GetString("request_id"),
					"path":       c.Request.URL.Path,
					"panic":      fmt.Sprint(rec),
				}).Error("panic recovered")
				writeInternalError(c)
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		for _, e := range c.Errors {
			logger.WithError(e.Err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
			}).Error("unhandled error")
		}
		writeInternalError(c)
	}
}

func writeInternalError(c *gin.Context) {
	if c.Writer.Written() {
		return
	}
	c.Abort()
	c.String(http.StatusInternalServerError, internalErrorBody)
}
