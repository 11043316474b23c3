package middleware

import (
	"net/http"
	"runtime/debug"

	"ration-slot-booking/internal/handler/httperr"
	"ration-slot-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const stackLines = 12

var internalError = func() httperr.Response {
	resp := httperr.Response{Status: http.StatusInternalServerError}
	resp.Error.Message = "Internal server error"
	return resp
}()

// ErrorHandler writes the newest public error when a handler recorded one
// without writing a body. Server-side causes are logged with the request id
// so a 5xx in the access log can be traced back.
func (l *Logger) ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, e := range c.Errors {
			if resp, ok := e.Meta.(httperr.Response); ok && resp.Status < http.StatusInternalServerError {
				continue
			}
			l.logger.Error("request failed",
				"request_id", GetRequestID(c),
				"route", c.FullPath(),
				"error", e.Err.Error(),
				"stack", errs.StackLines(e.Err, stackLines),
			)
		}

		if c.Writer.Written() {
			return
		}
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]
			if !err.IsType(gin.ErrorTypePublic) {
				continue
			}
			if resp, ok := err.Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, internalError)
	}
}

func (l *Logger) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				l.logger.Error("recovered from panic",
					"panic", rec,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"stack", string(debug.Stack()),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, internalError)
			}
		}()
		c.Next()
	}
}
