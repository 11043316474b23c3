package httperr

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Response is the error body every endpoint returns. Detail carries
// structured context such as the goods a slot ran short of.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// AbortWithError records err on the context for the logging middleware and
// writes the public response.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(&gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// AbortRetryable is AbortWithError plus a Retry-After header, for throttled
// requests and reservations that lost too many races.
func AbortRetryable(c *gin.Context, status int, err error, msg string, retryAfterSeconds int, detail any) {
	if retryAfterSeconds < 1 {
		retryAfterSeconds = 1
	}
	c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
	AbortWithError(c, status, err, msg, detail)
}
