package httperr

import (
	"github.com/gin-gonic/gin"

	"campus-booking/internal/pkg/errs"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// AbortWithError writes the public error body and records the original
// error on the context for the error middleware and request log. A nil
// err (auth context missing, optional body absent) is synthesized from
// the public message so the context error stack stays complete.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		err = errs.New(msg)
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	// Pointer, not value: c.Error keeps a *gin.Error as-is but rewraps
	// anything else as a private error, which would hide the meta.
	_ = c.Error(&gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
