package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const InternalMessage = "Internal server error"

// Response is the envelope of every error reply.
type Response struct {
	Status int  `json:"-"`
	Error  Body `json:"error"`
	Detail any  `json:"detail,omitempty"`
}

type Body struct {
	Message string `json:"message"`
}

func New(status int, msg string, detail any) Response {
	return Response{Status: status, Error: Body{Message: msg}, Detail: detail}
}

// AbortWithError keeps err on the gin context for the request logger and
// writes the envelope.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := New(status, msg, detail)
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

func Internal(c *gin.Context, err error) {
	AbortWithError(c, http.StatusInternalServerError, err, InternalMessage, nil)
}

// Reason returns detail.reason of a business-rule rejection, or "".
func (r Response) Reason() string {
	var detail map[string]any
	switch d := r.Detail.(type) {
	case gin.H:
		detail = d
	case map[string]any:
		detail = d
	default:
		return ""
	}
	reason, _ := detail["reason"].(string)
	return reason
}
