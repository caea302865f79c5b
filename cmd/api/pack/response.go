package pack

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"

	"mytube.com/pkg/errno"
)

// Response is the success envelope of every endpoint.
type Response struct {
	StatusCode int64       `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

type ErrorResponse struct {
	StatusCode int64    `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// SendResponse pack response
func SendResponse(c *app.RequestContext, code int64, data interface{}, message string) {
	c.JSON(int(code), Response{
		StatusCode: code,
		Data:       data,
		Message:    message,
		Success:    code < 400,
	})
}

// SendError maps err onto its status. Anything outside the errno taxonomy is
// logged and answered with a generic 500.
func SendError(ctx context.Context, c *app.RequestContext, err error) {
	Err := errno.ConvertErr(err)
	if Err.ErrCode >= 500 {
		hlog.CtxErrorf(ctx, "%s %s failed: %+v", c.Method(), c.Path(), err)
	}
	c.AbortWithStatusJSON(int(Err.ErrCode), ErrorResponse{
		StatusCode: Err.ErrCode,
		Message:    Err.ErrMsg,
		Success:    false,
		Errors:     []string{},
	})
}
