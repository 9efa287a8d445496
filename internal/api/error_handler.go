package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/piyushvishwakarma01/GearGuard/internal/workflow"
)

// APIError API 错误
type APIError struct {
	Code    int
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	return e.Message
}

// ErrorHandlerMiddleware 错误处理中间件
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()

			var apiErr *APIError
			if errors.As(err, &apiErr) {
				Error(c, apiErr.Code, apiErr.Message, apiErr.Detail)
			} else {
				Error(c, http.StatusInternalServerError, "internal server error", err.Error())
			}
		}
	}
}

// WrapError 包装错误
func WrapError(err error, code int, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Detail:  err.Error(),
	}
}

// HandleServiceError 服务层错误到 HTTP 响应的统一映射
// 工作流错误按类别映射稳定状态码,非法转换附带合法目标集合
func HandleServiceError(c *gin.Context, err error) {
	var wfErr *workflow.Error
	if !errors.As(err, &wfErr) {
		Error(c, http.StatusInternalServerError, "internal server error", err.Error())
		return
	}

	status := http.StatusBadRequest
	switch wfErr.Kind {
	case workflow.KindNotFound:
		status = http.StatusNotFound
	case workflow.KindForbidden:
		status = http.StatusForbidden
	case workflow.KindConflict:
		status = http.StatusConflict
	}

	resp := ErrorResponse{
		Code:    status,
		Message: wfErr.Message,
		Detail:  string(wfErr.Kind),
	}
	if wfErr.Kind == workflow.KindInvalidTransition {
		allowed := make([]string, 0, len(wfErr.Allowed))
		for _, st := range wfErr.Allowed {
			allowed = append(allowed, string(st))
		}
		resp.AllowedTransitions = allowed
	}
	c.JSON(status, resp)
}
