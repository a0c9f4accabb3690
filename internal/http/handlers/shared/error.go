package shared

import (
	"github.com/rfrnce/internal/http/response"
	"github.com/rfrnce/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, status int, code, msg string, err error) {
	appErr := response.WrapError(status, code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"status", appErr.Status,
			"code", appErr.Code,
			"path", c.FullPath(),
			"error", err,
		)
	}
	response.Error(c, appErr.Status, appErr.Code, appErr.Message)
}

// RespondInternal 返回 500 并记录原始错误，原因不下发给客户端。
func RespondInternal(c *gin.Context, err error) {
	RespondError(c, 500, response.CodeInternal, response.MessageInternal, err)
}
