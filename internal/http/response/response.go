package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody 错误详情
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

// MessageData 仅包含提示消息的响应数据
type MessageData struct {
	Message string `json:"message"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// SuccessWithMsg 成功响应（仅消息）
func SuccessWithMsg(c *gin.Context, msg string) {
	Success(c, MessageData{Message: msg})
}

// Error 错误响应
func Error(c *gin.Context, status int, code, msg string) {
	c.JSON(status, Response{
		Success: false,
		Error: &ErrorBody{
			Code:      code,
			Message:   msg,
			RequestID: requestID(c),
		},
	})
}

// AbortWithError 错误响应并中断后续处理
func AbortWithError(c *gin.Context, status int, code, msg string) {
	Error(c, status, code, msg)
	c.Abort()
}

// Internal 500 响应
func Internal(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeInternal, MessageInternal)
}

func requestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
