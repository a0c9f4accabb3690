package shared

import (
	"net/http"

	"github.com/rfrnce/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UserIDKey 鉴权中间件写入的用户 ID
const UserIDKey = "user_id"

// MessageInvalidUser 用户标识缺失或无效
const MessageInvalidUser = "Invalid or missing user ID"

// GetUserID 从上下文读取用户 ID，缺失时返回 401。
func GetUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(UserIDKey)
	if !exists {
		RespondError(c, http.StatusUnauthorized, response.CodeInvalidUUID, MessageInvalidUser, nil)
		return 0, false
	}
	switch v := value.(type) {
	case uint:
		if v > 0 {
			return v, true
		}
	case int:
		if v > 0 {
			return uint(v), true
		}
	}
	RespondError(c, http.StatusUnauthorized, response.CodeInvalidUUID, MessageInvalidUser, nil)
	return 0, false
}
