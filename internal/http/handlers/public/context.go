package public

import (
	"net/http"
	"strconv"
	"strings"

	handlershared "github.com/rfrnce/internal/http/handlers/shared"
	"github.com/rfrnce/internal/http/response"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetUserID(c)
}

// parseIDParam 解析正整数路径参数，失败时写入 400 响应
func parseIDParam(c *gin.Context, name, code, msg string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		handlershared.RespondError(c, http.StatusBadRequest, code, msg, nil)
		return 0, false
	}
	return uint(id), true
}

func parseCartID(c *gin.Context) (uint, bool) {
	return parseIDParam(c, "id", response.CodeInvalidCartID, "Invalid cart ID")
}

func parseProductID(c *gin.Context) (uint, bool) {
	return parseIDParam(c, "productId", response.CodeInvalidProductID, "Invalid product ID")
}

// bindJSON 解析请求体，allowEmpty 为 true 时空请求体视为空对象
func bindJSON(c *gin.Context, dest interface{}, allowEmpty bool) bool {
	if allowEmpty && c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dest); err != nil {
		handlershared.RespondError(c, http.StatusBadRequest, response.CodeInvalidRequest, "Invalid request body", nil)
		return false
	}
	return true
}
