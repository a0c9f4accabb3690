package public

import (
	"github.com/rfrnce/internal/http/response"

	"github.com/gin-gonic/gin"
)

// InitUserRequest 用户初始化请求
type InitUserRequest struct {
	UUID string `json:"uuid"`
}

// InitUserResponse 用户初始化响应
type InitUserResponse struct {
	ID   uint   `json:"id"`
	UUID string `json:"uuid"`
}

// InitUser 按扩展端 UUID 初始化或获取用户
func (h *Handler) InitUser(c *gin.Context) {
	var req InitUserRequest
	if !bindJSON(c, &req, true) {
		return
	}
	user, err := h.UserService.Init(c.Request.Context(), req.UUID)
	if err != nil {
		respondUserInitError(c, err)
		return
	}
	response.Success(c, InitUserResponse{ID: user.ID, UUID: user.UUID})
}
