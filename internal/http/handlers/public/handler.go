package public

import "github.com/rfrnce/internal/provider"

// Handler 扩展端 API 处理器
type Handler struct {
	*provider.Container
}

// New 创建处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
