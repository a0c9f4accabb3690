package public

import (
	"net/http"

	"github.com/rfrnce/internal/http/response"

	"github.com/gin-gonic/gin"
)

// Root 服务标识
func (h *Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, "Rfrnce API")
}

// Healthz 存活探针
func (h *Handler) Healthz(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok"})
}
