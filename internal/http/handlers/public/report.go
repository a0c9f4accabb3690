package public

import (
	"time"

	"github.com/rfrnce/internal/http/response"

	"github.com/gin-gonic/gin"
)

const reportTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// ReportResponse 报告查询响应
type ReportResponse struct {
	Content     string `json:"content"`
	GeneratedAt string `json:"generatedAt"`
}

// GenerateReport 校验购物车并生成对比报告
func (h *Handler) GenerateReport(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cartID, ok := parseCartID(c)
	if !ok {
		return
	}
	result, err := h.ReportService.Generate(c.Request.Context(), uid, cartID)
	if err != nil {
		respondReportGenerateError(c, err)
		return
	}
	response.Success(c, result)
}

// GetReport 获取购物车最新报告
func (h *Handler) GetReport(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cartID, ok := parseCartID(c)
	if !ok {
		return
	}
	report, err := h.ReportService.Get(uid, cartID)
	if err != nil {
		respondReportGetError(c, err)
		return
	}
	response.Success(c, ReportResponse{
		Content:     report.Content,
		GeneratedAt: formatReportTime(report.GeneratedAt),
	})
}

func formatReportTime(t time.Time) string {
	return t.UTC().Format(reportTimeLayout)
}
