package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rfrnce/internal/integration/httpjson"
	"github.com/rfrnce/internal/logger"
	"github.com/rfrnce/internal/metrics"

	"github.com/tidwall/gjson"
)

// GenerateTimeout 单次报告生成的最长耗时
const GenerateTimeout = 120 * time.Second

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	serviceName    = "gemini"
	modelPrefix    = "models/"
)

var (
	ErrConfigInvalid          = errors.New("gemini config invalid")
	ErrReportTimeout          = errors.New("report generation timeout")
	ErrReportGenerationFailed = errors.New("report generation failed")
)

// Config Gemini 配置
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// ProductInput 参与报告的商品
type ProductInput struct {
	Name        string
	Price       string
	Brand       *string
	Color       *string
	Dimensions  *string
	Description *string
	Reviews     []ReviewInput
}

// ReviewInput 报告中引用的评论
type ReviewInput struct {
	Title   string
	Snippet string
}

// Client Gemini 报告生成客户端
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient 创建客户端，未配置模型时返回 ErrConfigInvalid
func NewClient(cfg Config) (*Client, error) {
	model := strings.TrimPrefix(strings.TrimSpace(cfg.Model), modelPrefix)
	if model == "" {
		return nil, fmt.Errorf("%w: model is required (GEMINI_MODEL)", ErrConfigInvalid)
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{},
		timeout:    GenerateTimeout,
	}, nil
}

// Model 返回规范化后的模型名
func (c *Client) Model() string {
	return c.model
}

// GenerateReport 生成 HTML 对比报告
func (c *Client) GenerateReport(ctx context.Context, products []ProductInput) (string, error) {
	start := time.Now()
	content, err := c.generate(ctx, BuildPrompt(products))
	outcome := "success"
	switch {
	case errors.Is(err, ErrReportTimeout):
		outcome = "timeout"
	case err != nil:
		outcome = "error"
	}
	metrics.RecordExternalCall(serviceName, outcome, time.Since(start))
	if err != nil {
		logger.Warnw("gemini_generate_report_failed", "model", c.model, "products", len(products), "error", err)
		return "", err
	}
	logger.Infow("gemini_generate_report_succeeded", "model", c.model, "products", len(products), "length", len(content))
	return content, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload := map[string]interface{}{
		"contents": []interface{}{
			map[string]interface{}{
				"role":  "user",
				"parts": []interface{}{map[string]string{"text": prompt}},
			},
		},
	}
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
	raw, err := httpjson.Post(ctx, c.httpClient, endpoint, map[string]string{"x-goog-api-key": c.apiKey}, payload)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrReportTimeout
		}
		return "", fmt.Errorf("%w: %v", ErrReportGenerationFailed, err)
	}
	return parseGenerateResponse(raw)
}

func parseGenerateResponse(raw []byte) (string, error) {
	if !gjson.ValidBytes(raw) {
		return "", fmt.Errorf("%w: invalid response body", ErrReportGenerationFailed)
	}
	if reason := gjson.GetBytes(raw, "promptFeedback.blockReason").String(); reason != "" {
		return "", fmt.Errorf("%w: prompt blocked: %s", ErrReportGenerationFailed, reason)
	}

	var b strings.Builder
	gjson.GetBytes(raw, "candidates.0.content.parts").ForEach(func(_, part gjson.Result) bool {
		b.WriteString(part.Get("text").String())
		return true
	})
	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("%w: empty candidate text", ErrReportGenerationFailed)
	}
	return b.String(), nil
}
