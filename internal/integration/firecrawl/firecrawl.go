package firecrawl

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rfrnce/internal/integration/httpjson"
	"github.com/rfrnce/internal/logger"
	"github.com/rfrnce/internal/metrics"

	"github.com/tidwall/gjson"
)

// ExtractTimeout 单次页面抽取的最长耗时
const ExtractTimeout = 180 * time.Second

const (
	defaultBaseURL = "https://api.firecrawl.dev"
	serviceName    = "firecrawl"
	unavailable    = "N/A"
)

var (
	ErrTimeout         = errors.New("firecrawl extraction timeout")
	ErrRequestFailed   = errors.New("firecrawl request failed")
	ErrResponseInvalid = errors.New("firecrawl response invalid")
	ErrIncompleteData  = errors.New("firecrawl extraction incomplete")
	ErrPageNotFound    = errors.New("firecrawl page not found")
)

// 结构化抽取使用的 JSON Schema，name 与 price 必填
var extractionSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"name":        map[string]string{"type": "string", "description": "Product name/title"},
		"price":       map[string]string{"type": "string", "description": "Current price including currency symbol"},
		"brand":       map[string]string{"type": "string", "description": "Brand or manufacturer name"},
		"color":       map[string]string{"type": "string", "description": "Product color if applicable"},
		"dimensions":  map[string]string{"type": "string", "description": "Size or dimensions"},
		"description": map[string]string{"type": "string", "description": "Product description, max 500 chars"},
	},
	"required": []string{"name", "price"},
}

// Config Firecrawl 配置
type Config struct {
	APIKey  string
	BaseURL string
}

// ProductFacts 从商品页抽取的结构化信息
type ProductFacts struct {
	Name        string
	Price       string
	Brand       *string
	Color       *string
	Dimensions  *string
	Description *string
}

// Client Firecrawl 页面抽取客户端
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient 创建客户端
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		baseURL:    baseURL,
		httpClient: &http.Client{},
		timeout:    ExtractTimeout,
	}
}

// Extract 抽取商品信息
// 超时返回 ErrTimeout；其它任何失败都返回 nil 与非超时错误。
func (c *Client) Extract(ctx context.Context, url string) (*ProductFacts, error) {
	start := time.Now()
	facts, err := c.extract(ctx, url)
	metrics.RecordExternalCall(serviceName, outcomeOf(err), time.Since(start))
	if err != nil {
		logger.Warnw("firecrawl_extract_failed", "url", url, "error", err)
		return nil, err
	}
	logger.Debugw("firecrawl_extract_succeeded", "url", url, "name", facts.Name, "price", facts.Price)
	return facts, nil
}

func (c *Client) extract(ctx context.Context, url string) (*ProductFacts, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload := map[string]interface{}{
		"url": url,
		"formats": []interface{}{
			map[string]interface{}{"type": "json", "schema": extractionSchema},
		},
	}
	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}

	raw, err := httpjson.Post(ctx, c.httpClient, c.baseURL+"/v2/scrape", headers, payload)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	return parseScrapeResponse(raw)
}

func parseScrapeResponse(raw []byte) (*ProductFacts, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrResponseInvalid
	}
	result := gjson.ParseBytes(raw)
	if success := result.Get("success"); success.Exists() && !success.Bool() {
		return nil, fmt.Errorf("%w: %s", ErrRequestFailed, result.Get("error").String())
	}

	data := result.Get("data")
	extracted := data.Get("json")
	if !extracted.IsObject() {
		return nil, fmt.Errorf("%w: no data extracted", ErrIncompleteData)
	}
	if data.Get("metadata.statusCode").Int() == http.StatusNotFound {
		return nil, ErrPageNotFound
	}

	name := strings.TrimSpace(extracted.Get("name").String())
	price := strings.TrimSpace(extracted.Get("price").String())
	if name == "" || price == "" || price == unavailable {
		return nil, fmt.Errorf("%w: name=%q price=%q", ErrIncompleteData, name, price)
	}

	return &ProductFacts{
		Name:        name,
		Price:       price,
		Brand:       optional(extracted.Get("brand")),
		Color:       optional(extracted.Get("color")),
		Dimensions:  optional(extracted.Get("dimensions")),
		Description: optional(extracted.Get("description")),
	}, nil
}

func optional(value gjson.Result) *string {
	text := strings.TrimSpace(value.String())
	if text == "" {
		return nil
	}
	return &text
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrIncompleteData), errors.Is(err, ErrPageNotFound):
		return "no_data"
	default:
		return "error"
	}
}
