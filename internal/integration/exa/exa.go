package exa

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rfrnce/internal/constants"
	"github.com/rfrnce/internal/integration/httpjson"
	"github.com/rfrnce/internal/logger"
	"github.com/rfrnce/internal/metrics"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
)

// SearchTimeout 三路评论检索共享的最长耗时
const SearchTimeout = 180 * time.Second

const (
	defaultBaseURL = "https://api.exa.ai"
	serviceName    = "exa"
)

var (
	ErrRequestFailed   = errors.New("exa request failed")
	ErrResponseInvalid = errors.New("exa response invalid")
)

// Config Exa 配置
type Config struct {
	APIKey  string
	BaseURL string
}

// ReviewResult 单条评论检索结果
type ReviewResult struct {
	URL     string
	Title   string
	Snippet string
	Source  string
}

type searchQuery struct {
	query      string
	numResults int
	source     string
}

// Client Exa 评论检索客户端
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
		timeout:    SearchTimeout,
	}
}

// SearchReviews 并发执行 reddit / forum / general 三路检索
// 任一子查询失败或整体超时都返回空列表，从不返回错误。
func (c *Client) SearchReviews(ctx context.Context, productName string) []ReviewResult {
	start := time.Now()
	results, err := c.search(ctx, productName)
	outcome := "success"
	if err != nil {
		outcome = "error"
		if errors.Is(err, context.DeadlineExceeded) {
			outcome = "timeout"
		}
		logger.Warnw("exa_review_search_degraded", "product_name", productName, "error", err)
		results = []ReviewResult{}
	}
	metrics.RecordExternalCall(serviceName, outcome, time.Since(start))
	logger.Debugw("exa_review_search_finished", "product_name", productName, "count", len(results))
	return results
}

func (c *Client) search(ctx context.Context, productName string) ([]ReviewResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	queries := buildQueries(productName)
	batches := make([][]ReviewResult, len(queries))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, q := range queries {
		group.Go(func() error {
			items, err := c.searchOne(groupCtx, q)
			if err != nil {
				return err
			}
			batches[i] = items
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	merged := make([]ReviewResult, 0, 10)
	for _, batch := range batches {
		merged = append(merged, batch...)
	}
	return merged, nil
}

func buildQueries(productName string) []searchQuery {
	quoted := `"` + productName + `"`
	return []searchQuery{
		{query: quoted + " review reddit", numResults: 3, source: constants.ReviewSourceReddit},
		{query: quoted + " review forum", numResults: 3, source: constants.ReviewSourceForum},
		{query: quoted + " review", numResults: 4, source: constants.ReviewSourceGeneral},
	}
}

func (c *Client) searchOne(ctx context.Context, q searchQuery) ([]ReviewResult, error) {
	payload := map[string]interface{}{
		"query":         q.query,
		"numResults":    q.numResults,
		"useAutoprompt": false,
		"contents":      map[string]interface{}{"text": true},
	}
	raw, err := httpjson.Post(ctx, c.httpClient, c.baseURL+"/search", map[string]string{"x-api-key": c.apiKey}, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if !gjson.ValidBytes(raw) {
		return nil, ErrResponseInvalid
	}

	items := make([]ReviewResult, 0, q.numResults)
	gjson.GetBytes(raw, "results").ForEach(func(_, item gjson.Result) bool {
		items = append(items, ReviewResult{
			URL:     item.Get("url").String(),
			Title:   item.Get("title").String(),
			Snippet: item.Get("text").String(),
			Source:  q.source,
		})
		return true
	})
	return items, nil
}
