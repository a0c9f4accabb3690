package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rfrnce/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func TestKeyByUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/carts/1/products", nil)
	c.Request.RemoteAddr = "1.2.3.4:5678"

	if key := KeyByUser(c); key != "1.2.3.4" {
		t.Fatalf("unauthenticated key should fall back to ip, got %s", key)
	}
	c.Set("user_id", uint(42))
	if key := KeyByUser(c); key != "user:42" {
		t.Fatalf("key want user:42 got %s", key)
	}
}

func TestNewRateLimitRule(t *testing.T) {
	rule := NewRateLimitRule("rfrnce", "product_add", config.RateLimitRuleConfig{WindowSeconds: 60, MaxRequests: 30})
	if rule.Prefix != "rfrnce:rate:product_add" {
		t.Fatalf("unexpected prefix: %s", rule.Prefix)
	}
	if rule.WindowSeconds != 60 || rule.MaxRequests != 30 {
		t.Fatalf("unexpected rule: %+v", rule)
	}
}

func TestRateLimitMiddlewareWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1}, KeyByIP))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Fatalf("expected handler response body, got %s", w.Body.String())
	}
}

func TestRateLimitMiddlewareFailsOpenWhenRedisUnreachable(t *testing.T) {
	gin.SetMode(gin.TestMode)

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	r := gin.New()
	r.Use(RateLimitMiddleware(client, RateLimitRule{Prefix: "test", WindowSeconds: 60, MaxRequests: 1}, KeyByIP))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status want 200 got %d", i, w.Code)
		}
	}
}

func TestParseRateLimitResult(t *testing.T) {
	count, ttl, ok := parseRateLimitResult([]interface{}{int64(3), int64(42)})
	if !ok || count != 3 || ttl != 42 {
		t.Fatalf("unexpected parse result: count=%d ttl=%d ok=%v", count, ttl, ok)
	}
	if _, _, ok := parseRateLimitResult("bad"); ok {
		t.Fatalf("non-slice result should fail")
	}
	if _, _, ok := parseRateLimitResult([]interface{}{"x", int64(1)}); ok {
		t.Fatalf("non-numeric count should fail")
	}
}

func TestToInt64(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  int64
		ok    bool
	}{
		{name: "int64", input: int64(10), want: 10, ok: true},
		{name: "int", input: int(11), want: 11, ok: true},
		{name: "float64", input: float64(13.9), want: 13, ok: true},
		{name: "string", input: "bad", want: 0, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := toInt64(tc.input)
			if ok != tc.ok {
				t.Fatalf("ok want %v got %v", tc.ok, ok)
			}
			if got != tc.want {
				t.Fatalf("value want %d got %d", tc.want, got)
			}
		})
	}
}
