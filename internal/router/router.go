package router

import (
	"net/http"

	"github.com/rfrnce/internal/cache"
	"github.com/rfrnce/internal/config"
	publichandlers "github.com/rfrnce/internal/http/handlers/public"
	"github.com/rfrnce/internal/http/response"
	"github.com/rfrnce/internal/logger"
	"github.com/rfrnce/internal/metrics"
	"github.com/rfrnce/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions("rfrnce-api"))
	}
	r := gin.New()

	handler := publichandlers.New(c)
	redisClient := cache.Client()
	redisPrefix := cache.Prefix()
	userInitRule := NewRateLimitRule(redisPrefix, "user_init", cfg.RateLimit.UserInit)
	productAddRule := NewRateLimitRule(redisPrefix, "product_add", cfg.RateLimit.ProductAdd)
	reportRule := NewRateLimitRule(redisPrefix, "report_generate", cfg.RateLimit.ReportGenerate)

	// 中间件
	r.Use(RecoveryMiddleware())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(MetricsMiddleware())
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/", handler.Root)
	r.GET("/healthz", handler.Healthz)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	{
		api.POST("/users/init", RateLimitMiddleware(redisClient, userInitRule, KeyByIP), handler.InitUser)

		carts := api.Group("/carts")
		carts.Use(UserUUIDAuthMiddleware(c.UserService))
		{
			carts.GET("", handler.ListCarts)
			carts.POST("", handler.CreateCart)
			carts.PATCH("/:id", handler.UpdateCart)
			carts.DELETE("/:id", handler.DeleteCart)

			carts.GET("/:id/products", handler.ListProducts)
			carts.POST("/:id/products", RateLimitMiddleware(redisClient, productAddRule, KeyByUser), handler.AddProduct)
			carts.DELETE("/:id/products/:productId", handler.DeleteProduct)
			carts.POST("/:id/products/:productId/move", handler.MoveProduct)

			carts.POST("/:id/report", RateLimitMiddleware(redisClient, reportRule, KeyByUser), handler.GenerateReport)
			carts.GET("/:id/report", handler.GetReport)
		}
	}

	r.NoRoute(func(ctx *gin.Context) {
		response.Error(ctx, http.StatusNotFound, response.CodeNotFound, "Not found")
	})

	return r
}
