package provider

import (
	"time"

	"github.com/rfrnce/internal/cache"
	"github.com/rfrnce/internal/config"
	"github.com/rfrnce/internal/integration/exa"
	"github.com/rfrnce/internal/integration/firecrawl"
	"github.com/rfrnce/internal/integration/gemini"
	"github.com/rfrnce/internal/logger"
	"github.com/rfrnce/internal/models"
	"github.com/rfrnce/internal/queue"
	"github.com/rfrnce/internal/repository"
	"github.com/rfrnce/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo    repository.UserRepository
	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
	ReportRepo  repository.ReportRepository

	// Adapters
	FirecrawlClient *firecrawl.Client
	ExaClient       *exa.Client
	GeminiClient    *gemini.Client

	// Services
	UserService          *service.UserService
	CartService          *service.CartService
	ProductService       *service.ProductService
	ReportService        *service.ReportService
	EnrichmentService    *service.EnrichmentService
	EnrichmentExecutor   *service.LocalEnrichmentExecutor
	EnrichmentDispatcher service.EnrichmentDispatcher
	RecoveryService      *service.EnrichmentRecoveryService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories(models.DB)

	// 2. 初始化外部服务客户端
	c.initAdapters()

	// 3. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.UserRepo = repository.NewUserRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.ReportRepo = repository.NewReportRepository(db)
}

func (c *Container) initAdapters() {
	c.FirecrawlClient = firecrawl.NewClient(firecrawl.Config{
		APIKey:  c.Config.Firecrawl.APIKey,
		BaseURL: c.Config.Firecrawl.BaseURL,
	})
	c.ExaClient = exa.NewClient(exa.Config{
		APIKey:  c.Config.Exa.APIKey,
		BaseURL: c.Config.Exa.BaseURL,
	})
	geminiClient, err := gemini.NewClient(gemini.Config{
		APIKey:  c.Config.Gemini.APIKey,
		BaseURL: c.Config.Gemini.BaseURL,
		Model:   c.Config.Gemini.Model,
	})
	if err != nil {
		logger.Errorw("provider_init_gemini_failed", "error", err)
		panic(err)
	}
	c.GeminiClient = geminiClient
	if c.Config.Firecrawl.APIKey == "" || c.Config.Exa.APIKey == "" || c.Config.Gemini.APIKey == "" {
		logger.Warnw("provider_adapter_api_key_missing",
			"firecrawl", c.Config.Firecrawl.APIKey != "",
			"exa", c.Config.Exa.APIKey != "",
			"gemini", c.Config.Gemini.APIKey != "",
		)
	}
}

func (c *Container) initServices() {
	userCacheTTL := time.Duration(c.Config.Redis.UserCacheTTLSec) * time.Second
	c.UserService = service.NewUserService(c.UserRepo, userCacheTTL)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.UserRepo)
	c.EnrichmentService = service.NewEnrichmentService(c.ProductRepo, c.FirecrawlClient, c.ExaClient)

	if c.QueueClient.Enabled() {
		c.EnrichmentDispatcher = service.NewQueueEnrichmentDispatcher(c.QueueClient)
	} else {
		c.EnrichmentExecutor = service.NewLocalEnrichmentExecutor(c.EnrichmentService, c.Config.Enrichment.Concurrency)
		c.EnrichmentDispatcher = c.EnrichmentExecutor
	}

	c.ProductService = service.NewProductService(c.CartRepo, c.ProductRepo, c.EnrichmentDispatcher)
	c.ReportService = service.NewReportService(c.CartRepo, c.ProductRepo, c.ReportRepo, c.GeminiClient)

	recovery := c.Config.Enrichment.Recovery
	if recovery.Enabled {
		c.RecoveryService = service.NewEnrichmentRecoveryService(
			c.ProductRepo,
			c.EnrichmentDispatcher,
			time.Duration(recovery.MinAgeMinutes)*time.Minute,
			recovery.BatchSize,
		)
	}
}
