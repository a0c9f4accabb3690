package constants

// 商品补全状态
const (
	ProductStatusPending  = "pending"
	ProductStatusComplete = "complete"
	ProductStatusFailed   = "failed"
)

// 购物车与报告限制
const (
	MaxCartsPerUser       = 10
	MaxProductsPerCart    = 15
	ReportFreezeThreshold = 3
	DefaultCartName       = "Unnamed Cart"
	MaxCartNameLength     = 100
	MaxUserUUIDLength     = 36
)

// 请求头
const (
	HeaderUserUUID  = "X-User-UUID"
	HeaderRequestID = "X-Request-ID"
)

// 评论来源
const (
	ReviewSourceReddit  = "reddit"
	ReviewSourceForum   = "forum"
	ReviewSourceGeneral = "general"
)

// 异步任务
const (
	QueueDefault      = "default"
	TaskProductEnrich = "product:enrich"
)

// 商品补全结果
const (
	EnrichmentOutcomeComplete  = "complete"
	EnrichmentOutcomeFailed    = "failed"
	EnrichmentOutcomeDiscarded = "discarded"
	EnrichmentOutcomePanic     = "panic"
)
