package service

import "errors"

// 用户
var (
	ErrInvalidUserUUID = errors.New("invalid user uuid")
	ErrUserNotFound    = errors.New("user not found")
)

// 购物车
var (
	ErrCartNotFound       = errors.New("cart not found")
	ErrCartLimitReached   = errors.New("cart limit reached")
	ErrCartNameExists     = errors.New("cart name exists")
	ErrInvalidCartName    = errors.New("invalid cart name")
	ErrCartFrozen         = errors.New("cart frozen")
	ErrTargetCartNotFound = errors.New("target cart not found")
	ErrTargetCartFrozen   = errors.New("target cart frozen")
	ErrTargetCartFull     = errors.New("target cart full")
	ErrInvalidTargetCart  = errors.New("invalid target cart")
)

// 商品
var (
	ErrProductURLRequired       = errors.New("product url required")
	ErrInvalidURL               = errors.New("invalid product url")
	ErrProductNotFound          = errors.New("product not found")
	ErrProductLimitReached      = errors.New("product limit reached")
	ErrDuplicateProduct         = errors.New("duplicate product")
	ErrDuplicateProductInTarget = errors.New("duplicate product in target cart")
	ErrEnrichmentPanicked       = errors.New("enrichment panicked")
	ErrExecutorClosed           = errors.New("enrichment executor closed")
)

// 报告
var (
	ErrNoProducts             = errors.New("no products")
	ErrHasPendingProducts     = errors.New("cart has pending products")
	ErrHasFailedProducts      = errors.New("cart has failed products")
	ErrReportTimeout          = errors.New("report generation timeout")
	ErrReportGenerationFailed = errors.New("report generation failed")
	ErrReportNotFound         = errors.New("report not found")
)
