package response

// 接口错误码
const (
	CodeInvalidUUID            = "INVALID_UUID"
	CodeInvalidRequest         = "INVALID_REQUEST"
	CodeInvalidCartID          = "INVALID_CART_ID"
	CodeInvalidProductID       = "INVALID_PRODUCT_ID"
	CodeInvalidCartName        = "INVALID_CART_NAME"
	CodeInvalidURL             = "INVALID_URL"
	CodeInvalidTargetCart      = "INVALID_TARGET_CART"
	CodeCartNotFound           = "CART_NOT_FOUND"
	CodeCartLimitReached       = "CART_LIMIT_REACHED"
	CodeCartNameExists         = "CART_NAME_EXISTS"
	CodeCartFrozen             = "CART_FROZEN"
	CodeProductNotFound        = "PRODUCT_NOT_FOUND"
	CodeProductLimitReached    = "PRODUCT_LIMIT_REACHED"
	CodeDuplicateProduct       = "DUPLICATE_PRODUCT"
	CodeTargetCartFull         = "TARGET_CART_FULL"
	CodeNoProducts             = "NO_PRODUCTS"
	CodeHasPendingProducts     = "HAS_PENDING_PRODUCTS"
	CodeHasFailedProducts      = "HAS_FAILED_PRODUCTS"
	CodeReportTimeout          = "REPORT_TIMEOUT"
	CodeReportGenerationFailed = "REPORT_GENERATION_FAILED"
	CodeReportNotFound         = "REPORT_NOT_FOUND"
	CodeRateLimited            = "RATE_LIMITED"
	CodeNotFound               = "NOT_FOUND"
	CodeInternal               = "INTERNAL_ERROR"
)

// MessageInternal 未知错误统一提示
const MessageInternal = "Something went wrong. Please try again in a few minutes."
