package public

import (
	"errors"
	"net/http"

	handlershared "github.com/rfrnce/internal/http/handlers/shared"
	"github.com/rfrnce/internal/http/response"
	"github.com/rfrnce/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target  error
	status  int
	code    string
	message string
}

// 按顺序匹配，首个命中的规则生效；未命中时返回 INTERNAL_ERROR 并记录原因。
func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			handlershared.RespondError(c, rule.status, rule.code, rule.message, nil)
			return
		}
	}
	handlershared.RespondInternal(c, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var cartLookupErrorRules = []mappedHandlerError{
	{target: service.ErrCartNotFound, status: http.StatusNotFound, code: response.CodeCartNotFound, message: "Cart not found"},
}

var userInitErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidUserUUID, status: http.StatusBadRequest, code: response.CodeInvalidUUID, message: handlershared.MessageInvalidUser},
}

var cartWriteErrorRules = []mappedHandlerError{
	{target: service.ErrCartLimitReached, status: http.StatusBadRequest, code: response.CodeCartLimitReached, message: "You've reached the maximum of 10 carts"},
	{target: service.ErrCartNameExists, status: http.StatusBadRequest, code: response.CodeCartNameExists, message: "A cart with this name already exists"},
	{target: service.ErrInvalidCartName, status: http.StatusBadRequest, code: response.CodeInvalidCartName, message: "Cart name must be between 1 and 100 characters"},
}

var productAddErrorRules = []mappedHandlerError{
	{target: service.ErrProductURLRequired, status: http.StatusBadRequest, code: response.CodeInvalidURL, message: "Product URL is required"},
	{target: service.ErrInvalidURL, status: http.StatusBadRequest, code: response.CodeInvalidURL, message: "Please enter a valid product URL"},
	{target: service.ErrCartFrozen, status: http.StatusBadRequest, code: response.CodeCartFrozen, message: "This cart has reached its report limit"},
	{target: service.ErrProductLimitReached, status: http.StatusBadRequest, code: response.CodeProductLimitReached, message: "This cart is full (15 items maximum)"},
	{target: service.ErrDuplicateProduct, status: http.StatusBadRequest, code: response.CodeDuplicateProduct, message: "This product is already in your cart"},
}

var productLookupErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, status: http.StatusNotFound, code: response.CodeProductNotFound, message: "Product not found"},
}

var productMoveErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidTargetCart, status: http.StatusBadRequest, code: response.CodeInvalidTargetCart, message: "Target cart ID is required"},
	{target: service.ErrTargetCartNotFound, status: http.StatusNotFound, code: response.CodeCartNotFound, message: "Target cart not found"},
	{target: service.ErrTargetCartFrozen, status: http.StatusBadRequest, code: response.CodeCartFrozen, message: "The target cart has reached its report limit"},
	{target: service.ErrDuplicateProductInTarget, status: http.StatusBadRequest, code: response.CodeDuplicateProduct, message: "This product is already in the target cart"},
	{target: service.ErrTargetCartFull, status: http.StatusBadRequest, code: response.CodeTargetCartFull, message: "The target cart is full (15 items maximum)"},
}

var reportGenerateErrorRules = []mappedHandlerError{
	{target: service.ErrCartFrozen, status: http.StatusBadRequest, code: response.CodeCartFrozen, message: "This cart has reached its report limit"},
	{target: service.ErrNoProducts, status: http.StatusBadRequest, code: response.CodeNoProducts, message: "Add products to generate report"},
	{target: service.ErrHasPendingProducts, status: http.StatusBadRequest, code: response.CodeHasPendingProducts, message: "Please wait for all products to finish loading"},
	{target: service.ErrHasFailedProducts, status: http.StatusBadRequest, code: response.CodeHasFailedProducts, message: "Remove failed items to generate report"},
	{target: service.ErrReportTimeout, status: http.StatusRequestTimeout, code: response.CodeReportTimeout, message: "Report generation took too long. Please try again."},
	{target: service.ErrReportGenerationFailed, status: http.StatusInternalServerError, code: response.CodeReportGenerationFailed, message: "Report generation failed. Please try again."},
}

var reportGetErrorRules = []mappedHandlerError{
	{target: service.ErrReportNotFound, status: http.StatusNotFound, code: response.CodeReportNotFound, message: "No report exists for this cart"},
}

func respondUserInitError(c *gin.Context, err error) {
	respondWithMappedError(c, err, userInitErrorRules)
}

func respondCartWriteError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(cartLookupErrorRules, cartWriteErrorRules))
}

func respondCartLookupError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartLookupErrorRules)
}

func respondProductAddError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(cartLookupErrorRules, productAddErrorRules))
}

func respondProductDeleteError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(cartLookupErrorRules, productLookupErrorRules))
}

func respondProductMoveError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(productMoveErrorRules, cartLookupErrorRules, productLookupErrorRules))
}

func respondReportGenerateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(cartLookupErrorRules, reportGenerateErrorRules))
}

func respondReportGetError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(cartLookupErrorRules, reportGetErrorRules))
}
