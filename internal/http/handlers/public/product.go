package public

import (
	"github.com/rfrnce/internal/http/response"
	"github.com/rfrnce/internal/service"

	"github.com/gin-gonic/gin"
)

// AddProductRequest 添加商品请求
type AddProductRequest struct {
	URL string `json:"url"`
}

// MoveProductRequest 移动商品请求
type MoveProductRequest struct {
	TargetCartID uint `json:"targetCartId"`
}

// ListProducts 获取购物车商品（扩展端轮询补全状态）
func (h *Handler) ListProducts(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cartID, ok := parseCartID(c)
	if !ok {
		return
	}
	products, err := h.ProductService.List(uid, cartID)
	if err != nil {
		respondCartLookupError(c, err)
		return
	}
	response.Success(c, products)
}

// AddProduct 添加商品并派发补全任务
func (h *Handler) AddProduct(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cartID, ok := parseCartID(c)
	if !ok {
		return
	}
	var req AddProductRequest
	if !bindJSON(c, &req, true) {
		return
	}
	product, err := h.ProductService.Add(c.Request.Context(), service.AddProductInput{
		UserID: uid,
		CartID: cartID,
		URL:    req.URL,
	})
	if err != nil {
		respondProductAddError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cartID, ok := parseCartID(c)
	if !ok {
		return
	}
	productID, ok := parseProductID(c)
	if !ok {
		return
	}
	if err := h.ProductService.Delete(uid, cartID, productID); err != nil {
		respondProductDeleteError(c, err)
		return
	}
	response.SuccessWithMsg(c, "Product deleted successfully")
}

// MoveProduct 将商品移动到同一用户的另一个购物车
func (h *Handler) MoveProduct(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cartID, ok := parseCartID(c)
	if !ok {
		return
	}
	productID, ok := parseProductID(c)
	if !ok {
		return
	}
	var req MoveProductRequest
	if !bindJSON(c, &req, true) {
		return
	}
	err := h.ProductService.Move(service.MoveProductInput{
		UserID:       uid,
		CartID:       cartID,
		ProductID:    productID,
		TargetCartID: req.TargetCartID,
	})
	if err != nil {
		respondProductMoveError(c, err)
		return
	}
	response.SuccessWithMsg(c, "Product moved successfully")
}
