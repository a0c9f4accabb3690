package public

import (
	"github.com/rfrnce/internal/http/response"
	"github.com/rfrnce/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateCartRequest 创建购物车请求
type CreateCartRequest struct {
	Name string `json:"name"`
}

// UpdateCartRequest 更新购物车请求
type UpdateCartRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"isActive"`
}

// ListCarts 获取当前用户的购物车列表
func (h *Handler) ListCarts(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	carts, err := h.CartService.List(uid)
	if err != nil {
		respondCartLookupError(c, err)
		return
	}
	response.Success(c, carts)
}

// CreateCart 创建购物车
func (h *Handler) CreateCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateCartRequest
	if !bindJSON(c, &req, true) {
		return
	}
	cart, err := h.CartService.Create(service.CreateCartInput{UserID: uid, Name: req.Name})
	if err != nil {
		respondCartWriteError(c, err)
		return
	}
	response.Success(c, cart)
}

// UpdateCart 重命名或切换当前购物车
func (h *Handler) UpdateCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cartID, ok := parseCartID(c)
	if !ok {
		return
	}
	var req UpdateCartRequest
	if !bindJSON(c, &req, false) {
		return
	}
	cart, err := h.CartService.Update(service.UpdateCartInput{
		UserID:   uid,
		CartID:   cartID,
		Name:     req.Name,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondCartWriteError(c, err)
		return
	}
	response.Success(c, cart)
}

// DeleteCart 删除购物车（级联删除商品与报告）
func (h *Handler) DeleteCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cartID, ok := parseCartID(c)
	if !ok {
		return
	}
	if err := h.CartService.Delete(uid, cartID); err != nil {
		respondCartLookupError(c, err)
		return
	}
	response.SuccessWithMsg(c, "Cart deleted successfully")
}
