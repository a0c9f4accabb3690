package service

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/rfrnce/internal/constants"
	"github.com/rfrnce/internal/logger"
	"github.com/rfrnce/internal/models"
	"github.com/rfrnce/internal/repository"

	"gorm.io/gorm"
)

// AddProductInput 添加商品输入
type AddProductInput struct {
	UserID uint
	CartID uint
	URL    string
}

// MoveProductInput 移动商品输入
type MoveProductInput struct {
	UserID       uint
	CartID       uint
	ProductID    uint
	TargetCartID uint
}

// ProductService 购物车商品服务
type ProductService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	dispatcher  EnrichmentDispatcher
}

// NewProductService 创建商品服务
func NewProductService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, dispatcher EnrichmentDispatcher) *ProductService {
	return &ProductService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		dispatcher:  dispatcher,
	}
}

// List 获取购物车商品，按添加时间升序
func (s *ProductService) List(userID, cartID uint) ([]models.Product, error) {
	if _, err := requireCart(s.cartRepo, cartID, userID); err != nil {
		return nil, err
	}
	return s.productRepo.ListByCart(cartID)
}

// Add 添加商品并派发补全任务，返回 pending 状态的商品
func (s *ProductService) Add(ctx context.Context, input AddProductInput) (*models.Product, error) {
	productURL, err := normalizeProductURL(input.URL)
	if err != nil {
		return nil, err
	}

	var product *models.Product
	err = s.productRepo.Transaction(func(tx *gorm.DB) error {
		cart, err := s.cartRepo.WithTx(tx).GetByIDAndUserForUpdate(input.CartID, input.UserID)
		if err != nil {
			return err
		}
		if cart == nil {
			return ErrCartNotFound
		}
		if cart.IsFrozen {
			return ErrCartFrozen
		}
		productRepo := s.productRepo.WithTx(tx)
		count, err := productRepo.CountByCart(cart.ID)
		if err != nil {
			return err
		}
		if count >= constants.MaxProductsPerCart {
			return ErrProductLimitReached
		}
		existing, err := productRepo.GetByCartAndURL(cart.ID, productURL)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrDuplicateProduct
		}
		created := &models.Product{
			CartID: cart.ID,
			URL:    productURL,
			Status: constants.ProductStatusPending,
		}
		if err := productRepo.Create(created); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return ErrDuplicateProduct
			}
			return err
		}
		product = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.dispatcher == nil {
		return product, nil
	}
	if err := s.dispatcher.Dispatch(ctx, EnrichmentJob{ProductID: product.ID, URL: product.URL}); err != nil {
		logger.Errorw("enrichment_dispatch_failed", "product_id", product.ID, "error", err)
		if _, markErr := s.productRepo.MarkFailed(product.ID); markErr != nil {
			logger.Errorw("enrichment_mark_failed_error", "product_id", product.ID, "error", markErr)
			return product, nil
		}
		product.Status = constants.ProductStatusFailed
	}
	return product, nil
}

// Delete 从购物车删除商品，冻结的购物车同样允许删除
func (s *ProductService) Delete(userID, cartID, productID uint) error {
	cart, err := requireCart(s.cartRepo, cartID, userID)
	if err != nil {
		return err
	}
	product, err := s.productRepo.GetByIDAndCart(productID, cart.ID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(product.ID)
}

// Move 将商品移动到同一用户的另一个购物车，状态与抓取数据保持不变
func (s *ProductService) Move(input MoveProductInput) error {
	if input.TargetCartID == 0 {
		return ErrInvalidTargetCart
	}
	return s.productRepo.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		source, err := requireCart(cartRepo, input.CartID, input.UserID)
		if err != nil {
			return err
		}
		target, err := cartRepo.GetByIDAndUserForUpdate(input.TargetCartID, input.UserID)
		if err != nil {
			return err
		}
		if target == nil {
			return ErrTargetCartNotFound
		}
		if target.IsFrozen {
			return ErrTargetCartFrozen
		}
		product, err := productRepo.GetByIDAndCart(input.ProductID, source.ID)
		if err != nil {
			return err
		}
		if product == nil {
			return ErrProductNotFound
		}
		duplicate, err := productRepo.GetByCartAndURL(target.ID, product.URL)
		if err != nil {
			return err
		}
		if duplicate != nil {
			return ErrDuplicateProductInTarget
		}
		count, err := productRepo.CountByCart(target.ID)
		if err != nil {
			return err
		}
		if count >= constants.MaxProductsPerCart {
			return ErrTargetCartFull
		}
		if err := productRepo.MoveToCart(product.ID, target.ID); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return ErrDuplicateProductInTarget
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		return nil
	})
}

// normalizeProductURL 校验商品链接，仅接受 http/https 绝对地址
func normalizeProductURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrProductURLRequired
	}
	parsed, err := url.ParseRequestURI(trimmed)
	if err != nil {
		return "", ErrInvalidURL
	}
	scheme := strings.ToLower(parsed.Scheme)
	if (scheme != "http" && scheme != "https") || parsed.Host == "" {
		return "", ErrInvalidURL
	}
	return trimmed, nil
}
