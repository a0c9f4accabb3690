package service

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/rfrnce/internal/constants"
	"github.com/rfrnce/internal/models"
	"github.com/rfrnce/internal/repository"

	"gorm.io/gorm"
)

// CreateCartInput 创建购物车输入
type CreateCartInput struct {
	UserID uint
	Name   string
}

// UpdateCartInput 更新购物车输入，nil 字段保持不变
type UpdateCartInput struct {
	UserID   uint
	CartID   uint
	Name     *string
	IsActive *bool
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, userRepo repository.UserRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

// List 获取用户购物车，按创建时间升序
func (s *CartService) List(userID uint) ([]repository.CartWithCount, error) {
	return s.cartRepo.ListByUser(userID)
}

// Create 创建购物车
func (s *CartService) Create(input CreateCartInput) (*repository.CartWithCount, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = constants.DefaultCartName
	}
	if utf8.RuneCountInString(name) > constants.MaxCartNameLength {
		return nil, ErrInvalidCartName
	}

	var created *models.Cart
	err := s.cartRepo.Transaction(func(tx *gorm.DB) error {
		// 锁定用户行，串行化同一用户的并发创建
		user, err := s.userRepo.WithTx(tx).GetByIDForUpdate(input.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}
		cartRepo := s.cartRepo.WithTx(tx)
		count, err := cartRepo.CountByUser(input.UserID)
		if err != nil {
			return err
		}
		if count >= constants.MaxCartsPerUser {
			return ErrCartLimitReached
		}
		existing, err := cartRepo.GetByUserAndName(input.UserID, name)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrCartNameExists
		}
		cart := &models.Cart{
			UserID: input.UserID,
			Name:   name,
		}
		if err := cartRepo.Create(cart); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return ErrCartNameExists
			}
			return err
		}
		created = cart
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &repository.CartWithCount{Cart: *created}, nil
}

// Update 重命名或切换激活状态
func (s *CartService) Update(input UpdateCartInput) (*repository.CartWithCount, error) {
	cart, err := requireCart(s.cartRepo, input.CartID, input.UserID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" || utf8.RuneCountInString(name) > constants.MaxCartNameLength {
			return nil, ErrInvalidCartName
		}
		if name != cart.Name {
			existing, err := s.cartRepo.GetByUserAndName(input.UserID, name)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, ErrCartNameExists
			}
			updates["name"] = name
		}
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	err = s.cartRepo.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		if input.IsActive != nil && *input.IsActive {
			if err := cartRepo.ClearActiveByUser(input.UserID, cart.ID); err != nil {
				return err
			}
		}
		if err := cartRepo.Update(cart.ID, updates); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return ErrCartNameExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.cartRepo.GetByIDAndUser(cart.ID, input.UserID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrCartNotFound
	}
	count, err := s.productRepo.CountByCart(cart.ID)
	if err != nil {
		return nil, err
	}
	return &repository.CartWithCount{Cart: *updated, ProductCount: count}, nil
}

// Delete 删除购物车及其商品与报告
func (s *CartService) Delete(userID, cartID uint) error {
	cart, err := requireCart(s.cartRepo, cartID, userID)
	if err != nil {
		return err
	}
	return s.cartRepo.Delete(cart.ID)
}

// requireCart 获取归属于用户的购物车，不存在时返回 ErrCartNotFound
func requireCart(repo repository.CartRepository, cartID, userID uint) (*models.Cart, error) {
	cart, err := repo.GetByIDAndUser(cartID, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	return cart, nil
}
