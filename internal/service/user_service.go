package service

import (
	"context"
	"strings"
	"time"

	"github.com/rfrnce/internal/cache"
	"github.com/rfrnce/internal/constants"
	"github.com/rfrnce/internal/logger"
	"github.com/rfrnce/internal/models"
	"github.com/rfrnce/internal/repository"

	"github.com/google/uuid"
)

// UserService 扩展端匿名用户服务
type UserService struct {
	userRepo repository.UserRepository
	cacheTTL time.Duration
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository, cacheTTL time.Duration) *UserService {
	return &UserService{
		userRepo: userRepo,
		cacheTTL: cacheTTL,
	}
}

// Init 按 UUID 幂等初始化用户
func (s *UserService) Init(ctx context.Context, rawUUID string) (*models.User, error) {
	normalized, err := normalizeUserUUID(rawUUID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.CreateIfAbsent(&models.User{UUID: normalized})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	s.remember(ctx, user)
	return user, nil
}

// Resolve 根据请求头中的 UUID 查找已初始化的用户
func (s *UserService) Resolve(ctx context.Context, rawUUID string) (*models.User, error) {
	normalized, err := normalizeUserUUID(rawUUID)
	if err != nil {
		return nil, err
	}
	identity, err := cache.GetUserIdentity(ctx, normalized)
	if err != nil {
		logger.Warnw("user_identity_cache_get_failed", "error", err)
	}
	if user := identity.ToUser(); user != nil {
		return user, nil
	}

	user, err := s.userRepo.GetByUUID(normalized)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	s.remember(ctx, user)
	return user, nil
}

func (s *UserService) remember(ctx context.Context, user *models.User) {
	if err := cache.SetUserIdentity(ctx, user, s.cacheTTL); err != nil {
		logger.Warnw("user_identity_cache_set_failed", "user_id", user.ID, "error", err)
	}
}

// normalizeUserUUID 校验并规范化为小写标准格式
func normalizeUserUUID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || len(trimmed) > constants.MaxUserUUIDLength {
		return "", ErrInvalidUserUUID
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return "", ErrInvalidUserUUID
	}
	return parsed.String(), nil
}
