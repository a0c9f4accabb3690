package cache

import (
	"context"
	"strings"
	"time"

	"github.com/rfrnce/internal/models"
)

const defaultUserIdentityTTL = time.Hour

// UserIdentity 扩展端 UUID 对应的用户快照，用户创建后不可变
type UserIdentity struct {
	UserID    uint   `json:"user_id"`
	UUID      string `json:"uuid"`
	CreatedAt int64  `json:"created_at"`
}

func userIdentityKey(uuid string) string {
	return "user:uuid:" + strings.ToLower(strings.TrimSpace(uuid))
}

// BuildUserIdentity 从用户模型构建快照
func BuildUserIdentity(user *models.User) *UserIdentity {
	if user == nil {
		return nil
	}
	return &UserIdentity{
		UserID:    user.ID,
		UUID:      user.UUID,
		CreatedAt: user.CreatedAt.Unix(),
	}
}

// ToUser 还原为用户模型
func (i *UserIdentity) ToUser() *models.User {
	if i == nil || i.UserID == 0 {
		return nil
	}
	return &models.User{
		ID:        i.UserID,
		UUID:      i.UUID,
		CreatedAt: time.Unix(i.CreatedAt, 0),
	}
}

// GetUserIdentity 读取用户快照
func GetUserIdentity(ctx context.Context, uuid string) (*UserIdentity, error) {
	var identity UserIdentity
	hit, err := GetJSON(ctx, userIdentityKey(uuid), &identity)
	if err != nil || !hit {
		return nil, err
	}
	return &identity, nil
}

// SetUserIdentity 写入用户快照
func SetUserIdentity(ctx context.Context, user *models.User, ttl time.Duration) error {
	identity := BuildUserIdentity(user)
	if identity == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = defaultUserIdentityTTL
	}
	return SetJSON(ctx, userIdentityKey(user.UUID), identity, ttl)
}
