// Package session 维护已注销令牌的吊销列表
package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "coucou:session:revoked:"

// Store 基于 Redis 的吊销列表，client 为 nil 时注销只依赖令牌自然过期
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Enabled() bool {
	return s != nil && s.client != nil
}

// Revoke 吊销令牌直到其过期时间
func (s *Store) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if !s.Enabled() {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, keyPrefix+tokenID, 1, ttl).Err()
}

func (s *Store) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	err := s.client.Get(ctx, keyPrefix+tokenID).Err()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

var defaultStore = NewStore(nil)

// Init 使用全局 Redis 客户端初始化默认吊销列表
func Init(client *redis.Client) {
	defaultStore = NewStore(client)
}

func Default() *Store {
	return defaultStore
}
