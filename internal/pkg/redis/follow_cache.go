package redis

import (
	"Creatr/internal/pkg/consts"
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// FollowCache 缓存用户关注的 ID 列表，值为 JSON 数组，空列表同样缓存
type FollowCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewFollowCache(rdb *redis.Client, ttl time.Duration) *FollowCache {
	return &FollowCache{rdb: rdb, ttl: ttl}
}

func followingKey(userID uint64) string {
	return consts.UserFollowingKey + strconv.FormatUint(userID, 10)
}

// GetFollowingIDs 第二个返回值表示是否命中
func (c *FollowCache) GetFollowingIDs(ctx context.Context, userID uint64) ([]uint64, bool, error) {
	raw, err := c.rdb.Get(ctx, followingKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	ids := make([]uint64, 0)
	if err = json.Unmarshal(raw, &ids); err != nil {
		_ = c.rdb.Del(ctx, followingKey(userID)).Err()
		return nil, false, nil
	}
	return ids, true, nil
}

func (c *FollowCache) SetFollowingIDs(ctx context.Context, userID uint64, ids []uint64) error {
	if ids == nil {
		ids = []uint64{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, followingKey(userID), raw, c.ttl).Err()
}

// Invalidate 删除若干用户的缓存
func (c *FollowCache) Invalidate(ctx context.Context, userIDs ...uint64) error {
	if len(userIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, followingKey(id))
	}
	return c.rdb.Del(ctx, keys...).Err()
}
