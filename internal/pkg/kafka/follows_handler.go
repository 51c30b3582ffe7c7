package kafka

import (
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// FollowingInvalidator 删除关注列表缓存
type FollowingInvalidator interface {
	Invalidate(ctx context.Context, userIDs ...uint64) error
}

// FollowsHandler 监听 follows 表变更，使关注者的关注列表缓存失效
type FollowsHandler struct {
	cache FollowingInvalidator
}

func NewFollowsHandler(cache FollowingInvalidator) *FollowsHandler {
	return &FollowsHandler{cache: cache}
}

func (s *FollowsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("follows consumer setup")
	return nil
}

func (s *FollowsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("follows consumer cleanup")
	return nil
}

func (s *FollowsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	return pullMessageBatch(session, claim, s.logic)
}

func (s *FollowsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "follows")
	if err != nil {
		return err
	}

	switch canalMsg.Type {
	case INSERT, DELETE, UPDATE:
	default:
		return nil
	}

	followerIDs := canalMsg.columnIDs("follower_id")
	// UPDATE 修改了 follower_id 时旧值也要失效
	if canalMsg.Type == UPDATE {
		old := &CanalMessage{Data: canalMsg.Old}
		followerIDs = append(followerIDs, old.columnIDs("follower_id")...)
	}
	if len(followerIDs) == 0 {
		return nil
	}

	if err = s.cache.Invalidate(ctx, followerIDs...); err != nil {
		return err
	}
	log.InfoContext(ctx, "following cache invalidated", "type", canalMsg.Type, "users", followerIDs)
	return nil
}
