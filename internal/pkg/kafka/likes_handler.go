package kafka

import (
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// LikeCounter 统计文章的真实点赞数
type LikeCounter interface {
	GetLikeCountByPostID(ctx context.Context, postID uint64) (int64, error)
}

// LikeCountWriter 回写文章冗余的点赞数
type LikeCountWriter interface {
	UpdateLikeCount(ctx context.Context, id uint64, count int64) error
}

// LikesHandler 监听 likes 表变更，按 likes 表重新校准 posts.like_count
type LikesHandler struct {
	counter LikeCounter
	writer  LikeCountWriter
}

func NewLikesHandler(counter LikeCounter, writer LikeCountWriter) *LikesHandler {
	return &LikesHandler{
		counter: counter,
		writer:  writer,
	}
}

func (s *LikesHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("likes consumer setup")
	return nil
}

func (s *LikesHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("likes consumer cleanup")
	return nil
}

func (s *LikesHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	return pullMessageBatch(session, claim, s.logic)
}

func (s *LikesHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "likes")
	if err != nil {
		return err
	}

	// 点赞是物理增删
	if canalMsg.Type != INSERT && canalMsg.Type != DELETE {
		return nil
	}

	for _, postID := range canalMsg.columnIDs("post_id") {
		count, err := s.counter.GetLikeCountByPostID(ctx, postID)
		if err != nil {
			return err
		}
		if err = s.writer.UpdateLikeCount(ctx, postID, count); err != nil {
			return err
		}
		log.InfoContext(ctx, "post like count reconciled", "post_id", postID, "like_count", count)
	}
	return nil
}
