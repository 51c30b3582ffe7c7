package job

import (
	"Creatr/internal/pkg/consts"
	"Creatr/internal/pkg/logger"
	"Creatr/internal/pkg/metrics"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const publishLockTTL = 50 * time.Second

// Publisher 发布到期的定时文章
type Publisher interface {
	PublishDuePosts(ctx context.Context, now time.Time) (int, error)
}

// Locker 多实例部署时保证同一时间只有一个实例执行
type Locker interface {
	TryLock(ctx context.Context, key string, value interface{}, expiration time.Duration, retryTimes int) (bool, error)
	UnLock(ctx context.Context, key string, value interface{})
}

type ScheduledPublishJob struct {
	publisher Publisher
	locker    Locker
	metrics   metrics.Recorder
	now       func() time.Time
}

func NewScheduledPublishJob(publisher Publisher, locker Locker, recorder metrics.Recorder) *ScheduledPublishJob {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &ScheduledPublishJob{
		publisher: publisher,
		locker:    locker,
		metrics:   recorder,
		now:       time.Now,
	}
}

func (s *ScheduledPublishJob) Run() {
	traceID := "job-publish-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	if s.locker != nil {
		token := uuid.NewString()
		ok, err := s.locker.TryLock(ctx, consts.ScheduledPublishLock, token, publishLockTTL, 0)
		if err != nil {
			log.ErrorContext(ctx, "scheduled publish lock error", "err", err)
			return
		}
		if !ok {
			return
		}
		defer s.locker.UnLock(ctx, consts.ScheduledPublishLock, token)
	}

	count, err := s.publisher.PublishDuePosts(ctx, s.now().UTC())
	if count > 0 {
		s.metrics.PostsPublished(count)
		log.InfoContext(ctx, "scheduled posts published", "count", count)
	}
	if err != nil {
		log.ErrorContext(ctx, "scheduled publish failed", "err", err)
	}
}
