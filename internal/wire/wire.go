package wire

import (
	"Creatr/internal/api"
	"Creatr/internal/api/config"
	"Creatr/internal/api/handler"
	"Creatr/internal/api/middleware"
	"Creatr/internal/job"
	"Creatr/internal/pkg/cron"
	"Creatr/internal/pkg/kafka"
	"Creatr/internal/pkg/metrics"
	"Creatr/internal/pkg/redis"
	"Creatr/internal/repository"
	"Creatr/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
	// KafkaManager 未配置 brokers 时为 nil
	KafkaManager *kafka.ConsumerManager
}

func BuildApplication(db *gorm.DB, cfg *config.Config, reg *prometheus.Registry) (*ApplicationContainer, error) {
	collector := metrics.NewCollector(reg)
	weights := cfg.Ranking.Weights()

	userRepo := repository.NewUserRepo(db)
	userFollowRepo := repository.NewUserFollowRepo(db)
	postRepo := repository.NewPostRepository(db)
	postActionRepo := repository.NewPostActionRepo(db)
	dailyStatRepo := repository.NewDailyStatRepo(db)

	// 关注列表缓存，TTL 为 0 或 Redis 未初始化时直接查库
	var (
		followCache    *redis.FollowCache
		followingCache service.FollowingCache
		followsHandler *kafka.FollowsHandler
	)
	if ttl := cfg.Redis.FollowCacheDuration(); ttl > 0 && redis.Rdb != nil {
		followCache = redis.NewFollowCache(redis.Rdb, ttl)
		followingCache = followCache
		followsHandler = kafka.NewFollowsHandler(followCache)
	}

	identityService := service.NewIdentityService(userRepo)
	userFollowService := service.NewUserFollowService(userFollowRepo, userRepo, postRepo, identityService, followingCache, collector)
	feedService := service.NewFeedService(identityService, userFollowService, postRepo, userRepo, weights, collector)
	suggestionService := service.NewSuggestionService(identityService, userFollowService, postRepo,
		service.NewAllUsersSource(userRepo), weights, cfg.Ranking.SuggestionFanout, collector)
	trendingService := service.NewTrendingService(service.NewRecentPostsSource(postRepo), userRepo, weights, collector)
	userService := service.NewUserService(userRepo, identityService)
	postService := service.NewPostService(identityService, postRepo, userRepo, dailyStatRepo)
	postActionService := service.NewPostActionService(identityService, postActionRepo, postRepo, userRepo)

	handlers := &api.HandlersGroup{
		FeedHandler:       handler.NewFeedHandler(feedService, userFollowService, suggestionService, trendingService),
		UserHandler:       handler.NewUserHandler(userService, postService),
		UserFollowHandler: handler.NewUserFollowHandler(identityService, userFollowService),
		PostHandler:       handler.NewPostHandler(postService),
		PostActionHandler: handler.NewPostActionHandler(postActionService),
		ActionLimiter:     middleware.NewRateLimiter(cfg.RateLimit.ActionsPerMinute, cfg.RateLimit.Burst),
		MetricsHandler:    metrics.Handler(reg),
	}

	router := api.SetupRouter(handlers)

	var locker job.Locker
	if redis.Rdb != nil {
		locker = redis.Locker{}
	}
	publishJob := job.NewScheduledPublishJob(postService, locker, collector)
	cronMgr := cron.NewCronManager(cfg.Cron.PublishSpec, publishJob)

	var kafkaMgr *kafka.ConsumerManager
	if len(cfg.Kafka.Brokers) > 0 {
		var err error
		kafkaMgr, err = kafka.NewConsumerManager(cfg, followsHandler, kafka.NewLikesHandler(postActionRepo, postRepo))
		if err != nil {
			return nil, err
		}
	}

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		CronMgr:      cronMgr,
		KafkaManager: kafkaMgr,
	}, nil
}
