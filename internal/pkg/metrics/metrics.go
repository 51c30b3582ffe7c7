// Package metrics 排序接口与缓存的 Prometheus 指标
package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OpFeed        = "feed"
	OpFollowing   = "following"
	OpSuggestions = "suggestions"
	OpTrending    = "trending"
)

// Recorder 服务层使用的指标接口
type Recorder interface {
	ObserveRanking(op string, duration time.Duration, size int, err error)
	FollowCacheHit()
	FollowCacheMiss()
	PostsPublished(count int)
}

type Collector struct {
	rankingLatency *prometheus.HistogramVec
	rankingSize    *prometheus.HistogramVec
	rankingErrors  *prometheus.CounterVec
	followCache    *prometheus.CounterVec
	published      prometheus.Counter
}

// NewCollector 创建并注册到 reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		rankingLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "creatr_ranking_duration_seconds",
			Help:    "排序接口耗时",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		rankingSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "creatr_ranking_result_size",
			Help:    "排序接口返回条数",
			Buckets: []float64{0, 1, 5, 10, 20, 50},
		}, []string{"op"}),
		rankingErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "creatr_ranking_errors_total",
			Help: "排序接口失败次数",
		}, []string{"op"}),
		followCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "creatr_follow_cache_total",
			Help: "关注列表缓存命中情况",
		}, []string{"result"}),
		published: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "creatr_scheduled_posts_published_total",
			Help: "定时发布的文章数",
		}),
	}

	reg.MustRegister(
		c.rankingLatency,
		c.rankingSize,
		c.rankingErrors,
		c.followCache,
		c.published,
	)
	return c
}

func (c *Collector) ObserveRanking(op string, duration time.Duration, size int, err error) {
	if err != nil {
		c.rankingErrors.WithLabelValues(op).Inc()
		return
	}
	c.rankingLatency.WithLabelValues(op).Observe(duration.Seconds())
	c.rankingSize.WithLabelValues(op).Observe(float64(size))
}

func (c *Collector) FollowCacheHit() {
	c.followCache.WithLabelValues("hit").Inc()
}

func (c *Collector) FollowCacheMiss() {
	c.followCache.WithLabelValues("miss").Inc()
}

func (c *Collector) PostsPublished(count int) {
	c.published.Add(float64(count))
}

// Nop 不记录任何指标
type Nop struct{}

func (Nop) ObserveRanking(string, time.Duration, int, error) {}
func (Nop) FollowCacheHit() {}
func (Nop) FollowCacheMiss() {}
func (Nop) PostsPublished(int) {}

// Handler /metrics
func Handler(gatherer prometheus.Gatherer) gin.HandlerFunc {
	h := promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

