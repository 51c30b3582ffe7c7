package config

import (
	"Creatr/internal/ranking"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	return LoadConfigFrom("./configs")
}

// LoadConfigFrom 从指定目录加载 config.yaml
func LoadConfigFrom(path string) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file not found: %w", err)
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 50)
	v.SetDefault("database.max_lifetime", 30)
	v.SetDefault("redis.pool_size", 20)
	v.SetDefault("redis.follow_cache_ttl", 300)
	v.SetDefault("security.issuer", "creatr")
	v.SetDefault("cron.publish_spec", "0 * * * * *")
	v.SetDefault("rate_limit.actions_per_minute", 60)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("ranking.suggestion_fanout", 8)
	v.SetDefault("kafka.consumer.session_timeout", 30)
	v.SetDefault("kafka.consumer.heartbeat_interval", 3)
	v.SetDefault("kafka.consumer.rebalance_timeout", 60)
	v.SetDefault("kafka.consumer.max_processing_time", 5)
}

// Weights 将排序配置转换为 ranking.Weights
func (c RankingConfig) Weights() ranking.Weights {
	return ranking.Weights{
		FollowedShare:          c.FollowedShare,
		SuggestionLikeWeight:   c.SuggestionLikeWeight,
		SuggestionFollowWeight: c.SuggestionFollowWeight,
		TrendingLikeWeight:     c.TrendingLikeWeight,
		RecentWindow:           time.Duration(c.RecentWindowHours) * time.Hour,
		TrendingWindow:         time.Duration(c.TrendingWindowHours) * time.Hour,
	}.Normalize()
}

// FollowCacheDuration 关注列表缓存时间
func (c RedisConfig) FollowCacheDuration() time.Duration {
	return time.Duration(c.FollowCacheTTL) * time.Second
}
