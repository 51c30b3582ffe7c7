package config

// Config 配置主体
type Config struct {
	Server              ServerConfig        `mapstructure:"server"`
	DB                  DBConfig            `mapstructure:"database"`
	Redis               RedisConfig         `mapstructure:"redis"`
	Logstash            LogstashConfig      `mapstructure:"logstash"`
	Security            SecurityConfig      `mapstructure:"security"`
	Ranking             RankingConfig       `mapstructure:"ranking"`
	Cron                CronConfig          `mapstructure:"cron"`
	RateLimit           RateLimitConfig     `mapstructure:"rate_limit"`
	Kafka               KafkaConfig         `mapstructure:"kafka"`
	KafkaFollowConsumer KafkaFollowConsumer `mapstructure:"kafka_follow_consumer"`
	KafkaLikeConsumer   KafkaLikeConsumer   `mapstructure:"kafka_like_consumer"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
	// FollowCacheTTL 关注列表缓存时间（秒），0 表示不缓存
	FollowCacheTTL int `mapstructure:"follow_cache_ttl"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// SecurityConfig 身份令牌校验配置，令牌由外部身份服务签发
type SecurityConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

// RankingConfig 排序参数，未配置的字段使用 ranking.DefaultWeights
type RankingConfig struct {
	FollowedShare          float64 `mapstructure:"followed_share"`
	SuggestionLikeWeight   int64   `mapstructure:"suggestion_like_weight"`
	SuggestionFollowWeight int64   `mapstructure:"suggestion_follow_weight"`
	TrendingLikeWeight     int64   `mapstructure:"trending_like_weight"`
	RecentWindowHours      int     `mapstructure:"recent_window_hours"`
	TrendingWindowHours    int     `mapstructure:"trending_window_hours"`
	SuggestionFanout       int     `mapstructure:"suggestion_fanout"`
}

type CronConfig struct {
	PublishSpec string `mapstructure:"publish_spec"`
}

type RateLimitConfig struct {
	ActionsPerMinute int `mapstructure:"actions_per_minute"`
	Burst            int `mapstructure:"burst"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaFollowConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

type KafkaLikeConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}
