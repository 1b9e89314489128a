package config

import "time"

// Config 配置主体
type Config struct {
	Server                ServerConfig          `mapstructure:"server"`
	DB                    DBConfig              `mapstructure:"database"`
	Redis                 RedisConfig           `mapstructure:"redis"`
	Logstash              LogstashConfig        `mapstructure:"logstash"`
	JWT                   JWTConfig             `mapstructure:"jwt"`
	Kafka                 KafkaConfig           `mapstructure:"kafka"`
	KafkaBehaviorConsumer KafkaBehaviorConsumer `mapstructure:"kafka_behavior_consumer"`
	Recommend             RecommendConfig       `mapstructure:"recommend"`
	Breaker               BreakerConfig         `mapstructure:"breaker"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// LogstashConfig 远程日志
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
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

// KafkaBehaviorConsumer 行为事件 (Canal binlog) 消费者
type KafkaBehaviorConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

// RecommendConfig 推荐引擎参数
type RecommendConfig struct {
	DefaultLimit      int           `mapstructure:"default_limit"`
	MaxLimit          int           `mapstructure:"max_limit"`
	ProfileTTL        time.Duration `mapstructure:"profile_ttl"`
	ProfileLookback   time.Duration `mapstructure:"profile_lookback"`
	ProfileMaxEvents  int           `mapstructure:"profile_max_events"`
	HotTTL            time.Duration `mapstructure:"hot_ttl"`
	ScanLimit         int           `mapstructure:"scan_limit"`
	RecentViewWindow  time.Duration `mapstructure:"recent_view_window"`
	ViewDedupWindow   time.Duration `mapstructure:"view_dedup_window"`
	NeighborLimit     int           `mapstructure:"neighbor_limit"`
	NeighborMinCommon int           `mapstructure:"neighbor_min_common"`
	CacheTimeout      time.Duration `mapstructure:"cache_timeout"`
	StoreTimeout      time.Duration `mapstructure:"store_timeout"`
	RecordTimeout     time.Duration `mapstructure:"record_timeout"`
	WarmSizes         []int         `mapstructure:"warm_sizes"`
	WarmCron          string        `mapstructure:"warm_cron"`
}

// BreakerConfig 熔断器参数
type BreakerConfig struct {
	MaxRequests      uint32        `mapstructure:"max_requests"`
	Interval         time.Duration `mapstructure:"interval"`
	Timeout          time.Duration `mapstructure:"timeout"`
	FailureThreshold uint32        `mapstructure:"failure_threshold"`
}

// DefaultRecommendConfig 默认推荐参数，与 setDefaults 保持一致
func DefaultRecommendConfig() RecommendConfig {
	return RecommendConfig{
		DefaultLimit:      10,
		MaxLimit:          50,
		ProfileTTL:        time.Hour,
		ProfileLookback:   30 * 24 * time.Hour,
		ProfileMaxEvents:  500,
		HotTTL:            30 * time.Minute,
		ScanLimit:         1000,
		RecentViewWindow:  7 * 24 * time.Hour,
		ViewDedupWindow:   24 * time.Hour,
		NeighborLimit:     10,
		NeighborMinCommon: 2,
		CacheTimeout:      300 * time.Millisecond,
		StoreTimeout:      time.Second,
		RecordTimeout:     3 * time.Second,
		WarmSizes:         []int{10, 20, 50},
		WarmCron:          "0 */10 * * * *",
	}
}
