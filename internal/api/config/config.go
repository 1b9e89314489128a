package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("PRESSROOM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg, err := unmarshal(v)
	if err != nil {
		return err
	}

	Cfg = cfg

	return nil
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Recommend.MaxLimit <= 0 {
		return nil, errors.New("recommend.max_limit must be positive")
	}
	if cfg.Recommend.DefaultLimit <= 0 || cfg.Recommend.DefaultLimit > cfg.Recommend.MaxLimit {
		cfg.Recommend.DefaultLimit = cfg.Recommend.MaxLimit
	}
	return &cfg, nil
}

// setDefaults 推荐相关参数的默认值
func setDefaults(v *viper.Viper) {
	def := DefaultRecommendConfig()

	v.SetDefault("server.port", 8080)

	v.SetDefault("recommend.default_limit", def.DefaultLimit)
	v.SetDefault("recommend.max_limit", def.MaxLimit)
	v.SetDefault("recommend.profile_ttl", def.ProfileTTL)
	v.SetDefault("recommend.profile_lookback", def.ProfileLookback)
	v.SetDefault("recommend.profile_max_events", def.ProfileMaxEvents)
	v.SetDefault("recommend.hot_ttl", def.HotTTL)
	v.SetDefault("recommend.scan_limit", def.ScanLimit)
	v.SetDefault("recommend.recent_view_window", def.RecentViewWindow)
	v.SetDefault("recommend.view_dedup_window", def.ViewDedupWindow)
	v.SetDefault("recommend.neighbor_limit", def.NeighborLimit)
	v.SetDefault("recommend.neighbor_min_common", def.NeighborMinCommon)
	v.SetDefault("recommend.cache_timeout", def.CacheTimeout)
	v.SetDefault("recommend.store_timeout", def.StoreTimeout)
	v.SetDefault("recommend.record_timeout", def.RecordTimeout)
	v.SetDefault("recommend.warm_sizes", def.WarmSizes)
	v.SetDefault("recommend.warm_cron", def.WarmCron)

	v.SetDefault("breaker.max_requests", 5)
	v.SetDefault("breaker.interval", "60s")
	v.SetDefault("breaker.timeout", "30s")
	v.SetDefault("breaker.failure_threshold", 5)
}
