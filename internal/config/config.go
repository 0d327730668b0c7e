package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

func setDefaults() {
	viper.SetDefault("gateway.timeout", 10)
	viper.SetDefault("gateway.retry_count", 2)
	viper.SetDefault("follow.max_following", 1000)
	viper.SetDefault("match.cache_size", 2048)
	viper.SetDefault("match.threshold", 80)
	viper.SetDefault("notification.dedup_window_ms", 2000)
	viper.SetDefault("notification.poll_schedule", "@every 1m")
	viper.SetDefault("notification.page_size", 20)
}

// Default 返回一份填好默认值的配置，供未调用 LoadConfig 的宿主使用
func Default() *Config {
	setDefaults()
	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return &cfg
}
