package config

// Config 配置主体
type Config struct {
	Gateway      GatewayConfig      `mapstructure:"gateway"`
	Auth         AuthConfig         `mapstructure:"auth"`
	Follow       FollowConfig       `mapstructure:"follow"`
	Match        MatchConfig        `mapstructure:"match"`
	Notification NotificationConfig `mapstructure:"notification"`
}

// GatewayConfig 后端 REST/WebSocket 网关配置
type GatewayConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	WsURL      string `mapstructure:"ws_url"`
	Timeout    int    `mapstructure:"timeout"` // 秒
	RetryCount int    `mapstructure:"retry_count"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type FollowConfig struct {
	MaxFollowing int `mapstructure:"max_following"`
}

type MatchConfig struct {
	CacheSize int `mapstructure:"cache_size"`
	Threshold int `mapstructure:"threshold"` // 达到该百分比才算一次 match
}

type NotificationConfig struct {
	DedupWindowMs int    `mapstructure:"dedup_window_ms"`
	PollSchedule  string `mapstructure:"poll_schedule"`
	PageSize      int    `mapstructure:"page_size"`
}
