package logger

import (
	log "log/slog"
	"os"
)

// InitLogger 初始化默认 slog，JSON 输出并携带 trace_id。
// 宿主应用已有自己的 slog 配置时可以不调用。
func InitLogger() {
	h := log.NewJSONHandler(os.Stdout, &log.HandlerOptions{Level: log.LevelInfo})
	log.SetDefault(log.New(&ContextHandler{h}))
}
