package logger

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"time"
)

// GatewayTransport 记录发往后端网关的每个 HTTP 请求
type GatewayTransport struct {
	Transport http.RoundTripper
}

func (t *GatewayTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	var reqBody []byte
	if req.Body != nil {
		reqBody, _ = io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewBuffer(reqBody))
	}

	base := t.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(req)
	elapsed := time.Since(start)

	fields := []any{
		log.String("method", req.Method),
		log.String("url", req.URL.String()),
		log.Duration("latency", elapsed),
	}

	limit := 1000
	reqStr := string(reqBody)
	if len(reqStr) > limit {
		reqStr = reqStr[:limit] + "...[truncated]"
	}
	if reqStr != "" {
		fields = append(fields, log.String("req_body", reqStr))
	}

	if err != nil {
		log.ErrorContext(req.Context(), "GATEWAY_REQUEST_ERROR", append(fields, log.Any("err", err))...)
		return nil, err
	}

	fields = append(fields, log.Int("status", resp.StatusCode))

	if elapsed > 500*time.Millisecond {
		log.WarnContext(req.Context(), "GATEWAY_REQUEST_SLOW", fields...)
	} else {
		log.InfoContext(req.Context(), "GATEWAY_REQUEST", fields...)
	}

	return resp, nil
}
