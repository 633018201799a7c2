package logger

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	jwtmw "devconnector/internal/platform/jwt"
)

// RequestIDHeader はリクエストIDを受け渡すヘッダー名です（リクエスト・レスポンス共通）。
const RequestIDHeader = "X-Request-ID"

// Middleware はリクエストごとに1行ログを出力します。
// 受信したX-Request-IDがあれば再利用し、なければ新規に採番してレスポンスにも付与します。
func Middleware(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Header(RequestIDHeader, rid)

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		attrs := []slog.Attr{
			slog.String("request_id", rid),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
		}
		if uid := jwtmw.UserID(c); uid != "" {
			attrs = append(attrs, slog.String("user_id", uid))
		}
		l.LogAttrs(c.Request.Context(), level, "request", attrs...)
	}
}
