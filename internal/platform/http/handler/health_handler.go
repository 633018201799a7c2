// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// pingTimeout は /healthz でのDB疎通確認の上限時間です。
const pingTimeout = 2 * time.Second

// Pinger はストアへの疎通を確認します。*sql.DBが満たします。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Root は GET / を処理し、稼働中であることをテキストで返します。
func Root(c *gin.Context) {
	c.String(http.StatusOK, "API is running")
}

// Health はサービスヘルスチェック用の /healthz エンドポイント（GET/HEAD）を処理します。
// pingerがnilの場合はプロセスの稼働のみを報告します。
func Health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		status := http.StatusOK
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				slog.Error("health check failed", "error", err)
				status = http.StatusServiceUnavailable
			}
		}

		// HEADはステータスコードのみ
		if c.Request.Method == http.MethodHead {
			c.Status(status)
			return
		}
		body := gin.H{"status": "ok"}
		if status != http.StatusOK {
			body = gin.H{"status": "unavailable"}
		}
		c.JSON(status, body)
	}
}
