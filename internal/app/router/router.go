// Package router はginエンジンを構築し、全ルートを登録します。
package router

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"devconnector/internal/app/di"
	platformhandler "devconnector/internal/platform/http/handler"
	jwtmw "devconnector/internal/platform/jwt"
	"devconnector/internal/platform/logger"
	"devconnector/internal/platform/metrics"
)

// Options は設定から渡されるHTTP層の設定値です。
type Options struct {
	// TokenHeader はクライアントがトークンを送るヘッダー名です。空の場合はx-auth-token。
	TokenHeader string
	// AllowedOrigins はCORSで許可するオリジンです。"*"は全て許可。
	AllowedOrigins []string
	// DB は /healthz で疎通確認します。nilの場合は稼働のみを報告。
	DB platformhandler.Pinger
	// Logger はリクエストごとに1行出力します。nilの場合はslog.Default()。
	Logger *slog.Logger
	// Metrics を指定するとリクエストを計測し、/metrics を公開します。
	Metrics *metrics.Metrics
}

// NewRouter は新しいエンジンに公開ルートと認証必須ルートを登録します。
// ミドルウェアはRecovery、リクエストログ、メトリクス、CORSの順に適用します。
func NewRouter(c *di.Container, opts Options) *gin.Engine {
	header := opts.TokenHeader
	if header == "" {
		header = jwtmw.DefaultHeader
	}
	l := opts.Logger
	if l == nil {
		l = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), logger.Middleware(l))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
	}
	r.Use(cors.New(corsConfig(opts.AllowedOrigins, header)))

	// 公開エンドポイント
	r.GET("/", platformhandler.Root)
	health := platformhandler.Health(opts.DB)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	if opts.Metrics != nil {
		r.GET("/metrics", opts.Metrics.Handler())
	}

	api := r.Group("/api")
	api.POST("/users", c.Auth.Register)
	api.POST("/auth", c.Auth.Login)
	api.GET("/profile", c.Profile.List)
	api.GET("/profile/user/:user_id", c.Profile.GetByUser)

	// 認証必須エンドポイント（トークンが必要）
	private := api.Group("")
	private.Use(jwtmw.AuthRequired(c.Tokens, header))
	{
		private.GET("/auth", c.Auth.Me)

		private.GET("/profile/me", c.Profile.Me)
		private.POST("/profile", c.Profile.Upsert)
		private.DELETE("/profile", c.Profile.Delete)
		private.PUT("/profile/experience", c.Profile.AddExperience)
		private.DELETE("/profile/experience/:exp_id", c.Profile.RemoveExperience)

		private.POST("/posts", c.Post.Create)
		private.GET("/posts", c.Post.List)
		private.GET("/posts/:post_id", c.Post.Get)
		private.DELETE("/posts/:post_id", c.Post.Delete)
		private.PUT("/posts/like/:id", c.Post.Like)
		private.PUT("/posts/unlike/:id", c.Post.Unlike)
		private.POST("/posts/comment/:id", c.Post.AddComment)
		private.DELETE("/posts/comment/:id/:comment_id", c.Post.RemoveComment)
	}

	return r
}

// corsConfig は許可オリジンとトークンヘッダーからCORS設定を組み立てます。
func corsConfig(origins []string, tokenHeader string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", tokenHeader},
		ExposeHeaders: []string{logger.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
