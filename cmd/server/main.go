package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"devconnector/internal/app/di"
	"devconnector/internal/app/router"
	"devconnector/internal/platform/config"
	"devconnector/internal/platform/db"
	jwtmw "devconnector/internal/platform/jwt"
	"devconnector/internal/platform/logger"
	"devconnector/internal/platform/metrics"
)

// shutdownTimeout はグレースフルシャットダウンの待ち時間の上限です。
const shutdownTimeout = 10 * time.Second

// main はAPIサーバーのエントリーポイントです。
func main() {
	os.Exit(run())
}

// run はサーバーを起動し、終了コードを返します。
// 設定読み込み → ロガー初期化 → DB接続 → DI → ルーター構築 → HTTPサーバー起動の順に行います。
func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return 1
	}

	closer, err := logger.Init(logger.Options{
		JSON:  cfg.IsProduction(),
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
	})
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		return 1
	}
	defer func() { _ = closer.Close() }()

	// 本番環境ではginのデバッグ出力を抑制
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// DB接続（リトライなしの1回のみ）
	gdb, err := db.Open(ctx, cfg.DatabaseURL, cfg.RunMigrations, di.Models()...)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		return 1
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()
	sqlDB, err := gdb.DB()
	if err != nil {
		slog.Error("failed to access connection pool", "error", err)
		return 1
	}

	tokens := jwtmw.NewService(cfg.JWTSecret, cfg.JWTExpiration)
	container := di.NewContainer(gdb, tokens)

	engine := router.NewRouter(container, router.Options{
		TokenHeader:    cfg.TokenHeader,
		AllowedOrigins: cfg.AllowedOrigins,
		DB:             sqlDB,
		Logger:         slog.Default(),
		Metrics:        metrics.New(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// SIGINT/SIGTERMを受けるまでサーバーを起動
	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server listening", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			slog.Error("server error", "error", err)
			return 1
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	// 処理中のリクエストを待ってから停止
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
		return 1
	}
	slog.Info("server stopped")
	return 0
}
