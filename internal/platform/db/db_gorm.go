// Package db はプロセス全体で共有するGORMコネクションプールを開きます。
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Opener はDSNからgormの接続を開きます。テストでは差し替えます。
type Opener func(dsn string) (*gorm.DB, error)

// PostgresOpener はドライバーエラーをgormのセンチネル（gorm.ErrDuplicatedKey等）に
// 変換する設定でPostgresのプールを開きます。
func PostgresOpener(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

// Target は接続文字列のうちログに出力してよい部分です。
type Target struct {
	Host     string
	Port     uint16
	Database string
	User     string
}

// String は認証情報を含まない形で接続先を表します。
func (t Target) String() string {
	return fmt.Sprintf("%s@%s:%d/%s", t.User, t.Host, t.Port, t.Database)
}

// ParseTarget はPostgresのDSN（URL形式・key/value形式）からホスト・ポート・DB名・ユーザーを取り出します。
// 起動ログにパスワードが出力されないようにするためです。
func ParseTarget(dsn string) (Target, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return Target{}, fmt.Errorf("invalid DATABASE_URL: %w", err)
	}
	return Target{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Database: cfg.Database,
		User:     cfg.User,
	}, nil
}

// Connect はリトライせず1回だけ接続を試み、pingで疎通を確認します。
// ping失敗時はプールを閉じてからエラーを返します。
func Connect(ctx context.Context, dsn string, open Opener) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("empty DSN")
	}
	if open == nil {
		open = PostgresOpener
	}

	db, err := open(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql.DB: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Open はログ用にDSNを解析して接続し、必要に応じてモデルをマイグレーションします。
func Open(ctx context.Context, dsn string, migrate bool, models ...any) (*gorm.DB, error) {
	target, err := ParseTarget(dsn)
	if err != nil {
		return nil, err
	}
	slog.Info("connecting to database", "target", target.String())

	db, err := Connect(ctx, dsn, PostgresOpener)
	if err != nil {
		return nil, err
	}

	if migrate {
		if err := migrateOrClose(ctx, db, models...); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// migrateOrClose はモデルをマイグレーションします。
// 失敗時はConnectのping失敗時と同様にプールを閉じます。
func migrateOrClose(ctx context.Context, db *gorm.DB, models ...any) error {
	if err := db.WithContext(ctx).AutoMigrate(models...); err != nil {
		_ = Close(db)
		return fmt.Errorf("failed to migrate: %w", err)
	}
	slog.Info("database migrated", "models", len(models))
	return nil
}

// Close は内部のコネクションプールを解放します。
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
