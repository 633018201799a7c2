// Package logger はプロセス全体で使うslogロガーを設定します。
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// Options はハンドラーの選択を制御します。
type Options struct {
	// JSON がtrueの場合はJSONハンドラー（本番用）、falseの場合はテキストハンドラーを使います。
	JSON bool
	// Level はdebug・info・warn・errorのいずれか。空の場合はinfo。
	Level string
	// File を指定すると全レコードのJSONコピーをファイルにも出力します。
	File string
}

// New は標準出力（と指定があればログファイル）に書き込むロガーを生成します。
// 返すcloserはファイルハンドルを解放し、nilになることはありません。
func New(opts Options) (*slog.Logger, io.Closer, error) {
	level := ParseLevel(opts.Level)
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handlers []slog.Handler
	if opts.JSON {
		handlers = append(handlers, slog.NewJSONHandler(os.Stdout, handlerOpts))
	} else {
		handlers = append(handlers, slog.NewTextHandler(os.Stdout, handlerOpts))
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, handlerOpts))
		closer = f
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = slogmulti.Fanout(handlers...)
	} else {
		handler = handlers[0]
	}
	return slog.New(handler), closer, nil
}

// Init はロガーを生成し、slogのデフォルトに設定します。
func Init(opts Options) (io.Closer, error) {
	l, closer, err := New(opts)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(l)
	return closer, nil
}

// ParseLevel はレベル名をslog.Levelに変換します。不明な値はinfoです。
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
