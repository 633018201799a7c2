// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"devconnector/internal/api"
	"devconnector/internal/feature/auth/domain"
	"devconnector/internal/feature/auth/domain/entity"
	"devconnector/internal/feature/auth/transport/http/dto"
	jwtmw "devconnector/internal/platform/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録し、トークンを返します。
	Register(ctx context.Context, name, email, password string) (string, error)
	// Login はユーザーを認証し、成功時にトークンを返します。
	Login(ctx context.Context, email, password string) (string, error)
	// Me は認証済みユーザーのアカウントを返します。
	Me(ctx context.Context, userID string) (*entity.User, error)
}

// AuthHandler はユーザー登録・ログイン・本人情報取得のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register は POST /api/users を処理します。
// - バリデーションエラー時は400とフィールドエラーを返却
// - パスワードが72バイトを超える場合は400とpasswordのフィールドエラーを返却
// - メールアドレス重複時は400 "User already exists" を返却
// - 成功時は200とトークンを返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ValidationErrors(err, &req))
		return
	}

	token, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	switch {
	case errors.Is(err, domain.ErrPasswordTooLong):
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorsResponse{Errors: []api.FieldError{{
			Msg:      "Password must be at most 72 bytes",
			Param:    "password",
			Location: "body",
		}}})
		return
	case errors.Is(err, domain.ErrUserAlreadyExists):
		slog.Info("register rejected: email taken", "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.Errors("User already exists"))
		return
	case err != nil:
		slog.Error("register failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ServerError)
		return
	}

	slog.Info("user registered", "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{Token: token})
}

// Login は POST /api/auth を処理します。
// - バリデーションエラー時は400とフィールドエラーを返却
// - 未登録メールアドレスとパスワード誤りは同じ400レスポンスを返却
// - 成功時は200とトークンを返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ValidationErrors(err, &req))
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		// アカウントの有無を推測されないよう、原因を区別しない
		slog.Warn("login failed", "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.Errors("Invalid Credentials"))
		return
	case err != nil:
		slog.Error("login failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ServerError)
		return
	}

	slog.Info("user login successful", "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{Token: token})
}

// Me は GET /api/auth を処理し、パスワードを除いた認証済みユーザーを返します。
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.Me(c.Request.Context(), jwtmw.UserID(c))
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, api.MessageResponse{Msg: "User not found"})
		return
	case err != nil:
		slog.Error("failed to load user", "error", err)
		c.JSON(http.StatusInternalServerError, api.ServerError)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserRes(user))
}
