// Package handler はprofileフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"devconnector/internal/api"
	"devconnector/internal/feature/profile/domain"
	"devconnector/internal/feature/profile/domain/entity"
	"devconnector/internal/feature/profile/transport/http/dto"
	"devconnector/internal/feature/profile/usecase"
	jwtmw "devconnector/internal/platform/jwt"
)

// ProfileUsecase はハンドラーが使うプロフィール操作を定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type ProfileUsecase interface {
	GetMine(ctx context.Context, userID string) (*entity.Profile, error)
	GetByUser(ctx context.Context, userID string) (*entity.Profile, error)
	List(ctx context.Context) ([]entity.Profile, error)
	Upsert(ctx context.Context, userID string, in usecase.ProfileInput) (*entity.Profile, error)
	DeleteAccount(ctx context.Context, userID string) error
	AddExperience(ctx context.Context, userID string, in usecase.ExperienceInput) (*entity.Profile, error)
	RemoveExperience(ctx context.Context, userID, expID string) (*entity.Profile, error)
}

// ProfileHandler は /api/profile 配下のHTTPリクエストを処理します。
type ProfileHandler struct {
	profiles ProfileUsecase
}

// NewProfileHandler はProfileHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からProfileUsecaseを注入します。
func NewProfileHandler(profiles ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// dateLayouts は職歴の日付を解析する際に順番に試すレイアウトです。
var dateLayouts = []string{time.DateOnly, time.RFC3339}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// serverError はエラーをログに出力し、500を返却します。
func serverError(c *gin.Context, msg string, err error) {
	slog.Error(msg, "error", err, "route", c.FullPath())
	c.JSON(http.StatusInternalServerError, api.ServerError)
}

// Me は GET /api/profile/me を処理します。
// - プロフィールがない場合は400を返却
// - 成功時は200と所有者情報付きのプロフィールを返却
func (h *ProfileHandler) Me(c *gin.Context) {
	p, err := h.profiles.GetMine(c.Request.Context(), jwtmw.UserID(c))
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		c.JSON(http.StatusBadRequest, api.MessageResponse{Msg: "There is no profile for this user"})
		return
	case err != nil:
		serverError(c, "failed to load profile", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProfileRes(p))
}

// Upsert は POST /api/profile を処理します。
// - バリデーションエラー時（status・skills未入力）は400を返却
// - プロフィールがなければ作成し、あれば入力のある項目のみ更新
// - 成功時は200と保存後のプロフィールを返却
func (h *ProfileHandler) Upsert(c *gin.Context) {
	var req dto.ProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("profile validation failed", "error", err)
		c.JSON(http.StatusBadRequest, api.ValidationErrors(err, &req))
		return
	}

	p, err := h.profiles.Upsert(c.Request.Context(), jwtmw.UserID(c), usecase.ProfileInput{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		Status:         req.Status,
		GitHubUsername: req.GitHubUsername,
		Skills:         req.Skills,
		Social: entity.Social{
			YouTube:   req.YouTube,
			Twitter:   req.Twitter,
			Facebook:  req.Facebook,
			LinkedIn:  req.LinkedIn,
			Instagram: req.Instagram,
		},
	})
	if err != nil {
		serverError(c, "failed to save profile", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProfileRes(p))
}

// List は GET /api/profile を処理し、全プロフィールを返します。
func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.profiles.List(c.Request.Context())
	if err != nil {
		serverError(c, "failed to list profiles", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProfileList(profiles))
}

// GetByUser は GET /api/profile/user/:user_id を処理します。
// 不正なIDやプロフィールが存在しない場合は400 "Profile not found" を返却します。
func (h *ProfileHandler) GetByUser(c *gin.Context) {
	p, err := h.profiles.GetByUser(c.Request.Context(), c.Param("user_id"))
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		c.JSON(http.StatusBadRequest, api.MessageResponse{Msg: "Profile not found"})
		return
	case err != nil:
		serverError(c, "failed to load profile", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProfileRes(p))
}

// Delete は DELETE /api/profile を処理し、プロフィールとアカウントを削除します。
func (h *ProfileHandler) Delete(c *gin.Context) {
	userID := jwtmw.UserID(c)
	if err := h.profiles.DeleteAccount(c.Request.Context(), userID); err != nil {
		serverError(c, "failed to delete account", err)
		return
	}
	slog.Info("account deleted", "user_id", userID)
	c.JSON(http.StatusOK, api.MessageResponse{Msg: "User deleted"})
}

// AddExperience は PUT /api/profile/experience を処理します。
// - バリデーションエラー時、日付が解析できない場合は400を返却
// - プロフィールがない場合は404を返却
// - 成功時は200と更新後のプロフィールを返却
func (h *ProfileHandler) AddExperience(c *gin.Context) {
	var req dto.ExperienceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("experience validation failed", "error", err)
		c.JSON(http.StatusBadRequest, api.ValidationErrors(err, &req))
		return
	}

	in := usecase.ExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Current:     req.Current,
		Description: req.Description,
	}
	var badDates []api.FieldError
	from, ok := parseDate(req.From)
	if !ok {
		badDates = append(badDates, api.FieldError{Msg: "From Date is invalid", Param: "from", Location: "body"})
	}
	in.From = from
	if req.To != "" {
		to, ok := parseDate(req.To)
		if !ok {
			badDates = append(badDates, api.FieldError{Msg: "To Date is invalid", Param: "to", Location: "body"})
		}
		in.To = &to
	}
	if len(badDates) > 0 {
		c.JSON(http.StatusBadRequest, api.ErrorsResponse{Errors: badDates})
		return
	}

	p, err := h.profiles.AddExperience(c.Request.Context(), jwtmw.UserID(c), in)
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, api.MessageResponse{Msg: "There is no profile for this user"})
		return
	case err != nil:
		serverError(c, "failed to add experience", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProfileRes(p))
}

// RemoveExperience は DELETE /api/profile/experience/:exp_id を処理します。
// プロフィールまたは職歴が見つからない場合は404を返却します。
func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	p, err := h.profiles.RemoveExperience(c.Request.Context(), jwtmw.UserID(c), c.Param("exp_id"))
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, api.MessageResponse{Msg: "There is no profile for this user"})
		return
	case errors.Is(err, domain.ErrExperienceNotFound):
		c.JSON(http.StatusNotFound, api.MessageResponse{Msg: "Experience not found"})
		return
	case err != nil:
		serverError(c, "failed to remove experience", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProfileRes(p))
}
