// Package handler は投稿・いいね・コメントのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"devconnector/internal/api"
	"devconnector/internal/feature/post/domain"
	"devconnector/internal/feature/post/domain/entity"
	"devconnector/internal/feature/post/transport/http/dto"
	jwtmw "devconnector/internal/platform/jwt"
)

// PostUsecase はハンドラーが使うフィード操作を定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type PostUsecase interface {
	Create(ctx context.Context, userID, text string) (*entity.Post, error)
	List(ctx context.Context) ([]entity.Post, error)
	Get(ctx context.Context, postID string) (*entity.Post, error)
	Delete(ctx context.Context, userID, postID string) error
	Like(ctx context.Context, userID, postID string) ([]entity.Like, error)
	Unlike(ctx context.Context, userID, postID string) ([]entity.Like, error)
	AddComment(ctx context.Context, userID, postID, text string) ([]entity.Comment, error)
	RemoveComment(ctx context.Context, userID, postID, commentID string) ([]entity.Comment, error)
}

// PostHandler は /api/posts 配下のHTTPリクエストを処理します。
type PostHandler struct {
	posts PostUsecase
}

// NewPostHandler はPostHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からPostUsecaseを注入します。
func NewPostHandler(posts PostUsecase) *PostHandler {
	return &PostHandler{posts: posts}
}

// writeError はドメインエラーをHTTPレスポンスに変換します。
// - 投稿・コメント・投稿者が見つからない場合は404
// - 所有者以外の操作は401
// - いいねの重複・未いいねは400
// - それ以外は500（詳細はログのみに出力）
func writeError(c *gin.Context, err error) {
	var (
		status int
		msg    string
	)
	switch {
	case errors.Is(err, domain.ErrPostNotFound):
		status, msg = http.StatusNotFound, "Post not found"
	case errors.Is(err, domain.ErrCommentNotFound):
		status, msg = http.StatusNotFound, "Comment does not exist"
	case errors.Is(err, domain.ErrNotAuthorized):
		status, msg = http.StatusUnauthorized, "User not authorized"
	case errors.Is(err, domain.ErrAlreadyLiked):
		status, msg = http.StatusBadRequest, "Post already liked"
	case errors.Is(err, domain.ErrNotLiked):
		status, msg = http.StatusBadRequest, "Post has not yet been liked"
	case errors.Is(err, domain.ErrAuthorNotFound):
		status, msg = http.StatusNotFound, "User not found"
	default:
		slog.Error("post request failed", "error", err, "route", c.FullPath())
		c.JSON(http.StatusInternalServerError, api.ServerError)
		return
	}
	c.JSON(status, api.MessageResponse{Msg: msg})
}

// bindText はtextを含むリクエストをバインドし、失敗時は400を書き込みます。
func bindText(c *gin.Context) (string, bool) {
	var req dto.TextReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("post validation failed", "error", err)
		c.JSON(http.StatusBadRequest, api.ValidationErrors(err, &req))
		return "", false
	}
	return req.Text, true
}

// Create は POST /api/posts を処理します。
// - バリデーションエラー時は400を返却
// - 成功時は200と作成した投稿を返却
func (h *PostHandler) Create(c *gin.Context) {
	text, ok := bindText(c)
	if !ok {
		return
	}
	p, err := h.posts.Create(c.Request.Context(), jwtmw.UserID(c), text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPostRes(p))
}

// List は GET /api/posts を処理し、全投稿を新しい順で返します。
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPostList(posts))
}

// Get は GET /api/posts/:post_id を処理します。
func (h *PostHandler) Get(c *gin.Context) {
	p, err := h.posts.Get(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPostRes(p))
}

// Delete は DELETE /api/posts/:post_id を処理します。削除できるのは投稿者のみです。
func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.posts.Delete(c.Request.Context(), jwtmw.UserID(c), c.Param("post_id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Msg: "Post removed"})
}

// Like は PUT /api/posts/like/:id を処理し、更新後のいいねリストを返します。
func (h *PostHandler) Like(c *gin.Context) {
	likes, err := h.posts.Like(c.Request.Context(), jwtmw.UserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewLikes(likes))
}

// Unlike は PUT /api/posts/unlike/:id を処理し、残りのいいねリストを返します。
func (h *PostHandler) Unlike(c *gin.Context) {
	likes, err := h.posts.Unlike(c.Request.Context(), jwtmw.UserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewLikes(likes))
}

// AddComment は POST /api/posts/comment/:id を処理し、更新後のコメントリストを返します。
func (h *PostHandler) AddComment(c *gin.Context) {
	text, ok := bindText(c)
	if !ok {
		return
	}
	comments, err := h.posts.AddComment(c.Request.Context(), jwtmw.UserID(c), c.Param("id"), text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewComments(comments))
}

// RemoveComment は DELETE /api/posts/comment/:id/:comment_id を処理し、残りのコメントリストを返します。
func (h *PostHandler) RemoveComment(c *gin.Context) {
	comments, err := h.posts.RemoveComment(c.Request.Context(), jwtmw.UserID(c), c.Param("id"), c.Param("comment_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewComments(comments))
}
