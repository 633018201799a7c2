package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devconnector/internal/feature/post/domain"
	"devconnector/internal/feature/post/domain/entity"
	jwtmw "devconnector/internal/platform/jwt"
)

// mockPostUsecase is a mock implementation of the PostUsecase interface.
// Unset functions fail the call with an error.
type mockPostUsecase struct {
	CreateFunc        func(ctx context.Context, userID, text string) (*entity.Post, error)
	ListFunc          func(ctx context.Context) ([]entity.Post, error)
	GetFunc           func(ctx context.Context, postID string) (*entity.Post, error)
	DeleteFunc        func(ctx context.Context, userID, postID string) error
	LikeFunc          func(ctx context.Context, userID, postID string) ([]entity.Like, error)
	UnlikeFunc        func(ctx context.Context, userID, postID string) ([]entity.Like, error)
	AddCommentFunc    func(ctx context.Context, userID, postID, text string) ([]entity.Comment, error)
	RemoveCommentFunc func(ctx context.Context, userID, postID, commentID string) ([]entity.Comment, error)
}

var errUnexpectedCall = errors.New("unexpected call")

func (m *mockPostUsecase) Create(ctx context.Context, userID, text string) (*entity.Post, error) {
	if m.CreateFunc == nil {
		return nil, errUnexpectedCall
	}
	return m.CreateFunc(ctx, userID, text)
}

func (m *mockPostUsecase) List(ctx context.Context) ([]entity.Post, error) {
	if m.ListFunc == nil {
		return nil, errUnexpectedCall
	}
	return m.ListFunc(ctx)
}

func (m *mockPostUsecase) Get(ctx context.Context, postID string) (*entity.Post, error) {
	if m.GetFunc == nil {
		return nil, errUnexpectedCall
	}
	return m.GetFunc(ctx, postID)
}

func (m *mockPostUsecase) Delete(ctx context.Context, userID, postID string) error {
	if m.DeleteFunc == nil {
		return errUnexpectedCall
	}
	return m.DeleteFunc(ctx, userID, postID)
}

func (m *mockPostUsecase) Like(ctx context.Context, userID, postID string) ([]entity.Like, error) {
	if m.LikeFunc == nil {
		return nil, errUnexpectedCall
	}
	return m.LikeFunc(ctx, userID, postID)
}

func (m *mockPostUsecase) Unlike(ctx context.Context, userID, postID string) ([]entity.Like, error) {
	if m.UnlikeFunc == nil {
		return nil, errUnexpectedCall
	}
	return m.UnlikeFunc(ctx, userID, postID)
}

func (m *mockPostUsecase) AddComment(ctx context.Context, userID, postID, text string) ([]entity.Comment, error) {
	if m.AddCommentFunc == nil {
		return nil, errUnexpectedCall
	}
	return m.AddCommentFunc(ctx, userID, postID, text)
}

func (m *mockPostUsecase) RemoveComment(ctx context.Context, userID, postID, commentID string) ([]entity.Comment, error) {
	if m.RemoveCommentFunc == nil {
		return nil, errUnexpectedCall
	}
	return m.RemoveCommentFunc(ctx, userID, postID, commentID)
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func newRouter(h *PostHandler) *gin.Engine {
	r := gin.New()
	g := r.Group("/api/posts", func(c *gin.Context) { c.Set(jwtmw.ContextUserID, "u1") })
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:post_id", h.Get)
	g.DELETE("/:post_id", h.Delete)
	g.PUT("/like/:id", h.Like)
	g.PUT("/unlike/:id", h.Unlike)
	g.POST("/comment/:id", h.AddComment)
	g.DELETE("/comment/:id/:comment_id", h.RemoveComment)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPostHandler_Create(t *testing.T) {
	t.Run("success: empty lists rendered as arrays", func(t *testing.T) {
		h := NewPostHandler(&mockPostUsecase{CreateFunc: func(ctx context.Context, userID, text string) (*entity.Post, error) {
			assert.Equal(t, "u1", userID)
			return &entity.Post{ID: "p1", UserID: userID, Text: text, Name: "Alice"}, nil
		}})

		w := do(t, newRouter(h), http.MethodPost, "/api/posts", gin.H{"text": "hello"})

		assert.Equal(t, http.StatusOK, w.Code)
		var got map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "hello", got["text"])
		assert.Equal(t, "u1", got["user"])
		assert.Equal(t, []any{}, got["likes"])
		assert.Equal(t, []any{}, got["comments"])
	})

	t.Run("failure: text missing", func(t *testing.T) {
		w := do(t, newRouter(NewPostHandler(&mockPostUsecase{})), http.MethodPost, "/api/posts", gin.H{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"errors":[{"msg":"Text is required","param":"text","location":"body"}]}`, w.Body.String())
	})
}

func TestPostHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name           string
		method, path   string
		body           any
		mock           *mockPostUsecase
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "get: not found",
			method: http.MethodGet, path: "/api/posts/bogus",
			mock: &mockPostUsecase{GetFunc: func(ctx context.Context, postID string) (*entity.Post, error) {
				return nil, domain.ErrPostNotFound
			}},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"msg":"Post not found"}`,
		},
		{
			name:   "delete: not owner",
			method: http.MethodDelete, path: "/api/posts/p1",
			mock: &mockPostUsecase{DeleteFunc: func(ctx context.Context, userID, postID string) error {
				return domain.ErrNotAuthorized
			}},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"msg":"User not authorized"}`,
		},
		{
			name:   "delete: success",
			method: http.MethodDelete, path: "/api/posts/p1",
			mock: &mockPostUsecase{DeleteFunc: func(ctx context.Context, userID, postID string) error {
				return nil
			}},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"msg":"Post removed"}`,
		},
		{
			name:   "like: already liked",
			method: http.MethodPut, path: "/api/posts/like/p1",
			mock: &mockPostUsecase{LikeFunc: func(ctx context.Context, userID, postID string) ([]entity.Like, error) {
				return nil, domain.ErrAlreadyLiked
			}},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"msg":"Post already liked"}`,
		},
		{
			name:   "like: success returns likes",
			method: http.MethodPut, path: "/api/posts/like/p1",
			mock: &mockPostUsecase{LikeFunc: func(ctx context.Context, userID, postID string) ([]entity.Like, error) {
				return []entity.Like{{ID: "l1", User: userID}}, nil
			}},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"_id":"l1","user":"u1"}]`,
		},
		{
			name:   "unlike: not liked",
			method: http.MethodPut, path: "/api/posts/unlike/p1",
			mock: &mockPostUsecase{UnlikeFunc: func(ctx context.Context, userID, postID string) ([]entity.Like, error) {
				return nil, domain.ErrNotLiked
			}},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"msg":"Post has not yet been liked"}`,
		},
		{
			name:   "unlike: last like removed gives empty array",
			method: http.MethodPut, path: "/api/posts/unlike/p1",
			mock: &mockPostUsecase{UnlikeFunc: func(ctx context.Context, userID, postID string) ([]entity.Like, error) {
				return nil, nil
			}},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name:   "comment: missing post",
			method: http.MethodPost, path: "/api/posts/comment/p1",
			body: gin.H{"text": "nice"},
			mock: &mockPostUsecase{AddCommentFunc: func(ctx context.Context, userID, postID, text string) ([]entity.Comment, error) {
				return nil, domain.ErrPostNotFound
			}},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"msg":"Post not found"}`,
		},
		{
			name:   "comment: text missing",
			method: http.MethodPost, path: "/api/posts/comment/p1",
			body:           gin.H{"text": ""},
			mock:           &mockPostUsecase{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"errors":[{"msg":"Text is required","param":"text","location":"body"}]}`,
		},
		{
			name:   "remove comment: missing",
			method: http.MethodDelete, path: "/api/posts/comment/p1/c9",
			mock: &mockPostUsecase{RemoveCommentFunc: func(ctx context.Context, userID, postID, commentID string) ([]entity.Comment, error) {
				assert.Equal(t, "p1", postID)
				assert.Equal(t, "c9", commentID)
				return nil, domain.ErrCommentNotFound
			}},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"msg":"Comment does not exist"}`,
		},
		{
			name:   "remove comment: not owner",
			method: http.MethodDelete, path: "/api/posts/comment/p1/c1",
			mock: &mockPostUsecase{RemoveCommentFunc: func(ctx context.Context, userID, postID, commentID string) ([]entity.Comment, error) {
				return nil, domain.ErrNotAuthorized
			}},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"msg":"User not authorized"}`,
		},
		{
			name:   "list: unexpected error hides detail",
			method: http.MethodGet, path: "/api/posts",
			mock: &mockPostUsecase{ListFunc: func(ctx context.Context) ([]entity.Post, error) {
				return nil, errors.New("pq: connection refused")
			}},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"msg":"Server Error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, newRouter(NewPostHandler(tt.mock)), tt.method, tt.path, tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
