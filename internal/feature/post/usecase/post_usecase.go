// Package usecase はフィード（投稿・いいね・コメント）のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"devconnector/internal/feature/post/domain"
	"devconnector/internal/feature/post/domain/entity"
	"devconnector/internal/shared/ordered"
)

// PostRepository は投稿全体を永続化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error

	// FindByID は該当する投稿がない場合domain.ErrPostNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.Post, error)

	// List は全投稿を新しい順で返します。
	List(ctx context.Context) ([]entity.Post, error)

	// Save は投稿全体を上書きします。
	Save(ctx context.Context, p *entity.Post) error

	Delete(ctx context.Context, id string) error
}

// AuthorLookup は投稿・コメントに書き込む投稿者のスナップショットを解決します。
type AuthorLookup interface {
	// Author はアカウントが存在しない場合domain.ErrAuthorNotFoundを返します。
	Author(ctx context.Context, userID string) (entity.Author, error)
}

// Option はPostUsecaseの設定を変更します。
type Option func(*PostUsecase)

// WithClock はコメント日時に使う時刻源を設定します。
func WithClock(now func() time.Time) Option {
	return func(u *PostUsecase) { u.now = now }
}

// WithIDGenerator はいいね・コメントのID生成関数を設定します。
func WithIDGenerator(newID func() string) Option {
	return func(u *PostUsecase) { u.newID = newID }
}

// PostUsecase は投稿操作を実装します。
type PostUsecase struct {
	posts   PostRepository
	authors AuthorLookup
	now     func() time.Time
	newID   func() string
}

// NewPostUsecase はPostUsecaseの新しいインスタンスを生成します。
// 既定では現在時刻とランダムなUUIDを使い、optsで差し替えられます。
func NewPostUsecase(posts PostRepository, authors AuthorLookup, opts ...Option) *PostUsecase {
	u := &PostUsecase{
		posts:   posts,
		authors: authors,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Create は投稿者の名前とアバターのスナップショット付きで新しい投稿を作成します。
func (u *PostUsecase) Create(ctx context.Context, userID, text string) (*entity.Post, error) {
	author, err := u.authors.Author(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load author: %w", err)
	}

	p := &entity.Post{
		UserID:   userID,
		Text:     text,
		Name:     author.Name,
		Avatar:   author.Avatar,
		Likes:    []entity.Like{},
		Comments: []entity.Comment{},
		Date:     u.now(),
	}
	if err := u.posts.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return p, nil
}

// List は全投稿を新しい順で返します。
func (u *PostUsecase) List(ctx context.Context) ([]entity.Post, error) {
	posts, err := u.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// Get は投稿を1件返します。
// UUIDでないIDはdomain.ErrPostNotFoundとして扱います。
func (u *PostUsecase) Get(ctx context.Context, postID string) (*entity.Post, error) {
	if _, err := uuid.Parse(postID); err != nil {
		return nil, domain.ErrPostNotFound
	}
	return u.posts.FindByID(ctx, postID)
}

// Delete はuserIDが所有する投稿を削除します。
// 投稿者以外はdomain.ErrNotAuthorizedです。
func (u *PostUsecase) Delete(ctx context.Context, userID, postID string) error {
	p, err := u.Get(ctx, postID)
	if err != nil {
		return err
	}
	if p.UserID != userID {
		return domain.ErrNotAuthorized
	}
	if err := u.posts.Delete(ctx, p.ID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

// Like はいいねリストの先頭にuserIDを追加し、更新後のリストを返します。
// 既にいいね済みの場合はdomain.ErrAlreadyLikedです。
func (u *PostUsecase) Like(ctx context.Context, userID, postID string) ([]entity.Like, error) {
	p, err := u.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if ordered.Contains(p.Likes, likedBy(userID)) {
		return nil, domain.ErrAlreadyLiked
	}

	p.Likes = ordered.Prepend(p.Likes, entity.Like{ID: u.newID(), User: userID})
	if err := u.posts.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save like: %w", err)
	}
	return p.Likes, nil
}

// Unlike はuserIDのいいねを取り除き、残りのリストを返します。
// いいねしていない場合はdomain.ErrNotLikedです。
func (u *PostUsecase) Unlike(ctx context.Context, userID, postID string) ([]entity.Like, error) {
	p, err := u.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	rest, ok := ordered.RemoveFirst(p.Likes, likedBy(userID))
	if !ok {
		return nil, domain.ErrNotLiked
	}
	p.Likes = rest

	if err := u.posts.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save unlike: %w", err)
	}
	return p.Likes, nil
}

// AddComment はコメントリストの先頭に新しいコメントを追加し、更新後のリストを返します。
func (u *PostUsecase) AddComment(ctx context.Context, userID, postID, text string) ([]entity.Comment, error) {
	p, err := u.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	author, err := u.authors.Author(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load author: %w", err)
	}

	p.Comments = ordered.Prepend(p.Comments, entity.Comment{
		ID:     u.newID(),
		User:   userID,
		Text:   text,
		Name:   author.Name,
		Avatar: author.Avatar,
		Date:   u.now(),
	})
	if err := u.posts.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}
	return p.Comments, nil
}

// RemoveComment はuserIDが書いたコメントを削除し、残りのリストを返します。
// - コメントが見つからない場合はdomain.ErrCommentNotFound
// - 他のユーザーのコメントはdomain.ErrNotAuthorized
func (u *PostUsecase) RemoveComment(ctx context.Context, userID, postID, commentID string) ([]entity.Comment, error) {
	p, err := u.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	idx := ordered.IndexOf(p.Comments, func(c entity.Comment) bool { return c.ID == commentID })
	if idx < 0 {
		return nil, domain.ErrCommentNotFound
	}
	if p.Comments[idx].User != userID {
		return nil, domain.ErrNotAuthorized
	}
	p.Comments, _ = ordered.RemoveAt(p.Comments, idx)

	if err := u.posts.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save comment removal: %w", err)
	}
	return p.Comments, nil
}

func likedBy(userID string) func(entity.Like) bool {
	return func(l entity.Like) bool { return l.User == userID }
}

