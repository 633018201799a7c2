// Package adapters はGORMによる投稿ストアを提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"devconnector/internal/feature/post/domain"
	"devconnector/internal/feature/post/domain/entity"
	"devconnector/internal/feature/post/usecase"
)

// postGorm はPostRepositoryのGORM実装です。
// いいね・コメントはJSONカラムとして投稿と同じ行に保存します。
type postGorm struct {
	db *gorm.DB
}

var _ usecase.PostRepository = (*postGorm)(nil)

// NewPostRepository はdbを使う投稿ストアを生成します。
func NewPostRepository(db *gorm.DB) *postGorm {
	return &postGorm{db: db}
}

// Create は新しい投稿を挿入します。IDはBeforeCreateで採番されます。
func (r *postGorm) Create(ctx context.Context, p *entity.Post) error {
	if p == nil {
		return errors.New("post is nil")
	}
	return r.db.WithContext(ctx).Create(p).Error
}

// FindByID はIDで投稿を取得します。見つからない場合はdomain.ErrPostNotFoundを返します。
func (r *postGorm) FindByID(ctx context.Context, id string) (*entity.Post, error) {
	var p entity.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List は全投稿を作成日時の降順で返します。
func (r *postGorm) List(ctx context.Context) ([]entity.Post, error) {
	var posts []entity.Post
	if err := r.db.WithContext(ctx).Order("date DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Save はネストしたリストを含め行全体を書き込みます。
// バージョンチェックはないため、同一投稿への同時更新は後勝ちです。
func (r *postGorm) Save(ctx context.Context, p *entity.Post) error {
	if p == nil {
		return errors.New("post is nil")
	}
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *postGorm) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Post{}).Error
}
