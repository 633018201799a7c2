// Package adapters はGORMによる認証情報ストアを提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"devconnector/internal/feature/auth/domain"
	"devconnector/internal/feature/auth/domain/entity"
	"devconnector/internal/feature/auth/usecase"
)

// userGorm はGORMを使ってusecase.UserRepositoryを実装します。
type userGorm struct {
	db *gorm.DB
}

// userGormがUserRepositoryを実装していることをコンパイル時に確認
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserRepository はdbを使う認証情報ストアを生成します。
func NewUserRepository(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create はユーザーを挿入します。
// emailのユニークインデックス違反はdomain.ErrUserAlreadyExistsとして返します（接続側でTranslateErrorが必要）。
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail はメールアドレスでユーザーを取得します。見つからない場合はdomain.ErrUserNotFoundを返します。
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID はIDでユーザーを取得します。見つからない場合はdomain.ErrUserNotFoundを返します。
func (r *userGorm) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByIDs はidsに一致するユーザーをIDをキーとするマップで返します。存在しないIDは無視します。
func (r *userGorm) FindByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error) {
	out := make(map[string]*entity.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var users []entity.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for i := range users {
		out[users[i].ID] = &users[i]
	}
	return out, nil
}

// Delete はIDでユーザーを削除します。
func (r *userGorm) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.User{}).Error
}
