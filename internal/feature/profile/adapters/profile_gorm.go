// Package adapters はGORMによるプロフィールストアを提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"devconnector/internal/feature/profile/domain"
	"devconnector/internal/feature/profile/domain/entity"
	"devconnector/internal/feature/profile/usecase"
)

// profileGorm はProfileRepositoryのGORM実装です。
// Experience等のネスト項目はJSONカラムとして1行に保存します。
type profileGorm struct {
	db *gorm.DB
}

var _ usecase.ProfileRepository = (*profileGorm)(nil)

// NewProfileRepository はdbを使うプロフィールストアを生成します。
func NewProfileRepository(db *gorm.DB) *profileGorm {
	return &profileGorm{db: db}
}

// FindByUser はユーザーIDでプロフィールを取得します。
// 見つからない場合はdomain.ErrProfileNotFoundを返します。
func (r *profileGorm) FindByUser(ctx context.Context, userID string) (*entity.Profile, error) {
	var p entity.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List は全プロフィールを作成日時の昇順で返します。
func (r *profileGorm) List(ctx context.Context) ([]entity.Profile, error) {
	var profiles []entity.Profile
	if err := r.db.WithContext(ctx).Order("date ASC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// Save は行全体を書き込みます。同一プロフィールへの同時書き込みは後勝ちです。
// 新規行がuser_idのユニークインデックスに違反した場合はdomain.ErrProfileExistsを返します。
func (r *profileGorm) Save(ctx context.Context, p *entity.Profile) error {
	if p == nil {
		return errors.New("profile is nil")
	}
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrProfileExists
		}
		return err
	}
	return nil
}

// DeleteByUser はユーザーのプロフィールを削除します。存在しなくてもエラーになりません。
func (r *profileGorm) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.Profile{}).Error
}
