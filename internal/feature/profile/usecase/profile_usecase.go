// Package usecase はプロフィール管理のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"devconnector/internal/feature/profile/domain"
	"devconnector/internal/feature/profile/domain/entity"
	"devconnector/internal/shared/ordered"
)

// ProfileRepository はプロフィール全体を永続化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ProfileRepository interface {
	// FindByUser はプロフィールがない場合domain.ErrProfileNotFoundを返します。
	FindByUser(ctx context.Context, userID string) (*entity.Profile, error)

	// List は全プロフィールを返します。
	List(ctx context.Context) ([]entity.Profile, error)

	// Save はプロフィールを挿入、または全体を上書きします。
	// 同じユーザーのプロフィールが既にある状態で新規挿入した場合はdomain.ErrProfileExistsを返します。
	Save(ctx context.Context, p *entity.Profile) error

	// DeleteByUser はユーザーのプロフィールがあれば削除します。
	DeleteByUser(ctx context.Context, userID string) error
}

// UserDirectory はprofileフィーチャーから見たアカウントストアです。
type UserDirectory interface {
	// Owners はidsに対応する公開アカウント情報を返します。存在しないIDはマップに含まれません。
	Owners(ctx context.Context, ids []string) (map[string]entity.Owner, error)

	// Delete はアカウントを削除します。
	Delete(ctx context.Context, userID string) error
}

// ProfileInput は作成・更新リクエストの項目です。
// 空の項目は保存済みの値を変更しません。
type ProfileInput struct {
	Company        string
	Website        string
	Location       string
	Bio            string
	Status         string
	GitHubUsername string
	// Skills はカンマ区切りのリストです。
	Skills string
	Social entity.Social
}

// ExperienceInput は追加する職歴エントリーです。
type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

// ProfileUsecase はプロフィール操作を実装します。
type ProfileUsecase struct {
	profiles ProfileRepository
	users    UserDirectory
	newID    func() string
}

// NewProfileUsecase はProfileUsecaseの新しいインスタンスを生成します。
// newIDは職歴IDの生成に使い、nilの場合はランダムなUUIDを使います。
func NewProfileUsecase(profiles ProfileRepository, users UserDirectory, newID func() string) *ProfileUsecase {
	if newID == nil {
		newID = uuid.NewString
	}
	return &ProfileUsecase{profiles: profiles, users: users, newID: newID}
}

// ParseSkills はカンマ区切りのリストを分割し、前後の空白を除去して空の要素を取り除きます。
func ParseSkills(raw string) []string {
	trimmed := lo.Map(strings.Split(raw, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
	return lo.Compact(trimmed)
}

// GetMine は呼び出し元のプロフィールを返します。
func (u *ProfileUsecase) GetMine(ctx context.Context, userID string) (*entity.Profile, error) {
	p, err := u.profiles.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.withOwner(ctx, p)
}

// GetByUser は任意のユーザーのプロフィールを返します。
// UUIDでないIDはdomain.ErrProfileNotFoundとして扱います。
func (u *ProfileUsecase) GetByUser(ctx context.Context, userID string) (*entity.Profile, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrProfileNotFound
	}
	return u.GetMine(ctx, userID)
}

// List は所有者情報付きで全プロフィールを返します。
func (u *ProfileUsecase) List(ctx context.Context) ([]entity.Profile, error) {
	profiles, err := u.profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	if len(profiles) == 0 {
		return profiles, nil
	}

	ids := lo.Uniq(lo.Map(profiles, func(p entity.Profile, _ int) string { return p.UserID }))
	owners, err := u.users.Owners(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile owners: %w", err)
	}
	for i := range profiles {
		if o, ok := owners[profiles[i].UserID]; ok {
			profiles[i].Owner = &o
		}
	}
	return profiles, nil
}

// Upsert は呼び出し元のプロフィールを作成、または入力のある項目のみ更新します。
// - プロフィールがなければ空のSkills/Experienceで新規作成
// - 初回作成が同時に行われた場合は保存済みの行を読み直して1回だけ再適用
func (u *ProfileUsecase) Upsert(ctx context.Context, userID string, in ProfileInput) (*entity.Profile, error) {
	p, err := u.profiles.FindByUser(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		p = &entity.Profile{UserID: userID, Skills: []string{}, Experience: []entity.Experience{}}
	case err != nil:
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	apply(p, in)

	err = u.profiles.Save(ctx, p)
	if errors.Is(err, domain.ErrProfileExists) {
		// 同時リクエストが先に作成したため、その行に対して適用し直す
		if p, err = u.profiles.FindByUser(ctx, userID); err != nil {
			return nil, fmt.Errorf("failed to reload profile: %w", err)
		}
		apply(p, in)
		err = u.profiles.Save(ctx, p)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return u.withOwner(ctx, p)
}

// apply は入力のある項目だけをpに反映します。
func apply(p *entity.Profile, in ProfileInput) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&p.Company, in.Company)
	set(&p.Website, in.Website)
	set(&p.Location, in.Location)
	set(&p.Bio, in.Bio)
	set(&p.Status, in.Status)
	set(&p.GitHubUsername, in.GitHubUsername)
	if in.Skills != "" {
		p.Skills = ParseSkills(in.Skills)
	}
	p.Social = p.Social.Merge(in.Social)
}

// DeleteAccount は呼び出し元のプロフィールを削除し、続けてアカウントを削除します。
// ユーザーが書いた投稿は残します。
func (u *ProfileUsecase) DeleteAccount(ctx context.Context, userID string) error {
	if err := u.profiles.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if err := u.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// AddExperience は呼び出し元の職歴リストの先頭に新しいエントリーを追加します。
func (u *ProfileUsecase) AddExperience(ctx context.Context, userID string, in ExperienceInput) (*entity.Profile, error) {
	p, err := u.profiles.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.Experience = ordered.Prepend(p.Experience, entity.Experience{
		ID:          u.newID(),
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	})

	if err := u.profiles.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return u.withOwner(ctx, p)
}

// RemoveExperience はIDで職歴エントリーを1件削除します。
// IDが見つからない場合はプロフィールを変更せずdomain.ErrExperienceNotFoundを返します。
func (u *ProfileUsecase) RemoveExperience(ctx context.Context, userID, expID string) (*entity.Profile, error) {
	p, err := u.profiles.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	rest, ok := ordered.RemoveFirst(p.Experience, func(e entity.Experience) bool { return e.ID == expID })
	if !ok {
		return nil, domain.ErrExperienceNotFound
	}
	p.Experience = rest

	if err := u.profiles.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return u.withOwner(ctx, p)
}

func (u *ProfileUsecase) withOwner(ctx context.Context, p *entity.Profile) (*entity.Profile, error) {
	owners, err := u.users.Owners(ctx, []string{p.UserID})
	if err != nil {
		return nil, fmt.Errorf("failed to load profile owner: %w", err)
	}
	if o, ok := owners[p.UserID]; ok {
		p.Owner = &o
	}
	return p, nil
}
