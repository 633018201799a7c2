// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"devconnector/internal/feature/auth/domain"
	"devconnector/internal/feature/auth/domain/entity"
)

// bcryptCost は既存パスワードハッシュのソルトラウンド数に合わせています。
const bcryptCost = 10

// maxPasswordBytes はbcryptが受け付ける入力の最大バイト数です。
const maxPasswordBytes = 72

// dummyHash は未登録メールアドレスでのログイン時に比較対象として使用します。
// アカウントの有無で応答時間が変わらないようにするためです。
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository は認証情報ストアを抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新規ユーザーを永続化します。
	// メールアドレスが使用済みの場合はdomain.ErrUserAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は該当ユーザーがいない場合domain.ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は該当ユーザーがいない場合domain.ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// Delete はユーザーを削除します。存在しないユーザーの削除はエラーになりません。
	Delete(ctx context.Context, id string) error
}

// TokenIssuer は署名済みの認証トークンを発行します。
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// AvatarFunc はメールアドレスからアバターURLを生成します。
type AvatarFunc func(email string) string

// AuthUsecase はユーザー登録・ログイン・本人情報取得を実装します。
type AuthUsecase struct {
	users  UserRepository
	tokens TokenIssuer
	avatar AvatarFunc
}

// NewAuthUsecase はAuthUsecaseの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、リポジトリ・トークン発行・アバター生成を外部から注入します。
func NewAuthUsecase(users UserRepository, tokens TokenIssuer, avatar AvatarFunc) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		tokens: tokens,
		avatar: avatar,
	}
}

// NormalizeEmail は保存・検索の前にメールアドレスを小文字化し前後の空白を除去します。
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register はパスワードをハッシュ化してユーザーを作成し、トークンを返します。
// - メールアドレスを正規化して重複チェック
// - 72バイトを超えるパスワードはdomain.ErrPasswordTooLong
// - bcryptでハッシュ化し、アバターURLを付与して保存
// - 作成したユーザーIDでトークンを発行
func (u *AuthUsecase) Register(ctx context.Context, name, email, password string) (string, error) {
	email = NormalizeEmail(email)

	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return "", domain.ErrUserAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", fmt.Errorf("failed to look up email: %w", err)
	}

	if len(password) > maxPasswordBytes {
		return "", domain.ErrPasswordTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.ErrPasswordTooLong
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: string(hashed),
	}
	if u.avatar != nil {
		user.Avatar = u.avatar(email)
	}

	// 同時登録はユニークインデックスで検出される
	if err := u.users.Create(ctx, user); err != nil {
		return "", err
	}

	return u.issue(user.ID)
}

// Login は認証情報を検証し、成功時にトークンを返します。
// メールアドレスが未登録でもbcryptの比較は必ず実行します。
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return "", fmt.Errorf("failed to look up email: %w", err)
	}

	passwordHash := dummyHash
	if user != nil {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if user == nil || compareErr != nil {
		return "", domain.ErrInvalidCredentials
	}

	return u.issue(user.ID)
}

// Me は呼び出し元のアカウントを返します。パスワードハッシュは空にします。
func (u *AuthUsecase) Me(ctx context.Context, userID string) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (u *AuthUsecase) issue(userID string) (string, error) {
	token, err := u.tokens.Issue(userID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
