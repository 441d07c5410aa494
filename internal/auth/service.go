package auth

import (
	"context"
	"errors"
	"time"

	"github.com/yourusername/intellect-ai/internal/users"
)

// Service は登録・ログインのユースケースをまとめた構造体です。
// ストアとトークンサービス以外の状態は持ちません。
type Service struct {
	store  users.Store
	tokens *TokenService
}

// NewService は Service を作成します。
func NewService(store users.Store, tokens *TokenService) *Service {
	return &Service{
		store:  store,
		tokens: tokens,
	}
}

// Signup は新規ユーザーを登録し、署名付きトークンを発行します。
// メールアドレスかユーザー名が既に使われている場合は ALREADY_REGISTERED で
// 失敗し、部分的な状態は一切作りません。事前チェックとストアの一意
// インデックスの両方で重複を検出します（正はインデックス側）。
func (s *Service) Signup(ctx context.Context, username, email, password string) (string, string, error) {
	existing, err := s.store.FindByEmailOrUsername(ctx, email, username)
	if err != nil {
		return "", "", err
	}
	if existing != nil {
		return "", "", newError(CodeAlreadyRegistered, "Email or username already registered", nil)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", "", err
	}

	user := &users.User{
		Username:  username,
		Email:     email,
		Password:  hash,
		CreatedAt: time.Now().UTC(),
	}
	userID, err := s.store.Insert(ctx, user)
	if err != nil {
		if errors.Is(err, users.ErrDuplicate) {
			return "", "", newError(CodeAlreadyRegistered, "Email or username already registered", err)
		}
		return "", "", err
	}

	token, err := s.tokens.Mint(userID, email)
	if err != nil {
		return "", "", err
	}
	return userID, token, nil
}

// Login は資格情報を検証し、署名付きトークンを発行します。
// メールアドレスが存在しない場合もパスワードが違う場合も同一の
// INVALID_CREDENTIALS を返します。アカウントの存在を推測させないためです。
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil || !VerifyPassword(password, user.Password) {
		return "", newError(CodeInvalidCredentials, "Invalid email or password", nil)
	}

	return s.tokens.Mint(user.ID.Hex(), user.Email)
}
