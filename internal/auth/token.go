package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims はトークンに埋め込む主張の集合です。
// 標準の RegisteredClaims（sub にユーザーID、exp に失効時刻）に加えて
// メールアドレスを保持します。
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// TokenService は署名付きトークンの発行と検証を担います。
// サーバー側に状態を持たないため、秘密鍵を替えると発行済みの
// 全トークンが無効になります。
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService は TokenService を作成します。
func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: secret,
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// TTL はトークンの有効期限を返します。
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Mint はユーザーIDとメールアドレスを埋め込んだ HS256 署名トークンを発行します。
// 失効時刻は現在時刻（UTC）に有効期限を加えた値です。
func (s *TokenService) Mint(userID, email string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Email: email,
	})

	return token.SignedString(s.secret)
}

// Validate はトークンの署名と失効時刻を検証し、主張を復元します。
// 失敗時は TOKEN_MALFORMED / TOKEN_EXPIRED / TOKEN_INVALID_SIGNATURE の
// いずれかのコードを持つ *Error を返します。
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, newError(CodeTokenExpired, "token has expired", err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, newError(CodeTokenInvalidSignature, "token signature mismatch", err)
		default:
			return nil, newError(CodeTokenMalformed, "token is malformed", err)
		}
	}
	if !token.Valid {
		return nil, newError(CodeTokenMalformed, "token is malformed", nil)
	}

	return claims, nil
}
