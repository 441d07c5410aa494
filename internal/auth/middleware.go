package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextUserIDKey / ContextEmailKey はハンドラー間で認証済みユーザーの
// 情報を共有するためのキーです。
const (
	ContextUserIDKey = "auth.userID"
	ContextEmailKey  = "auth.email"
)

// RequireAuth は認証クッキーのトークンを検証するミドルウェアを返します。
// クッキーが無い、署名が合わない、失効している、のいずれの場合も 401 で
// 処理を打ち切ります。検証に通ると主張の内容をコンテキストに載せます。
func RequireAuth(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(CookieName)
		if err != nil || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "authentication required",
			})
			return
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			code := CodeTokenMalformed
			message := "token is invalid"
			var authErr *Error
			if errors.As(err, &authErr) {
				code = authErr.Code
				message = authErr.Message
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    code,
				"message": message,
			})
			return
		}

		c.Set(ContextUserIDKey, claims.Subject)
		c.Set(ContextEmailKey, claims.Email)
		c.Next()
	}
}

// UserID はコンテキストから認証済みユーザーIDを取り出します。
func UserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
