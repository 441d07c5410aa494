package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieName は認証トークンを運ぶクッキーの固定名です。
const CookieName = "auth_token"

// CookieManager はトークンのライフサイクルをクッキーの設定・削除に対応付けます。
// レスポンスヘッダーを書き換えるだけで、ストアには一切触れません。
type CookieManager struct {
	domain string
	ttl    time.Duration
}

// NewCookieManager は CookieManager を作成します。
// ttl はトークンの有効期限と同じ値を渡します。クッキーがトークンより
// 長生きすることも、その逆もないようにするためです。
func NewCookieManager(domain string, ttl time.Duration) *CookieManager {
	return &CookieManager{
		domain: domain,
		ttl:    ttl,
	}
}

// Attach はトークンをセッションクッキーとしてレスポンスに載せます。
// 同名のクッキーが既にあれば上書きされます。
func (m *CookieManager) Attach(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(m.ttl.Seconds()), "/", m.domain, true, true)
}

// Clear はクッキーの削除指示を発行します。
// クッキーが設定されていたかどうかに関わらず常に発行します。
func (m *CookieManager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", m.domain, true, true)
}
