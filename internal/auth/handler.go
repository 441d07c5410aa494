package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler は認証エンドポイントのハンドラー群をまとめた構造体です。
type Handler struct {
	svc     *Service
	cookies *CookieManager
}

// NewHandler は Handler を作成します。
func NewHandler(svc *Service, cookies *CookieManager) *Handler {
	return &Handler{
		svc:     svc,
		cookies: cookies,
	}
}

type signupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup は POST /signup のハンドラーです。
// 登録に成功するとトークンをクッキーとして載せて 200 を返します。
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "INVALID_INPUT",
			"message": "username, email and password are required",
		})
		return
	}

	_, token, err := h.svc.Signup(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.cookies.Attach(c, token)
	c.JSON(http.StatusOK, gin.H{"message": "User registered successfully"})
}

// Login は POST /login のハンドラーです。
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "INVALID_INPUT",
			"message": "email and password are required",
		})
		return
	}

	token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.cookies.Attach(c, token)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
}

// Logout は POST /logout のハンドラーです。
// 認証されていたかどうかに関わらず、常にクッキーを消して成功を返します。
func (h *Handler) Logout(c *gin.Context) {
	h.cookies.Clear(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// respondWithError は認証エラーをHTTPステータスへ対応付けます。
func respondWithError(c *gin.Context, err error) {
	var authErr *Error
	if errors.As(err, &authErr) {
		status := http.StatusInternalServerError
		switch authErr.Code {
		case CodeAlreadyRegistered:
			status = http.StatusBadRequest
		case CodeInvalidCredentials,
			CodeTokenMalformed, CodeTokenExpired, CodeTokenInvalidSignature:
			status = http.StatusUnauthorized
		}
		c.JSON(status, gin.H{
			"code":    authErr.Code,
			"message": authErr.Message,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"code":    "INTERNAL_ERROR",
		"message": "internal server error",
	})
}
