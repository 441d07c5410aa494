package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yourusername/intellect-ai/internal/users"
)

func newTestRouter(store users.Store) (*gin.Engine, *TokenService) {
	gin.SetMode(gin.TestMode)
	tokens := NewTokenService([]byte("test-secret"), time.Hour)
	cookies := NewCookieManager("localhost", time.Hour)
	handler := NewHandler(NewService(store, tokens), cookies)

	router := gin.New()
	router.POST("/signup", handler.Signup)
	router.POST("/login", handler.Login)
	router.POST("/logout", handler.Logout)
	router.GET("/protected", RequireAuth(tokens), func(c *gin.Context) {
		userID, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})
	return router, tokens
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSignupHandlerSuccess(t *testing.T) {
	store := &stubUserStore{}
	router, _ := newTestRouter(store)

	rec := postJSON(router, "/signup", gin.H{
		"username": "alice",
		"email":    "alice@x.com",
		"password": "pw123",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if payload["message"] != "User registered successfully" {
		t.Fatalf("unexpected message: %s", payload["message"])
	}

	cookie := findCookie(t, rec, CookieName)
	if cookie.Value == "" {
		t.Fatal("expected session cookie to carry the token")
	}
	if cookie.MaxAge != int(time.Hour.Seconds()) {
		t.Fatalf("cookie max-age must equal the token ttl, got %d", cookie.MaxAge)
	}

	if len(store.inserted) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(store.inserted))
	}
	if store.inserted[0].Email != "alice@x.com" {
		t.Fatalf("unexpected stored email: %s", store.inserted[0].Email)
	}
}

func TestSignupHandlerDuplicate(t *testing.T) {
	store := &stubUserStore{
		existing: []*users.User{
			{ID: primitive.NewObjectID(), Username: "alice", Email: "alice@x.com"},
		},
	}
	router, _ := newTestRouter(store)

	rec := postJSON(router, "/signup", gin.H{
		"username": "other",
		"email":    "alice@x.com",
		"password": "pw123",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if payload["code"] != CodeAlreadyRegistered {
		t.Fatalf("unexpected code: %s", payload["code"])
	}

	if len(store.inserted) != 0 {
		t.Fatalf("duplicate signup must not mutate the store, inserted %d", len(store.inserted))
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("failed signup must not set a cookie")
	}
}

func TestSignupHandlerInvalidInput(t *testing.T) {
	router, _ := newTestRouter(&stubUserStore{})

	rec := postJSON(router, "/signup", gin.H{"username": "alice"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestLoginHandler(t *testing.T) {
	hash, err := HashPassword("pw123")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	store := &stubUserStore{
		existing: []*users.User{
			{ID: primitive.NewObjectID(), Username: "alice", Email: "alice@x.com", Password: hash},
		},
	}
	router, _ := newTestRouter(store)

	rec := postJSON(router, "/login", gin.H{"email": "alice@x.com", "password": "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status for wrong password: %d", rec.Code)
	}

	rec = postJSON(router, "/login", gin.H{"email": "alice@x.com", "password": "pw123"})
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if payload["message"] != "Login successful" {
		t.Fatalf("unexpected message: %s", payload["message"])
	}
	if cookie := findCookie(t, rec, CookieName); cookie.Value == "" {
		t.Fatal("expected session cookie to carry the token")
	}
}

func TestLogoutHandlerAlwaysSucceeds(t *testing.T) {
	router, _ := newTestRouter(&stubUserStore{})

	// クッキー無しでも常に成功し、削除指示を発行する
	rec := postJSON(router, "/logout", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if payload["message"] != "Logged out successfully" {
		t.Fatalf("unexpected message: %s", payload["message"])
	}

	cookie := findCookie(t, rec, CookieName)
	if cookie.MaxAge >= 0 || cookie.Value != "" {
		t.Fatalf("expected clearing cookie, got value=%q max-age=%d", cookie.Value, cookie.MaxAge)
	}
}

func TestRequireAuthMiddleware(t *testing.T) {
	router, tokens := newTestRouter(&stubUserStore{})

	// クッキー無し
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status without cookie: %d", rec.Code)
	}

	// 正しいトークン
	token, err := tokens.Mint("user-1", "alice@x.com")
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status with valid token: %d body=%s", rec.Code, rec.Body.String())
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if payload["userId"] != "user-1" {
		t.Fatalf("unexpected userId: %s", payload["userId"])
	}

	// 別の鍵で署名されたトークン
	forged, err := NewTokenService([]byte("other-secret"), time.Hour).Mint("user-1", "alice@x.com")
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: forged})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status with forged token: %d", rec.Code)
	}

	// 失効済みトークン
	expiredSvc := NewTokenService([]byte("test-secret"), -time.Minute)
	expired, err := expiredSvc.Mint("user-1", "alice@x.com")
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: expired})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status with expired token: %d", rec.Code)
	}
}
