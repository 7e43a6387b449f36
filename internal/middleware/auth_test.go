package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brandloom/brandloom-backend/pkg/jwt"
)

func testManager() *jwt.Manager {
	return jwt.NewManager("test-secret", time.Hour, 24*time.Hour)
}

func serveWithAuth(t *testing.T, mw gin.HandlerFunc, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)

	r.Use(mw)
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_ValidToken(t *testing.T) {
	manager := testManager()
	token, err := manager.GenerateToken("user-1", "ws-1", "editor")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	w := serveWithAuth(t, JWTAuth(manager), "Bearer "+token)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	w := serveWithAuth(t, JWTAuth(testManager()), "")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	w := serveWithAuth(t, JWTAuth(testManager()), "Token abc")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	w := serveWithAuth(t, JWTAuth(testManager()), "Bearer not-a-token")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestOptionalJWTAuth_NoHeaderPasses(t *testing.T) {
	w := serveWithAuth(t, OptionalJWTAuth(testManager()), "")

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestOptionalJWTAuth_BadTokenStillPasses(t *testing.T) {
	w := serveWithAuth(t, OptionalJWTAuth(testManager()), "Bearer junk")

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}
