package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidateToken(t *testing.T) {
	tokenStr, err := GenerateToken(42, "passenger")
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}

	token, err := ValidateToken(tokenStr)
	if err != nil || !token.Valid {
		t.Fatalf("token did not validate: %v", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("unexpected claims type")
	}
	if uid, _ := claims["user_id"].(float64); uint(uid) != 42 {
		t.Fatalf("user_id claim = %v", claims["user_id"])
	}
	if role, _ := claims["role"].(string); role != "passenger" {
		t.Fatalf("role claim = %v", claims["role"])
	}
}

func TestTokenSignedWithEnvironmentSecret(t *testing.T) {
	// The secret must be read at signing time, not package init, so a
	// value loaded from .env during startup takes effect.
	t.Setenv("JWT_SECRET", "rotated-secret")

	tokenStr, err := GenerateToken(7, "passenger")
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}

	token, err := jwt.Parse(tokenStr, func(*jwt.Token) (interface{}, error) {
		return []byte("rotated-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token not signed with the environment secret: %v", err)
	}

	if _, err := jwt.Parse(tokenStr, func(*jwt.Token) (interface{}, error) {
		return []byte("supersecret"), nil
	}); err == nil {
		t.Fatal("fallback secret must not validate a token signed with the environment secret")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuthWithRoleRejectsWrongRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", RequireAuthWithRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tokenStr, err := GenerateToken(42, "passenger")
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(), func(c *gin.Context) {
		uid, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": uid})
	})

	tokenStr, err := GenerateToken(42, "admin")
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
}
