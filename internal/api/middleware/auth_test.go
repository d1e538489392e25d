package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"tubeshare-go/internal/api/middleware"
	"tubeshare-go/internal/config"
	"tubeshare-go/internal/model"
	"tubeshare-go/internal/repository"
	"tubeshare-go/internal/service"
	"tubeshare-go/pkg/authtoken"
	"tubeshare-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := logger.Init("error", "console", "stdout", ""); err != nil {
		panic(err)
	}
	config.Set(&config.Config{
		Auth: config.AuthConfig{
			Secret:   "test-secret",
			Issuer:   "tubeshare",
			Audience: "tubeshare-api",
		},
	})
	os.Exit(m.Run())
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	identitySvc := service.NewIdentityService(repository.NewUserRepository(db))

	r := gin.New()
	r.GET("/required", middleware.AuthRequired(identitySvc), func(c *gin.Context) {
		id, _ := middleware.CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"subject": id.SubjectID, "name": id.DisplayName})
	})
	r.GET("/optional", middleware.AuthOptional(identitySvc), func(c *gin.Context) {
		if id, ok := middleware.CurrentIdentity(c); ok {
			c.JSON(http.StatusOK, gin.H{"subject": id.SubjectID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"subject": ""})
	})
	return r, db
}

func TestAuthRequiredRejectsMissingToken(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/required", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", w.Code)
	}
}

func TestAuthRequiredRejectsGarbageToken(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/required", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", w.Code)
	}
}

func TestAuthRequiredProvisionsUserOnFirstContact(t *testing.T) {
	r, db := setupRouter(t)

	token, err := authtoken.Sign("auth0|alice", "Alice", time.Hour)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/required", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Request %d: expected 200, got %d (%s)", i, w.Code, w.Body.String())
		}
	}

	// Two authenticated requests, one provisioned row.
	var count int64
	db.Model(&model.User{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 user row, got %d", count)
	}

	var user model.User
	db.First(&user)
	if user.SubjectID != "auth0|alice" || user.DisplayName != "Alice" {
		t.Errorf("Unexpected provisioned user: %+v", user)
	}
}

func TestAuthRequiredRejectsExpiredToken(t *testing.T) {
	r, _ := setupRouter(t)

	token, err := authtoken.Sign("auth0|alice", "Alice", -time.Minute)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/required", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for expired token, got %d", w.Code)
	}
}

func TestAuthOptionalPassesAnonymousThrough(t *testing.T) {
	r, db := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/optional", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for anonymous request, got %d", w.Code)
	}

	var count int64
	db.Model(&model.User{}).Count(&count)
	if count != 0 {
		t.Errorf("Anonymous request must not provision users, got %d rows", count)
	}
}

func TestAuthOptionalStillRejectsInvalidToken(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/optional", nil)
	req.Header.Set("Authorization", "Bearer definitely-broken")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for a present-but-invalid token, got %d", w.Code)
	}
}

func TestAuthOptionalResolvesIdentityWhenPresent(t *testing.T) {
	r, _ := setupRouter(t)

	token, err := authtoken.Sign("auth0|bob", "Bob", time.Hour)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/optional", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if body := w.Body.String(); body != `{"subject":"auth0|bob"}` {
		t.Errorf("Unexpected body: %s", body)
	}
}
