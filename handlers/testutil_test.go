package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/courseland/backend/apperr"
	"github.com/courseland/backend/auth"
	"github.com/courseland/backend/database"
	"github.com/courseland/backend/models"
	"github.com/courseland/backend/validate"
)

func init() {
	gin.SetMode(gin.TestMode)
	validate.Setup()
}

// newTestDB opens a per-test in-memory database. The DSN is keyed by test
// name so parallel tests never share state through the sqlite cache.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })
	return db
}

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB, *auth.TokenService) {
	t.Helper()

	r := gin.New()
	r.Use(apperr.Middleware(false))

	db := newTestDB(t)
	tokens := auth.NewTokenService("test-secret")
	RegisterRoutes(r, db, tokens, nil)
	return r, db, tokens
}

// createUser inserts a user directly and returns it with a valid token.
// The password hash is not loginable; login tests register via the API.
func createUser(t *testing.T, db *gorm.DB, tokens *auth.TokenService, username string, role models.Role) (models.User, string) {
	t.Helper()

	user := models.User{
		Email:    username + "@example.com",
		Username: username,
		Password: "x",
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %q: %v", username, err)
	}
	token, err := tokens.Issue(user.ID)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return user, token
}

func createCourse(t *testing.T, db *gorm.DB, title string, creatorID uint, category models.Category) models.Course {
	t.Helper()

	course := models.Course{
		Title:     title,
		Price:     1000,
		Category:  category,
		CreatorID: creatorID,
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("failed to create course %q: %v", title, err)
	}
	return course
}

func createModule(t *testing.T, db *gorm.DB, title string) models.Module {
	t.Helper()

	module := models.Module{Title: title, Children: models.StringList{"intro"}}
	if err := db.Create(&module).Error; err != nil {
		t.Fatalf("failed to create module %q: %v", title, err)
	}
	return module
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("invalid JSON response %q: %v", w.Body.String(), err)
	}
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, w, &body)
	return body.Error
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected status %d, got %d (body %s)", want, w.Code, w.Body.String())
	}
}
