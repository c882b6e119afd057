package apperr

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newRouter(production bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(production))
	return r
}

func TestMiddlewareMapsTypedErrors(t *testing.T) {
	r := newRouter(false)
	r.GET("/conflict", func(c *gin.Context) {
		c.Error(Conflict("Course already in basket"))
	})
	r.GET("/invalid", func(c *gin.Context) {
		c.Error(BadRequest("Validation error", Detail{Path: "email", Message: "Invalid email format"}))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/conflict", nil))
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["error"] != "Course already in basket" {
		t.Fatalf("unexpected error message: %v", body["error"])
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/invalid", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	body = map[string]any{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	details, ok := body["details"].([]any)
	if !ok || len(details) != 1 {
		t.Fatalf("expected one detail, got %v", body["details"])
	}
}

func TestMiddlewareUnknownError(t *testing.T) {
	r := newRouter(false)
	r.GET("/boom", func(c *gin.Context) {
		c.Error(errors.New("db exploded"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var body map[string]any
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != "db exploded" {
		t.Fatalf("development mode should expose the message, got %v", body["error"])
	}
}

func TestMiddlewareSuppressesMessageInProduction(t *testing.T) {
	r := newRouter(true)
	r.GET("/boom", func(c *gin.Context) {
		c.Error(errors.New("db exploded"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var body map[string]any
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != "Internal server error" {
		t.Fatalf("production mode must hide the message, got %v", body["error"])
	}
}

func TestMiddlewareSkipsWrittenResponses(t *testing.T) {
	r := newRouter(false)
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"fine": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
