package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pawpal/pawpal-backend/internal/domain"
	"github.com/pawpal/pawpal-backend/internal/http/middleware"
	"github.com/pawpal/pawpal-backend/internal/repo"
	"github.com/pawpal/pawpal-backend/internal/storage"
)

// newHandlerDB opens a fresh temp-file SQLite database with the full schema.
func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("handler_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := repo.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := repo.SeedPersonalityTags(db); err != nil {
		t.Fatalf("seed tags: %v", err)
	}
	return db
}

// newTestHandlers builds a Handlers instance over a fresh DB and a temp-dir
// blob store.
func newTestHandlers(t *testing.T) (*Handlers, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := newHandlerDB(t)
	blobs, err := storage.NewDiskStore(t.TempDir(), "/media")
	if err != nil {
		t.Fatalf("disk store: %v", err)
	}
	return New(db, blobs), db
}

// asCaller injects an authenticated caller the way the auth middleware does.
func asCaller(cl middleware.Caller) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("caller", cl)
		c.Next()
	}
}

func seedCaller(t *testing.T, db *gorm.DB, authID, role string) (*domain.User, middleware.Caller) {
	t.Helper()
	u, err := repo.CreateUser(context.Background(), db, &domain.User{
		AuthUserID: authID,
		Name:       "User " + authID,
		Email:      authID + "@example.com",
		Role:       role,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u, middleware.Caller{AuthUserID: authID, Email: u.Email, Name: u.Name, UserID: u.ID, Role: u.Role}
}

func jsonReq(t *testing.T, method, path string, payload any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return m
}

func TestCreateDog_Unauthorized(t *testing.T) {
	h, _ := newTestHandlers(t)
	r := gin.New()
	r.POST("/dogs", h.CreateDog)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonReq(t, http.MethodPost, "/dogs", gin.H{"area": "Vyronas"}))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestCreateDog_ValidationErrors(t *testing.T) {
	h, db := newTestHandlers(t)
	_, cl := seedCaller(t, db, "auth-owner", domain.RoleFeeder)
	r := gin.New()
	r.POST("/dogs", asCaller(cl), h.CreateDog)

	cases := []gin.H{
		{"images": []string{"https://cdn.example.com/a.jpg"}},              // missing area
		{"area": "Ilisia"},                                                 // missing images
		{"area": "Ilisia", "images": []string{"not-a-url"}},                // bad image URL
		{"area": "Ilisia", "images": []string{"https://x.y/a.jpg"}, "age_years": 40}, // out of range
	}
	for i, payload := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonReq(t, http.MethodPost, "/dogs", payload))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("case %d expected 400, got %d (%s)", i, w.Code, w.Body.String())
		}
		body := decode(t, w)
		if ok, _ := body["ok"].(bool); ok {
			t.Fatalf("case %d error envelope missing: %v", i, body)
		}
	}
}

func TestCreateDog_Success(t *testing.T) {
	h, db := newTestHandlers(t)
	_, cl := seedCaller(t, db, "auth-owner", domain.RoleFeeder)
	r := gin.New()
	r.POST("/dogs", asCaller(cl), h.CreateDog)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonReq(t, http.MethodPost, "/dogs", gin.H{
		"name":   "Hera",
		"area":   "Koukaki",
		"images": []string{"https://cdn.example.com/hera.jpg"},
	}))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	body := decode(t, w)
	dog, _ := body["dog"].(map[string]any)
	if dog["id"] == "" || dog["status"] != "available" {
		t.Fatalf("unexpected dog: %v", dog)
	}
}

func TestListDogs_StatusDefaultAndAny(t *testing.T) {
	h, db := newTestHandlers(t)
	owner, cl := seedCaller(t, db, "auth-owner", domain.RoleFeeder)
	_ = cl

	seedListing := func(status string) {
		if _, err := repo.CreateDog(context.Background(), db, &domain.Dog{
			PostedBy: owner.ID, Area: "Marousi", Status: status,
			Images: []string{"https://cdn.example.com/a.jpg"},
		}, nil); err != nil {
			t.Fatalf("seed listing: %v", err)
		}
	}
	seedListing(domain.DogAvailable)
	seedListing(domain.DogAdopted)

	r := gin.New()
	r.GET("/dogs", h.ListDogs)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dogs", nil))
	body := decode(t, w)
	if items, _ := body["items"].([]any); len(items) != 1 {
		t.Fatalf("default status should only show available: %v", body)
	}
	page, _ := body["page"].(map[string]any)
	if page["limit"] != float64(24) || page["total"] != float64(1) {
		t.Fatalf("page envelope wrong: %v", page)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dogs?status=any", nil))
	body = decode(t, w)
	if items, _ := body["items"].([]any); len(items) != 2 {
		t.Fatalf("status=any should show every visible listing: %v", body)
	}
}

func TestGetDog_BadID_And_Missing(t *testing.T) {
	h, _ := newTestHandlers(t)
	r := gin.New()
	r.GET("/dogs/:id", h.GetDog)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dogs/not-a-uuid", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad id expected 400, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dogs/00000000-0000-0000-0000-000000000000", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing dog expected 404, got %d", w.Code)
	}
}
