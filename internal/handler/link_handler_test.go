package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/appdotbuilder/tele-vid-downloader/internal/handler"
	"github.com/appdotbuilder/tele-vid-downloader/internal/model"
	"github.com/appdotbuilder/tele-vid-downloader/internal/repository"
	"github.com/appdotbuilder/tele-vid-downloader/internal/service"
	"github.com/appdotbuilder/tele-vid-downloader/pkg/database"

	"github.com/gin-gonic/gin"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	if err := database.Init(database.Config{Type: "sqlite", Database: ":memory:"}); err != nil {
		t.Fatalf("Failed to init test database: %v", err)
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()

	linkHandler := handler.NewLinkHandler(service.NewLinkService(), nil)
	router.POST("/links", linkHandler.Create)
	router.GET("/links", linkHandler.List)
	router.GET("/links/:id", linkHandler.Get)
	router.PATCH("/links/:id", linkHandler.Update)
	return router
}

func createLinkViaAPI(t *testing.T, router *gin.Engine) *model.VideoLink {
	t.Helper()
	username := "tester"
	user := &model.User{TelegramID: "100200300", Username: &username}
	if err := repository.NewUserRepository().Create(user); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	body := `{"user_id":` + strconv.Itoa(int(user.ID)) + `,"url":"https://youtu.be/dQw4w9WgXcQ"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/links", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	var link model.VideoLink
	if err := json.Unmarshal(w.Body.Bytes(), &link); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return &link
}

func patchLink(t *testing.T, router *gin.Engine, id uint, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/links/"+strconv.Itoa(int(id)), bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCreateLinkEndpoint(t *testing.T) {
	router := setupRouter(t)
	link := createLinkViaAPI(t, router)

	if link.Platform != model.PlatformYouTube {
		t.Errorf("Expected platform youtube, got %s", link.Platform)
	}
	if link.Status != model.StatusPending {
		t.Errorf("Expected status pending, got %s", link.Status)
	}
}

func TestCreateLinkEndpointUnknownUser(t *testing.T) {
	router := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/links",
		bytes.NewBufferString(`{"user_id":9999,"url":"https://youtu.be/dQw4w9WgXcQ"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateLinkOmittedVersusNull(t *testing.T) {
	router := setupRouter(t)
	link := createLinkViaAPI(t, router)

	// Set the title; everything else stays untouched
	w := patchLink(t, router, link.ID, `{"title":"First Title"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var updated model.VideoLink
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if updated.Title == nil || *updated.Title != "First Title" {
		t.Errorf("Expected title set, got %v", updated.Title)
	}
	if updated.Status != model.StatusPending {
		t.Errorf("Expected status untouched, got %s", updated.Status)
	}

	// An omitted title stays; an explicit null clears it
	w = patchLink(t, router, link.ID, `{"error_message":null}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if updated.Title == nil || *updated.Title != "First Title" {
		t.Errorf("Expected omitted title to survive, got %v", updated.Title)
	}

	w = patchLink(t, router, link.ID, `{"title":null}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if updated.Title != nil {
		t.Errorf("Expected explicit null to clear the title, got %q", *updated.Title)
	}
}

func TestUpdateLinkRejectsIllegalTransition(t *testing.T) {
	router := setupRouter(t)
	link := createLinkViaAPI(t, router)

	w := patchLink(t, router, link.ID, `{"status":"uploaded"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for pending -> uploaded, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateLinkRejectsUnknownField(t *testing.T) {
	router := setupRouter(t)
	link := createLinkViaAPI(t, router)

	w := patchLink(t, router, link.ID, `{"url":"https://elsewhere.example.com"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for non-updatable field, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetLinkNotFound(t *testing.T) {
	router := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/links/9999", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestListLinksPagination(t *testing.T) {
	router := setupRouter(t)
	createLinkViaAPI(t, router)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/links?platform=youtube&limit=10", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var page service.LinkPage
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if page.Total != 1 || len(page.Data) != 1 {
		t.Errorf("Expected one youtube link, got total=%d len=%d", page.Total, len(page.Data))
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/links?limit=500", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for oversized limit, got %d", w.Code)
	}
}
