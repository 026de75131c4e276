package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/socialboard/socialboard/internal/server/auth"
	"github.com/socialboard/socialboard/internal/server/models"
	"github.com/socialboard/socialboard/internal/server/services"
)

func bearerFor(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, role, []byte("test-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	return "Bearer " + token
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/api/assets", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/assets", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := doRequest(t, srv, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestListAssets_ScopedToCaller(t *testing.T) {
	srv, mock, _ := newTestServer(t)

	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "type", "url", "generated_by_ai", "created_at"}).
		AddRow("a-1", "u-1", "banner", "image", "http://cdn.local/assets/a.png", false, time.Now())
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*user_id.*FROM\s+assets`).
		WithArgs("u-1").
		WillReturnRows(rows)

	req := httptest.NewRequest(http.MethodGet, "/api/assets", nil)
	req.Header.Set("Authorization", bearerFor(t, "u-1", models.RoleCreator))
	rec := doRequest(t, srv, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var assets []models.Asset
	if err := json.Unmarshal(rec.Body.Bytes(), &assets); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(assets) != 1 || assets[0].ID != "a-1" {
		t.Fatalf("unexpected assets: %+v", assets)
	}
}

func TestCreatePost_CreatorForbidden(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(`{"title":"x"}`))
	req.Header.Set("Authorization", bearerFor(t, "u-1", models.RoleCreator))
	rec := doRequest(t, srv, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestCreatePost_Marketer(t *testing.T) {
	srv, mock, _ := newTestServer(t)

	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow("p-1", time.Now())
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+posts`).WillReturnRows(rows)

	req := httptest.NewRequest(http.MethodPost, "/api/posts",
		strings.NewReader(`{"title":"launch","platforms":["twitter"]}`))
	req.Header.Set("Authorization", bearerFor(t, "u-1", models.RoleMarketer))
	rec := doRequest(t, srv, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var post models.Post
	if err := json.Unmarshal(rec.Body.Bytes(), &post); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if post.ID != "p-1" || post.CreatedBy != "u-1" || post.Status != models.PostDraft {
		t.Fatalf("unexpected post: %+v", post)
	}
}

func TestCreateCampaign_InternForbidden(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/campaigns", strings.NewReader(`{"name":"summer"}`))
	req.Header.Set("Authorization", bearerFor(t, "u-1", models.RoleIntern))
	rec := doRequest(t, srv, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCopywriter_GeneratesSuggestion(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/copywriter",
		strings.NewReader(`{"prompt":"our launch","tone":"formal","platform":"linkedin"}`))
	req.Header.Set("Authorization", bearerFor(t, "u-1", models.RoleMarketer))
	rec := doRequest(t, srv, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var got services.CopySuggestion
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !strings.Contains(got.Content, "our launch") || len(got.Hashtags) != 5 {
		t.Fatalf("unexpected suggestion: %+v", got)
	}
}

func TestCopywriter_EmptyPrompt(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/copywriter", strings.NewReader(`{"prompt":""}`))
	req.Header.Set("Authorization", bearerFor(t, "u-1", models.RoleMarketer))
	rec := doRequest(t, srv, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestApplyEditedImage_EndpointStoresAndUpdates(t *testing.T) {
	srv, mock, store := newTestServer(t)

	mock.ExpectExec(`(?s)^UPDATE\s+assets`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{"imageData":"data:image/png;base64,aGVsbG8="}`
	req := httptest.NewRequest(http.MethodPost, "/api/assets/a-1/edited", strings.NewReader(body))
	req.Header.Set("Authorization", bearerFor(t, "u-1", models.RoleCreator))
	rec := doRequest(t, srv, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	if !strings.HasPrefix(store.uploadedKey, "assets/u-1-edited-") || !strings.HasSuffix(store.uploadedKey, ".png") {
		t.Fatalf("unexpected key %q", store.uploadedKey)
	}

	var resp applyEditedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.URL != "http://cdn.local/"+store.uploadedKey {
		t.Fatalf("unexpected url %q", resp.URL)
	}
}

func TestHealthz(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestPresignAsset(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/assets/presign",
		strings.NewReader(`{"key":"assets/big.mp4"}`))
	req.Header.Set("Authorization", bearerFor(t, "u-1", models.RoleCreator))
	rec := doRequest(t, srv, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp presignResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.URL != "http://cdn.local/assets/big.mp4?sig=x" {
		t.Fatalf("unexpected presigned url %q", resp.URL)
	}
	if resp.PublicURL != "http://cdn.local/assets/big.mp4" {
		t.Fatalf("unexpected public url %q", resp.PublicURL)
	}
}

func TestGetAsset_NotFound(t *testing.T) {
	srv, mock, _ := newTestServer(t)

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*user_id.*FROM\s+assets`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	req := httptest.NewRequest(http.MethodGet, "/api/assets/missing", nil)
	req.Header.Set("Authorization", bearerFor(t, "u-1", models.RoleCreator))
	rec := doRequest(t, srv, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestAssetEditURL(t *testing.T) {
	srv, mock, _ := newTestServer(t)

	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "type", "url", "generated_by_ai", "created_at"}).
		AddRow("a-1", "u-1", "Spring banner", models.AssetImage, "http://cdn.local/assets/a-1.png", false, time.Now())
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*user_id.*FROM\s+assets`).
		WithArgs("a-1").
		WillReturnRows(rows)

	req := httptest.NewRequest(http.MethodGet, "/api/assets/a-1/edit-url", nil)
	req.Header.Set("Authorization", bearerFor(t, "u-1", models.RoleCreator))
	rec := doRequest(t, srv, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp editURLResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	u, err := url.Parse(resp.URL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if !strings.HasPrefix(resp.URL, "https://pixlr.com/editor/?") {
		t.Fatalf("unexpected editor base: %q", resp.URL)
	}
	q := u.Query()
	if q.Get("image") != "http://cdn.local/assets/a-1.png" {
		t.Fatalf("image = %q", q.Get("image"))
	}
	if q.Get("title") != "Spring banner" {
		t.Fatalf("title = %q", q.Get("title"))
	}
	if q.Get("target") != "http://localhost:8080/pixlr/callback" {
		t.Fatalf("target = %q", q.Get("target"))
	}
	if resp.EditTimeoutMs != (10 * time.Minute).Milliseconds() {
		t.Fatalf("edit_timeout_ms = %d", resp.EditTimeoutMs)
	}
}

func TestCORSPreflight_APIRoutes(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, httptest.NewRequest(http.MethodOptions, "/api/posts", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost:8080" {
		t.Fatalf("unexpected CORS origin: %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}
