package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foms/internal/config"
	"foms/internal/models"
	"foms/internal/seed"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret-key-with-enough-length-123456"

func setupHandlerTest(t *testing.T) (*fiber.App, *Server) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Request{}, &models.Status{}, &models.AuthSetting{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	cfg := &config.Config{
		Port:         "8460",
		JWTSecret:    testJWTSecret,
		FeatureFlags: "demo_data=on",
		Env:          "test",
	}

	srv, err := NewServerWithDeps(cfg, db, nil)
	if err != nil {
		t.Fatalf("create server: %v", err)
	}

	app := fiber.New()
	srv.SetupRoutes(app)
	return app, srv
}

func makeToken(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test %s %s: %v", method, path, err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	_ = resp.Body.Close()
	return resp, raw
}

func validRequestBody() CreateRequestBody {
	return CreateRequestBody{
		RequestedDatetime: 1_700_000_000_000,
		RequestorName:     "Jane Doe",
		RequestorOrg:      "North Valley EMS",
		RequestorPhone:    "(555) 123-4567",
		Facility:          "Memorial Hospital ER",
		Description:       "After-hours facility access",
		Contact:           "Dr. Amy Foster",
		PocPhone:          "(555) 123-4567",
	}
}

func TestRequestLifecycleFlow(t *testing.T) {
	t.Parallel()
	app, _ := setupHandlerTest(t)
	token := makeToken(t, "reviewer@example.com")

	// seed the catalog
	resp, _ := doJSON(t, app, http.MethodPost, "/api/statuses/seed", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("seed statuses: expected 200, got %d", resp.StatusCode)
	}

	// file a request
	resp, raw := doJSON(t, app, http.MethodPost, "/api/requests", validRequestBody(), "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", resp.StatusCode, raw)
	}
	var created map[string]string
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	id := created["id"]
	if id == "" {
		t.Fatal("create returned empty id")
	}

	// fetch it back
	resp, raw = doJSON(t, app, http.MethodGet, "/api/requests/"+id, nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", resp.StatusCode)
	}
	var fetched models.Request
	if err := json.Unmarshal(raw, &fetched); err != nil {
		t.Fatalf("decode request: %v", err)
	}
	if fetched.RequestorName != "Jane Doe" {
		t.Fatalf("expected Jane Doe, got %q", fetched.RequestorName)
	}
	if fetched.StatusValue != "Requested" {
		t.Fatalf("expected Requested label, got %q", fetched.StatusValue)
	}

	// transitions require a token
	resp, _ = doJSON(t, app, http.MethodPatch, "/api/requests/"+id+"/status",
		UpdateStatusBody{StatusID: models.StatusApproved}, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous transition: expected 401, got %d", resp.StatusCode)
	}

	// denial without a reason is rejected
	resp, _ = doJSON(t, app, http.MethodPatch, "/api/requests/"+id+"/status",
		UpdateStatusBody{StatusID: models.StatusDenied}, token)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("deny without reason: expected 400, got %d", resp.StatusCode)
	}

	// deny with a reason
	reason := "Missing paperwork"
	resp, _ = doJSON(t, app, http.MethodPatch, "/api/requests/"+id+"/status",
		UpdateStatusBody{StatusID: models.StatusDenied, DeniedDescription: &reason}, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("deny: expected 200, got %d", resp.StatusCode)
	}

	// the denial reason became searchable
	resp, raw = doJSON(t, app, http.MethodGet, "/api/requests/?search=Missing", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("search: expected 200, got %d", resp.StatusCode)
	}
	var page struct {
		Items  []models.Request `json:"page"`
		IsDone bool             `json:"is_done"`
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != id {
		t.Fatalf("expected the denied request in search results, got %d items", len(page.Items))
	}
	if page.Items[0].StatusValue != "Denied" {
		t.Fatalf("expected Denied label, got %q", page.Items[0].StatusValue)
	}
}

func TestApprovalScenario(t *testing.T) {
	t.Parallel()
	app, _ := setupHandlerTest(t)
	token := makeToken(t, "reviewer@example.com")

	doJSON(t, app, http.MethodPost, "/api/statuses/seed", nil, "")

	first := validRequestBody()
	first.Facility = "Hospital A"
	resp, raw := doJSON(t, app, http.MethodPost, "/api/requests", first, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", resp.StatusCode)
	}
	var created map[string]string
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	id := created["id"]

	// the fresh request leads the unfiltered listing
	_, raw = doJSON(t, app, http.MethodGet, "/api/requests/", nil, "")
	var page struct {
		Items []models.Request `json:"page"`
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if len(page.Items) == 0 || page.Items[0].ID != id {
		t.Fatalf("expected new request first in listing")
	}

	resp, _ = doJSON(t, app, http.MethodPatch, "/api/requests/"+id+"/status",
		UpdateStatusBody{StatusID: models.StatusApproved}, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d", resp.StatusCode)
	}

	// the approved request shows up under the status filter with its label
	_, raw = doJSON(t, app, http.MethodGet, "/api/requests/?status=A", nil, "")
	if err := json.Unmarshal(raw, &page); err != nil {
		t.Fatalf("decode filtered page: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != id {
		t.Fatalf("expected the approved request under status=A, got %d items", len(page.Items))
	}
	if page.Items[0].StatusValue != "Approved" {
		t.Fatalf("expected Approved label, got %q", page.Items[0].StatusValue)
	}
}

func TestCreateRequest_Validation(t *testing.T) {
	t.Parallel()
	app, _ := setupHandlerTest(t)

	body := validRequestBody()
	body.RequestorName = "   "
	resp, _ := doJSON(t, app, http.MethodPost, "/api/requests", body, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("blank name: expected 400, got %d", resp.StatusCode)
	}

	body = validRequestBody()
	body.RequestedDatetime = 0
	resp, _ = doJSON(t, app, http.MethodPost, "/api/requests", body, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("zero requested time: expected 400, got %d", resp.StatusCode)
	}
}

func TestGetRequest_NotFound(t *testing.T) {
	t.Parallel()
	app, _ := setupHandlerTest(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/requests/nope", nil, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestListRequests_BadQueryParams(t *testing.T) {
	t.Parallel()
	app, _ := setupHandlerTest(t)

	for _, path := range []string{
		"/api/requests/?date_from=tomorrow",
		"/api/requests/?date_to=later",
		"/api/requests/?num_items=-3",
		"/api/requests/?num_items=lots",
	} {
		resp, _ := doJSON(t, app, http.MethodGet, path, nil, "")
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, resp.StatusCode)
		}
	}
}

func TestListRequests_Pagination(t *testing.T) {
	t.Parallel()
	app, _ := setupHandlerTest(t)

	for i := 0; i < 5; i++ {
		body := validRequestBody()
		body.RequestorName = fmt.Sprintf("Requestor %d", i)
		resp, _ := doJSON(t, app, http.MethodPost, "/api/requests", body, "")
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create %d: got %d", i, resp.StatusCode)
		}
	}

	resp, raw := doJSON(t, app, http.MethodGet, "/api/requests/?num_items=2", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", resp.StatusCode)
	}
	var page struct {
		Items          []models.Request `json:"page"`
		IsDone         bool             `json:"is_done"`
		ContinueCursor string           `json:"continue_cursor"`
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if len(page.Items) != 2 || page.IsDone || page.ContinueCursor == "" {
		t.Fatalf("unexpected first page: %d items, done=%v", len(page.Items), page.IsDone)
	}

	resp, raw = doJSON(t, app, http.MethodGet,
		"/api/requests/?num_items=10&cursor="+page.ContinueCursor, nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("second page: expected 200, got %d", resp.StatusCode)
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		t.Fatalf("decode second page: %v", err)
	}
	if len(page.Items) != 3 || !page.IsDone {
		t.Fatalf("unexpected second page: %d items, done=%v", len(page.Items), page.IsDone)
	}
}

func TestSeedMockRequests(t *testing.T) {
	t.Parallel()
	app, _ := setupHandlerTest(t)
	token := makeToken(t, "admin@example.com")

	// token required
	resp, _ := doJSON(t, app, http.MethodPost, "/api/requests/seed-mock", nil, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous seed: expected 401, got %d", resp.StatusCode)
	}

	resp, raw := doJSON(t, app, http.MethodPost, "/api/requests/seed-mock", nil, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("seed: expected 200, got %d: %s", resp.StatusCode, raw)
	}
	var result map[string]int
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("decode seed result: %v", err)
	}
	if result["inserted"] != 4*seed.MockCountPerStatus {
		t.Fatalf("expected %d inserted, got %d", 4*seed.MockCountPerStatus, result["inserted"])
	}
}

func TestSeedMockRequests_FlagOff(t *testing.T) {
	t.Parallel()
	_, srv := setupHandlerTest(t)

	srv.featureFlags = nil
	app := fiber.New()
	srv.SetupRoutes(app)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/requests/seed-mock", nil,
		makeToken(t, "admin@example.com"))
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("flag off: expected 403, got %d", resp.StatusCode)
	}
}

func TestListStatuses(t *testing.T) {
	t.Parallel()
	app, _ := setupHandlerTest(t)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/statuses/", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var rows []models.Status
	if err := json.Unmarshal(raw, &rows); err != nil {
		t.Fatalf("decode statuses: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty catalog before seeding, got %d", len(rows))
	}

	resp, _ = doJSON(t, app, http.MethodPost, "/api/statuses/seed", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("seed: expected 200, got %d", resp.StatusCode)
	}

	_, raw = doJSON(t, app, http.MethodGet, "/api/statuses/", nil, "")
	if err := json.Unmarshal(raw, &rows); err != nil {
		t.Fatalf("decode statuses: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 statuses after seeding, got %d", len(rows))
	}
}
