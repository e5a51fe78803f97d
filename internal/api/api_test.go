package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dataset-catalog-api/internal/api"
	"github.com/dataset-catalog-api/internal/config"
	"github.com/dataset-catalog-api/internal/mocks"
	"github.com/dataset-catalog-api/internal/models"
	"github.com/dataset-catalog-api/internal/service"
	"github.com/dataset-catalog-api/internal/tabular"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type testServer struct {
	router  *gin.Engine
	dataset *mocks.MockDatasetService
	catalog *mocks.MockCatalogService
	cache   *mocks.MockCacheService
}

func newTestServer() *testServer {
	gin.SetMode(gin.TestMode)

	dataset := mocks.NewMockDatasetService()
	catalog := mocks.NewMockCatalogService()
	cacheSvc := mocks.NewMockCacheService()

	services := &service.Services{
		Dataset: dataset,
		Catalog: catalog,
		Cache:   cacheSvc,
	}
	cfg := &config.Config{}
	cfg.Cache.RefreshSecret = "topsecret"

	return &testServer{
		router:  api.NewRouter(services, cfg, zerolog.Nop()),
		dataset: dataset,
		catalog: catalog,
		cache:   cacheSvc,
	}
}

func (s *testServer) request(t *testing.T, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer()

	w := s.request(t, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["status"] != "healthy" {
		t.Errorf("Expected healthy status, got %v", body["status"])
	}
}

func TestGetDetail(t *testing.T) {
	s := newTestServer()
	s.dataset.Details["rec1"] = &models.DatasetDetail{
		ID:   "rec1",
		Meta: models.DetailMeta{Title: "GDP Growth"},
		Data: []tabular.Row{{"year": float64(2021), "Value": 5.6}},
	}

	w := s.request(t, http.MethodGet, "/data/rec1?lang=pl", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var detail models.DatasetDetail
	if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
		t.Fatalf("Invalid body: %v", err)
	}
	if detail.ID != "rec1" || detail.Meta.Title != "GDP Growth" {
		t.Errorf("Unexpected detail: %#v", detail)
	}
	if len(detail.Data) != 1 {
		t.Errorf("Expected data rows, got %#v", detail.Data)
	}
	if s.dataset.LastLang != "pl" {
		t.Errorf("Expected lang forwarded, got %q", s.dataset.LastLang)
	}
}

func TestGetDetail_NotFound(t *testing.T) {
	s := newTestServer()

	w := s.request(t, http.MethodGet, "/data/999999999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
	body := decodeBody(t, w)
	msg, _ := body["error"].(string)
	if msg != "dataset 999999999 not found" {
		t.Errorf("Error must name the identifier, got %q", msg)
	}
}

func TestGetDetail_UpstreamFailure(t *testing.T) {
	s := newTestServer()
	s.dataset.Err = errors.New("store timeout")

	w := s.request(t, http.MethodGet, "/data/rec1", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] != "store timeout" {
		t.Errorf("Upstream text must surface verbatim, got %v", body["error"])
	}
}

func TestGetMeta_StripsData(t *testing.T) {
	s := newTestServer()
	s.dataset.Details["rec1"] = &models.DatasetDetail{
		ID:   "rec1",
		Meta: models.DetailMeta{Title: "GDP Growth"},
		Data: []tabular.Row{{"year": float64(2021)}},
	}

	w := s.request(t, http.MethodGet, "/data/rec1/meta", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if _, ok := body["data"]; ok {
		t.Error("Meta response must omit the data array")
	}
}

func TestGetUnified(t *testing.T) {
	s := newTestServer()
	s.dataset.Unifieds[100] = &models.UnifiedRecord{ID: "rec100", Title: "GDP Growth"}

	w := s.request(t, http.MethodGet, "/record/100", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var unified models.UnifiedRecord
	if err := json.Unmarshal(w.Body.Bytes(), &unified); err != nil {
		t.Fatalf("Invalid body: %v", err)
	}
	if unified.ID != "rec100" {
		t.Errorf("Unexpected record: %#v", unified)
	}
}

func TestGetUnified_NonNumericIDRejected(t *testing.T) {
	s := newTestServer()

	w := s.request(t, http.MethodGet, "/record/abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] != `record id must be numeric, got "abc"` {
		t.Errorf("Unexpected error message: %v", body["error"])
	}
}

func TestListDatasets_ForwardsQuery(t *testing.T) {
	s := newTestServer()
	s.catalog.ListResult = &models.DatasetList{
		Count: 1,
		Items: []models.ListItem{{ID: "rec1"}},
	}

	w := s.request(t, http.MethodGet, "/datasets?country=poland&category=economy&contentHub=energy&lang=pl", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	want := models.ListQuery{Country: "poland", Category: "economy", ContentHub: "energy", Lang: "pl"}
	if s.catalog.LastQuery != want {
		t.Errorf("Query not forwarded: %#v", s.catalog.LastQuery)
	}

	body := decodeBody(t, w)
	if body["count"] != float64(1) {
		t.Errorf("Expected count 1, got %v", body["count"])
	}
}

func TestListByCountryAndCategory(t *testing.T) {
	s := newTestServer()

	w := s.request(t, http.MethodGet, "/dataset/poland/economy?lang=de", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	want := models.ListQuery{Country: "poland", Category: "economy", Lang: "de"}
	if s.catalog.LastQuery != want {
		t.Errorf("Path params not forwarded: %#v", s.catalog.LastQuery)
	}
}

func TestListByCountry_UnknownCategory(t *testing.T) {
	s := newTestServer()
	s.catalog.Err = service.NewNotFound("category %q not found for country %q", "astrology", "Poland")

	w := s.request(t, http.MethodGet, "/dataset/poland/astrology", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] != `category "astrology" not found for country "Poland"` {
		t.Errorf("Unexpected error message: %v", body["error"])
	}
}

func TestGetNews_StaticSegmentWinsOverCategory(t *testing.T) {
	s := newTestServer()
	s.catalog.NewsResult = &models.NewsList{Count: 1, Comments: []string{"GDP rebounded"}}

	// /dataset/:country/news must hit the news handler, not the
	// category listing with category "news"
	w := s.request(t, http.MethodGet, "/dataset/poland/news", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if s.catalog.LastCountry != "poland" || s.catalog.LastCategory != "" {
		t.Errorf("Unexpected forwarding: country %q category %q", s.catalog.LastCountry, s.catalog.LastCategory)
	}

	w = s.request(t, http.MethodGet, "/dataset/poland/economy/news", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if s.catalog.LastCategory != "economy" {
		t.Errorf("Expected category economy, got %q", s.catalog.LastCategory)
	}
}

func TestGetCountries(t *testing.T) {
	s := newTestServer()
	s.catalog.CountriesResult = &models.CountryList{Count: 2, Countries: []string{"Germany", "Poland"}}

	w := s.request(t, http.MethodGet, "/countries", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["count"] != float64(2) {
		t.Errorf("Expected count 2, got %v", body["count"])
	}
}

func TestGetCategories(t *testing.T) {
	s := newTestServer()
	s.catalog.CategoryResult = &models.CategoryList{Count: 1, Categories: []string{"Gospodarka"}}

	w := s.request(t, http.MethodGet, "/categories/poland?lang=pl", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if s.catalog.LastCountry != "poland" {
		t.Errorf("Expected country forwarded, got %q", s.catalog.LastCountry)
	}
}

func TestGetContentHubs(t *testing.T) {
	s := newTestServer()
	s.catalog.HubResult = &models.ContentHubList{Count: 1, ContentHubs: []string{"Green Energy"}}

	w := s.request(t, http.MethodGet, "/contenthubs/poland", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["count"] != float64(1) {
		t.Errorf("Expected count 1, got %v", body["count"])
	}
}

func TestCacheRefresh_RequiresSecret(t *testing.T) {
	s := newTestServer()

	w := s.request(t, http.MethodPost, "/cache/refresh", nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 without secret, got %d", w.Code)
	}
	if s.cache.RefreshCalls != 0 {
		t.Error("Cache must not be touched on rejected refresh")
	}

	w = s.request(t, http.MethodPost, "/cache/refresh", map[string]string{api.SecretHeader: "wrong"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 with wrong secret, got %d", w.Code)
	}

	w = s.request(t, http.MethodPost, "/cache/refresh", map[string]string{api.SecretHeader: "topsecret"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 with secret, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["status"] != "cache cleared" {
		t.Errorf("Unexpected body: %v", body)
	}
	if s.cache.RefreshCalls != 1 {
		t.Errorf("Expected 1 refresh call, got %d", s.cache.RefreshCalls)
	}
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer()

	w := s.request(t, http.MethodGet, "/health", nil)
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("Expected generated request id header")
	}

	w = s.request(t, http.MethodGet, "/health", map[string]string{"X-Request-ID": "abc-123"})
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("Expected caller request id echoed, got %q", got)
	}
}
