package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/kartgeo/crsdex/internal/domain"
	"github.com/kartgeo/crsdex/internal/domain/search/candidate"
	"github.com/kartgeo/crsdex/internal/domain/search/field"
	domvar "github.com/kartgeo/crsdex/internal/domain/search/variant"
	healthuc "github.com/kartgeo/crsdex/internal/usecase/health"
	searchuc "github.com/kartgeo/crsdex/internal/usecase/search"

	"go.uber.org/zap"
)

// --- Mocks ---

type stubRetriever struct {
	rows      map[string][]candidate.Candidate
	lookupRow candidate.Candidate
	lookupErr error
}

func (s *stubRetriever) Fetch(
	_ context.Context, variant string, _ []field.Field, _ int,
) ([]candidate.Candidate, error) {
	return s.rows[variant], nil
}

func (s *stubRetriever) LookupSRID(_ context.Context, _ int) (candidate.Candidate, error) {
	if s.lookupErr != nil {
		return candidate.Candidate{}, s.lookupErr
	}
	return s.lookupRow, nil
}

type stubGenerator struct {
	variants []domvar.Variant
}

func (s *stubGenerator) Generate(_ string) []domvar.Variant {
	return s.variants
}

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(_ context.Context) error { return s.err }

func newTestRouter(t *testing.T, retr searchuc.Retriever, gen searchuc.Generator, db *stubPinger) http.Handler {
	t.Helper()

	svc, err := searchuc.New(retr, gen)
	if err != nil {
		t.Fatalf("search.New: %v", err)
	}
	t.Cleanup(svc.Close)

	srv := NewServer(svc, healthuc.New(db, nil), zap.NewNop())
	r := chi.NewRouter()
	srv.Routes(r)
	return r
}

func doRequest(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", target, http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// --- Tests ---

func TestSearch_OK(t *testing.T) {
	retr := &stubRetriever{rows: map[string][]candidate.Candidate{
		"мск": {{SRID: 100326, AuthorityName: "МСК-01", RawText: "зона 1"}},
	}}
	gen := &stubGenerator{variants: []domvar.Variant{{Text: "мск", Priority: 0}}}
	r := newTestRouter(t, retr, gen, &stubPinger{})

	rr := doRequest(t, r, "/api/v1/search?q=%D0%BC%D1%81%D0%BA")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rr.Code, http.StatusOK, rr.Body.String())
	}
	var resp SearchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 1 || len(resp.Results) != 1 {
		t.Fatalf("count = %d, results = %d, want 1 each", resp.Count, len(resp.Results))
	}
	if resp.Results[0].SRID != 100326 {
		t.Errorf("srid = %d, want 100326", resp.Results[0].SRID)
	}
	if resp.Results[0].FoundByVariant != "мск" {
		t.Errorf("found_by_variant = %q, want %q", resp.Results[0].FoundByVariant, "мск")
	}
	if resp.Query != "мск" {
		t.Errorf("query = %q, want %q", resp.Query, "мск")
	}
}

func TestSearch_EmptyQuery_EmptySet(t *testing.T) {
	r := newTestRouter(t, &stubRetriever{}, &stubGenerator{}, &stubPinger{})

	rr := doRequest(t, r, "/api/v1/search?q=")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	var resp SearchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 0 || len(resp.Results) != 0 {
		t.Errorf("count = %d, results = %d, want 0 each", resp.Count, len(resp.Results))
	}
}

func TestSearch_SRIDFastPath(t *testing.T) {
	retr := &stubRetriever{
		lookupRow: candidate.Candidate{
			SRID: 32637, AuthorityName: "EPSG", AuthorityID: 32637, HasAuthorityID: true,
			RawText: `PROJCS["WGS 84 / UTM zone 37N",GEOGCS["WGS 84"]]`,
		},
	}
	r := newTestRouter(t, retr, &stubGenerator{}, &stubPinger{})

	rr := doRequest(t, r, "/api/v1/search?q=32637&srid=true")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	var resp SearchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 1 {
		t.Fatalf("count = %d, want 1", resp.Count)
	}
	if resp.Results[0].SRID != 32637 {
		t.Errorf("srid = %d, want 32637", resp.Results[0].SRID)
	}
	if resp.Results[0].Relevance != 2.0 {
		t.Errorf("relevance = %v, want 2.0", resp.Results[0].Relevance)
	}
}

func TestSearch_InvalidLimit_400(t *testing.T) {
	r := newTestRouter(t, &stubRetriever{}, &stubGenerator{}, &stubPinger{})

	rr := doRequest(t, r, "/api/v1/search?q=msk&limit=abc")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	var errResp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Code != CodeBadRequest {
		t.Errorf("code = %s, want %s", errResp.Code, CodeBadRequest)
	}
}

func TestSearch_InvalidSRIDFlag_400(t *testing.T) {
	r := newTestRouter(t, &stubRetriever{}, &stubGenerator{}, &stubPinger{})

	rr := doRequest(t, r, "/api/v1/search?q=32637&srid=maybe")

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestSearch_QueryTooLong_400(t *testing.T) {
	r := newTestRouter(t, &stubRetriever{}, &stubGenerator{}, &stubPinger{})

	long := make([]byte, 600)
	for i := range long {
		long[i] = 'a'
	}
	rr := doRequest(t, r, "/api/v1/search?q="+string(long))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	var errResp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Code != CodeValidationFailed {
		t.Errorf("code = %s, want %s", errResp.Code, CodeValidationFailed)
	}
}

func TestGetCRS_OK(t *testing.T) {
	retr := &stubRetriever{
		lookupRow: candidate.Candidate{
			SRID: 4326, AuthorityName: "EPSG", AuthorityID: 4326, HasAuthorityID: true,
			RawText: `GEOGCS["WGS 84",DATUM["WGS_1984"]]`,
		},
	}
	r := newTestRouter(t, retr, &stubGenerator{}, &stubPinger{})

	rr := doRequest(t, r, "/api/v1/crs/4326")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rr.Code, http.StatusOK, rr.Body.String())
	}
	var item SearchResultItem
	if err := json.NewDecoder(rr.Body).Decode(&item); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if item.SRID != 4326 {
		t.Errorf("srid = %d, want 4326", item.SRID)
	}
	if item.Name != "EPSG:4326" {
		t.Errorf("name = %q, want %q", item.Name, "EPSG:4326")
	}
}

func TestGetCRS_NotFound_404(t *testing.T) {
	retr := &stubRetriever{lookupErr: domain.ErrNotFound}
	r := newTestRouter(t, retr, &stubGenerator{}, &stubPinger{})

	rr := doRequest(t, r, "/api/v1/crs/999999")

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	var errResp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Code != CodeNotFound {
		t.Errorf("code = %s, want %s", errResp.Code, CodeNotFound)
	}
}

func TestGetCRS_NonNumeric_400(t *testing.T) {
	r := newTestRouter(t, &stubRetriever{}, &stubGenerator{}, &stubPinger{})

	rr := doRequest(t, r, "/api/v1/crs/wgs84")

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestGetCRS_InternalError_500(t *testing.T) {
	retr := &stubRetriever{lookupErr: errors.New("connection refused")}
	r := newTestRouter(t, retr, &stubGenerator{}, &stubPinger{})

	rr := doRequest(t, r, "/api/v1/crs/4326")

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	var errResp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Message != "internal error" {
		t.Errorf("message = %q, must not leak internals", errResp.Message)
	}
}

func TestHealthCheck_Healthy_200(t *testing.T) {
	r := newTestRouter(t, &stubRetriever{}, &stubGenerator{}, &stubPinger{})

	rr := doRequest(t, r, "/healthz")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	var resp HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want %q", resp.Status, "ok")
	}
	if resp.Checks["database"] != "ok" {
		t.Errorf("database check = %q, want %q", resp.Checks["database"], "ok")
	}
}

func TestHealthCheck_DBDown_503(t *testing.T) {
	db := &stubPinger{err: errors.New("connection refused")}
	r := newTestRouter(t, &stubRetriever{}, &stubGenerator{}, db)

	rr := doRequest(t, r, "/healthz")

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
	var resp HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "degraded" {
		t.Errorf("status = %q, want %q", resp.Status, "degraded")
	}
}

func TestMetrics_200(t *testing.T) {
	r := newTestRouter(t, &stubRetriever{}, &stubGenerator{}, &stubPinger{})

	rr := doRequest(t, r, "/metrics")

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusOK)
	}
}
