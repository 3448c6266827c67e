package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigityalim/imperial-tobacco-web/internal/config"
	"github.com/yigityalim/imperial-tobacco-web/internal/content"
	"github.com/yigityalim/imperial-tobacco-web/internal/gate"
	"github.com/yigityalim/imperial-tobacco-web/internal/index"
	"github.com/yigityalim/imperial-tobacco-web/internal/metrics"
)

func testSnapshot(t *testing.T) *index.Snapshot {
	t.Helper()

	brand := &content.Document{
		Kind:      content.KindBrand,
		RawPath:   []string{"brands", "davidoff"},
		Title:     "Davidoff",
		Date:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Published: true,
		Brand:     &content.BrandFields{BrandName: "Davidoff", Logo: "/logo.svg"},
	}
	content.Derive(brand, nil)

	draft := &content.Document{
		Kind:      content.KindBrand,
		RawPath:   []string{"brands", "hidden"},
		Title:     "Hidden",
		Date:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Published: false,
		Brand:     &content.BrandFields{BrandName: "Hidden", Logo: "/logo.svg"},
	}
	content.Derive(draft, nil)

	product := &content.Document{
		Kind:      content.KindProduct,
		RawPath:   []string{"products", "davidoff", "slims", "01-gold"},
		Title:     "Gold",
		Date:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Published: true,
		Product: &content.ProductFields{
			BrandName: "Davidoff", CategoryName: "Slims", ProductName: "Gold",
			Currency: "TRY", Featured: true, InStock: true,
		},
	}
	content.Derive(product, nil)

	snap, err := index.Build([]*content.Document{brand, draft, product})
	require.NoError(t, err)
	return snap
}

func devServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Default()
	return New(cfg, Options{
		Holder:   index.NewHolder(testSnapshot(t)),
		Recorder: metrics.NewRecorder(),
	})
}

func prodServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Environment = config.EnvProduction
	return New(cfg, Options{Holder: index.NewHolder(testSnapshot(t))})
}

func get(t *testing.T, h http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestDocumentLookup(t *testing.T) {
	h := devServer(t).Handler()

	rec := get(t, h, "/tr/brands/davidoff")
	require.Equal(t, http.StatusOK, rec.Code)

	var doc content.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "Davidoff", doc.Title)
	assert.Equal(t, "/brands/davidoff", doc.Slug)
}

func TestDocumentLookup_MissIsJSON404(t *testing.T) {
	h := devServer(t).Handler()

	for _, path := range []string{
		"/tr/brands/no-such",
		"/tr/brands/hidden", // unpublished resolves as not found
		"/tr/unknownroot/x",
	} {
		rec := get(t, h, path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		var body map[string]map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), path)
		assert.Equal(t, "not_found", body["error"]["category"], path)
	}
}

func TestKindListing_ExcludesUnpublished(t *testing.T) {
	rec := get(t, devServer(t).Handler(), "/tr/brands")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []docSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Davidoff", list[0].Name)
}

func TestMenuEndpoint(t *testing.T) {
	h := devServer(t).Handler()

	rec := get(t, h, "/tr/menu?variant=desktop")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Variant string `json:"variant"`
		Items   []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "desktop", body.Variant)
	require.Len(t, body.Items, 3)
	assert.Equal(t, "brands", body.Items[0].ID)
}

func TestSearch(t *testing.T) {
	rec := get(t, devServer(t).Handler(), "/tr/search?q=gold")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Results []docSummary `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Results, 1)
	assert.Equal(t, "Gold", body.Results[0].Name)
}

func TestGate_ProductionRedirectsUntilOnboarded(t *testing.T) {
	h := prodServer(t).Handler()

	rec := get(t, h, "/tr/brands")
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/tr/onboarding", rec.Header().Get("Location"))

	flag := &http.Cookie{Name: gate.CookieName, Value: "true"}

	rec = get(t, h, "/tr/brands", flag)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, h, "/tr/onboarding", flag)
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/tr", rec.Header().Get("Location"))
}

func TestGate_DevelopmentBypasses(t *testing.T) {
	rec := get(t, devServer(t).Handler(), "/tr/brands")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGate_NeverBlocksAPIOrHealth(t *testing.T) {
	h := prodServer(t).Handler()

	assert.Equal(t, http.StatusOK, get(t, h, "/healthz").Code)
	assert.Equal(t, http.StatusOK, get(t, h, "/api/rebuilds").Code)
}

func TestOnboardingComplete_SetsCookieIdempotently(t *testing.T) {
	h := prodServer(t).Handler()

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/onboarding/complete", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, gate.CookieName, cookies[0].Name)
		assert.Equal(t, "true", cookies[0].Value)
		assert.True(t, cookies[0].Secure, "secure cookie in production")
	}
}

func TestOnboardingClear(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/api/onboarding", nil)
	rec := httptest.NewRecorder()
	prodServer(t).Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestLocaleNegotiation_FallsBackToDefault(t *testing.T) {
	h := devServer(t).Handler()

	// Unsupported or missing locale prefixes redirect to the default-locale
	// form of the same path.
	rec := get(t, h, "/xx")
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/tr/xx", rec.Header().Get("Location"))

	rec = get(t, h, "/")
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/tr", rec.Header().Get("Location"))

	rec = get(t, h, "/tr")
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "tr", body["locale"])
}

func TestHealthz(t *testing.T) {
	rec := get(t, devServer(t).Handler(), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(3), body["documents"])
}
