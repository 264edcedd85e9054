package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Om-Ravindra-Patil/portfolio/internal/config"
	"github.com/Om-Ravindra-Patil/portfolio/internal/logging"
	"github.com/Om-Ravindra-Patil/portfolio/internal/store"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testApp struct {
	srv    *server
	router *gin.Engine
	store  *store.Store
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	st, err := store.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cfg := config.Default()
	cfg.GinMode = "test"
	cfg.AdminPassword = "s3cret"

	srv, err := newServer(cfg, logging.New("error", "json", io.Discard), st)
	require.NoError(t, err)
	srv.now = func() time.Time { return fixedNow }
	srv.spawn = func(f func()) { f() }

	return &testApp{srv: srv, router: srv.routes(), store: st}
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) postJSON(t *testing.T, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return a.do(req)
}

func (a *testApp) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req)
}

func (a *testApp) stats(t *testing.T) *store.Stats {
	t.Helper()
	stats, err := a.store.Stats(context.Background(), fixedNow)
	require.NoError(t, err)
	return stats
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestIndex_RendersEverySection(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	for _, id := range app.srv.sections.IDs() {
		assert.Contains(t, body, `<section id="`+id+`"`)
		assert.Contains(t, body, `href="#`+id+`"`)
	}
	assert.Contains(t, body, `data-section="hero" class="nav-link active"`)
	assert.Contains(t, body, `data-probe-offset="100"`)
	assert.Contains(t, body, "<strong>IJRAR</strong>")
	assert.Contains(t, body, `href="tel:`)
	assert.NotContains(t, body, "ZgotmplZ")
	assert.NotEmpty(t, rec.Header().Get(headerRequestID))
}

func TestNav_HighlightsRequestedSection(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/nav?active=skills", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-section="skills" class="nav-link active"`)
	assert.Equal(t, 1, strings.Count(rec.Body.String(), "nav-link active"))

	rec = app.do(httptest.NewRequest(http.MethodGet, "/nav?active=blog", nil))
	assert.Contains(t, rec.Body.String(), `data-section="hero" class="nav-link active"`)
}

func TestActiveSection(t *testing.T) {
	app := newTestApp(t)

	rec := app.postJSON(t, "/api/active-section", `{
		"previous": "hero",
		"boxes": {
			"hero": {"top": -900, "bottom": -20},
			"education": {"top": -20, "bottom": 700}
		}
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[activeSectionResponse](t, rec)
	assert.Equal(t, activeSectionResponse{
		Active:  "education",
		Label:   "Education",
		Anchor:  "#education",
		Changed: true,
	}, resp)

	stats := app.stats(t)
	assert.Equal(t, []store.SectionStat{{SectionID: "education", Views: 1}}, stats.TopSections)
}

func TestActiveSection_MissKeepsPrevious(t *testing.T) {
	app := newTestApp(t)

	rec := app.postJSON(t, "/api/active-section", `{
		"previous": "projects",
		"boxes": {"hero": {"top": 400, "bottom": 1200}}
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[activeSectionResponse](t, rec)
	assert.Equal(t, "projects", resp.Active)
	assert.False(t, resp.Changed)
	assert.Empty(t, app.stats(t).TopSections)
}

func TestActiveSection_ProbeOverrideAndDefaultPrevious(t *testing.T) {
	app := newTestApp(t)

	rec := app.postJSON(t, "/api/active-section", `{
		"probe": 10,
		"boxes": {
			"hero": {"top": -500, "bottom": 50},
			"education": {"top": 50, "bottom": 900}
		}
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[activeSectionResponse](t, rec)
	assert.Equal(t, "hero", resp.Active)
	assert.False(t, resp.Changed)
}

func TestActiveSection_BadRequests(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"boxes":`},
		{name: "missing boxes", body: `{"previous": "hero"}`},
		{name: "unknown previous", body: `{"previous": "blog", "boxes": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.postJSON(t, "/api/active-section", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestContactAPI_Valid(t *testing.T) {
	app := newTestApp(t)

	rec := app.postJSON(t, "/api/contact",
		`{"name": "  Jo  ", "email": "jo@example.com", "message": "Let's work together!"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[map[string]string](t, rec)
	assert.Equal(t, "ompatil.uk@gmail.com", resp["recipient"])

	u, err := url.Parse(resp["mailto"])
	require.NoError(t, err)
	assert.Equal(t, "mailto", u.Scheme)
	assert.Equal(t, "Portfolio Contact from Jo", u.Query().Get("subject"))
	assert.Contains(t, u.Query().Get("body"), "Email: jo@example.com\r\n")
}

func TestContactAPI_CollectsAllErrors(t *testing.T) {
	app := newTestApp(t)

	rec := app.postJSON(t, "/api/contact", `{"name": "", "email": "bad", "message": "hi"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	resp := decode[struct {
		Errors []fieldErrorResponse `json:"errors"`
	}](t, rec)

	require.Len(t, resp.Errors, 3)
	assert.Equal(t, fieldErrorResponse{Field: "name", Kind: "too_short", Message: "Name must be at least 2 characters"}, resp.Errors[0])
	assert.Equal(t, fieldErrorResponse{Field: "email", Kind: "invalid_format", Message: "Please enter a valid email address"}, resp.Errors[1])
	assert.Equal(t, fieldErrorResponse{Field: "message", Kind: "too_short", Message: "Message must be at least 10 characters"}, resp.Errors[2])
}

func TestContactAPI_MalformedJSON(t *testing.T) {
	app := newTestApp(t)

	rec := app.postJSON(t, "/api/contact", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContactForm_Fragment(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/contact-form", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `hx-post="/contact"`)
	assert.NotContains(t, rec.Body.String(), "field-error")
}

func TestContact_InvalidRerendersForm(t *testing.T) {
	app := newTestApp(t)

	rec := app.postForm("/contact", url.Values{
		"name":    {"J"},
		"email":   {"jo@example.com"},
		"message": {"short"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Name must be at least 2 characters")
	assert.Contains(t, body, "Message must be at least 10 characters")
	assert.NotContains(t, body, `data-field="email"`)
	assert.Contains(t, body, `value="jo@example.com"`)
	assert.Empty(t, rec.Header().Get("HX-Redirect"))
}

func TestContact_ValidRedirectsToMailto(t *testing.T) {
	app := newTestApp(t)

	rec := app.postForm("/contact", url.Values{
		"name":    {"Jo"},
		"email":   {"jo@example.com"},
		"message": {"Fancy a chat about research?"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	redirect := rec.Header().Get("HX-Redirect")
	assert.True(t, strings.HasPrefix(redirect,
		"mailto:ompatil.uk@gmail.com?subject=Portfolio%20Contact%20from%20Jo&body="), redirect)
	assert.Contains(t, rec.Body.String(), "Opening email client")
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestNewServer_RejectsUnknownSubjectField(t *testing.T) {
	st, err := store.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cfg := config.Default()
	cfg.ContactSubject = "Hi {{.Sender}}"

	_, err = newServer(cfg, logging.New("error", "json", io.Discard), st)
	require.Error(t, err)
}
