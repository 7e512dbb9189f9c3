package http

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/zconv"
	"github.com/aretw0/zconv/pkg/adapters/devapi"
	"github.com/aretw0/zconv/pkg/adapters/memory"
	"github.com/aretw0/zconv/pkg/observability"
)

type browser struct {
	t      *testing.T
	base   string
	client *http.Client
}

func newBrowser(t *testing.T, opts ...Option) *browser {
	t.Helper()
	api := httptest.NewServer(devapi.NewHandler(memory.NewStore()))
	t.Cleanup(api.Close)

	opts = append([]Option{WithConsoleOptions(zconv.WithAPIURL(api.URL))}, opts...)
	ui := httptest.NewServer(NewHandler(opts...))
	t.Cleanup(ui.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{t: t, base: ui.URL, client: &http.Client{Jar: jar}}
}

func (b *browser) get(path string) (int, string) {
	b.t.Helper()
	resp, err := b.client.Get(b.base + path)
	require.NoError(b.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return resp.StatusCode, string(body)
}

func (b *browser) post(path string, form url.Values) (int, string) {
	b.t.Helper()
	resp, err := b.client.PostForm(b.base+path, form)
	require.NoError(b.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return resp.StatusCode, string(body)
}

func TestIndex_FirstVisitLoadsHistory(t *testing.T) {
	b := newBrowser(t)

	code, body := b.get("/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `id="convertForm"`)
	assert.Contains(t, body, `<span class="text-muted">No history found.</span>`)

	u, _ := url.Parse(b.base)
	require.Len(t, b.client.Jar.Cookies(u), 1)
	assert.Equal(t, CookieName, b.client.Jar.Cookies(u)[0].Name)
}

func TestSubmit_RendersResultAndHistory(t *testing.T) {
	b := newBrowser(t)
	b.get("/")

	code, body := b.post("/submit", url.Values{"userInput": {"dz_a_aazzaaa"}})
	assert.Equal(t, http.StatusOK, code, "redirect is followed back to the page")
	assert.Contains(t, body, "<strong>Output:</strong> [28, 53, 1]")
	assert.Contains(t, body, "<strong>Input:</strong> dz_a_aazzaaa <br/>")
	assert.Contains(t, body, `value="dz_a_aazzaaa"`)
}

func TestSubmit_DetailIsErrorStyled(t *testing.T) {
	b := newBrowser(t)

	_, body := b.post("/submit", url.Values{"userInput": {""}})
	assert.Contains(t, body, `<span class="text-danger">Error: Input string is required</span>`)
}

func TestSubmit_EscapesInput(t *testing.T) {
	b := newBrowser(t)

	payload := "<script>alert(1)</script>"
	_, body := b.post("/submit", url.Values{"userInput": {payload}})
	assert.NotContains(t, body, payload)
	assert.Contains(t, body, "&lt;script&gt;alert(1)&lt;/script&gt;")
}

func TestClearAndHistory(t *testing.T) {
	b := newBrowser(t)
	b.post("/submit", url.Values{"userInput": {"abc"}})

	_, body := b.post("/clear", nil)
	assert.Contains(t, body, `<div id="resultArea"></div>`)
	assert.Contains(t, body, `<div id="historyArea"></div>`)

	_, body = b.post("/history", nil)
	assert.Contains(t, body, "<strong>Input:</strong> abc <br/><strong>Output:</strong> [2]")
	assert.Contains(t, body, `<div id="resultArea"></div>`, "history does not touch the result")
}

func TestSessionsAreIsolated(t *testing.T) {
	a := newBrowser(t)
	a.post("/submit", url.Values{"userInput": {"abc"}})

	// Same UI server, fresh cookie jar
	jar, _ := cookiejar.New(nil)
	other := &browser{t: t, base: a.base, client: &http.Client{Jar: jar}}
	_, body := other.get("/")
	assert.Contains(t, body, `<div id="resultArea"></div>`)
	assert.Contains(t, body, "<strong>Input:</strong> abc", "history is shared through the API")
}

func TestHealthInfoMetrics(t *testing.T) {
	m := observability.NewMetrics()
	b := newBrowser(t, WithMetrics(m.Handler()), WithConsoleOptions(zconv.WithObserver(m)))
	b.get("/")

	code, body := b.get("/health")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"ok"}`, body)

	_, body = b.get("/info")
	assert.Contains(t, body, `"sessions":1`)

	_, body = b.get("/metrics")
	assert.Contains(t, body, `zconv_api_requests_total{outcome="ok",route="/api/history"} 1`)
}

func TestPrune(t *testing.T) {
	down := httptest.NewServer(http.NotFoundHandler())
	down.Close()

	s := NewServer(WithConsoleOptions(zconv.WithAPIURL(down.URL)))
	srv := httptest.NewServer(s.Routes())
	defer srv.Close()

	// The console targets an unreachable API; the page still renders.
	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, strings.Contains(string(body), "text-danger"))

	assert.Equal(t, 0, s.Prune(time.Hour))
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 1, s.Prune(time.Millisecond))
}
