package presentation

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/RaikyD/orders-tracker/internal/application"
	"github.com/RaikyD/orders-tracker/internal/repository"
	"github.com/RaikyD/orders-tracker/internal/session"
	"github.com/RaikyD/orders-tracker/internal/telemetry"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	store := repository.NewMemoryStore()
	m := telemetry.Nop()
	orders := application.NewOrdersService(store.Orders(), application.NopPublisher{}, m)
	items := application.NewItemsService(store.Items(), application.NopPublisher{}, m)
	sessions := session.NewMemoryStore(time.Hour)
	guard := session.NewGuard(session.StaticCredentials{Username: "d", Password: "d"}, sessions, m)

	return NewRouter(NewWebHandler(orders, items, guard), NewAPIHandler(orders, items), sessions, time.Hour)
}

// browser keeps the session cookie between requests and never follows redirects.
type browser struct {
	t       *testing.T
	h       http.Handler
	cookies []*http.Cookie
}

func newBrowser(t *testing.T, h http.Handler) *browser {
	return &browser{t: t, h: h}
}

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	b.h.ServeHTTP(w, req)
	if cs := w.Result().Cookies(); len(cs) > 0 {
		b.cookies = cs
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(http.MethodGet, path, nil)
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	return b.do(http.MethodPost, path, form)
}

func (b *browser) login() {
	b.t.Helper()
	w := b.post("/login", url.Values{"username": {"d"}, "password": {"d"}})
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/dashboard" {
		b.t.Fatalf("login failed: %d %s", w.Code, w.Header().Get("Location"))
	}
}
