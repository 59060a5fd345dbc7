package presentation

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPI_EmptyCollections(t *testing.T) {
	b := newBrowser(t, setupRouter(t))

	w := b.get("/api/orders")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = b.get("/api/shopping_list")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestAPI_OrderScenario(t *testing.T) {
	b := newBrowser(t, setupRouter(t))
	b.login()

	w := b.post("/add_order", url.Values{
		"customer_name": {"Jane"}, "product": {"Pen"}, "sales_channel": {"Online"}, "date": {"2024-05-01"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	// the API needs no session
	anon := newBrowser(t, b.h)
	w = anon.get("/api/orders/1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"customer_name":"Jane","product":"Pen","sales_channel":"Online","date":"2024-05-01 00:00:00"}`, w.Body.String())

	w = anon.get("/api/orders")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "2024-05-01 00:00:00", list[0]["date"])
	assert.Empty(t, anon.cookies)
}

func TestAPI_ShoppingList(t *testing.T) {
	b := newBrowser(t, setupRouter(t))
	b.login()
	b.post("/add_item", url.Values{"product": {"Paper"}, "supplier": {"Acme"}})
	b.post("/add_item", url.Values{"product": {"Ink"}, "supplier": {"Globex"}})

	w := b.get("/api/shopping_list")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"product":"Paper","supplier":"Acme"},{"id":2,"product":"Ink","supplier":"Globex"}]`, w.Body.String())

	w = b.get("/api/shopping_list/2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":2,"product":"Ink","supplier":"Globex"}`, w.Body.String())
}

func TestAPI_NotFound(t *testing.T) {
	b := newBrowser(t, setupRouter(t))

	for _, path := range []string{
		"/api/orders/1",
		"/api/orders/abc",
		"/api/orders/0",
		"/api/orders/99999999999999999999",
		"/api/shopping_list/5",
		"/api/shopping_list/x",
	} {
		w := b.get(path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestAPI_ReadOnly(t *testing.T) {
	b := newBrowser(t, setupRouter(t))
	w := b.post("/api/orders", url.Values{"customer_name": {"x"}})
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
