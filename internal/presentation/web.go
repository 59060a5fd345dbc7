package presentation

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RaikyD/orders-tracker/internal/application"
	"github.com/RaikyD/orders-tracker/internal/logger"
	"github.com/RaikyD/orders-tracker/internal/presentation/helpers"
	"github.com/RaikyD/orders-tracker/internal/repository"
	"github.com/RaikyD/orders-tracker/internal/session"
)

// WebHandler serves the form-based pages. Every page except login and
// logout requires an authenticated session.
type WebHandler struct {
	orders *application.OrdersService
	items  *application.ItemsService
	guard  *session.Guard
	pages  map[string]*template.Template
}

func NewWebHandler(orders *application.OrdersService, items *application.ItemsService, guard *session.Guard) *WebHandler {
	return &WebHandler{
		orders: orders,
		items:  items,
		guard:  guard,
		pages:  parsePages("login", "dashboard", "order_form", "shopping_list", "item_form"),
	}
}

func (h *WebHandler) Register(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	})
	r.Get("/login", h.loginForm)
	r.Post("/login", h.login)
	r.Get("/logout", h.logout)

	dashboard := h.protect("You need to be logged in to view this page", h.dashboard)
	r.Get("/dashboard", dashboard)
	r.Post("/dashboard", dashboard)

	r.Get("/add_order", h.protect("You need to be logged in to add an order", h.addOrderForm))
	r.Post("/add_order", h.protect("You need to be logged in to add an order", h.addOrder))
	r.Get("/edit_order/{id:[0-9]+}", h.protect("You need to be logged in to edit an order", h.editOrderForm))
	r.Post("/edit_order/{id:[0-9]+}", h.protect("You need to be logged in to edit an order", h.editOrder))
	r.Get("/delete_order/{id:[0-9]+}", h.protect("You need to be logged in to delete an order", h.deleteOrder))

	r.Get("/shopping_list", h.protect("You need to be logged in to view the shopping list", h.shoppingList))
	r.Get("/add_item", h.protect("You need to be logged in to add an item", h.addItemForm))
	r.Post("/add_item", h.protect("You need to be logged in to add an item", h.addItem))
	r.Get("/edit_item/{id:[0-9]+}", h.protect("You need to be logged in to edit an item", h.editItemForm))
	r.Post("/edit_item/{id:[0-9]+}", h.protect("You need to be logged in to edit an item", h.editItem))
	r.Get("/delete_item/{id:[0-9]+}", h.protect("You need to be logged in to delete an item", h.deleteItem))
}

// protect runs next only for authenticated sessions; everyone else is sent
// to the login page with msg as a danger notice.
func (h *WebHandler) protect(msg string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		if !h.guard.IsAuthenticated(sess) {
			if sess != nil {
				sess.AddNotice(session.Danger, msg)
			}
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next(w, r)
	}
}

func (h *WebHandler) render(w http.ResponseWriter, r *http.Request, page string, v view) {
	sess := sessionFrom(r)
	v.LoggedIn = h.guard.IsAuthenticated(sess)
	v.Notices = sess.PopNotices()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.pages[page].ExecuteTemplate(w, "layout", v); err != nil {
		logger.Error("render page failed", "page", page, "err", err)
	}
}

func (h *WebHandler) notice(r *http.Request, c session.Category, msg string) {
	sessionFrom(r).AddNotice(c, msg)
}

func (h *WebHandler) redirect(w http.ResponseWriter, r *http.Request, c session.Category, msg, to string) {
	h.notice(r, c, msg)
	http.Redirect(w, r, to, http.StatusFound)
}

// failed turns a service error into a danger notice and a redirect. Input
// errors go back to the form; anything else goes to fallback.
func (h *WebHandler) failed(w http.ResponseWriter, r *http.Request, what string, err error, form, fallback string) {
	if errors.Is(err, application.ErrValidation) || errors.Is(err, application.ErrParse) {
		h.redirect(w, r, session.Danger, fmt.Sprintf("Could not %s: %v", what, err), form)
		return
	}
	logger.Error("web request failed", "action", what, "err", err)
	h.redirect(w, r, session.Danger, fmt.Sprintf("Could not %s, please try again", what), fallback)
}

func notFound(w http.ResponseWriter) {
	http.Error(w, "Not Found", http.StatusNotFound)
}

func (h *WebHandler) loginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login", view{Title: "Log in"})
}

func (h *WebHandler) login(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	sess := sessionFrom(r)
	ok, err := h.guard.Authenticate(r.Context(), sess, r.PostForm.Get("username"), r.PostForm.Get("password"))
	if err != nil {
		logger.Error("login failed", "err", err)
		h.redirect(w, r, session.Danger, "Could not log in, please try again", "/login")
		return
	}
	if ok {
		h.redirect(w, r, session.Success, "You were successfully logged in", "/dashboard")
		return
	}
	h.notice(r, session.Danger, "Invalid login credentials")
	h.render(w, r, "login", view{Title: "Log in"})
}

func (h *WebHandler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.guard.Clear(r.Context(), sessionFrom(r)); err != nil {
		logger.Error("logout failed", "err", err)
	}
	h.redirect(w, r, session.Success, "You were successfully logged out", "/login")
}

func (h *WebHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	var term string
	if r.Method == http.MethodPost {
		_ = r.ParseForm()
		term = r.PostForm.Get("search")
	}
	orders, err := h.orders.List(r.Context(), term)
	if err != nil {
		logger.Error("list orders failed", "err", err)
		h.notice(r, session.Danger, "Could not load orders")
	}
	h.render(w, r, "dashboard", view{Title: "Orders", Orders: orders, Search: term})
}

func (h *WebHandler) addOrderForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "order_form", view{Title: "Add order", Action: "/add_order"})
}

func (h *WebHandler) addOrder(w http.ResponseWriter, r *http.Request) {
	if _, err := h.orders.Create(r.Context(), decodeOrderForm(r)); err != nil {
		h.failed(w, r, "add order", err, "/add_order", "/dashboard")
		return
	}
	h.redirect(w, r, session.Success, "Order added successfully", "/dashboard")
}

func (h *WebHandler) editOrderForm(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.URLParamID(r)
	if !ok {
		notFound(w)
		return
	}
	o, err := h.orders.Get(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		notFound(w)
		return
	}
	if err != nil {
		h.failed(w, r, "load order", err, "/dashboard", "/dashboard")
		return
	}
	h.render(w, r, "order_form", view{Title: "Edit order", Action: fmt.Sprintf("/edit_order/%d", id), Order: o})
}

func (h *WebHandler) editOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.URLParamID(r)
	if !ok {
		notFound(w)
		return
	}
	_, err := h.orders.Update(r.Context(), id, decodeOrderForm(r))
	if errors.Is(err, repository.ErrNotFound) {
		notFound(w)
		return
	}
	if err != nil {
		h.failed(w, r, "update order", err, fmt.Sprintf("/edit_order/%d", id), "/dashboard")
		return
	}
	h.redirect(w, r, session.Success, "Order updated successfully", "/dashboard")
}

func (h *WebHandler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.URLParamID(r)
	if !ok {
		notFound(w)
		return
	}
	err := h.orders.Delete(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		notFound(w)
		return
	}
	if err != nil {
		h.failed(w, r, "delete order", err, "/dashboard", "/dashboard")
		return
	}
	h.redirect(w, r, session.Success, "Order deleted successfully", "/dashboard")
}

func (h *WebHandler) shoppingList(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.List(r.Context())
	if err != nil {
		logger.Error("list shopping items failed", "err", err)
		h.notice(r, session.Danger, "Could not load the shopping list")
	}
	h.render(w, r, "shopping_list", view{Title: "Shopping list", Items: items})
}

func (h *WebHandler) addItemForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "item_form", view{Title: "Add item", Action: "/add_item"})
}

func (h *WebHandler) addItem(w http.ResponseWriter, r *http.Request) {
	if _, err := h.items.Create(r.Context(), decodeItemForm(r)); err != nil {
		h.failed(w, r, "add item", err, "/add_item", "/shopping_list")
		return
	}
	h.redirect(w, r, session.Success, "Item added successfully", "/shopping_list")
}

func (h *WebHandler) editItemForm(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.URLParamID(r)
	if !ok {
		notFound(w)
		return
	}
	it, err := h.items.Get(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		notFound(w)
		return
	}
	if err != nil {
		h.failed(w, r, "load item", err, "/shopping_list", "/shopping_list")
		return
	}
	h.render(w, r, "item_form", view{Title: "Edit item", Action: fmt.Sprintf("/edit_item/%d", id), Item: it})
}

func (h *WebHandler) editItem(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.URLParamID(r)
	if !ok {
		notFound(w)
		return
	}
	_, err := h.items.Update(r.Context(), id, decodeItemForm(r))
	if errors.Is(err, repository.ErrNotFound) {
		notFound(w)
		return
	}
	if err != nil {
		h.failed(w, r, "update item", err, fmt.Sprintf("/edit_item/%d", id), "/shopping_list")
		return
	}
	h.redirect(w, r, session.Success, "Item updated successfully", "/shopping_list")
}

func (h *WebHandler) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.URLParamID(r)
	if !ok {
		notFound(w)
		return
	}
	err := h.items.Delete(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		notFound(w)
		return
	}
	if err != nil {
		h.failed(w, r, "delete item", err, "/shopping_list", "/shopping_list")
		return
	}
	h.redirect(w, r, session.Success, "Item deleted successfully", "/shopping_list")
}
