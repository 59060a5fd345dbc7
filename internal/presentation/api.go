package presentation

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RaikyD/orders-tracker/internal/application"
	"github.com/RaikyD/orders-tracker/internal/domain"
	"github.com/RaikyD/orders-tracker/internal/logger"
	"github.com/RaikyD/orders-tracker/internal/presentation/helpers"
	"github.com/RaikyD/orders-tracker/internal/repository"
)

// APIDateLayout is how order dates appear in JSON responses.
const APIDateLayout = "2006-01-02 15:04:05"

// APIHandler serves the read-only JSON API. It is intentionally not behind
// the session guard.
type APIHandler struct {
	orders *application.OrdersService
	items  *application.ItemsService
}

func NewAPIHandler(orders *application.OrdersService, items *application.ItemsService) *APIHandler {
	return &APIHandler{orders: orders, items: items}
}

func (h *APIHandler) Register(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/orders", h.listOrders)
		r.Get("/orders/{id:[0-9]+}", h.getOrder)
		r.Get("/shopping_list", h.listItems)
		r.Get("/shopping_list/{id:[0-9]+}", h.getItem)
	})
}

type orderResponse struct {
	ID           int64  `json:"id"`
	CustomerName string `json:"customer_name"`
	Product      string `json:"product"`
	SalesChannel string `json:"sales_channel"`
	Date         string `json:"date"`
}

func toOrderResponse(o domain.Order) orderResponse {
	return orderResponse{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		Product:      o.Product,
		SalesChannel: o.SalesChannel,
		Date:         o.Date.Format(APIDateLayout),
	}
}

type itemResponse struct {
	ID       int64  `json:"id"`
	Product  string `json:"product"`
	Supplier string `json:"supplier"`
}

func toItemResponse(it domain.ShoppingItem) itemResponse {
	return itemResponse{ID: it.ID, Product: it.Product, Supplier: it.Supplier}
}

func (h *APIHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context(), "")
	if err != nil {
		writeAPIError(w, err)
		return
	}
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

func (h *APIHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.URLParamID(r)
	if !ok {
		helpers.HttpError(w, http.StatusNotFound, "order not found")
		return
	}
	o, err := h.orders.Get(r.Context(), id)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, toOrderResponse(o))
}

func (h *APIHandler) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.List(r.Context())
	if err != nil {
		writeAPIError(w, err)
		return
	}
	out := make([]itemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

func (h *APIHandler) getItem(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.URLParamID(r)
	if !ok {
		helpers.HttpError(w, http.StatusNotFound, "item not found")
		return
	}
	it, err := h.items.Get(r.Context(), id)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, toItemResponse(it))
}

func writeAPIError(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("api request failed", "err", err)
		helpers.HttpError(w, status, "internal error")
		return
	}
	helpers.HttpError(w, status, err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrValidation), errors.Is(err, application.ErrParse):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
