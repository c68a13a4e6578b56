package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/creativesites/Destiny-Bakes-sub000/internal/httpx/middlewares"
	"github.com/creativesites/Destiny-Bakes-sub000/internal/order/domain"
	"github.com/creativesites/Destiny-Bakes-sub000/internal/order/lifecycle"
	"github.com/creativesites/Destiny-Bakes-sub000/internal/pkg/cache"
)

// orderCacheTTL bounds how stale a cached order read can be. Writes also
// refresh the entry, so the TTL only matters for orders updated by another
// process sharing the cache.
const orderCacheTTL = 30 * time.Second

// Handler exposes the order core over HTTP for the storefront and admin
// views.
type Handler struct {
	orders lifecycle.Service
	cache  cache.Cache // nil-safe: read caching skipped if nil
}

// NewHandler wires the lifecycle service and an optional read cache.
func NewHandler(orders lifecycle.Service, c cache.Cache) *Handler {
	return &Handler{orders: orders, cache: c}
}

// CreateOrder validates and prices a cake configuration and persists the
// order in the pending state.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	delivery, err := parseDelivery(req.Delivery)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_delivery", err.Error())
		return
	}

	input := lifecycle.CreateOrderInput{
		Config:   req.CakeConfig,
		Delivery: delivery,
	}
	if req.BasePrice != nil {
		base := domain.Money(*req.BasePrice)
		input.BasePrice = &base
	}

	order, err := h.orders.CreateOrder(r.Context(), input)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	h.cacheOrder(r, order)
	writeJSON(w, http.StatusCreated, mapOrderToResponse(order))
}

// GetOrderByID serves the read model, preferring the cache when present.
func (h *Handler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if cached, ok := h.cachedOrder(r, id); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	order, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	h.cacheOrder(r, order)
	writeJSON(w, http.StatusOK, mapOrderToResponse(order))
}

// ListOrders serves the admin board, optionally filtered by ?status=.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	status := domain.OrderStatus(r.URL.Query().Get("status"))

	orders, err := h.orders.ListOrders(r.Context(), status)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	out := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, mapOrderToResponse(order))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetOrderEvents returns the order's audit trail, oldest first.
func (h *Handler) GetOrderEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	events, err := h.orders.GetEvents(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	out := make([]EventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, mapEventToResponse(ev))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetOrderProgress returns the tracker values, recomputed on every read.
func (h *Handler) GetOrderProgress(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.orders.GetProgress(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ProgressResponse{
		Percent:        p.Percent,
		CountdownLabel: p.Countdown.Label,
		Urgency:        string(p.Countdown.Urgency),
	})
}

// UpdateStatus moves the order through the fulfillment pipeline.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.StaffID == "" {
		req.StaffID = middlewares.StaffIDFromContext(r.Context())
	}
	if req.StaffID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "staff_id is required")
		return
	}

	order, err := h.orders.SetStatus(r.Context(), id,
		domain.OrderStatus(req.Status), req.StaffID, req.Notes, req.EstimatedCompletion)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	h.cacheOrder(r, order)
	writeJSON(w, http.StatusOK, mapOrderToResponse(order))
}

// UpdatePaymentStatus updates the payment sub-state independently of the
// fulfillment status.
func (h *Handler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	order, err := h.orders.SetPaymentStatus(r.Context(), id, domain.PaymentStatus(req.PaymentStatus))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	h.cacheOrder(r, order)
	writeJSON(w, http.StatusOK, mapOrderToResponse(order))
}

// AddEvent records a free-form staff tracking note.
func (h *Handler) AddEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req AddEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.StaffID == "" {
		req.StaffID = middlewares.StaffIDFromContext(r.Context())
	}
	if req.StaffID == "" || req.Description == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "staff_id and description are required")
		return
	}

	event, err := h.orders.AddTrackingNote(r.Context(), id,
		req.StaffID, req.EventType, req.Description, req.Notes, req.EstimatedCompletion)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, mapEventToResponse(*event))
}

// writeDomainError maps core errors to HTTP status codes. Persistence
// errors fall through to 500 unchanged.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "order_not_found", err.Error())
	case domain.IsValidationError(err):
		writeError(w, http.StatusUnprocessableEntity, "invalid_configuration", err.Error())
	case errors.Is(err, domain.ErrInvalidStatus), errors.Is(err, domain.ErrInvalidPaymentStatus):
		writeError(w, http.StatusBadRequest, "invalid_status", err.Error())
	case errors.Is(err, domain.ErrOrderCompleted):
		writeError(w, http.StatusConflict, "order_completed", err.Error())
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"request_id", middlewares.RequestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}

func (h *Handler) cacheOrder(r *http.Request, order *domain.Order) {
	if h.cache == nil {
		return
	}
	body, err := json.Marshal(mapOrderToResponse(order))
	if err != nil {
		return
	}
	key := h.cache.GenerateKey("order", order.ID)
	if err := h.cache.Set(r.Context(), key, string(body), orderCacheTTL); err != nil {
		slog.WarnContext(r.Context(), "cache set failed", "order_id", order.ID, "error", err)
	}
}

func (h *Handler) cachedOrder(r *http.Request, id string) (*OrderResponse, bool) {
	if h.cache == nil {
		return nil, false
	}
	raw, err := h.cache.Get(r.Context(), h.cache.GenerateKey("order", id))
	if err != nil || raw == "" {
		return nil, false
	}
	var resp OrderResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

func parseDelivery(d DeliveryDTO) (domain.DeliveryDetails, error) {
	details := domain.DeliveryDetails{
		TimeWindow:          d.TimeWindow,
		Address:             d.Address,
		SpecialInstructions: d.SpecialInstructions,
	}
	if d.Date != "" {
		date, err := time.Parse(time.RFC3339, d.Date)
		if err != nil {
			return details, err
		}
		details.Date = date.UTC()
	}
	return details, nil
}

func mapOrderToResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		CakeConfig:    order.CakeConfig,
		Servings:      order.CakeConfig.Size.Servings(),
		TotalAmount:   int64(order.TotalAmount),
		Status:        string(order.Status),
		PaymentStatus: string(order.PaymentStatus),
		Delivery: DeliveryDTO{
			Date:                order.Delivery.Date.Format(time.RFC3339),
			TimeWindow:          order.Delivery.TimeWindow,
			Address:             order.Delivery.Address,
			SpecialInstructions: order.Delivery.SpecialInstructions,
		},
		CreatedAt: order.CreatedAt.Format(time.RFC3339),
		UpdatedAt: order.UpdatedAt.Format(time.RFC3339),
	}
}

func mapEventToResponse(ev domain.OrderEvent) EventResponse {
	return EventResponse{
		ID:                  ev.ID,
		OrderID:             ev.OrderID,
		EventType:           ev.EventType,
		Description:         ev.Description,
		Notes:               ev.Notes,
		EstimatedCompletion: ev.EstimatedCompletion,
		ActualCompletion:    ev.ActualCompletion,
		CreatedAt:           ev.CreatedAt.Format(time.RFC3339),
		CreatedBy:           ev.CreatedBy,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
