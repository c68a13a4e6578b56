package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creativesites/Destiny-Bakes-sub000/internal/order/lifecycle"
	"github.com/creativesites/Destiny-Bakes-sub000/internal/order/store/memory"
	"github.com/creativesites/Destiny-Bakes-sub000/internal/pkg/cache"
)

// mapCache is an in-memory cache.Cache so tests can exercise the read
// cache path without Redis.
type mapCache struct {
	mu      sync.Mutex
	entries map[string]string
}

var _ cache.Cache = (*mapCache)(nil)

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]string)}
}

func (c *mapCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = fmt.Sprint(value)
	return nil
}

func (c *mapCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key], nil
}

func (c *mapCache) GenerateKey(operation, key string) string {
	return fmt.Sprintf("test:%s:%s", operation, key)
}

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	repo := memory.New()
	svc := lifecycle.NewService(repo)
	return NewRouter(NewHandler(svc, newMapCache()))
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func createOrderBody() map[string]any {
	return map[string]any{
		"cake_config": map[string]any{
			"flavor": "vanilla",
			"size":   "8in",
			"shape":  "round",
			"layers": 1,
			"tiers":  1,
		},
		"delivery": map[string]any{
			"date":    time.Now().UTC().Add(48 * time.Hour).Format(time.RFC3339),
			"address": "12 Jacaranda Ave",
		},
	}
}

func TestOrderEndToEnd(t *testing.T) {
	h := setupRouter(t)

	w := doJSON(t, h, http.MethodPost, "/orders", createOrderBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[OrderResponse](t, w)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, "pending", created.PaymentStatus)
	assert.Equal(t, int64(85), created.TotalAmount)
	assert.Equal(t, 24, created.Servings)

	w = doJSON(t, h, http.MethodGet, "/orders/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[OrderResponse](t, w)
	assert.Equal(t, created.OrderNumber, got.OrderNumber)

	// A second read is served from the cache and must match.
	w = doJSON(t, h, http.MethodGet, "/orders/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, got, decode[OrderResponse](t, w))

	w = doJSON(t, h, http.MethodPatch, "/orders/"+created.ID+"/status", map[string]any{
		"status":   "confirmed",
		"staff_id": "staff-a",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "confirmed", decode[OrderResponse](t, w).Status)

	// The cached read reflects the write.
	w = doJSON(t, h, http.MethodGet, "/orders/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "confirmed", decode[OrderResponse](t, w).Status)

	w = doJSON(t, h, http.MethodGet, "/orders/"+created.ID+"/progress", nil)
	require.Equal(t, http.StatusOK, w.Code)
	p := decode[ProgressResponse](t, w)
	assert.Equal(t, 25, p.Percent)
	assert.Equal(t, "days", p.Urgency)

	w = doJSON(t, h, http.MethodGet, "/orders/"+created.ID+"/events", nil)
	require.Equal(t, http.StatusOK, w.Code)
	events := decode[[]EventResponse](t, w)
	require.Len(t, events, 1)
	assert.Equal(t, "status_updated", events[0].EventType)
}

func TestCreateOrderValidation(t *testing.T) {
	h := setupRouter(t)

	body := createOrderBody()
	body["cake_config"].(map[string]any)["flavor"] = ""

	w := doJSON(t, h, http.MethodPost, "/orders", body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "invalid_configuration", decode[ErrorResponse](t, w).Error)
}

func TestGetOrderNotFound(t *testing.T) {
	h := setupRouter(t)

	w := doJSON(t, h, http.MethodGet, "/orders/does-not-exist", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "order_not_found", decode[ErrorResponse](t, w).Error)
}

func TestUpdateStatusRequiresStaffID(t *testing.T) {
	h := setupRouter(t)

	w := doJSON(t, h, http.MethodPost, "/orders", createOrderBody())
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[OrderResponse](t, w)

	w = doJSON(t, h, http.MethodPatch, "/orders/"+created.ID+"/status", map[string]any{
		"status": "confirmed",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatusTakesStaffIDFromHeader(t *testing.T) {
	h := setupRouter(t)

	w := doJSON(t, h, http.MethodPost, "/orders", createOrderBody())
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[OrderResponse](t, w)

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(map[string]any{"status": "confirmed"}))
	req := httptest.NewRequest(http.MethodPatch, "/orders/"+created.ID+"/status", &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Staff-Id", "staff-proxy")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, h, http.MethodGet, "/orders/"+created.ID+"/events", nil)
	events := decode[[]EventResponse](t, w)
	require.Len(t, events, 1)
	assert.Equal(t, "staff-proxy", events[0].CreatedBy)
}

func TestUpdateStatusTerminalConflict(t *testing.T) {
	h := setupRouter(t)

	w := doJSON(t, h, http.MethodPost, "/orders", createOrderBody())
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[OrderResponse](t, w)

	w = doJSON(t, h, http.MethodPatch, "/orders/"+created.ID+"/status", map[string]any{
		"status": "cancelled", "staff_id": "staff-a",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, h, http.MethodPatch, "/orders/"+created.ID+"/status", map[string]any{
		"status": "confirmed", "staff_id": "staff-a",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "order_completed", decode[ErrorResponse](t, w).Error)
}

func TestUpdatePaymentStatus(t *testing.T) {
	h := setupRouter(t)

	w := doJSON(t, h, http.MethodPost, "/orders", createOrderBody())
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[OrderResponse](t, w)

	w = doJSON(t, h, http.MethodPatch, "/orders/"+created.ID+"/payment", map[string]any{
		"payment_status": "paid",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "paid", decode[OrderResponse](t, w).PaymentStatus)

	w = doJSON(t, h, http.MethodGet, "/orders/"+created.ID+"/events", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]EventResponse](t, w))

	w = doJSON(t, h, http.MethodPatch, "/orders/"+created.ID+"/payment", map[string]any{
		"payment_status": "ious",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddManualEvent(t *testing.T) {
	h := setupRouter(t)

	w := doJSON(t, h, http.MethodPost, "/orders", createOrderBody())
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[OrderResponse](t, w)

	w = doJSON(t, h, http.MethodPost, "/orders/"+created.ID+"/events", map[string]any{
		"staff_id":    "staff-c",
		"description": "Fondant work started",
		"notes":       "two tiers left",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	ev := decode[EventResponse](t, w)
	assert.Equal(t, "tracking_note", ev.EventType)

	w = doJSON(t, h, http.MethodGet, "/orders/"+created.ID+"/events", nil)
	require.Equal(t, http.StatusOK, w.Code)
	events := decode[[]EventResponse](t, w)
	require.Len(t, events, 1)
	assert.Equal(t, "staff-c", events[0].CreatedBy)
}

func TestAddManualEventWithCustomType(t *testing.T) {
	h := setupRouter(t)

	w := doJSON(t, h, http.MethodPost, "/orders", createOrderBody())
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[OrderResponse](t, w)

	w = doJSON(t, h, http.MethodPost, "/orders/"+created.ID+"/events", map[string]any{
		"staff_id":    "staff-c",
		"event_type":  "quality_check",
		"description": "Final inspection passed",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "quality_check", decode[EventResponse](t, w).EventType)
}

func TestListOrders(t *testing.T) {
	h := setupRouter(t)

	for i := 0; i < 3; i++ {
		w := doJSON(t, h, http.MethodPost, "/orders", createOrderBody())
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, h, http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]OrderResponse](t, w), 3)

	w = doJSON(t, h, http.MethodGet, "/orders?status=baking", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]OrderResponse](t, w))

	w = doJSON(t, h, http.MethodGet, "/orders?status=mystery", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
