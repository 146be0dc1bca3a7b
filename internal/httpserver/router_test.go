package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"agriconnect/internal/alert"
	"agriconnect/internal/catalog"
	"agriconnect/internal/domain"
	"agriconnect/internal/kv"
	"agriconnect/internal/seed"
	"agriconnect/internal/session"
	cartstore "agriconnect/internal/store/cart"
	chatstore "agriconnect/internal/store/chat"
	notificationstore "agriconnect/internal/store/notification"
)

type testEnv struct {
	router  *gin.Engine
	session *session.Manager
	chat    *chatstore.Store
	kv      kv.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := kv.NewMemory()
	logger := log.New(io.Discard, "", 0)
	sink := alert.NewLogSink(logger)
	sess := session.NewManager(store)
	chat := chatstore.New(store, chatstore.DefaultKey, 0, logger)
	if err := chat.Restore(context.Background()); err != nil {
		t.Fatalf("restore chat: %v", err)
	}
	t.Cleanup(chat.Close)
	if err := seed.Apply(context.Background(), store); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}

	deps := Deps{
		KV:            store,
		Session:       sess,
		Cart:          cartstore.New(store, sess, sink),
		Notifications: notificationstore.New(store, sess, sink),
		Chat:          chat,
		Catalog:       catalog.New(store),
		CheckoutDelay: 0,
	}
	router, err := buildRouter(logger, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return &testEnv{router: router, session: sess, chat: chat, kv: store}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) loginRetailer(t *testing.T) {
	t.Helper()
	if _, err := e.session.Login(context.Background(), "shop@example.com", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), into); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadyz(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/readyz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSessionLifecycle(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/session", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/session/login", gin.H{"email": "shop@example.com", "password": "pw"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var loginResp struct {
		User domain.User `json:"user"`
	}
	decode(t, rec, &loginResp)
	if loginResp.User.Role != domain.RoleRetailer {
		t.Fatalf("expected retailer, got %+v", loginResp.User)
	}

	rec = env.do(t, http.MethodGet, "/session", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/session/logout", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = env.do(t, http.MethodGet, "/session", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
}

func TestSignupValidation(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/session/signup", gin.H{"email": "a@b.com", "password": "pw", "name": "A", "role": "admin"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown role, got %d", rec.Code)
	}
	rec = env.do(t, http.MethodPost, "/session/signup", gin.H{"email": "a@b.com", "password": "pw", "name": "A", "role": "farmer"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestListProducts(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/products", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Products []domain.Product `json:"products"`
	}
	decode(t, rec, &resp)
	if len(resp.Products) != 8 {
		t.Fatalf("expected 8 seeded products, got %d", len(resp.Products))
	}

	rec = env.do(t, http.MethodGet, "/products?category=dairy", nil)
	decode(t, rec, &resp)
	if len(resp.Products) != 2 {
		t.Fatalf("expected 2 dairy products, got %d", len(resp.Products))
	}

	rec = env.do(t, http.MethodGet, "/products/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec = env.do(t, http.MethodGet, "/products/999", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAddCartItemRequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/cart/items", gin.H{"productId": "1", "quantity": 2})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAddCartItemRequiresRetailer(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.session.Login(context.Background(), "joe.farmer@example.com", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
	rec := env.do(t, http.MethodPost, "/cart/items", gin.H{"productId": "1", "quantity": 2})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCartFlow(t *testing.T) {
	env := newTestEnv(t)
	env.loginRetailer(t)

	rec := env.do(t, http.MethodPost, "/cart/items", gin.H{"productId": "1", "quantity": 3})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp cartResponse
	decode(t, rec, &resp)
	if resp.ItemCount != 3 || resp.SubtotalCents != 3*299 {
		t.Fatalf("unexpected cart: %+v", resp)
	}

	// unknown product
	rec = env.do(t, http.MethodPost, "/cart/items", gin.H{"productId": "999", "quantity": 1})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	// clamp via explicit update
	rec = env.do(t, http.MethodPatch, "/cart/items/1", gin.H{"quantity": 70})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	decode(t, rec, &resp)
	if resp.Items[0].Quantity != 50 {
		t.Fatalf("expected clamp to stock 50, got %d", resp.Items[0].Quantity)
	}

	// zero quantity removes
	rec = env.do(t, http.MethodPatch, "/cart/items/1", gin.H{"quantity": 0})
	decode(t, rec, &resp)
	if len(resp.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", resp.Items)
	}

	rec = env.do(t, http.MethodPost, "/cart/items", gin.H{"productId": "6", "quantity": 2})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	rec = env.do(t, http.MethodDelete, "/cart/items/6", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	decode(t, rec, &resp)
	if len(resp.Items) != 0 {
		t.Fatalf("expected empty cart after remove, got %+v", resp.Items)
	}
}

func TestAddCartItemCapacityRejection(t *testing.T) {
	env := newTestEnv(t)
	env.loginRetailer(t)

	// honey has stock 15
	rec := env.do(t, http.MethodPost, "/cart/items", gin.H{"productId": "6", "quantity": 10})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	rec = env.do(t, http.MethodPost, "/cart/items", gin.H{"productId": "6", "quantity": 10})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/cart", nil)
	var resp cartResponse
	decode(t, rec, &resp)
	if resp.ItemCount != 10 {
		t.Fatalf("expected quantity untouched at 10, got %d", resp.ItemCount)
	}
}

func TestCheckout(t *testing.T) {
	env := newTestEnv(t)
	env.loginRetailer(t)

	rec := env.do(t, http.MethodPost, "/cart/checkout", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for empty cart, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/cart/items", gin.H{"productId": "1", "quantity": 2})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	rec = env.do(t, http.MethodPost, "/cart/checkout", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// cart cleared
	rec = env.do(t, http.MethodGet, "/cart", nil)
	var cart cartResponse
	decode(t, rec, &cart)
	if len(cart.Items) != 0 {
		t.Fatalf("expected cleared cart, got %+v", cart.Items)
	}

	// order notification prepended
	rec = env.do(t, http.MethodGet, "/notifications?type=order", nil)
	var notif struct {
		Notifications []domain.Notification `json:"notifications"`
	}
	decode(t, rec, &notif)
	if len(notif.Notifications) == 0 || notif.Notifications[0].Title != "Order Placed Successfully" {
		t.Fatalf("expected order notification, got %+v", notif.Notifications)
	}
}

func TestNotificationsEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/notifications", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", rec.Code)
	}

	env.loginRetailer(t)
	rec = env.do(t, http.MethodGet, "/notifications", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Notifications []domain.Notification `json:"notifications"`
		UnreadCount   int                   `json:"unreadCount"`
	}
	decode(t, rec, &resp)
	if len(resp.Notifications) != 5 || resp.UnreadCount != 2 {
		t.Fatalf("expected seeded list, got %d items %d unread", len(resp.Notifications), resp.UnreadCount)
	}

	rec = env.do(t, http.MethodGet, "/notifications?type=bogus", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bogus type, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/notifications/1/read", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = env.do(t, http.MethodPost, "/notifications/read-all", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = env.do(t, http.MethodGet, "/notifications", nil)
	decode(t, rec, &resp)
	if resp.UnreadCount != 0 {
		t.Fatalf("expected zero unread, got %d", resp.UnreadCount)
	}

	rec = env.do(t, http.MethodPost, "/notifications", gin.H{"title": "Hello", "description": "World", "type": "market"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = env.do(t, http.MethodGet, "/notifications", nil)
	decode(t, rec, &resp)
	if resp.UnreadCount != 1 || resp.Notifications[0].Title != "Hello" {
		t.Fatalf("expected new notification first, got %+v", resp.Notifications[0])
	}

	rec = env.do(t, http.MethodDelete, "/notifications/"+resp.Notifications[0].ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestChatEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/chat/messages", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Messages []domain.ChatMessage `json:"messages"`
		Busy     bool                 `json:"busy"`
	}
	decode(t, rec, &resp)
	if len(resp.Messages) != 1 {
		t.Fatalf("expected welcome message, got %d", len(resp.Messages))
	}

	rec = env.do(t, http.MethodPost, "/chat/messages", gin.H{"content": "   "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank content, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/chat/messages", gin.H{"content": "hello there"})
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	env.chat.Wait()

	rec = env.do(t, http.MethodGet, "/chat/messages", nil)
	decode(t, rec, &resp)
	if len(resp.Messages) != 3 {
		t.Fatalf("expected 3 messages after reply, got %d", len(resp.Messages))
	}
	if resp.Messages[2].Role != domain.ChatRoleAssistant {
		t.Fatalf("expected assistant reply last, got %+v", resp.Messages[2])
	}

	rec = env.do(t, http.MethodPost, "/chat/toggle", nil)
	var toggle struct {
		Open bool `json:"open"`
	}
	decode(t, rec, &toggle)
	if !toggle.Open {
		t.Fatalf("expected open after toggle")
	}
	rec = env.do(t, http.MethodGet, "/chat/state", nil)
	var state struct {
		Open bool `json:"open"`
		Busy bool `json:"busy"`
	}
	decode(t, rec, &state)
	if !state.Open || state.Busy {
		t.Fatalf("unexpected chat state: %+v", state)
	}
}
