package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Hemachand25/FreshGrocery/configs"
	"github.com/Hemachand25/FreshGrocery/middlewares"
	"github.com/Hemachand25/FreshGrocery/pkg/clock"
	"github.com/Hemachand25/FreshGrocery/pkg/logger"
	"github.com/Hemachand25/FreshGrocery/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

type api struct {
	t   *testing.T
	srv *httptest.Server
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	log := logger.Discard()
	cfg := &configs.Config{
		JWTSecret:        "test-secret",
		JWTTTL:           time.Hour,
		TransitionPolicy: "strict",
		SubscriberBuffer: 8,
		WSPingInterval:   time.Second,
		AdminEmail:       "admin@example.com",
		AdminPassword:    "admin123",
	}
	require.NoError(t, configs.SetupDatabase(db))
	require.NoError(t, configs.SeedAdmin(db, cfg, log))
	require.NoError(t, configs.SeedCategories(db, log))

	hub := ws.NewHub(log, cfg.SubscriberBuffer)
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger(log))
	require.NoError(t, RegisterRoutes(r, Deps{DB: db, Config: cfg, Hub: hub, Clock: clock.NewSystem(), Log: log}))

	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		srv.Close()
		_ = sqlDB.Close()
	})
	return &api{t: t, srv: srv}
}

func (a *api) do(method, path, token string, body any) (int, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, a.srv.URL+path, &buf)
	require.NoError(a.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(a.t, err)
	defer res.Body.Close()

	var env envelope
	require.NoError(a.t, json.NewDecoder(res.Body).Decode(&env))
	return res.StatusCode, env
}

func (a *api) login(email, password string) string {
	a.t.Helper()
	code, env := a.do(http.MethodPost, "/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(a.t, http.StatusOK, code, env.Error)
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &out))
	return out.Token
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

type idOnly struct {
	ID uint `json:"id"`
}

type orderOut struct {
	ID           uint   `json:"id"`
	Total        int64  `json:"total"`
	Status       string `json:"status"`
	VendorOrders []struct {
		ID       uint   `json:"id"`
		VendorID *uint  `json:"vendorId"`
		Status   string `json:"status"`
	} `json:"vendorOrders"`
}

func TestHealth(t *testing.T) {
	a := newAPI(t)
	code, env := a.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.OK)
}

func TestAuthGuards(t *testing.T) {
	a := newAPI(t)

	code, _ := a.do(http.MethodGet, "/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = a.do(http.MethodGet, "/cart", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	admin := a.login("admin@example.com", "admin123")
	code, _ = a.do(http.MethodGet, "/cart", admin, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env := a.do(http.MethodPost, "/cart/checkout", admin, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.False(t, env.OK)
}

func TestMarketplaceFlow(t *testing.T) {
	a := newAPI(t)
	admin := a.login("admin@example.com", "admin123")

	// customer signs up
	code, env := a.do(http.MethodPost, "/auth/register", "", gin.H{
		"email": "ann@example.com", "password": "secret1", "firstName": "Ann", "lastName": "Lee",
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	code, _ = a.do(http.MethodPost, "/auth/register", "", gin.H{
		"email": "ann@example.com", "password": "secret1", "firstName": "Ann", "lastName": "Lee",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	customer := a.login("ann@example.com", "secret1")

	// admin onboards two vendors
	vendorTokens := make([]string, 2)
	vendorIDs := make([]uint, 2)
	for i := range vendorTokens {
		email := fmt.Sprintf("farm%d@example.com", i)
		code, env := a.do(http.MethodPost, "/admin/vendors", admin, gin.H{
			"email": email, "password": "secret1", "firstName": "Farm", "lastName": "Owner",
			"storeName": fmt.Sprintf("Farm %d", i),
		})
		require.Equal(t, http.StatusCreated, code, env.Error)
		vendorIDs[i] = decode[idOnly](t, env).ID
		vendorTokens[i] = a.login(email, "secret1")
	}

	// each vendor lists a product
	productIDs := make([]uint, 2)
	for i, price := range []int64{100, 50} {
		code, env := a.do(http.MethodPost, "/vendor/products", vendorTokens[i], gin.H{
			"name": fmt.Sprintf("product %d", i), "price": price, "stock": 10,
		})
		require.Equal(t, http.StatusCreated, code, env.Error)
		productIDs[i] = decode[idOnly](t, env).ID
	}
	code, _ = a.do(http.MethodPatch, fmt.Sprintf("/vendor/products/%d", productIDs[0]), vendorTokens[1], gin.H{"price": 1})
	assert.Equal(t, http.StatusForbidden, code)

	// first vendor listens for new orders
	wsURL := "ws" + strings.TrimPrefix(a.srv.URL, "http") + "/notifications/ws?token=" + vendorTokens[0]
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// empty cart cannot be checked out
	code, _ = a.do(http.MethodPost, "/cart/checkout", customer, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = a.do(http.MethodPost, "/cart/items", customer, gin.H{"productId": productIDs[0], "qty": 2})
	require.Equal(t, http.StatusCreated, code, env.Error)
	code, env = a.do(http.MethodPost, "/cart/items", customer, gin.H{"productId": productIDs[1], "qty": 1})
	require.Equal(t, http.StatusCreated, code, env.Error)

	code, env = a.do(http.MethodPost, "/cart/checkout", customer, nil)
	require.Equal(t, http.StatusCreated, code, env.Error)
	order := decode[orderOut](t, env)
	assert.Equal(t, int64(250), order.Total)
	assert.Equal(t, "ACTIVE", order.Status)
	require.Len(t, order.VendorOrders, 2)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var evt ws.Event
	require.NoError(t, conn.ReadJSON(&evt))
	assert.Equal(t, "order:new", evt.Name)
	assert.Equal(t, fmt.Sprintf("vendor:%d", vendorIDs[0]), evt.Channel)

	voByVendor := map[uint]uint{}
	for _, vo := range order.VendorOrders {
		require.NotNil(t, vo.VendorID)
		voByVendor[*vo.VendorID] = vo.ID
	}

	// a vendor cannot touch a sibling's vendor order
	path := func(i int) string { return fmt.Sprintf("/vendor/orders/%d/status", voByVendor[vendorIDs[i]]) }
	code, _ = a.do(http.MethodPut, path(0), vendorTokens[1], gin.H{"status": "ACCEPTED"})
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = a.do(http.MethodPut, path(0), vendorTokens[0], gin.H{"status": "teleported"})
	assert.Equal(t, http.StatusBadRequest, code)

	for i := range vendorTokens {
		code, env := a.do(http.MethodPut, path(i), vendorTokens[i], gin.H{"status": "delivered"})
		require.Equal(t, http.StatusOK, code, env.Error)
	}
	code, _ = a.do(http.MethodPut, path(0), vendorTokens[0], gin.H{"status": "CANCELLED"})
	assert.Equal(t, http.StatusConflict, code)

	code, env = a.do(http.MethodGet, fmt.Sprintf("/orders/%d", order.ID), customer, nil)
	require.Equal(t, http.StatusOK, code, env.Error)
	got := decode[orderOut](t, env)
	assert.Equal(t, "COMPLETED", got.Status)
	assert.Len(t, got.VendorOrders, 2)

	code, _ = a.do(http.MethodGet, fmt.Sprintf("/orders/%d", order.ID), vendorTokens[0], nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = a.do(http.MethodGet, "/orders/999", customer, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = a.do(http.MethodGet, "/admin/orders?status=completed", admin, nil)
	require.Equal(t, http.StatusOK, code, env.Error)
	page := decode[struct {
		Total int64 `json:"total"`
	}](t, env)
	assert.Equal(t, int64(1), page.Total)
}

func TestAccountManagement(t *testing.T) {
	a := newAPI(t)
	admin := a.login("admin@example.com", "admin123")

	code, env := a.do(http.MethodPost, "/auth/register", "", gin.H{
		"email": "ann@example.com", "password": "secret1", "firstName": "Ann", "lastName": "Lee",
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	annID := decode[idOnly](t, env).ID
	ann := a.login("ann@example.com", "secret1")

	code, env = a.do(http.MethodPut, "/auth/profile", ann, gin.H{"firstName": "Anne", "address": "1 Main St"})
	require.Equal(t, http.StatusOK, code, env.Error)
	profile := decode[struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Address   string `json:"address"`
	}](t, env)
	assert.Equal(t, "Anne", profile.FirstName)
	assert.Equal(t, "Lee", profile.LastName)
	assert.Equal(t, "1 Main St", profile.Address)

	code, _ = a.do(http.MethodGet, "/admin/users", ann, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, env = a.do(http.MethodGet, "/admin/users", admin, nil)
	require.Equal(t, http.StatusOK, code, env.Error)
	assert.Len(t, decode[[]idOnly](t, env), 2)

	// block and unblock a customer
	code, env = a.do(http.MethodDelete, fmt.Sprintf("/admin/users/%d", annID), admin, nil)
	require.Equal(t, http.StatusOK, code, env.Error)
	code, env = a.do(http.MethodPost, "/auth/login", "", gin.H{"email": "ann@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Contains(t, env.Error, "blocked")

	code, env = a.do(http.MethodPut, fmt.Sprintf("/admin/users/%d/unblock", annID), admin, nil)
	require.Equal(t, http.StatusOK, code, env.Error)
	ann = a.login("ann@example.com", "secret1")

	// a vendor that is not a vendor
	code, _ = a.do(http.MethodDelete, fmt.Sprintf("/admin/vendors/%d", annID), admin, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = a.do(http.MethodPost, "/admin/vendors", admin, gin.H{
		"email": "farm@example.com", "password": "secret1", "firstName": "Farm", "lastName": "Owner", "storeName": "Farm",
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	farmID := decode[idOnly](t, env).ID

	code, env = a.do(http.MethodDelete, fmt.Sprintf("/admin/vendors/%d", farmID), admin, nil)
	require.Equal(t, http.StatusOK, code, env.Error)
	assert.True(t, decode[struct {
		Blocked bool `json:"blocked"`
	}](t, env).Blocked)
	code, _ = a.do(http.MethodPost, "/auth/login", "", gin.H{"email": "farm@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusForbidden, code)

	code, env = a.do(http.MethodPut, fmt.Sprintf("/admin/vendors/%d", farmID), admin, gin.H{"blocked": false})
	require.Equal(t, http.StatusOK, code, env.Error)
	a.login("farm@example.com", "secret1")

	// customers may close their own account
	code, env = a.do(http.MethodDelete, "/auth/me", ann, nil)
	require.Equal(t, http.StatusOK, code, env.Error)
	code, _ = a.do(http.MethodPost, "/auth/login", "", gin.H{"email": "ann@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusForbidden, code)
}
