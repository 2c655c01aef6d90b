package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"storefront-pricing/config"
	"storefront-pricing/models"
)

const testAdminKey = "test-key"

func newTestServer(t *testing.T, mutate ...func(*config.Config)) (*httptest.Server, *App) {
	t.Helper()
	cfg := config.Default()
	cfg.Store.Driver = config.StoreMemory
	cfg.App.AdminAPIKey = testAdminKey
	for _, m := range mutate {
		m(&cfg)
	}

	a, err := Initialize(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	srv := httptest.NewServer(a.Handler)
	t.Cleanup(srv.Close)
	return srv, a
}

func doJSON(t *testing.T, method, target string, body any, headers ...string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, target, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func quantity(n int) models.UpdateQuantityRequest {
	return models.UpdateQuantityRequest{Quantity: &n}
}

func TestPing(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := doJSON(t, http.MethodGet, srv.URL+"/ping", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProductsAndCoupons(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/products?search="+url.QueryEscape("상품2"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	products := decode[models.ProductListResponse](t, resp)
	require.Len(t, products.Products, 1)
	assert.Equal(t, "p2", products.Products[0].ID)
	assert.Equal(t, "20,000원", products.Products[0].DisplayPrice)

	resp = doJSON(t, http.MethodGet, srv.URL+"/products?format=en", nil)
	products = decode[models.ProductListResponse](t, resp)
	require.Len(t, products.Products, 3)
	assert.Equal(t, "₩10,000", products.Products[0].DisplayPrice)

	resp = doJSON(t, http.MethodGet, srv.URL+"/coupons", nil)
	coupons := decode[models.CouponListResponse](t, resp)
	assert.Len(t, coupons.Coupons, 2)
}

func TestCartFlow(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/cart/items", models.AddToCartRequest{ProductID: "p1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodPut, srv.URL+"/cart/items/p1", quantity(10))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cart := decode[models.CartResponse](t, resp)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(85000), cart.Items[0].PriceDetails.ItemTotal)
	assert.Equal(t, models.CartTotals{TotalBeforeDiscount: 100000, TotalAfterDiscount: 85000}, cart.Totals)

	resp = doJSON(t, http.MethodPut, srv.URL+"/cart/items/p1", quantity(21))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doJSON(t, http.MethodPut, srv.URL+"/cart/coupon", models.SelectCouponRequest{Code: "PERCENT10"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cart = decode[models.CartResponse](t, resp)
	require.NotNil(t, cart.SelectedCoupon)
	assert.Equal(t, int64(76500), cart.Totals.TotalAfterDiscount)

	resp = doJSON(t, http.MethodPost, srv.URL+"/cart/checkout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	order := decode[models.OrderConfirmation](t, resp)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	assert.Equal(t, int64(76500), order.Total)

	resp = doJSON(t, http.MethodGet, srv.URL+"/cart", nil)
	cart = decode[models.CartResponse](t, resp)
	assert.Empty(t, cart.Items)
	assert.Nil(t, cart.SelectedCoupon)
}

func TestCartErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/cart/items", models.AddToCartRequest{ProductID: "missing"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/cart/items", models.AddToCartRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/cart/items", "not an object")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/cart/checkout", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	// 9999 is under the percentage coupon minimum
	resp = doJSON(t, http.MethodPost, srv.URL+"/admin/products", models.ProductForm{Name: "cheap", Price: 9999, Stock: 1},
		"X-API-KEY", testAdminKey)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cheap := decode[models.Product](t, resp)

	resp = doJSON(t, http.MethodPost, srv.URL+"/cart/items", models.AddToCartRequest{ProductID: cheap.ID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = doJSON(t, http.MethodPut, srv.URL+"/cart/coupon", models.SelectCouponRequest{Code: "PERCENT10"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/cart/items", models.AddToCartRequest{ProductID: cheap.ID})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/cart/items/"+cheap.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[models.CartResponse](t, resp).Items)
}

func TestUpdateQuantity_MissingQuantityKeepsLine(t *testing.T) {
	srv, a := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/cart/items", models.AddToCartRequest{ProductID: "p1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, body := range []any{map[string]int{}, map[string]int{"qty": 5}} {
		resp = doJSON(t, http.MethodPut, srv.URL+"/cart/items/p1", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}
	lines := a.Shop.CartLines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)

	// an explicit 0 still removes the line
	resp = doJSON(t, http.MethodPut, srv.URL+"/cart/items/p1", quantity(0))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, a.Shop.CartLines())
}

func TestAdminRequiresKey(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/admin/coupons", models.Coupon{Name: "x", Code: "X", DiscountType: models.DiscountTypeAmount})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/admin/catalog/render", nil, "X-API-KEY", "wrong")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminCoupons(t *testing.T) {
	srv, _ := newTestServer(t)
	key := []string{"X-API-KEY", testAdminKey}

	coupon := models.Coupon{Name: "Welcome", Code: "welcome", DiscountType: models.DiscountTypePercentage, DiscountValue: 20}
	resp := doJSON(t, http.MethodPost, srv.URL+"/admin/coupons", coupon, key...)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "WELCOME", decode[models.Coupon](t, resp).Code)

	resp = doJSON(t, http.MethodPost, srv.URL+"/admin/coupons", coupon, key...)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/admin/coupons", models.Coupon{Code: "NONAME", DiscountType: models.DiscountTypeAmount}, key...)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/admin/coupons/WELCOME", nil, key...)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/admin/coupons/WELCOME", nil, key...)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminProducts(t *testing.T) {
	srv, a := newTestServer(t)
	key := []string{"X-API-KEY", testAdminKey}

	resp := doJSON(t, http.MethodPut, srv.URL+"/admin/products/p3", models.ProductForm{Name: "상품3", Price: 35000, Stock: 5}, key...)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(35000), decode[models.Product](t, resp).Price)

	resp = doJSON(t, http.MethodPut, srv.URL+"/admin/products/nope", models.ProductForm{Name: "x"}, key...)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/admin/products/p3", nil, key...)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Len(t, a.Shop.AllProducts(), 2)

	resp = doJSON(t, http.MethodGet, srv.URL+"/admin/products/p1", nil, key...)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestCatalogExports(t *testing.T) {
	srv, _ := newTestServer(t, func(c *config.Config) { c.Catalog.Title = "Price list" })
	key := []string{"X-API-KEY", testAdminKey}

	resp := doJSON(t, http.MethodGet, srv.URL+"/admin/catalog/render", nil, key...)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Price list")

	resp = doJSON(t, http.MethodGet, srv.URL+"/admin/catalog/xlsx", nil, key...)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	file, err := xlsx.OpenBinary(data)
	require.NoError(t, err)
	assert.Len(t, file.Sheets[0].Rows, 4)
}

func TestNotificationsOverWebsocket(t *testing.T) {
	srv, a := newTestServer(t)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/notifications", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return a.Hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	resp := doJSON(t, http.MethodPost, srv.URL+"/cart/items", models.AddToCartRequest{ProductID: "p1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var n models.Notification
	require.NoError(t, conn.ReadJSON(&n))
	assert.Equal(t, "Added to cart.", n.Message)
	assert.Equal(t, models.SeveritySuccess, n.Type)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	doJSON(t, http.MethodGet, srv.URL+"/ping", nil)

	// the counter is updated after the response is written
	require.Eventually(t, func() bool {
		resp, err := http.Get(srv.URL + "/metrics")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		return err == nil && strings.Contains(string(body), `path="/ping"`)
	}, 2*time.Second, 20*time.Millisecond)
}

func TestInitialize_SQLiteStatePersists(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "state.db")
	useSQLite := func(c *config.Config) {
		c.Store.Driver = config.StoreSQLite
		c.Store.DSN = dsn
	}

	srv, a := newTestServer(t, useSQLite)
	resp := doJSON(t, http.MethodPost, srv.URL+"/cart/items", models.AddToCartRequest{ProductID: "p2"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	srv.Close()
	a.Close()

	_, restarted := newTestServer(t, useSQLite)
	lines := restarted.Shop.CartLines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].Product.ID)
}

func TestInitialize_RejectsBadPolicy(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Driver = config.StoreMemory
	cfg.Pricing.BulkThreshold = 0
	_, err := Initialize(context.Background(), cfg)
	assert.Error(t, err)
}
