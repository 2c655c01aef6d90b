package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront-pricing/app/controller"
	"storefront-pricing/app/middleware"
)

type Controllers struct {
	Cart          *controller.CartController
	Product       *controller.ProductController
	Coupon        *controller.CouponController
	Catalog       *controller.CatalogController
	Notifications http.Handler
	AdminAPIKey   string
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes registers every route on mux
func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireAPIKey(controllers.AdminAPIKey, h)
	}

	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Storefront routes
	mux.HandleFunc("/products", controllers.Product.ListProducts)
	mux.HandleFunc("/coupons", controllers.Coupon.ListCoupons)

	// Cart routes
	mux.HandleFunc("/cart", controllers.Cart.GetCart)
	mux.HandleFunc("/cart/items", controllers.Cart.AddItem)
	// PUT updates the quantity, DELETE removes the line
	mux.HandleFunc("/cart/items/", controllers.Cart.Item)
	mux.HandleFunc("/cart/coupon", controllers.Cart.SelectCoupon)
	mux.HandleFunc("/cart/checkout", controllers.Cart.Checkout)

	// Product admin routes
	mux.HandleFunc("/admin/products", admin(controllers.Product.CreateProduct))
	mux.HandleFunc("/admin/products/", admin(controllers.Product.Product))

	// Coupon admin routes
	mux.HandleFunc("/admin/coupons", admin(controllers.Coupon.CreateCoupon))
	mux.HandleFunc("/admin/coupons/", admin(controllers.Coupon.DeleteCoupon))

	// Price list exports
	mux.HandleFunc("/admin/catalog/render", admin(controllers.Catalog.RenderCatalog))
	mux.HandleFunc("/admin/catalog/pdf", admin(controllers.Catalog.DownloadPDF))
	mux.HandleFunc("/admin/catalog/xlsx", admin(controllers.Catalog.DownloadXLSX))

	// Notification stream
	if controllers.Notifications != nil {
		mux.Handle("/ws/notifications", controllers.Notifications)
	}

	mux.Handle("/metrics", promhttp.Handler())
}

// Handler wraps mux with request logging and metrics
func Handler(mux *http.ServeMux) http.Handler {
	return middleware.RequestLogger(middleware.Metrics(mux))
}
