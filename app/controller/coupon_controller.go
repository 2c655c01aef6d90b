package controller

import (
	"net/http"

	"storefront-pricing/models"
	"storefront-pricing/service"
)

// CouponController handles HTTP requests for the coupon list and coupon admin
type CouponController struct {
	shop *service.ShopService
}

// NewCouponController creates a new CouponController
func NewCouponController(shop *service.ShopService) *CouponController {
	return &CouponController{shop: shop}
}

// ListCoupons handles GET /coupons
func (c *CouponController) ListCoupons(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, "ListCoupons")
		return
	}
	writeJSON(w, http.StatusOK, models.CouponListResponse{Coupons: c.shop.Coupons()}, "ListCoupons")
}

// CreateCoupon handles POST /admin/coupons
// Body: {"name": "5000원 할인", "code": "AMOUNT5000", "discountType": "amount", "discountValue": 5000}
func (c *CouponController) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, "CreateCoupon")
		return
	}

	var coupon models.Coupon
	if !decodeBody(w, r, &coupon, "CreateCoupon") {
		return
	}
	created, err := c.shop.AddCoupon(r.Context(), coupon)
	if err != nil {
		writeError(w, err, "CreateCoupon")
		return
	}
	writeJSON(w, http.StatusCreated, created, "CreateCoupon")
}

// DeleteCoupon handles DELETE /admin/coupons/{code}
func (c *CouponController) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, r, "DeleteCoupon")
		return
	}

	code := pathParam(r, "/admin/coupons/")
	if code == "" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if err := c.shop.DeleteCoupon(r.Context(), code); err != nil {
		writeError(w, err, "DeleteCoupon")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
