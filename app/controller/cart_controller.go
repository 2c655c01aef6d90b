package controller

import (
	"fmt"
	"log"
	"net/http"

	"storefront-pricing/models"
	"storefront-pricing/service"
)

// CartController handles HTTP requests for the cart, coupon selection and checkout
type CartController struct {
	shop *service.ShopService
}

// NewCartController creates a new CartController
func NewCartController(shop *service.ShopService) *CartController {
	return &CartController{shop: shop}
}

// GetCart handles GET /cart
func (c *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, "GetCart")
		return
	}
	writeJSON(w, http.StatusOK, c.shop.Cart(), "GetCart")
}

// AddItem handles POST /cart/items
// Body: {"productId": "p1"}
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, "AddItem")
		return
	}

	var req models.AddToCartRequest
	if !decodeBody(w, r, &req, "AddItem") {
		return
	}
	if req.ProductID == "" {
		writeError(w, service.ErrInvalidInput, "AddItem")
		return
	}

	if err := c.shop.AddToCart(r.Context(), req.ProductID); err != nil {
		writeError(w, err, "AddItem")
		return
	}
	writeJSON(w, http.StatusOK, c.shop.Cart(), "AddItem")
}

// Item handles PUT and DELETE /cart/items/{productId}
func (c *CartController) Item(w http.ResponseWriter, r *http.Request) {
	productID := pathParam(r, "/cart/items/")
	if productID == "" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req models.UpdateQuantityRequest
		if !decodeBody(w, r, &req, "UpdateQuantity") {
			return
		}
		if req.Quantity == nil {
			writeError(w, fmt.Errorf("%w: quantity is required", service.ErrInvalidInput), "UpdateQuantity")
			return
		}
		log.Printf("📋 UpdateQuantity: id=%s, quantity=%d", productID, *req.Quantity)
		if err := c.shop.UpdateQuantity(r.Context(), productID, *req.Quantity); err != nil {
			writeError(w, err, "UpdateQuantity")
			return
		}
		writeJSON(w, http.StatusOK, c.shop.Cart(), "UpdateQuantity")

	case http.MethodDelete:
		c.shop.RemoveFromCart(r.Context(), productID)
		writeJSON(w, http.StatusOK, c.shop.Cart(), "RemoveItem")

	default:
		methodNotAllowed(w, r, "CartItem")
	}
}

// SelectCoupon handles PUT /cart/coupon
// Body: {"code": "PERCENT10"}; an empty or unknown code clears the selection
func (c *CartController) SelectCoupon(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w, r, "SelectCoupon")
		return
	}

	var req models.SelectCouponRequest
	if !decodeBody(w, r, &req, "SelectCoupon") {
		return
	}
	if err := c.shop.SelectCoupon(r.Context(), req.Code); err != nil {
		writeError(w, err, "SelectCoupon")
		return
	}
	writeJSON(w, http.StatusOK, c.shop.Cart(), "SelectCoupon")
}

// Checkout handles POST /cart/checkout
func (c *CartController) Checkout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, "Checkout")
		return
	}
	writeJSON(w, http.StatusOK, c.shop.CompleteOrder(r.Context()), "Checkout")
}
