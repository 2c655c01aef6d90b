package service

import (
	"strings"

	"storefront-pricing/models"
	"storefront-pricing/pricing"
	"storefront-pricing/utils"
)

// FilterProducts keeps products whose name or description contains term, ignoring case.
// An empty term keeps everything.
func FilterProducts(products []models.Product, term string) []models.Product {
	if term == "" {
		return products
	}
	needle := strings.ToLower(term)
	var out []models.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			(p.Description != "" && strings.Contains(strings.ToLower(p.Description), needle)) {
			out = append(out, p)
		}
	}
	return out
}

// Products lists catalog products matching search, with stock left after the cart
func (s *ShopService) Products(search string, format utils.PriceFormat) []models.ProductListItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := FilterProducts(s.products, search)
	items := make([]models.ProductListItem, 0, len(matched))
	for _, p := range matched {
		items = append(items, models.ProductListItem{
			Product:        p.Clone(),
			RemainingStock: pricing.RemainingStock(s.cart, p),
			SoldOut:        pricing.IsSoldOut(s.cart, p),
			DisplayPrice:   pricing.DisplayPrice(s.cart, p, format),
		})
	}
	return items
}

// Product returns a copy of one catalog product
func (s *ShopService) Product(productID string) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.findProduct(productID)
	return p.Clone(), ok
}

// AllProducts returns a copy of the whole catalog
func (s *ShopService) AllProducts() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.products))
	for i, p := range s.products {
		out[i] = p.Clone()
	}
	return out
}

// Coupons lists coupons with their display names
func (s *ShopService) Coupons() []models.CouponListItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.CouponListItem, 0, len(s.coupons))
	for _, c := range s.coupons {
		items = append(items, models.CouponListItem{Coupon: c, DisplayName: CouponDisplayName(c)})
	}
	return items
}

// SelectedCoupon returns a copy of the selected coupon, or nil
func (s *ShopService) SelectedCoupon() *models.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil
	}
	c := *s.selected
	return &c
}

// CartLines returns a copy of the cart lines
func (s *ShopService) CartLines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCart(s.cart)
}

// Cart returns the cart with per-line prices and totals, recomputed on every call
func (s *ShopService) Cart() models.CartResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := copyCart(s.cart)
	resp := models.CartResponse{
		Items:          s.engine.FillLines(cart),
		Totals:         s.engine.CartTotals(cart, s.selected),
		TotalItemCount: pricing.TotalItemCount(cart),
	}
	if s.selected != nil {
		c := *s.selected
		resp.SelectedCoupon = &c
	}
	return resp
}
