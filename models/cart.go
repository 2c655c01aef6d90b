package models

// CartLine represents one product+quantity entry in the cart
// Product is a snapshot copied when the line was created
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// CartResponse represents the cart view returned by the API
// Example response:
//
//	{
//	  "items": [{"product": {...}, "quantity": 10, "priceDetails": {"itemTotal": 85000, "hasDiscount": true, "discountRate": 15}}],
//	  "totals": {"totalBeforeDiscount": 100000, "totalAfterDiscount": 85000},
//	  "totalItemCount": 10,
//	  "selectedCoupon": null
//	}
type CartResponse struct {
	Items          []FilledCartLine `json:"items"`
	Totals         CartTotals       `json:"totals"`
	TotalItemCount int              `json:"totalItemCount"`
	SelectedCoupon *Coupon          `json:"selectedCoupon"`
}

// AddToCartRequest represents the request body for adding a product to the cart
type AddToCartRequest struct {
	ProductID string `json:"productId"`
}

// UpdateQuantityRequest represents the request body for changing a line quantity
// Quantity is required; 0 or less removes the line
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}
