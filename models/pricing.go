package models

// PriceDetails is the pricing result for a single cart line
type PriceDetails struct {
	ItemTotal    int64 `json:"itemTotal"`
	HasDiscount  bool  `json:"hasDiscount"`
	DiscountRate int   `json:"discountRate"` // display percentage, 0-100
}

// FilledCartLine is a cart line together with its price details
type FilledCartLine struct {
	CartLine
	PriceDetails PriceDetails `json:"priceDetails"`
}

// CartTotals is derived from the cart and selected coupon, never stored
type CartTotals struct {
	TotalBeforeDiscount int64 `json:"totalBeforeDiscount"`
	TotalAfterDiscount  int64 `json:"totalAfterDiscount"`
}
