package models

// Discount is a quantity tier attached to a product
// Example: {"quantity": 10, "rate": 0.1} => 10% off when buying 10 or more
type Discount struct {
	Quantity int     `json:"quantity"`
	Rate     float64 `json:"rate"`
}

// Product represents a product in the catalog
// Price is expressed in minor currency units (won)
type Product struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Price         int64      `json:"price"`
	Stock         int        `json:"stock"`
	Discounts     []Discount `json:"discounts"`
	Description   string     `json:"description,omitempty"`
	IsRecommended bool       `json:"isRecommended,omitempty"`
}

// Clone returns a deep copy of the product so cart lines never share tier slices with the catalog
func (p Product) Clone() Product {
	c := p
	if p.Discounts != nil {
		c.Discounts = make([]Discount, len(p.Discounts))
		copy(c.Discounts, p.Discounts)
	}
	return c
}

// ProductForm represents the request body for creating or updating a product
// Example request:
//
//	{
//	  "name": "상품4",
//	  "price": 15000,
//	  "stock": 30,
//	  "description": "신상품",
//	  "discounts": [{"quantity": 10, "rate": 0.1}]
//	}
type ProductForm struct {
	Name          string     `json:"name"`
	Price         int64      `json:"price"`
	Stock         int        `json:"stock"`
	Description   string     `json:"description"`
	Discounts     []Discount `json:"discounts"`
	IsRecommended *bool      `json:"isRecommended,omitempty"` // nil keeps the current flag on update
}

// ProductListItem represents a product in a list response with stock information relative to the cart
type ProductListItem struct {
	Product
	RemainingStock int    `json:"remainingStock"`
	SoldOut        bool   `json:"soldOut"`
	DisplayPrice   string `json:"displayPrice"`
}

// ProductListResponse represents the response for listing products
type ProductListResponse struct {
	Products []ProductListItem `json:"products"`
}
