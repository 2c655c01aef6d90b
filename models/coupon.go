package models

// DiscountType is the kind of discount a coupon grants
type DiscountType string

const (
	DiscountTypeAmount     DiscountType = "amount"
	DiscountTypePercentage DiscountType = "percentage"
)

// Valid reports whether t is a known discount type
func (t DiscountType) Valid() bool {
	return t == DiscountTypeAmount || t == DiscountTypePercentage
}

// Coupon represents a discount coupon
// Example: {"name": "5000원 할인", "code": "AMOUNT5000", "discountType": "amount", "discountValue": 5000}
type Coupon struct {
	Name          string       `json:"name"`
	Code          string       `json:"code"`
	DiscountType  DiscountType `json:"discountType"`
	DiscountValue int64        `json:"discountValue"`
}

// CouponListItem represents a coupon in a list response
type CouponListItem struct {
	Coupon
	DisplayName string `json:"displayName"`
}

// CouponListResponse represents the response for listing coupons
type CouponListResponse struct {
	Coupons []CouponListItem `json:"coupons"`
}

// SelectCouponRequest represents the request body for selecting a coupon
// An empty code clears the selection
type SelectCouponRequest struct {
	Code string `json:"code"`
}
