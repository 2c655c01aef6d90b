package service

import "errors"

// Rejections returned by ShopService. Each one is also surfaced once through the Notifier
// when the user is expected to see it.
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrCartLineNotFound  = errors.New("product is not in the cart")
	ErrOutOfStock        = errors.New("insufficient stock")
	ErrExceedsStock      = errors.New("quantity exceeds stock")
	ErrDuplicateCoupon   = errors.New("coupon code already exists")
	ErrCouponNotFound    = errors.New("coupon not found")
	ErrCouponNotEligible = errors.New("coupon not eligible for this cart")
	ErrInvalidInput      = errors.New("invalid input")
)
