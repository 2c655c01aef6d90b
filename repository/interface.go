package repository

import (
	"context"

	"storefront-pricing/models"
)

// StateStore is the key-value port the storefront mirrors its collections to.
// Implementations give no transactional guarantee across keys.
type StateStore interface {
	// Load returns the raw value for key; ok is false when the key is absent
	Load(ctx context.Context, key string) (value []byte, ok bool, err error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// StateRepositoryInterface defines the contract for loading and saving storefront collections
type StateRepositoryInterface interface {
	LoadProducts(ctx context.Context) []models.Product
	LoadCoupons(ctx context.Context) []models.Coupon
	LoadCart(ctx context.Context) []models.CartLine
	SaveProducts(ctx context.Context, products []models.Product) error
	SaveCoupons(ctx context.Context, coupons []models.Coupon) error
	SaveCart(ctx context.Context, cart []models.CartLine) error
}
