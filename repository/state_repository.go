package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"storefront-pricing/models"
)

// Storage keys, one entry per collection
const (
	KeyProducts = "products"
	KeyCoupons  = "coupons"
	KeyCart     = "cart"
)

// StateRepository mirrors the storefront collections to a StateStore as JSON arrays
type StateRepository struct {
	store StateStore
}

// NewStateRepository creates a new StateRepository
func NewStateRepository(store StateStore) *StateRepository {
	return &StateRepository{store: store}
}

// Ensure StateRepository implements StateRepositoryInterface
var _ StateRepositoryInterface = (*StateRepository)(nil)

// decodeCollection parses either a bare JSON array or a {"state": {"<key>": [...]}} envelope.
// ok is false when the value is absent, malformed, or not an array.
func decodeCollection[T any](raw []byte, key string) ([]T, bool) {
	var items []T
	if err := json.Unmarshal(raw, &items); err == nil && items != nil {
		return items, true
	}

	var envelope struct {
		State map[string]json.RawMessage `json:"state"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.State == nil {
		return nil, false
	}
	inner, found := envelope.State[key]
	if !found {
		return nil, false
	}
	if err := json.Unmarshal(inner, &items); err != nil || items == nil {
		return nil, false
	}
	return items, true
}

func loadCollection[T any](ctx context.Context, store StateStore, key string) ([]T, bool) {
	raw, ok, err := store.Load(ctx, key)
	if err != nil {
		log.Printf("⚠️ LoadState: Error reading key=%s, using defaults: %v", key, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	items, ok := decodeCollection[T](raw, key)
	if !ok {
		log.Printf("⚠️ LoadState: Malformed value for key=%s, using defaults", key)
		return nil, false
	}
	return items, true
}

// LoadProducts returns the persisted catalog, or the seed catalog when absent or malformed
func (r *StateRepository) LoadProducts(ctx context.Context) []models.Product {
	if products, ok := loadCollection[models.Product](ctx, r.store, KeyProducts); ok {
		log.Printf("📦 LoadProducts: Loaded %d products", len(products))
		return products
	}
	return SeedProducts()
}

// LoadCoupons returns the persisted coupons, or the seed coupons when absent or malformed
func (r *StateRepository) LoadCoupons(ctx context.Context) []models.Coupon {
	if coupons, ok := loadCollection[models.Coupon](ctx, r.store, KeyCoupons); ok {
		log.Printf("📦 LoadCoupons: Loaded %d coupons", len(coupons))
		return coupons
	}
	return SeedCoupons()
}

// LoadCart returns the persisted cart, or an empty cart when absent or malformed
func (r *StateRepository) LoadCart(ctx context.Context) []models.CartLine {
	if cart, ok := loadCollection[models.CartLine](ctx, r.store, KeyCart); ok {
		log.Printf("📦 LoadCart: Loaded %d cart lines", len(cart))
		return cart
	}
	return []models.CartLine{}
}

func (r *StateRepository) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := r.store.Save(ctx, key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// SaveProducts writes the catalog
func (r *StateRepository) SaveProducts(ctx context.Context, products []models.Product) error {
	if products == nil {
		products = []models.Product{}
	}
	return r.save(ctx, KeyProducts, products)
}

// SaveCoupons writes the coupon list
func (r *StateRepository) SaveCoupons(ctx context.Context, coupons []models.Coupon) error {
	if coupons == nil {
		coupons = []models.Coupon{}
	}
	return r.save(ctx, KeyCoupons, coupons)
}

// SaveCart writes the cart, removing the key entirely when the cart is empty
func (r *StateRepository) SaveCart(ctx context.Context, cart []models.CartLine) error {
	if len(cart) == 0 {
		if err := r.store.Delete(ctx, KeyCart); err != nil {
			return fmt.Errorf("failed to delete %s: %w", KeyCart, err)
		}
		return nil
	}
	return r.save(ctx, KeyCart, cart)
}
