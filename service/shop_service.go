package service

import (
	"context"
	"fmt"
	"log"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront-pricing/models"
	"storefront-pricing/pricing"
	"storefront-pricing/repository"
)

// ShopService owns the cart, coupon and product collections and the selected coupon.
// Every operation runs under one mutex so a user action and the totals derived from it
// are observed as a single step.
//
// Collections are mirrored to the state repository after each committed mutation.
// Writes are best effort: a failed write is logged and the in-memory state stays
// committed, and there is no transaction between the cart and coupon keys.
type ShopService struct {
	mu sync.Mutex

	engine   *pricing.Engine
	repo     repository.StateRepositoryInterface
	notifier Notifier

	products []models.Product
	coupons  []models.Coupon
	cart     []models.CartLine
	selected *models.Coupon

	lastOrderMillis int64
	now             func() time.Time
	newProductID    func() string
}

// Option customizes a ShopService
type Option func(*ShopService)

// WithClock overrides the clock used for order numbers
func WithClock(now func() time.Time) Option {
	return func(s *ShopService) { s.now = now }
}

// WithProductIDGenerator overrides how new product ids are generated
func WithProductIDGenerator(gen func() string) Option {
	return func(s *ShopService) { s.newProductID = gen }
}

// NewShopService loads the persisted collections and returns a ready service
func NewShopService(ctx context.Context, engine *pricing.Engine, repo repository.StateRepositoryInterface, notifier Notifier, opts ...Option) *ShopService {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	s := &ShopService{
		engine:   engine,
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
		newProductID: func() string {
			return "p" + uuid.NewString()
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.products = repo.LoadProducts(ctx)
	s.coupons = repo.LoadCoupons(ctx)
	s.cart = repo.LoadCart(ctx)
	s.normalizeLoaded()

	log.Printf("✅ NewShopService: Loaded %d products, %d coupons, %d cart lines",
		len(s.products), len(s.coupons), len(s.cart))
	return s
}

// normalizeLoaded applies the admin clamps to persisted collections so stored values
// cannot push a total outside the pricing bounds. Corrections are logged, not notified.
func (s *ShopService) normalizeLoaded() {
	fixed := 0
	for i, p := range s.products {
		n := normalizeProduct(p)
		if !reflect.DeepEqual(n, p) {
			fixed++
		}
		s.products[i] = n
	}
	for i, c := range s.coupons {
		n := normalizeCoupon(c)
		if n != c {
			fixed++
		}
		s.coupons[i] = n
	}
	kept := s.cart[:0]
	for _, line := range s.cart {
		if line.Quantity <= 0 {
			fixed++
			continue
		}
		n := normalizeProduct(line.Product)
		if !reflect.DeepEqual(n, line.Product) {
			fixed++
		}
		kept = append(kept, models.CartLine{Product: n, Quantity: line.Quantity})
	}
	s.cart = kept

	if fixed > 0 {
		log.Printf("⚠️ NewShopService: Corrected %d out-of-range stored values", fixed)
	}
}

// Engine returns the pricing engine used by the service
func (s *ShopService) Engine() *pricing.Engine {
	return s.engine
}

func (s *ShopService) notify(message string, severity models.Severity) {
	s.notifier.Notify(message, severity)
}

func (s *ShopService) persistProducts(ctx context.Context) {
	if err := s.repo.SaveProducts(ctx, s.products); err != nil {
		log.Printf("⚠️ persistProducts: %v", err)
	}
}

func (s *ShopService) persistCoupons(ctx context.Context) {
	if err := s.repo.SaveCoupons(ctx, s.coupons); err != nil {
		log.Printf("⚠️ persistCoupons: %v", err)
	}
}

func (s *ShopService) persistCart(ctx context.Context) {
	if err := s.repo.SaveCart(ctx, s.cart); err != nil {
		log.Printf("⚠️ persistCart: %v", err)
	}
}

func (s *ShopService) findProduct(productID string) (models.Product, bool) {
	for _, p := range s.products {
		if p.ID == productID {
			return p, true
		}
	}
	return models.Product{}, false
}

func (s *ShopService) findCoupon(code string) (models.Coupon, bool) {
	for _, c := range s.coupons {
		if c.Code == code {
			return c, true
		}
	}
	return models.Coupon{}, false
}

func copyCart(cart []models.CartLine) []models.CartLine {
	out := make([]models.CartLine, len(cart))
	for i, line := range cart {
		out[i] = models.CartLine{Product: line.Product.Clone(), Quantity: line.Quantity}
	}
	return out
}

// AddToCart adds one unit of a catalog product to the cart
func (s *ShopService) AddToCart(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.findProduct(productID)
	if !ok {
		log.Printf("❌ AddToCart: Product not found: id=%s", productID)
		return ErrProductNotFound
	}

	if pricing.RemainingStock(s.cart, product) <= 0 {
		log.Printf("❌ AddToCart: Out of stock: id=%s, stock=%d", productID, product.Stock)
		s.notify("Not enough stock!", models.SeverityError)
		return ErrOutOfStock
	}

	if i := pricing.FindLine(s.cart, productID); i >= 0 {
		newQuantity := s.cart[i].Quantity + 1
		if newQuantity > product.Stock {
			s.notify(fmt.Sprintf("Only %d in stock.", product.Stock), models.SeverityError)
			return fmt.Errorf("%w: only %d in stock", ErrExceedsStock, product.Stock)
		}
		s.cart[i].Quantity = newQuantity
	} else {
		s.cart = append(s.cart, models.CartLine{Product: product.Clone(), Quantity: 1})
	}

	s.persistCart(ctx)
	log.Printf("🛒 AddToCart: Added product id=%s", productID)
	s.notify("Added to cart.", models.SeveritySuccess)
	return nil
}

// UpdateQuantity sets the quantity of a cart line; quantity <= 0 removes the line
func (s *ShopService) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(ctx, productID)
		return nil
	}

	product, ok := s.findProduct(productID)
	if !ok {
		log.Printf("❌ UpdateQuantity: Product not found: id=%s", productID)
		return ErrProductNotFound
	}

	if quantity > product.Stock {
		log.Printf("❌ UpdateQuantity: Quantity %d exceeds stock %d for id=%s", quantity, product.Stock, productID)
		s.notify(fmt.Sprintf("Only %d in stock.", product.Stock), models.SeverityError)
		return fmt.Errorf("%w: only %d in stock", ErrExceedsStock, product.Stock)
	}

	i := pricing.FindLine(s.cart, productID)
	if i < 0 {
		return ErrCartLineNotFound
	}
	s.cart[i].Quantity = quantity

	s.persistCart(ctx)
	log.Printf("🛒 UpdateQuantity: id=%s, quantity=%d", productID, quantity)
	return nil
}

// RemoveFromCart removes a line; removing a product that is not in the cart is a no-op
func (s *ShopService) RemoveFromCart(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(ctx, productID)
}

func (s *ShopService) removeLocked(ctx context.Context, productID string) {
	kept := s.cart[:0]
	for _, line := range s.cart {
		if line.Product.ID != productID {
			kept = append(kept, line)
		}
	}
	s.cart = kept
	s.persistCart(ctx)
	log.Printf("🛒 RemoveFromCart: id=%s", productID)
}

// nextOrderNumber returns ORD-<unix millis>, bumped so numbers never repeat within the process
func (s *ShopService) nextOrderNumber() string {
	ms := s.now().UnixMilli()
	if ms <= s.lastOrderMillis {
		ms = s.lastOrderMillis + 1
	}
	s.lastOrderMillis = ms
	return fmt.Sprintf("ORD-%d", ms)
}

// CompleteOrder issues an order number, then clears the cart and the selected coupon together
func (s *ShopService) CompleteOrder(ctx context.Context) models.OrderConfirmation {
	s.mu.Lock()
	defer s.mu.Unlock()

	confirmation := models.OrderConfirmation{
		OrderNumber: s.nextOrderNumber(),
		Total:       s.engine.CartTotals(s.cart, s.selected).TotalAfterDiscount,
	}

	s.notify(fmt.Sprintf("Order completed. Order number: %s", confirmation.OrderNumber), models.SeveritySuccess)

	s.cart = []models.CartLine{}
	s.selected = nil
	s.persistCart(ctx)

	log.Printf("✅ CompleteOrder: order=%s, total=%d", confirmation.OrderNumber, confirmation.Total)
	return confirmation
}
