package pricing

import (
	"fmt"
	"math"

	"storefront-pricing/models"
	"storefront-pricing/utils"
)

// Default policy values
const (
	DefaultBulkThreshold           = 10
	DefaultBulkBonusRate           = 0.05
	DefaultMaxDiscountRate         = 0.5
	DefaultPercentageCouponMinimum = 10000
)

// SoldOutLabel is shown instead of a price when nothing is left to add
const SoldOutLabel = "SOLD OUT"

// Policy holds the store-wide discount constants
type Policy struct {
	BulkThreshold           int     `koanf:"bulk_threshold"`
	BulkBonusRate           float64 `koanf:"bulk_bonus_rate"`
	MaxDiscountRate         float64 `koanf:"max_discount_rate"`
	PercentageCouponMinimum int64   `koanf:"percentage_coupon_minimum"`
}

// DefaultPolicy returns the policy used by the storefront
func DefaultPolicy() Policy {
	return Policy{
		BulkThreshold:           DefaultBulkThreshold,
		BulkBonusRate:           DefaultBulkBonusRate,
		MaxDiscountRate:         DefaultMaxDiscountRate,
		PercentageCouponMinimum: DefaultPercentageCouponMinimum,
	}
}

// Validate checks that the policy values are usable
func (p Policy) Validate() error {
	if p.BulkThreshold <= 0 {
		return fmt.Errorf("bulk threshold must be greater than 0")
	}
	if p.BulkBonusRate < 0 || p.BulkBonusRate > 1 {
		return fmt.Errorf("bulk bonus rate must be between 0 and 1")
	}
	if p.MaxDiscountRate < 0 || p.MaxDiscountRate > 1 {
		return fmt.Errorf("max discount rate must be between 0 and 1")
	}
	if p.PercentageCouponMinimum < 0 {
		return fmt.Errorf("percentage coupon minimum cannot be negative")
	}
	return nil
}

// Engine computes line and cart prices. It holds no cart state; every call
// recomputes from its arguments.
type Engine struct {
	policy Policy
}

// NewEngine creates a pricing engine for the given policy
func NewEngine(policy Policy) (*Engine, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pricing policy: %w", err)
	}
	return &Engine{policy: policy}, nil
}

// Policy returns the engine's policy
func (e *Engine) Policy() Policy {
	return e.policy
}

// BaseDiscount returns the highest tier rate whose minimum quantity the line reaches, or 0
func (e *Engine) BaseDiscount(line models.CartLine) float64 {
	best := 0.0
	found := false
	for _, d := range line.Product.Discounts {
		if line.Quantity < d.Quantity {
			continue
		}
		if !found || d.Rate > best {
			best = d.Rate
			found = true
		}
	}
	return best
}

// HasBulkBonus reports whether any line in the cart reaches the bulk threshold.
// The bonus then applies to every line, not only the one that triggered it.
func (e *Engine) HasBulkBonus(cart []models.CartLine) bool {
	for _, line := range cart {
		if line.Quantity >= e.policy.BulkThreshold {
			return true
		}
	}
	return false
}

// FinalDiscount combines a base rate and a bonus, capped at the policy maximum
func (e *Engine) FinalDiscount(base, bonus float64) float64 {
	return math.Min(base+bonus, e.policy.MaxDiscountRate)
}

// ApplicableDiscount returns the combined rate for a line in the context of the whole cart
func (e *Engine) ApplicableDiscount(line models.CartLine, cart []models.CartLine) float64 {
	bonus := 0.0
	if e.HasBulkBonus(cart) {
		bonus = e.policy.BulkBonusRate
	}
	return e.FinalDiscount(e.BaseDiscount(line), bonus)
}

// ItemTotal rounds price*quantity*(1-rate) to whole currency units
func ItemTotal(price int64, quantity int, rate float64) int64 {
	return int64(math.Round(float64(price) * float64(quantity) * (1 - rate)))
}

// PriceLine computes the total and display discount for one line.
// HasDiscount compares against the undiscounted total, so a rate that rounds
// away to nothing reports no discount.
func (e *Engine) PriceLine(line models.CartLine, cart []models.CartLine) models.PriceDetails {
	itemTotal := ItemTotal(line.Product.Price, line.Quantity, e.ApplicableDiscount(line, cart))
	original := line.Product.Price * int64(line.Quantity)

	details := models.PriceDetails{ItemTotal: itemTotal}
	if itemTotal < original {
		details.HasDiscount = true
		details.DiscountRate = int(math.Round((1 - float64(itemTotal)/float64(original)) * 100))
	}
	return details
}

// ApplyCoupon applies a coupon to an amount. Amount coupons never go below 0.
func ApplyCoupon(amount int64, coupon models.Coupon) int64 {
	if coupon.DiscountType == models.DiscountTypeAmount {
		if amount-coupon.DiscountValue < 0 {
			return 0
		}
		return amount - coupon.DiscountValue
	}
	return int64(math.Round(float64(amount) * (1 - float64(coupon.DiscountValue)/100)))
}

// TotalAfterItemDiscount sums every line's own discounted total
func (e *Engine) TotalAfterItemDiscount(cart []models.CartLine) int64 {
	var total int64
	for _, line := range cart {
		total += e.PriceLine(line, cart).ItemTotal
	}
	return total
}

// CartTotals computes totals before and after all discounts, including the selected coupon if any
func (e *Engine) CartTotals(cart []models.CartLine, selected *models.Coupon) models.CartTotals {
	var before int64
	for _, line := range cart {
		before += line.Product.Price * int64(line.Quantity)
	}

	after := e.TotalAfterItemDiscount(cart)
	if selected != nil {
		after = ApplyCoupon(after, *selected)
	}

	return models.CartTotals{
		TotalBeforeDiscount: before,
		TotalAfterDiscount:  after,
	}
}

// CanApplyCoupon reports whether a coupon may be selected for the cart.
// Percentage coupons need the post-item-discount total to reach the policy minimum.
func (e *Engine) CanApplyCoupon(cart []models.CartLine, coupon models.Coupon) bool {
	if coupon.DiscountType != models.DiscountTypePercentage {
		return true
	}
	return e.TotalAfterItemDiscount(cart) >= e.policy.PercentageCouponMinimum
}

// FillLines attaches price details to every cart line
func (e *Engine) FillLines(cart []models.CartLine) []models.FilledCartLine {
	filled := make([]models.FilledCartLine, 0, len(cart))
	for _, line := range cart {
		filled = append(filled, models.FilledCartLine{
			CartLine:     line,
			PriceDetails: e.PriceLine(line, cart),
		})
	}
	return filled
}

// TotalItemCount sums quantities across the cart
func TotalItemCount(cart []models.CartLine) int {
	count := 0
	for _, line := range cart {
		count += line.Quantity
	}
	return count
}

// FindLine returns the index of the line for productID, or -1
func FindLine(cart []models.CartLine, productID string) int {
	for i, line := range cart {
		if line.Product.ID == productID {
			return i
		}
	}
	return -1
}

// RemainingStock is the product's stock minus what the cart already holds
func RemainingStock(cart []models.CartLine, product models.Product) int {
	inCart := 0
	if i := FindLine(cart, product.ID); i >= 0 {
		inCart = cart[i].Quantity
	}
	return product.Stock - inCart
}

// IsSoldOut reports whether no more units of the product can be added
func IsSoldOut(cart []models.CartLine, product models.Product) bool {
	return RemainingStock(cart, product) <= 0
}

// DisplayPrice returns the formatted price, or SoldOutLabel when sold out
func DisplayPrice(cart []models.CartLine, product models.Product, format utils.PriceFormat) string {
	if IsSoldOut(cart, product) {
		return SoldOutLabel
	}
	return utils.FormatPrice(product.Price, format)
}
