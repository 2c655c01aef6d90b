package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"storefront-pricing/models"
	"storefront-pricing/utils"
)

// Coupon value limits
const (
	MaxCouponPercentage = 100
	MaxCouponAmount     = 100000
)

// NormalizeCouponCode upper-cases a code the way it is entered in the admin form
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func couponLimit(t models.DiscountType) int64 {
	if t == models.DiscountTypePercentage {
		return MaxCouponPercentage
	}
	return MaxCouponAmount
}

// normalizeCoupon clamps the value into [0, limit] without notifying
func normalizeCoupon(c models.Coupon) models.Coupon {
	limit := couponLimit(c.DiscountType)
	switch {
	case c.DiscountValue > limit:
		c.DiscountValue = limit
	case c.DiscountValue < 0:
		c.DiscountValue = 0
	}
	return c
}

// clampCouponValue keeps the discount value inside the limits for its type.
// Values over the limit are clamped with an error notification; negatives become 0 silently.
func (s *ShopService) clampCouponValue(c *models.Coupon) {
	if c.DiscountValue > couponLimit(c.DiscountType) {
		if c.DiscountType == models.DiscountTypePercentage {
			s.notify(fmt.Sprintf("Discount rate cannot exceed %d%%.", MaxCouponPercentage), models.SeverityError)
		} else {
			s.notify(fmt.Sprintf("Discount amount cannot exceed %s원.", utils.FormatThousands(MaxCouponAmount)), models.SeverityError)
		}
	}
	*c = normalizeCoupon(*c)
}

// AddCoupon validates and appends a coupon; codes must be unique after normalization
func (s *ShopService) AddCoupon(ctx context.Context, coupon models.Coupon) (models.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	coupon.Name = strings.TrimSpace(coupon.Name)
	coupon.Code = NormalizeCouponCode(coupon.Code)
	if coupon.Name == "" || coupon.Code == "" {
		return models.Coupon{}, fmt.Errorf("%w: coupon name and code are required", ErrInvalidInput)
	}
	if !coupon.DiscountType.Valid() {
		return models.Coupon{}, fmt.Errorf("%w: unknown discount type %q", ErrInvalidInput, coupon.DiscountType)
	}

	if _, exists := s.findCoupon(coupon.Code); exists {
		log.Printf("❌ AddCoupon: Duplicate code=%s", coupon.Code)
		s.notify("That coupon code already exists.", models.SeverityError)
		return models.Coupon{}, ErrDuplicateCoupon
	}

	s.clampCouponValue(&coupon)

	s.coupons = append(s.coupons, coupon)
	s.persistCoupons(ctx)

	log.Printf("✅ AddCoupon: code=%s, type=%s, value=%d", coupon.Code, coupon.DiscountType, coupon.DiscountValue)
	s.notify("Coupon added.", models.SeveritySuccess)
	return coupon, nil
}

// DeleteCoupon removes a coupon by code, clearing the selection if it was selected
func (s *ShopService) DeleteCoupon(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	code = NormalizeCouponCode(code)
	if _, exists := s.findCoupon(code); !exists {
		return ErrCouponNotFound
	}

	kept := make([]models.Coupon, 0, len(s.coupons))
	for _, c := range s.coupons {
		if c.Code != code {
			kept = append(kept, c)
		}
	}
	s.coupons = kept

	if s.selected != nil && s.selected.Code == code {
		s.selected = nil
		log.Printf("🎟️ DeleteCoupon: Cleared selected coupon %s", code)
	}

	s.persistCoupons(ctx)
	log.Printf("✅ DeleteCoupon: code=%s", code)
	s.notify("Coupon deleted.", models.SeveritySuccess)
	return nil
}

// SelectCoupon selects the coupon with the given code for the cart.
// A code that matches nothing, including "", clears the selection.
func (s *ShopService) SelectCoupon(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	coupon, ok := s.findCoupon(NormalizeCouponCode(code))
	if !ok {
		s.selected = nil
		log.Printf("🎟️ SelectCoupon: Cleared selection (code=%q)", code)
		return nil
	}

	if !s.engine.CanApplyCoupon(s.cart, coupon) {
		minimum := s.engine.Policy().PercentageCouponMinimum
		log.Printf("❌ SelectCoupon: %s needs a total of at least %d", coupon.Code, minimum)
		s.notify(fmt.Sprintf("Percentage coupons require an order of %s원 or more.", utils.FormatThousands(minimum)),
			models.SeverityError)
		return ErrCouponNotEligible
	}

	s.selected = &coupon
	log.Printf("✅ SelectCoupon: code=%s", coupon.Code)
	s.notify("Coupon applied.", models.SeveritySuccess)
	return nil
}

// CouponDisplayName renders "name (5,000원)" for amount coupons and "name (10%)" for percentage coupons
func CouponDisplayName(c models.Coupon) string {
	if c.DiscountType == models.DiscountTypeAmount {
		return fmt.Sprintf("%s (%s원)", c.Name, utils.FormatThousands(c.DiscountValue))
	}
	return fmt.Sprintf("%s (%d%%)", c.Name, c.DiscountValue)
}
