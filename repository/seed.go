package repository

import "storefront-pricing/models"

// SeedProducts returns the catalog used when nothing has been persisted yet
func SeedProducts() []models.Product {
	return []models.Product{
		{
			ID:    "p1",
			Name:  "상품1",
			Price: 10000,
			Stock: 20,
			Discounts: []models.Discount{
				{Quantity: 10, Rate: 0.1},
				{Quantity: 20, Rate: 0.2},
			},
			Description: "최고급 품질의 프리미엄 상품입니다.",
		},
		{
			ID:            "p2",
			Name:          "상품2",
			Price:         20000,
			Stock:         20,
			Discounts:     []models.Discount{{Quantity: 10, Rate: 0.15}},
			Description:   "다양한 기능을 갖춘 실용적인 상품입니다.",
			IsRecommended: true,
		},
		{
			ID:    "p3",
			Name:  "상품3",
			Price: 30000,
			Stock: 20,
			Discounts: []models.Discount{
				{Quantity: 10, Rate: 0.2},
				{Quantity: 30, Rate: 0.25},
			},
			Description: "대용량과 고성능을 자랑하는 상품입니다.",
		},
	}
}

// SeedCoupons returns the coupons used when nothing has been persisted yet
func SeedCoupons() []models.Coupon {
	return []models.Coupon{
		{
			Name:          "5000원 할인",
			Code:          "AMOUNT5000",
			DiscountType:  models.DiscountTypeAmount,
			DiscountValue: 5000,
		},
		{
			Name:          "10% 할인",
			Code:          "PERCENT10",
			DiscountType:  models.DiscountTypePercentage,
			DiscountValue: 10,
		},
	}
}
