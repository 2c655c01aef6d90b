package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"storefront-pricing/models"
)

// MaxProductStock is the highest stock the admin form accepts
const MaxProductStock = 9999

// sanitizeProductForm applies the admin form clamps. Out-of-range price and stock are
// corrected with an error notification; tier values are clamped silently.
func (s *ShopService) sanitizeProductForm(form *models.ProductForm) error {
	form.Name = strings.TrimSpace(form.Name)
	if form.Name == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}

	if form.Price < 0 {
		s.notify("Price must be 0 or more.", models.SeverityError)
		form.Price = 0
	}

	switch {
	case form.Stock < 0:
		s.notify("Stock must be 0 or more.", models.SeverityError)
		form.Stock = 0
	case form.Stock > MaxProductStock:
		s.notify(fmt.Sprintf("Stock cannot exceed %d.", MaxProductStock), models.SeverityError)
		form.Stock = MaxProductStock
	}

	form.Discounts = normalizeDiscounts(form.Discounts)
	return nil
}

func normalizeDiscounts(in []models.Discount) []models.Discount {
	discounts := make([]models.Discount, 0, len(in))
	for _, d := range in {
		if d.Quantity < 0 {
			d.Quantity = 0
		}
		if d.Rate < 0 {
			d.Rate = 0
		}
		if d.Rate > 1 {
			d.Rate = 1
		}
		discounts = append(discounts, d)
	}
	return discounts
}

// normalizeProduct applies the form clamps to a stored product without notifying
func normalizeProduct(p models.Product) models.Product {
	if p.Price < 0 {
		p.Price = 0
	}
	if p.Stock < 0 {
		p.Stock = 0
	}
	if p.Stock > MaxProductStock {
		p.Stock = MaxProductStock
	}
	if p.Discounts != nil {
		p.Discounts = normalizeDiscounts(p.Discounts)
	}
	return p
}

// AddProduct creates a product from the admin form
func (s *ShopService) AddProduct(ctx context.Context, form models.ProductForm) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sanitizeProductForm(&form); err != nil {
		log.Printf("❌ AddProduct: %v", err)
		return models.Product{}, err
	}

	product := models.Product{
		ID:          s.newProductID(),
		Name:        form.Name,
		Price:       form.Price,
		Stock:       form.Stock,
		Discounts:   form.Discounts,
		Description: form.Description,
	}
	if form.IsRecommended != nil {
		product.IsRecommended = *form.IsRecommended
	}

	s.products = append(s.products, product)
	s.persistProducts(ctx)

	log.Printf("✅ AddProduct: id=%s, name=%s, price=%d, stock=%d", product.ID, product.Name, product.Price, product.Stock)
	s.notify("Product added.", models.SeveritySuccess)
	return product.Clone(), nil
}

// UpdateProduct replaces a product's editable fields. Existing cart lines keep their snapshot.
func (s *ShopService) UpdateProduct(ctx context.Context, productID string, form models.ProductForm) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, p := range s.products {
		if p.ID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		log.Printf("❌ UpdateProduct: Product not found: id=%s", productID)
		return models.Product{}, ErrProductNotFound
	}

	if err := s.sanitizeProductForm(&form); err != nil {
		log.Printf("❌ UpdateProduct: %v", err)
		return models.Product{}, err
	}

	product := s.products[idx]
	product.Name = form.Name
	product.Price = form.Price
	product.Stock = form.Stock
	product.Discounts = form.Discounts
	product.Description = form.Description
	if form.IsRecommended != nil {
		product.IsRecommended = *form.IsRecommended
	}
	s.products[idx] = product
	s.persistProducts(ctx)

	log.Printf("✅ UpdateProduct: id=%s, price=%d, stock=%d", product.ID, product.Price, product.Stock)
	s.notify("Product updated.", models.SeveritySuccess)
	return product.Clone(), nil
}

// DeleteProduct removes a product from the catalog; cart lines referencing it are left alone
func (s *ShopService) DeleteProduct(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findProduct(productID); !ok {
		return ErrProductNotFound
	}

	kept := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.ID != productID {
			kept = append(kept, p)
		}
	}
	s.products = kept
	s.persistProducts(ctx)

	log.Printf("✅ DeleteProduct: id=%s", productID)
	s.notify("Product deleted.", models.SeveritySuccess)
	return nil
}
