package controller

import (
	"log"
	"net/http"
	"strings"

	"storefront-pricing/models"
	"storefront-pricing/service"
	"storefront-pricing/utils"
)

// ProductController handles HTTP requests for the product list and product admin
type ProductController struct {
	shop        *service.ShopService
	priceFormat utils.PriceFormat
}

// NewProductController creates a new ProductController
func NewProductController(shop *service.ShopService, priceFormat utils.PriceFormat) *ProductController {
	if priceFormat == "" {
		priceFormat = utils.PriceFormatKR
	}
	return &ProductController{shop: shop, priceFormat: priceFormat}
}

// ListProducts handles GET /products?search=term&format=kr|en
func (c *ProductController) ListProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, "ListProducts")
		return
	}

	search := strings.TrimSpace(r.URL.Query().Get("search"))
	format := c.priceFormat
	if f := utils.PriceFormat(r.URL.Query().Get("format")); f == utils.PriceFormatKR || f == utils.PriceFormatEN {
		format = f
	}

	products := c.shop.Products(search, format)
	log.Printf("📋 ListProducts: search=%q, found=%d", search, len(products))
	writeJSON(w, http.StatusOK, models.ProductListResponse{Products: products}, "ListProducts")
}

// CreateProduct handles POST /admin/products
func (c *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, "CreateProduct")
		return
	}

	var form models.ProductForm
	if !decodeBody(w, r, &form, "CreateProduct") {
		return
	}
	product, err := c.shop.AddProduct(r.Context(), form)
	if err != nil {
		writeError(w, err, "CreateProduct")
		return
	}
	writeJSON(w, http.StatusCreated, product, "CreateProduct")
}

// Product handles PUT and DELETE /admin/products/{id}
func (c *ProductController) Product(w http.ResponseWriter, r *http.Request) {
	productID := pathParam(r, "/admin/products/")
	if productID == "" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodPut:
		var form models.ProductForm
		if !decodeBody(w, r, &form, "UpdateProduct") {
			return
		}
		product, err := c.shop.UpdateProduct(r.Context(), productID, form)
		if err != nil {
			writeError(w, err, "UpdateProduct")
			return
		}
		writeJSON(w, http.StatusOK, product, "UpdateProduct")

	case http.MethodDelete:
		if err := c.shop.DeleteProduct(r.Context(), productID); err != nil {
			writeError(w, err, "DeleteProduct")
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w, r, "Product")
	}
}
