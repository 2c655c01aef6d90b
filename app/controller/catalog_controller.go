package controller

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"time"

	"storefront-pricing/service"
)

// CatalogController handles HTTP requests for the admin price list exports
type CatalogController struct {
	catalogService *service.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

func exportFilename(ext string) string {
	return fmt.Sprintf("price_list_%s.%s", time.Now().Format("20060102"), ext)
}

// RenderCatalog handles GET /admin/catalog/render
func (c *CatalogController) RenderCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, "RenderCatalog")
		return
	}

	htmlContent, err := c.catalogService.RenderCatalogHTML()
	if err != nil {
		log.Printf("❌ RenderCatalog: Error rendering HTML: %v", err)
		http.Error(w, fmt.Sprintf("Failed to render catalog: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(htmlContent)); err != nil {
		log.Printf("❌ RenderCatalog: Error writing HTML response: %v", err)
	}
}

// DownloadPDF handles GET /admin/catalog/pdf
func (c *CatalogController) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, "DownloadPDF")
		return
	}

	pdfData, err := c.catalogService.GeneratePDF(r.Context())
	if err != nil {
		log.Printf("❌ DownloadPDF: Error generating PDF: %v", err)
		http.Error(w, fmt.Sprintf("Failed to generate PDF: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", exportFilename("pdf")))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdfData); err != nil {
		log.Printf("❌ DownloadPDF: Error writing PDF response: %v", err)
	}
}

// DownloadXLSX handles GET /admin/catalog/xlsx
func (c *CatalogController) DownloadXLSX(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, "DownloadXLSX")
		return
	}

	// buffered so a failed export can still return a 500
	var buf bytes.Buffer
	if err := c.catalogService.WriteXLSX(&buf); err != nil {
		log.Printf("❌ DownloadXLSX: Error writing spreadsheet: %v", err)
		http.Error(w, fmt.Sprintf("Failed to export catalog: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", exportFilename("xlsx")))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("❌ DownloadXLSX: Error writing response: %v", err)
	}
}
