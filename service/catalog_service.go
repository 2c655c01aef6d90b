package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/tealeg/xlsx"

	"storefront-pricing/models"
	"storefront-pricing/utils"
)

//go:embed templates/catalog.html
var catalogTemplates embed.FS

var catalogTemplate = template.Must(template.ParseFS(catalogTemplates, "templates/catalog.html"))

// ProductSource supplies the catalog to export
type ProductSource interface {
	AllProducts() []models.Product
}

// CatalogItem is one row of the exported price list
type CatalogItem struct {
	Name          string
	Description   string
	Price         string
	Stock         int
	SoldOut       bool
	IsRecommended bool
	Tiers         []string
}

// CatalogService renders the admin price list as HTML, PDF and XLSX
type CatalogService struct {
	products   ProductSource
	chromePath string
	title      string
}

// NewCatalogService creates a new CatalogService.
// chromePath may be empty, in which case CHROME_PATH and common install paths are tried.
func NewCatalogService(products ProductSource, chromePath, title string) *CatalogService {
	if title == "" {
		title = "상품 가격표"
	}
	return &CatalogService{
		products:   products,
		chromePath: chromePath,
		title:      title,
	}
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks the configured path and CHROME_PATH env var first, then common installation paths
func (s *CatalogService) detectChromePath() string {
	for _, candidate := range []string{s.chromePath, os.Getenv("CHROME_PATH")} {
		if candidate == "" {
			continue
		}
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// TierLabel renders a quantity tier like "10개 이상 10%"
func TierLabel(d models.Discount) string {
	return fmt.Sprintf("%d개 이상 %.0f%%", d.Quantity, d.Rate*100)
}

// CatalogItems converts the current catalog into export rows
func (s *CatalogService) CatalogItems() []CatalogItem {
	products := s.products.AllProducts()
	items := make([]CatalogItem, 0, len(products))
	for _, p := range products {
		item := CatalogItem{
			Name:          p.Name,
			Description:   p.Description,
			Price:         utils.FormatPrice(p.Price, utils.PriceFormatKR),
			Stock:         p.Stock,
			SoldOut:       p.Stock <= 0,
			IsRecommended: p.IsRecommended,
		}
		for _, d := range p.Discounts {
			item.Tiers = append(item.Tiers, TierLabel(d))
		}
		items = append(items, item)
	}
	return items
}

// RenderCatalogHTML renders the catalog HTML template
func (s *CatalogService) RenderCatalogHTML() (string, error) {
	templateData := struct {
		Title       string
		GeneratedAt string
		Items       []CatalogItem
	}{
		Title:       s.title,
		GeneratedAt: time.Now().Format("2006-01-02 15:04"),
		Items:       s.CatalogItems(),
	}

	var buf bytes.Buffer
	if err := catalogTemplate.Execute(&buf, templateData); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// GeneratePDF renders the catalog HTML in headless Chrome and prints it to PDF
func (s *CatalogService) GeneratePDF(ctx context.Context) ([]byte, error) {
	html, err := s.RenderCatalogHTML()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := s.detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	} else {
		log.Printf("⚠️ GeneratePDF: Chrome not found, letting chromedp auto-detect")
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var pdfBuf []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 portrait
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	log.Printf("✅ GeneratePDF: Generated catalog PDF (%d bytes)", len(pdfBuf))
	return pdfBuf, nil
}

// WriteXLSX writes the catalog as a spreadsheet
func (s *CatalogService) WriteXLSX(w io.Writer) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headers := []string{"ID", "Name", "Price", "Stock", "Discounts", "Description", "Recommended"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}

	for _, p := range s.products.AllProducts() {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Price)
		row.AddCell().SetValue(p.Stock)

		var tiers bytes.Buffer
		for i, d := range p.Discounts {
			if i > 0 {
				tiers.WriteString(", ")
			}
			tiers.WriteString(TierLabel(d))
		}
		row.AddCell().SetValue(tiers.String())
		row.AddCell().SetValue(p.Description)
		row.AddCell().SetBool(p.IsRecommended)
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return nil
}
