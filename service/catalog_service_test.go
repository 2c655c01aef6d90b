package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"storefront-pricing/models"
	"storefront-pricing/repository"
)

type staticProducts []models.Product

func (s staticProducts) AllProducts() []models.Product { return s }

func TestTierLabel(t *testing.T) {
	assert.Equal(t, "10개 이상 10%", TierLabel(models.Discount{Quantity: 10, Rate: 0.1}))
	assert.Equal(t, "10개 이상 15%", TierLabel(models.Discount{Quantity: 10, Rate: 0.15}))
	assert.Equal(t, "30개 이상 25%", TierLabel(models.Discount{Quantity: 30, Rate: 0.25}))
}

func TestCatalogItems(t *testing.T) {
	products := staticProducts(repository.SeedProducts())
	products[2].Stock = 0

	items := NewCatalogService(products, "", "").CatalogItems()
	require.Len(t, items, 3)
	assert.Equal(t, "10,000원", items[0].Price)
	assert.Equal(t, []string{"10개 이상 10%", "20개 이상 20%"}, items[0].Tiers)
	assert.True(t, items[1].IsRecommended)
	assert.True(t, items[2].SoldOut)
}

func TestRenderCatalogHTML(t *testing.T) {
	svc := NewCatalogService(staticProducts(repository.SeedProducts()), "", "Price list")

	html, err := svc.RenderCatalogHTML()
	require.NoError(t, err)
	assert.Contains(t, html, "<title>Price list</title>")
	assert.Contains(t, html, "상품2 <span class=\"badge\">BEST</span>")
	assert.Contains(t, html, "30,000원")
	assert.Contains(t, html, "30개 이상 25%")
}

func TestRenderCatalogHTML_EscapesNames(t *testing.T) {
	svc := NewCatalogService(staticProducts{{ID: "x", Name: "<script>", Price: 1}}, "", "")

	html, err := svc.RenderCatalogHTML()
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestWriteXLSX(t *testing.T) {
	svc := NewCatalogService(staticProducts(repository.SeedProducts()), "", "")

	var buf bytes.Buffer
	require.NoError(t, svc.WriteXLSX(&buf))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Products", sheet.Name)
	require.Len(t, sheet.Rows, 4)

	header := sheet.Rows[0]
	assert.Equal(t, "ID", header.Cells[0].String())
	assert.Equal(t, "Discounts", header.Cells[4].String())

	first := sheet.Rows[1]
	assert.Equal(t, "p1", first.Cells[0].String())
	assert.Equal(t, "상품1", first.Cells[1].String())
	assert.Equal(t, "10000", first.Cells[2].String())
	assert.Equal(t, "20", first.Cells[3].String())
	assert.Equal(t, "10개 이상 10%, 20개 이상 20%", first.Cells[4].String())
}
