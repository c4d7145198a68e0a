package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanthaoreal/storebot/internal/catalog"
	"github.com/tuanthaoreal/storebot/internal/flow"
)

func listProduct(code string, price int64, desc string) catalog.Product {
	return catalog.Product{Code: code, Price: price, Description: desc}
}

func TestPaginateProductsSinglePage(t *testing.T) {
	pages := paginateProducts([]catalog.Product{
		listProduct("P001", 250_000, "Áo thun"),
		listProduct("P002", 1_500_000, "Giày da"),
	}, listPageLimit)

	require.Len(t, pages, 1)
	assert.Contains(t, pages[0], "`P001`: 250.000₫")
	assert.Contains(t, pages[0], "`P002`: 1.500.000₫")
	assert.Contains(t, pages[0], "Mô tả: Áo thun")
}

func TestPaginateProductsSplitsLongCatalog(t *testing.T) {
	var products []catalog.Product
	desc := strings.Repeat("x", 70)
	for i := 0; i < 40; i++ {
		products = append(products, listProduct(catalog.FormatCode(i+1), 100_000, desc))
	}

	pages := paginateProducts(products, listPageLimit)
	require.Greater(t, len(pages), 1)
	for _, page := range pages {
		assert.LessOrEqual(t, len(page), listPageLimit+200, "one line may overflow, never two")
	}
	joined := strings.Join(pages, "")
	assert.Contains(t, joined, "`P001`")
	assert.Contains(t, joined, "`P040`")
}

func TestPaginateProductsTruncatesDescriptions(t *testing.T) {
	long := strings.Repeat("y", 500)
	pages := paginateProducts([]catalog.Product{listProduct("P001", 100_000, long)}, listPageLimit)

	require.Len(t, pages, 1)
	assert.NotContains(t, pages[0], strings.Repeat("y", 71))
}

func TestBuildMarkupMapsButtonVariants(t *testing.T) {
	markup := buildMarkup([][]flow.Button{
		flow.Row(
			flow.Button{Label: "◀", Action: flow.ActionPrev, Data: "P001|1", Disabled: true},
			flow.Button{Label: "▶", Action: flow.ActionNext, Data: "P001|1"},
		),
		flow.Row(flow.Button{Label: "💬 Zalo", URL: "https://zalo.me/x"}),
	})

	require.NotNil(t, markup)
	require.Len(t, markup.InlineKeyboard, 2)

	pager := markup.InlineKeyboard[0]
	require.Len(t, pager, 2)
	assert.Equal(t, flow.ActionNoop, pager[0].Unique, "disabled button routes to noop")
	assert.Equal(t, flow.ActionNext, pager[1].Unique)
	assert.Equal(t, "P001|1", pager[1].Data)

	link := markup.InlineKeyboard[1][0]
	assert.Equal(t, "https://zalo.me/x", link.URL)
	assert.Empty(t, link.Unique)
}

func TestBuildMarkupEmpty(t *testing.T) {
	assert.Nil(t, buildMarkup(nil))
}
