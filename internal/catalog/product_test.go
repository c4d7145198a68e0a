package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	cases := map[int64]string{
		0:          "0₫",
		999:        "999₫",
		1_000:      "1.000₫",
		250_000:    "250.000₫",
		1_500_000:  "1.500.000₫",
		12_345_678: "12.345.678₫",
	}
	for price, want := range cases {
		assert.Equal(t, want, FormatPrice(price))
	}
}

func TestDescriptionTruncation(t *testing.T) {
	long := strings.Repeat("á", 2000)
	p := Product{Description: long}

	assert.Equal(t, DescriptionDisplayLimit, len([]rune(p.DisplayDescription())))
	assert.Equal(t, DescriptionListLimit, len([]rune(p.ListDescription())))

	short := Product{Description: "Áo thun"}
	assert.Equal(t, "Áo thun", short.DisplayDescription())
	assert.Equal(t, "Áo thun", short.ListDescription())
}

func TestCoverImage(t *testing.T) {
	p := Product{ImageURLs: []string{"https://cdn.example/a.png", "https://cdn.example/b.png"}}
	assert.Equal(t, "https://cdn.example/a.png", p.CoverImage())
	assert.Empty(t, Product{}.CoverImage())
}

func TestImageURLStorageRoundTrip(t *testing.T) {
	urls := []string{"https://cdn.example/a.png", "https://cdn.example/b.png"}
	assert.Equal(t, urls, splitImageURLs(joinImageURLs(urls)))
	assert.Empty(t, splitImageURLs("   "))
}
