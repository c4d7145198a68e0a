package catalog

import (
	"strings"
)

const (
	// DescriptionDisplayLimit bounds description length in product cards.
	DescriptionDisplayLimit = 1024
	// DescriptionListLimit bounds description length in list summaries.
	DescriptionListLimit = 70
)

// Product is a single catalog entry. Image order defines gallery order;
// the first image is the cover. A product is never updated in place:
// re-adding creates a new code.
type Product struct {
	ID          int64
	Code        string
	Description string
	ImageURLs   []string
	Price       int64
	ShopURL     string // empty means no external shop
}

// Draft carries the fields collected by the add wizard before a code is assigned.
type Draft struct {
	Description string
	ImageURLs   []string
	Price       int64
	ShopURL     string
}

// CoverImage returns the first image of the product.
func (p Product) CoverImage() string {
	if len(p.ImageURLs) == 0 {
		return ""
	}
	return p.ImageURLs[0]
}

// DisplayDescription truncates the description for embed/card contexts.
func (p Product) DisplayDescription() string {
	return truncateRunes(p.Description, DescriptionDisplayLimit)
}

// ListDescription truncates the description for one-line list summaries.
func (p Product) ListDescription() string {
	return truncateRunes(p.Description, DescriptionListLimit)
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// FormatPrice renders an integer đồng amount with dot thousand separators,
// e.g. 250000 -> "250.000₫".
func FormatPrice(price int64) string {
	neg := price < 0
	if neg {
		price = -price
	}
	digits := []byte(formatInt(price))
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		b.Write(digits[:lead])
		if len(digits) > lead {
			b.WriteByte('.')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.Write(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte('.')
		}
	}
	b.WriteRune('₫')
	return b.String()
}

func formatInt(n int64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// joinImageURLs flattens the ordered image list into its storage form.
func joinImageURLs(urls []string) string {
	return strings.Join(urls, " ")
}

// splitImageURLs restores the ordered image list from its storage form.
func splitImageURLs(raw string) []string {
	return strings.Fields(raw)
}
