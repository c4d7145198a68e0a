// Package gallery implements the image pager shown on product cards.
// Paging edits the card in place; position is carried in the callback
// payload so the pager itself holds no server-side state.
package gallery

import "fmt"

// Cursor is a position inside an ordered image list.
type Cursor struct {
	URLs  []string
	Index int
}

// NewCursor starts a cursor at the cover image, clamping the index
// into range for defensive callers.
func NewCursor(urls []string, index int) Cursor {
	c := Cursor{URLs: urls, Index: index}
	return c.clamp()
}

func (c Cursor) clamp() Cursor {
	if len(c.URLs) == 0 {
		c.Index = 0
		return c
	}
	if c.Index < 0 {
		c.Index = 0
	}
	if c.Index > len(c.URLs)-1 {
		c.Index = len(c.URLs) - 1
	}
	return c
}

// Prev moves one image back, stopping at the first image.
func (c Cursor) Prev() Cursor {
	c.Index--
	return c.clamp()
}

// Next moves one image forward, stopping at the last image.
func (c Cursor) Next() Cursor {
	c.Index++
	return c.clamp()
}

// AtStart reports whether the cursor is on the first image.
func (c Cursor) AtStart() bool {
	return c.Index == 0
}

// AtEnd reports whether the cursor is on the last image.
func (c Cursor) AtEnd() bool {
	return len(c.URLs) == 0 || c.Index == len(c.URLs)-1
}

// Current returns the image under the cursor.
func (c Cursor) Current() string {
	if len(c.URLs) == 0 {
		return ""
	}
	return c.URLs[c.Index]
}

// Footer renders the 1-based position indicator, e.g. "2/5".
func (c Cursor) Footer() string {
	return fmt.Sprintf("%d/%d", c.Index+1, len(c.URLs))
}

// Multi reports whether paging controls are worth showing at all.
func (c Cursor) Multi() bool {
	return len(c.URLs) > 1
}
