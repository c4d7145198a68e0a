package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var urls = []string{"a.png", "b.png", "c.png"}

func TestCursorClampsAtEdges(t *testing.T) {
	c := NewCursor(urls, 0)
	assert.True(t, c.AtStart())
	assert.Equal(t, "a.png", c.Prev().Current())

	c = NewCursor(urls, 2)
	assert.True(t, c.AtEnd())
	assert.Equal(t, "c.png", c.Next().Current())
}

func TestCursorWalksForwardAndBack(t *testing.T) {
	c := NewCursor(urls, 0)
	c = c.Next()
	assert.Equal(t, "b.png", c.Current())
	assert.False(t, c.AtStart())
	assert.False(t, c.AtEnd())

	c = c.Next()
	assert.Equal(t, "c.png", c.Current())
	assert.True(t, c.AtEnd())

	c = c.Prev().Prev()
	assert.True(t, c.AtStart())
}

func TestCursorFooter(t *testing.T) {
	assert.Equal(t, "1/3", NewCursor(urls, 0).Footer())
	assert.Equal(t, "3/3", NewCursor(urls, 2).Footer())
}

func TestCursorClampsOutOfRangeStart(t *testing.T) {
	assert.Equal(t, 2, NewCursor(urls, 99).Index)
	assert.Equal(t, 0, NewCursor(urls, -5).Index)
}

func TestCursorEmptyList(t *testing.T) {
	c := NewCursor(nil, 3)
	assert.Empty(t, c.Current())
	assert.True(t, c.AtEnd())
	assert.False(t, c.Multi())
}

func TestCursorSingleImageHidesPaging(t *testing.T) {
	c := NewCursor([]string{"only.png"}, 0)
	assert.False(t, c.Multi())
	assert.True(t, c.AtStart())
	assert.True(t, c.AtEnd())
}
