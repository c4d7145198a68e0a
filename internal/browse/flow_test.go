package browse

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanthaoreal/storebot/internal/catalog"
	"github.com/tuanthaoreal/storebot/internal/flow"
)

type fakeCatalog struct {
	products map[string]catalog.Product
	inBucket []catalog.Product
	err      error
}

func (f *fakeCatalog) InBucket(_ context.Context, _ catalog.PriceBucket) ([]catalog.Product, error) {
	return f.inBucket, f.err
}

func (f *fakeCatalog) GetByCode(_ context.Context, code string) (catalog.Product, error) {
	if f.err != nil {
		return catalog.Product{}, f.err
	}
	p, ok := f.products[strings.ToUpper(code)]
	if !ok {
		return catalog.Product{}, catalog.ErrProductNotFound
	}
	return p, nil
}

var seller = Seller{
	Name:     "Tuấn Thảo Real",
	Facebook: "https://www.facebook.com/tuanthaoreal",
	Zalo:     "https://zalo.me/0367361316",
}

func testProduct(code string, price int64, images ...string) catalog.Product {
	return catalog.Product{
		Code:        code,
		Description: "Mô tả " + code,
		ImageURLs:   images,
		Price:       price,
	}
}

func TestGreetingOffersStartAndDecline(t *testing.T) {
	f := NewFlow(&fakeCatalog{}, seller)
	s, r := f.Greeting()

	assert.Equal(t, StateAwaitingStart, s.State)
	require.Len(t, r.Buttons, 1)
	require.Len(t, r.Buttons[0], 2)
	assert.Equal(t, flow.ActionStart, r.Buttons[0][0].Action)
	assert.Equal(t, flow.ActionDecline, r.Buttons[0][1].Action)
}

func TestGreetingShowsShopAvatar(t *testing.T) {
	withAvatar := seller
	withAvatar.AvatarURL = "https://cdn.example/avatar.png"
	f := NewFlow(&fakeCatalog{}, withAvatar)

	_, r := f.Greeting()
	assert.Equal(t, flow.RenderPhotoCard, r.Kind)
	assert.Equal(t, "https://cdn.example/avatar.png", r.Photo)
	require.Len(t, r.Buttons, 1)

	// No avatar configured falls back to a plain message.
	_, plain := NewFlow(&fakeCatalog{}, seller).Greeting()
	assert.Equal(t, flow.RenderMessage, plain.Kind)
	assert.Empty(t, plain.Photo)
}

func TestStartShowsAllBuckets(t *testing.T) {
	f := NewFlow(&fakeCatalog{}, seller)
	s, r, err := f.Start(Session{State: StateAwaitingStart})

	require.NoError(t, err)
	assert.Equal(t, StateAwaitingBucket, s.State)
	require.Len(t, r.Buttons, 4)
	assert.Equal(t, "1", r.Buttons[0][0].Data)
	assert.Equal(t, "4", r.Buttons[3][0].Data)
}

func TestStartOutsideGreetingFailsValidation(t *testing.T) {
	f := NewFlow(&fakeCatalog{}, seller)
	_, _, err := f.Start(Session{State: StateShowingGallery})

	var coded *flow.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, flow.CodeValidation, coded.Code())
}

func TestChooseBucketEmptyApologisesAndEnds(t *testing.T) {
	f := NewFlow(&fakeCatalog{}, seller)
	_, r, ended, err := f.ChooseBucket(context.Background(), Session{State: StateAwaitingBucket}, "2")

	require.NoError(t, err)
	assert.True(t, ended)
	assert.Contains(t, r.Text, "Rất tiếc")
	assert.Empty(t, r.Buttons)
}

func TestChooseBucketListsCandidates(t *testing.T) {
	fc := &fakeCatalog{inBucket: []catalog.Product{
		testProduct("P001", 200_000, "a.png"),
		testProduct("P002", 300_000, "b.png"),
	}}
	f := NewFlow(fc, seller)
	s, r, ended, err := f.ChooseBucket(context.Background(), Session{State: StateAwaitingBucket}, "1")

	require.NoError(t, err)
	assert.False(t, ended)
	assert.Equal(t, StateAwaitingCode, s.State)
	assert.Equal(t, "1", s.BucketKey)
	assert.Contains(t, r.Text, "Tìm thấy 2 sản phẩm")
	require.Len(t, r.Buttons, 1)
	assert.Equal(t, "P001", r.Buttons[0][0].Data)
	assert.Equal(t, flow.ActionCode, r.Buttons[0][0].Action)
}

func TestChooseBucketCapsCandidates(t *testing.T) {
	fc := &fakeCatalog{}
	for i := 0; i < 30; i++ {
		fc.inBucket = append(fc.inBucket, testProduct(catalog.FormatCode(i+1), 200_000, "a.png"))
	}
	f := NewFlow(fc, seller)
	_, r, _, err := f.ChooseBucket(context.Background(), Session{State: StateAwaitingBucket}, "1")

	require.NoError(t, err)
	total := 0
	for _, row := range r.Buttons {
		total += len(row)
	}
	assert.Equal(t, CandidateLimit, total)
	assert.Contains(t, r.Text, "Tìm thấy 30 sản phẩm")
	assert.Contains(t, r.Text, "24 mã đầu tiên")
}

func TestChooseBucketUnknownKey(t *testing.T) {
	f := NewFlow(&fakeCatalog{}, seller)
	_, _, _, err := f.ChooseBucket(context.Background(), Session{State: StateAwaitingBucket}, "9")

	var coded *flow.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, flow.CodeValidation, coded.Code())
}

func TestChooseCodeOpensGalleryAtCover(t *testing.T) {
	fc := &fakeCatalog{products: map[string]catalog.Product{
		"P001": testProduct("P001", 250_000, "a.png", "b.png", "c.png"),
	}}
	f := NewFlow(fc, seller)
	s, r, err := f.ChooseCode(context.Background(), Session{State: StateAwaitingCode}, "P001")

	require.NoError(t, err)
	assert.Equal(t, StateShowingGallery, s.State)
	assert.Equal(t, 0, s.Index)
	assert.Equal(t, flow.RenderPhotoCard, r.Kind)
	assert.Equal(t, "a.png", r.Photo)
	assert.Contains(t, r.Text, "250.000₫")
	assert.Contains(t, r.Text, "1/3")

	// Pager row: prev disabled at cover, next live.
	require.NotEmpty(t, r.Buttons)
	pager := r.Buttons[0]
	require.Len(t, pager, 2)
	assert.True(t, pager[0].Disabled)
	assert.False(t, pager[1].Disabled)
}

func TestChooseCodeDeletedProduct(t *testing.T) {
	f := NewFlow(&fakeCatalog{}, seller)
	_, r, err := f.ChooseCode(context.Background(), Session{State: StateAwaitingCode}, "P404")

	var coded *flow.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, flow.CodeNotFound, coded.Code())
	assert.Contains(t, r.Text, "Không tìm thấy sản phẩm")
}

func TestSingleImageGalleryHidesPager(t *testing.T) {
	fc := &fakeCatalog{products: map[string]catalog.Product{
		"P001": testProduct("P001", 250_000, "only.png"),
	}}
	f := NewFlow(fc, seller)
	_, r, err := f.ChooseCode(context.Background(), Session{State: StateAwaitingCode}, "P001")

	require.NoError(t, err)
	for _, row := range r.Buttons {
		for _, b := range row {
			assert.NotEqual(t, flow.ActionPrev, b.Action)
			assert.NotEqual(t, flow.ActionNext, b.Action)
		}
	}
	assert.NotContains(t, r.Text, "1/1")
}

func TestPageForwardEditsInPlace(t *testing.T) {
	fc := &fakeCatalog{products: map[string]catalog.Product{
		"P001": testProduct("P001", 250_000, "a.png", "b.png", "c.png"),
	}}
	f := NewFlow(fc, seller)
	s, r, err := f.Page(context.Background(), Session{State: StateShowingGallery}, "P001", 0, true)

	require.NoError(t, err)
	assert.Equal(t, 1, s.Index)
	assert.Equal(t, flow.RenderEdit, r.Kind)
	assert.Equal(t, "b.png", r.Photo)
	assert.Contains(t, r.Text, "2/3")

	pager := r.Buttons[0]
	assert.False(t, pager[0].Disabled)
	assert.False(t, pager[1].Disabled)
}

func TestPageClampsAtLastImage(t *testing.T) {
	fc := &fakeCatalog{products: map[string]catalog.Product{
		"P001": testProduct("P001", 250_000, "a.png", "b.png"),
	}}
	f := NewFlow(fc, seller)
	s, r, err := f.Page(context.Background(), Session{State: StateShowingGallery}, "P001", 1, true)

	require.NoError(t, err)
	assert.Equal(t, 1, s.Index)
	assert.True(t, r.Buttons[0][1].Disabled)
}

func TestPageDeletedProduct(t *testing.T) {
	f := NewFlow(&fakeCatalog{}, seller)
	_, _, err := f.Page(context.Background(), Session{State: StateShowingGallery}, "P001", 0, true)

	var coded *flow.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, flow.CodeNotFound, coded.Code())
}

func TestShopURLAddsPurchaseButton(t *testing.T) {
	p := testProduct("P001", 250_000, "a.png")
	p.ShopURL = "https://shopee.vn/x"
	fc := &fakeCatalog{products: map[string]catalog.Product{"P001": p}}
	f := NewFlow(fc, seller)
	_, r, err := f.ChooseCode(context.Background(), Session{State: StateAwaitingCode}, "P001")

	require.NoError(t, err)
	last := r.Buttons[len(r.Buttons)-1]
	require.Len(t, last, 1)
	assert.Equal(t, "https://shopee.vn/x", last[0].URL)
}

func TestBucketQueryFailureIsUnexpected(t *testing.T) {
	f := NewFlow(&fakeCatalog{err: errors.New("db down")}, seller)
	_, _, _, err := f.ChooseBucket(context.Background(), Session{State: StateAwaitingBucket}, "1")

	var coded *flow.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, flow.CodeUnexpected, coded.Code())
}
