package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanthaoreal/storebot/internal/catalog"
	"github.com/tuanthaoreal/storebot/internal/flow"
)

type fakeStore struct {
	inserted []catalog.Draft
	nextCode string
	err      error
}

func (f *fakeStore) Insert(_ context.Context, draft catalog.Draft) (catalog.Product, error) {
	if f.err != nil {
		return catalog.Product{}, f.err
	}
	f.inserted = append(f.inserted, draft)
	code := f.nextCode
	if code == "" {
		code = "P001"
	}
	return catalog.Product{
		ID:          int64(len(f.inserted)),
		Code:        code,
		Description: draft.Description,
		ImageURLs:   draft.ImageURLs,
		Price:       draft.Price,
		ShopURL:     draft.ShopURL,
	}, nil
}

func runWizard(t *testing.T, f *Flow, msgs ...Message) (Session, flow.Render, bool, error) {
	t.Helper()
	s, _ := f.Begin()
	var (
		r    flow.Render
		done bool
		err  error
	)
	for _, msg := range msgs {
		s, r, done, err = f.Handle(context.Background(), s, msg)
		if err != nil || done {
			break
		}
	}
	return s, r, done, err
}

func TestWizardHappyPathWithShopLink(t *testing.T) {
	store := &fakeStore{nextCode: "P042"}
	f := NewFlow(store)

	_, r, done, err := runWizard(t, f,
		Message{Text: "Áo thun nam"},
		Message{AttachmentURLs: []string{"https://cdn.example/a.png"}},
		Message{Text: "250000"},
		Message{Text: "https://shopee.vn/x"},
	)

	require.NoError(t, err)
	assert.True(t, done)
	require.Len(t, store.inserted, 1)
	draft := store.inserted[0]
	assert.Equal(t, "Áo thun nam", draft.Description)
	assert.Equal(t, []string{"https://cdn.example/a.png"}, draft.ImageURLs)
	assert.EqualValues(t, 250_000, draft.Price)
	assert.Equal(t, "https://shopee.vn/x", draft.ShopURL)

	assert.Equal(t, flow.RenderPhotoCard, r.Kind)
	assert.Equal(t, "https://cdn.example/a.png", r.Photo)
	assert.Contains(t, r.Text, "P042")
	assert.Contains(t, r.Text, "250.000₫")
	assert.Contains(t, r.Text, "https://shopee.vn/x")
}

func TestWizardDeclinedShopLinkVariants(t *testing.T) {
	for _, word := range []string{"không", "Không", "ko", "KHONG"} {
		store := &fakeStore{}
		f := NewFlow(store)

		_, r, done, err := runWizard(t, f,
			Message{Text: "Mô tả"},
			Message{Text: "https://cdn.example/a.png"},
			Message{Text: "100000"},
			Message{Text: word},
		)

		require.NoError(t, err, "word %q", word)
		assert.True(t, done)
		require.Len(t, store.inserted, 1)
		assert.Empty(t, store.inserted[0].ShopURL)
		assert.NotContains(t, r.Text, "Link mua hàng")
	}
}

func TestWizardStepsAdvanceInOrder(t *testing.T) {
	f := NewFlow(&fakeStore{})
	s, _ := f.Begin()
	assert.Equal(t, StepDescription, s.Step)

	s, r, done, err := f.Handle(context.Background(), s, Message{Text: "Mô tả"})
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, StepImages, s.Step)
	assert.Contains(t, r.Text, "(2/4)")

	s, r, _, err = f.Handle(context.Background(), s, Message{Text: "https://cdn.example/a.png"})
	require.NoError(t, err)
	assert.Equal(t, StepPrice, s.Step)
	assert.Contains(t, r.Text, "(3/4)")

	s, r, _, err = f.Handle(context.Background(), s, Message{Text: "5000"})
	require.NoError(t, err)
	assert.Equal(t, StepShopURL, s.Step)
	assert.Contains(t, r.Text, "(4/4)")
}

func TestWizardEmptyImagesAborts(t *testing.T) {
	store := &fakeStore{}
	f := NewFlow(store)

	_, r, done, err := runWizard(t, f,
		Message{Text: "Mô tả"},
		Message{Text: "không có link nào ở đây"},
	)

	var coded *flow.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, flow.CodeValidation, coded.Code())
	assert.False(t, done)
	assert.Contains(t, r.Text, "ít nhất một ảnh")
	assert.Empty(t, store.inserted)
}

func TestWizardBadPriceAborts(t *testing.T) {
	for _, bad := range []string{"abc", "-5", "1.500.000", ""} {
		store := &fakeStore{}
		f := NewFlow(store)

		_, r, done, err := runWizard(t, f,
			Message{Text: "Mô tả"},
			Message{Text: "https://cdn.example/a.png"},
			Message{Text: bad},
		)

		var coded *flow.Error
		require.ErrorAs(t, err, &coded, "price %q", bad)
		assert.Equal(t, flow.CodeValidation, coded.Code())
		assert.False(t, done)
		assert.Contains(t, r.Text, "Giá tiền không hợp lệ")
		assert.Empty(t, store.inserted)
	}
}

func TestWizardShopLinkStoredVerbatim(t *testing.T) {
	for _, raw := range []string{"shopee.vn/x", "liên hệ inbox", "https://shopee.vn/x"} {
		store := &fakeStore{}
		f := NewFlow(store)

		_, _, done, err := runWizard(t, f,
			Message{Text: "Mô tả"},
			Message{Text: "https://cdn.example/a.png"},
			Message{Text: "100000"},
			Message{Text: raw},
		)

		require.NoError(t, err, "link %q", raw)
		assert.True(t, done)
		require.Len(t, store.inserted, 1)
		assert.Equal(t, raw, store.inserted[0].ShopURL)
	}
}

func TestWizardEmptyDescriptionAccepted(t *testing.T) {
	store := &fakeStore{}
	f := NewFlow(store)

	s, _ := f.Begin()
	s, r, done, err := f.Handle(context.Background(), s, Message{Text: ""})
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, StepImages, s.Step)
	assert.Contains(t, r.Text, "(2/4)")

	_, _, done, err = runWizard(t, f,
		Message{},
		Message{AttachmentURLs: []string{"https://tg.example/f.jpg"}},
		Message{Text: "100000"},
		Message{Text: "ko"},
	)
	require.NoError(t, err)
	assert.True(t, done)
	require.Len(t, store.inserted, 1)
	assert.Empty(t, store.inserted[0].Description)
}

func TestWizardInsertFailureIsUnexpected(t *testing.T) {
	f := NewFlow(&fakeStore{err: errors.New("db down")})

	_, _, done, err := runWizard(t, f,
		Message{Text: "Mô tả"},
		Message{Text: "https://cdn.example/a.png"},
		Message{Text: "100000"},
		Message{Text: "ko"},
	)

	var coded *flow.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, flow.CodeUnexpected, coded.Code())
	assert.False(t, done)
}

func TestCollectImageURLsMergesFilesFirst(t *testing.T) {
	msg := Message{
		Text:           "xem thêm https://cdn.example/c.png và https://cdn.example/d.png nhé",
		AttachmentURLs: []string{"https://tg.example/file1.jpg", "https://tg.example/file2.jpg"},
	}
	urls := CollectImageURLs(msg)
	assert.Equal(t, []string{
		"https://tg.example/file1.jpg",
		"https://tg.example/file2.jpg",
		"https://cdn.example/c.png",
		"https://cdn.example/d.png",
	}, urls)
}

func TestCollectImageURLsIgnoresNonHTTPTokens(t *testing.T) {
	urls := CollectImageURLs(Message{Text: "ftp://x file.png https://cdn.example/a.png"})
	assert.Equal(t, []string{"https://cdn.example/a.png"}, urls)
}
