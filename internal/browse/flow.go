// Package browse implements the customer-facing product discovery
// conversation: greeting, price bucket selection, candidate pick, and
// the image gallery. Transitions are pure over (session, input) and
// emit render instructions; the telegram layer owns delivery.
package browse

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tuanthaoreal/storebot/internal/catalog"
	"github.com/tuanthaoreal/storebot/internal/flow"
	"github.com/tuanthaoreal/storebot/internal/gallery"
)

// State names the position of a browse session in the conversation.
type State string

const (
	StateAwaitingStart  State = "awaiting_start"
	StateAwaitingBucket State = "awaiting_bucket"
	StateAwaitingCode   State = "awaiting_code"
	StateShowingGallery State = "showing_gallery"
)

// CandidateLimit caps the number of product buttons offered after a
// bucket pick. Larger result sets are truncated with a notice.
const CandidateLimit = 24

// Session is the per-customer browse state kept in the flow registry.
type Session struct {
	State     State
	BucketKey string
	Code      string
	Index     int
}

// Catalog is the read side of the product store the flow needs.
type Catalog interface {
	InBucket(ctx context.Context, bucket catalog.PriceBucket) ([]catalog.Product, error)
	GetByCode(ctx context.Context, code string) (catalog.Product, error)
}

// Seller holds the storefront owner's contact surface shown on product cards.
type Seller struct {
	Name      string
	Facebook  string
	Zalo      string
	AvatarURL string
}

// Flow evaluates browse transitions against the catalog.
type Flow struct {
	catalog Catalog
	seller  Seller
}

// NewFlow builds a browse flow over the given catalog.
func NewFlow(c Catalog, seller Seller) *Flow {
	return &Flow{catalog: c, seller: seller}
}

// Greeting opens the conversation with start/decline affordances,
// fronted by the shop avatar when one is configured.
// The caller registers an awaiting_start session next to it.
func (f *Flow) Greeting() (Session, flow.Render) {
	text := "👋 *Xin chào! Mình là Bot Hỗ Trợ.*\nBạn có muốn bắt đầu tìm sản phẩm không?"
	r := flow.Message(text)
	if f.seller.AvatarURL != "" {
		r = flow.PhotoCard(f.seller.AvatarURL, text)
	}
	r = r.WithButtons(flow.Row(
		flow.Button{Label: "Bắt đầu xem sản phẩm", Action: flow.ActionStart},
		flow.Button{Label: "Không, cảm ơn", Action: flow.ActionDecline},
	))
	return Session{State: StateAwaitingStart}, r
}

// Decline ends the conversation politely.
func (f *Flow) Decline() flow.Render {
	return flow.Message("👍 OK, mình ở đây nếu bạn cần hỗ trợ.")
}

// Start moves an awaiting_start session to the bucket menu.
func (f *Flow) Start(s Session) (Session, flow.Render, error) {
	if s.State != StateAwaitingStart {
		return s, flow.Render{}, flow.Validation("start pressed outside greeting")
	}
	rows := make([][]flow.Button, 0, len(catalog.Buckets()))
	for _, b := range catalog.Buckets() {
		rows = append(rows, flow.Row(flow.Button{
			Label:  b.Label,
			Action: flow.ActionBucket,
			Data:   b.Key,
		}))
	}
	r := flow.Message("🌸 *Vui lòng chọn khoảng giá* 🌸").WithButtons(rows...)
	return Session{State: StateAwaitingBucket}, r, nil
}

// ChooseBucket resolves a bucket pick into a candidate code menu.
// An empty bucket apologises and ends the session (ended == true).
func (f *Flow) ChooseBucket(ctx context.Context, s Session, key string) (Session, flow.Render, bool, error) {
	if s.State != StateAwaitingBucket {
		return s, flow.Render{}, false, flow.Validation("bucket pick outside menu")
	}
	bucket, ok := catalog.BucketByKey(key)
	if !ok {
		return s, flow.Render{}, false, flow.Validation("unknown price bucket " + key)
	}

	products, err := f.catalog.InBucket(ctx, bucket)
	if err != nil {
		return s, flow.Render{}, false, flow.Unexpected("bucket query failed", err)
	}
	if len(products) == 0 {
		r := flow.Message("😥 Rất tiếc, không có sản phẩm nào trong khoảng giá này.")
		return s, r, true, nil
	}

	total := len(products)
	truncated := total > CandidateLimit
	if truncated {
		products = products[:CandidateLimit]
	}

	text := fmt.Sprintf("🔎 Tìm thấy %d sản phẩm. Vui lòng chọn một mã:", total)
	if truncated {
		text += fmt.Sprintf("\n_(hiển thị %d mã đầu tiên)_", CandidateLimit)
	}

	rows := make([][]flow.Button, 0, (len(products)+2)/3)
	var row []flow.Button
	for _, p := range products {
		row = append(row, flow.Button{Label: p.Code, Action: flow.ActionCode, Data: p.Code})
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	next := Session{State: StateAwaitingCode, BucketKey: key}
	return next, flow.Message(text).WithButtons(rows...), false, nil
}

// ChooseCode opens the gallery for a picked candidate. A product deleted
// between menu render and pick yields a NOT_FOUND with an apology.
func (f *Flow) ChooseCode(ctx context.Context, s Session, code string) (Session, flow.Render, error) {
	if s.State != StateAwaitingCode && s.State != StateShowingGallery {
		return s, flow.Render{}, flow.Validation("code pick outside candidate menu")
	}
	p, err := f.catalog.GetByCode(ctx, code)
	if errors.Is(err, catalog.ErrProductNotFound) {
		return s, flow.Message("Lỗi: Không tìm thấy sản phẩm này."),
			flow.NotFound("product " + code + " no longer exists")
	}
	if err != nil {
		return s, flow.Render{}, flow.Unexpected("product lookup failed", err)
	}

	next := Session{
		State:     StateShowingGallery,
		BucketKey: s.BucketKey,
		Code:      p.Code,
		Index:     0,
	}
	return next, f.galleryCard(p, 0, false), nil
}

// Page moves the gallery one image in either direction and re-renders
// the card in place. The product is re-fetched so a concurrent delete
// surfaces as NOT_FOUND instead of a stale card.
func (f *Flow) Page(ctx context.Context, s Session, code string, index int, forward bool) (Session, flow.Render, error) {
	p, err := f.catalog.GetByCode(ctx, code)
	if errors.Is(err, catalog.ErrProductNotFound) {
		return s, flow.Message("Lỗi: Không tìm thấy sản phẩm này."),
			flow.NotFound("product " + code + " no longer exists")
	}
	if err != nil {
		return s, flow.Render{}, flow.Unexpected("product lookup failed", err)
	}

	cursor := gallery.NewCursor(p.ImageURLs, index)
	if forward {
		cursor = cursor.Next()
	} else {
		cursor = cursor.Prev()
	}

	next := Session{
		State:     StateShowingGallery,
		BucketKey: s.BucketKey,
		Code:      p.Code,
		Index:     cursor.Index,
	}
	return next, f.galleryCard(p, cursor.Index, true), nil
}

func (f *Flow) galleryCard(p catalog.Product, index int, edit bool) flow.Render {
	cursor := gallery.NewCursor(p.ImageURLs, index)

	var caption strings.Builder
	fmt.Fprintf(&caption, "*Thông tin sản phẩm:* `%s`\n", p.Code)
	fmt.Fprintf(&caption, "*Giá bán:* %s\n\n", catalog.FormatPrice(p.Price))
	caption.WriteString(p.DisplayDescription())
	fmt.Fprintf(&caption, "\n\n_Cung cấp bởi: %s_", f.seller.Name)
	if cursor.Multi() {
		fmt.Fprintf(&caption, "\n🖼 %s", cursor.Footer())
	}

	var rows [][]flow.Button
	if cursor.Multi() {
		payload := func(i int) string { return p.Code + "|" + strconv.Itoa(i) }
		rows = append(rows, flow.Row(
			flow.Button{Label: "◀", Action: flow.ActionPrev, Data: payload(cursor.Index), Disabled: cursor.AtStart()},
			flow.Button{Label: "▶", Action: flow.ActionNext, Data: payload(cursor.Index), Disabled: cursor.AtEnd()},
		))
	}
	contact := flow.Row(
		flow.Button{Label: "💬 Facebook", URL: f.seller.Facebook},
		flow.Button{Label: "💬 Zalo", URL: f.seller.Zalo},
	)
	rows = append(rows, contact)
	if p.ShopURL != "" {
		rows = append(rows, flow.Row(flow.Button{Label: "🛒 Mua ngay", URL: p.ShopURL}))
	}

	r := flow.PhotoCard(cursor.Current(), caption.String())
	if edit {
		r = flow.Edit(cursor.Current(), caption.String())
	}
	return r.WithButtons(rows...)
}
