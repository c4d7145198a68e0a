// Package wizard implements the operator conversation that registers a
// new product: description, images, price, and an optional shop link,
// each collected from one private message. Transitions are pure; the
// telegram layer feeds messages in and delivers the renders.
package wizard

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tuanthaoreal/storebot/internal/catalog"
	"github.com/tuanthaoreal/storebot/internal/flow"
)

// Step names the field the wizard is currently collecting.
type Step string

const (
	StepDescription Step = "description"
	StepImages      Step = "images"
	StepPrice       Step = "price"
	StepShopURL     Step = "shop_url"
)

// Session is the per-operator wizard state kept in the flow registry.
type Session struct {
	Step  Step
	Draft catalog.Draft
}

// Message is one operator reply: its text plus any resolved attachment
// URLs, in upload order.
type Message struct {
	Text           string
	AttachmentURLs []string
}

// Inserter is the write side of the product store the wizard needs.
type Inserter interface {
	Insert(ctx context.Context, draft catalog.Draft) (catalog.Product, error)
}

// Flow evaluates wizard transitions and commits completed drafts.
type Flow struct {
	store Inserter
}

// NewFlow builds a wizard over the given store.
func NewFlow(store Inserter) *Flow {
	return &Flow{store: store}
}

// Begin opens a fresh wizard at the description step. Any prior draft
// of the same operator is discarded by the session registry.
func (f *Flow) Begin() (Session, flow.Render) {
	r := flow.Message("*Bắt đầu thêm sản phẩm mới...*\n\n" +
		"*(1/4)* Vui lòng gửi *thông tin/mô tả* cho sản phẩm:")
	return Session{Step: StepDescription}, r
}

// Handle consumes one operator message for the current step. done is
// true once the product has been stored; a non-nil error aborts the
// wizard and the returned render carries the abort notice.
func (f *Flow) Handle(ctx context.Context, s Session, msg Message) (Session, flow.Render, bool, error) {
	switch s.Step {
	case StepDescription:
		return f.handleDescription(s, msg)
	case StepImages:
		return f.handleImages(s, msg)
	case StepPrice:
		return f.handlePrice(s, msg)
	case StepShopURL:
		return f.handleShopURL(ctx, s, msg)
	default:
		return s, flow.Message(abortGeneric), false,
			flow.Unexpected("wizard in unknown step "+string(s.Step), nil)
	}
}

func (f *Flow) handleDescription(s Session, msg Message) (Session, flow.Render, bool, error) {
	// Empty descriptions are accepted as-is; only images and price are
	// load-bearing for a listing.
	s.Draft.Description = strings.TrimSpace(msg.Text)
	s.Step = StepImages
	r := flow.Message("*(2/4)* Vui lòng gửi *ảnh sản phẩm* " +
		"(đính kèm ảnh hoặc dán link, nhiều link cách nhau bằng dấu cách):")
	return s, r, false, nil
}

func (f *Flow) handleImages(s Session, msg Message) (Session, flow.Render, bool, error) {
	urls := CollectImageURLs(msg)
	if len(urls) == 0 {
		return s, flow.Message("❌ Sản phẩm cần ít nhất một ảnh. Thử lại với /add."), false,
			flow.Validation("no images supplied")
	}
	s.Draft.ImageURLs = urls
	s.Step = StepPrice
	r := flow.Message("*(3/4)* Vui lòng gửi *giá bán* của sản phẩm " +
		"(chỉ nhập số, ví dụ: `1500000`):")
	return s, r, false, nil
}

func (f *Flow) handlePrice(s Session, msg Message) (Session, flow.Render, bool, error) {
	raw := strings.TrimSpace(msg.Text)
	price, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || price < 0 {
		return s, flow.Message("❌ Giá tiền không hợp lệ. Vui lòng nhập một con số. Thử lại với /add."),
			false, flow.Validation("price " + raw + " is not a non-negative integer")
	}
	s.Draft.Price = price
	s.Step = StepShopURL
	r := flow.Message("*(4/4)* Vui lòng gửi *link mua hàng* của sản phẩm " +
		"(hoặc gõ `không` nếu không có):")
	return s, r, false, nil
}

func (f *Flow) handleShopURL(ctx context.Context, s Session, msg Message) (Session, flow.Render, bool, error) {
	// Whatever the operator sends is the link, verbatim; only the
	// negative-acknowledgment words mean "no link".
	raw := strings.TrimSpace(msg.Text)
	if isDeclinedShopLink(raw) {
		s.Draft.ShopURL = ""
	} else {
		s.Draft.ShopURL = raw
	}

	p, err := f.store.Insert(ctx, s.Draft)
	if err != nil {
		return s, flow.Message(abortGeneric), false,
			flow.Unexpected("product insert failed", err)
	}
	return s, successCard(p), true, nil
}

// TimeoutNotice is delivered by the janitor when a step deadline passes.
func TimeoutNotice() flow.Render {
	return flow.Message("⌛ Hết thời gian. Vui lòng gõ /add để thử lại.")
}

const abortGeneric = "Đã có lỗi xảy ra. Vui lòng gõ /add để thử lại."

func successCard(p catalog.Product) flow.Render {
	var b strings.Builder
	b.WriteString("✅ *Thêm sản phẩm thành công!*\n\n")
	fmt.Fprintf(&b, "*Mã sản phẩm:* `%s`\n", p.Code)
	fmt.Fprintf(&b, "*Giá bán:* %s\n", catalog.FormatPrice(p.Price))
	fmt.Fprintf(&b, "*Mô tả:* %s", p.DisplayDescription())
	if p.ShopURL != "" {
		fmt.Fprintf(&b, "\n*Link mua hàng:* %s", p.ShopURL)
	}
	return flow.PhotoCard(p.CoverImage(), b.String())
}

// CollectImageURLs merges a message's attachments (first, in upload
// order) with every whitespace-separated http(s) token of its text.
func CollectImageURLs(msg Message) []string {
	urls := append([]string(nil), msg.AttachmentURLs...)
	for _, tok := range strings.Fields(msg.Text) {
		if isHTTPURL(tok) {
			urls = append(urls, tok)
		}
	}
	return urls
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func isDeclinedShopLink(s string) bool {
	switch strings.ToLower(s) {
	case "không", "ko", "khong":
		return true
	}
	return false
}
