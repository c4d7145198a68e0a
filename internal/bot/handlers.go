// Package bot binds the browse and wizard flows onto the Telegram
// surface: command handlers, callback handlers, the conversation
// manager, and the session janitor.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/tuanthaoreal/storebot/core/logger"
	tg "github.com/tuanthaoreal/storebot/core/telegram"
	"github.com/tuanthaoreal/storebot/core/telegram/commands"
	tghelpers "github.com/tuanthaoreal/storebot/core/telegram/helpers"
	"github.com/tuanthaoreal/storebot/internal/browse"
	"github.com/tuanthaoreal/storebot/internal/catalog"
	"github.com/tuanthaoreal/storebot/internal/flow"
	"github.com/tuanthaoreal/storebot/internal/wizard"
)

// Session deadlines: the greeting expires fast, every later step gets
// the full reply window.
const (
	EntryTTL = time.Minute
	StepTTL  = 5 * time.Minute
)

// listPageLimit bounds the body of one /list page.
const listPageLimit = 1000

// Store is the catalog surface the handlers need.
type Store interface {
	browse.Catalog
	wizard.Inserter
	DeleteByCode(ctx context.Context, code string) (bool, error)
	ListAll(ctx context.Context) ([]catalog.Product, error)
}

// Handlers owns the conversation state and the flow engines.
type Handlers struct {
	store    Store
	sessions *flow.Registry
	browse   *browse.Flow
	wizard   *wizard.Flow
}

// NewHandlers wires the flows over the given store.
func NewHandlers(store Store, seller browse.Seller) *Handlers {
	return &Handlers{
		store:    store,
		sessions: flow.NewRegistry(),
		browse:   browse.NewFlow(store, seller),
		wizard:   wizard.NewFlow(store),
	}
}

// Sessions exposes the registry for the janitor.
func (h *Handlers) Sessions() *flow.Registry {
	return h.sessions
}

// Register binds every command and callback onto the registry.
func (h *Handlers) Register(reg *tg.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.handleHelp,
		Description: "Giới thiệu bot",
		Hidden:      true,
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     h.handleHelp,
		Description: "Hướng dẫn sử dụng",
	})
	reg.RegisterCommand("/greet", commands.Command{
		Handler:     h.handleGreet,
		Description: "Bắt đầu tìm sản phẩm",
		Aliases:     []string{"hi"},
	})
	reg.RegisterCommand("/add", commands.Command{
		Handler:     h.handleAdd,
		Description: "Thêm sản phẩm mới",
		AdminOnly:   true,
	})
	reg.RegisterCommand("/del", commands.Command{
		Handler:     h.handleDel,
		Description: "Xóa sản phẩm theo mã",
		AdminOnly:   true,
	})
	reg.RegisterCommand("/list", commands.Command{
		Handler:     h.handleList,
		Description: "Liệt kê sản phẩm",
		AdminOnly:   true,
	})

	reg.SetCallbackNotFound(func(c tele.Context) error {
		_ = c.Respond(&tele.CallbackResponse{Text: "Nút không còn hiệu lực"})
		return nil
	})
	h.registerCallbacks(reg)
}

// RejectNonAdmin is the admin middleware reject hook.
func RejectNonAdmin(c tele.Context) error {
	return tghelpers.SendText(c, textNoPermission)
}

func (h *Handlers) handleHelp(c tele.Context) error {
	return tghelpers.SendMD(c, textHelp)
}

// handleGreet opens the customer conversation with a short-lived
// greeting session; the start button must be pressed within a minute.
func (h *Handlers) handleGreet(c tele.Context) error {
	sess, r := h.browse.Greeting()
	h.sessions.Begin(c.Sender().ID, c.Chat().ID, flow.KindBrowse, sess, EntryTTL)
	logger.FlowBrowse.Info("browse started",
		slog.String("event", "browse.start"),
		slog.Int64("user_id", c.Sender().ID),
	)
	return Deliver(c, r)
}

// handleAdd opens the product wizard in the operator's private chat.
func (h *Handlers) handleAdd(c tele.Context) error {
	if c.Chat().Type != tele.ChatPrivate {
		return tghelpers.SendText(c, textAddInPrivate)
	}
	sess, r := h.wizard.Begin()
	h.sessions.Begin(c.Sender().ID, c.Chat().ID, flow.KindWizard, sess, StepTTL)
	logger.FlowWizard.Info("wizard started",
		slog.String("event", "wizard.start"),
		slog.Int64("user_id", c.Sender().ID),
	)
	return Deliver(c, r)
}

func (h *Handlers) handleDel(c tele.Context) error {
	args := c.Args()
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return tghelpers.SendMD(c, textDelUsage)
	}
	code := catalog.NormalizeCode(args[0])

	removed, err := h.store.DeleteByCode(tghelpers.BuildContext(c), code)
	if err != nil {
		return flow.Unexpected("delete failed", err)
	}
	if !removed {
		return tghelpers.SendMD(c, fmt.Sprintf("⚠️ Không tìm thấy sản phẩm nào có mã `%s`.", code))
	}
	return tghelpers.SendMD(c, fmt.Sprintf("🗑️ Đã xóa thành công sản phẩm có mã `%s`.", code))
}

func (h *Handlers) handleList(c tele.Context) error {
	products, err := h.store.ListAll(tghelpers.BuildContext(c))
	if err != nil {
		return flow.Unexpected("list failed", err)
	}
	if len(products) == 0 {
		return tghelpers.SendText(c, textListEmpty)
	}

	pages := paginateProducts(products, listPageLimit)
	for i, body := range pages {
		header := fmt.Sprintf("📦 *Danh sách sản phẩm (%d) - Trang %d/%d*\n\n",
			len(products), i+1, len(pages))
		if err := tghelpers.SendMD(c, header+body); err != nil {
			return err
		}
	}
	return nil
}

// UnknownText replies to stray text outside any conversation.
func (h *Handlers) UnknownText(c tele.Context) error {
	if c.Chat().Type != tele.ChatPrivate {
		return nil
	}
	return tghelpers.SendText(c, textUnknown)
}

// paginateProducts renders list lines and groups them into pages whose
// bodies stay under limit characters, never splitting a line.
func paginateProducts(products []catalog.Product, limit int) []string {
	var pages []string
	var page strings.Builder
	for _, p := range products {
		line := fmt.Sprintf("- `%s`: %s\n_Mô tả: %s_\n\n",
			p.Code, catalog.FormatPrice(p.Price), p.ListDescription())
		if page.Len() > 0 && page.Len()+len(line) > limit {
			pages = append(pages, page.String())
			page.Reset()
		}
		page.WriteString(line)
	}
	if page.Len() > 0 {
		pages = append(pages, page.String())
	}
	return pages
}
