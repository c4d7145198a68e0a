package bot

import (
	tele "gopkg.in/telebot.v4"

	tghelpers "github.com/tuanthaoreal/storebot/core/telegram/helpers"
	"github.com/tuanthaoreal/storebot/core/telegram/keyboard"
	"github.com/tuanthaoreal/storebot/internal/flow"
)

// Deliver translates a flow render instruction into telebot calls.
func Deliver(c tele.Context, r flow.Render) error {
	markup := buildMarkup(r.Buttons)
	switch r.Kind {
	case flow.RenderPhotoCard:
		return tghelpers.SendPhotoMD(c, r.Photo, r.Text, markup)
	case flow.RenderEdit:
		if r.Photo != "" {
			return tghelpers.EditPhotoMD(c, r.Photo, r.Text, markup)
		}
		return tghelpers.EditMD(c, r.Text, markup)
	default:
		return tghelpers.SendMD(c, r.Text, markup)
	}
}

// buildMarkup maps flow button rows onto an inline keyboard. Disabled
// buttons keep their label but fire the noop callback; Telegram has no
// native disabled state.
func buildMarkup(rows [][]flow.Button) *tele.ReplyMarkup {
	if len(rows) == 0 {
		return nil
	}
	out := make([][]keyboard.InlineBtn, 0, len(rows))
	for _, row := range rows {
		btns := make([]keyboard.InlineBtn, 0, len(row))
		for _, b := range row {
			btn := keyboard.InlineBtn{Text: b.Label}
			switch {
			case b.URL != "":
				btn.URL = b.URL
			case b.Disabled:
				btn.Unique = flow.ActionNoop
			default:
				btn.Unique = b.Action
				btn.Data = b.Data
			}
			btns = append(btns, btn)
		}
		out = append(out, btns)
	}
	return keyboard.InlineButtonsRows(out...)
}
