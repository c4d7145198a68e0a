package bot

import (
	tele "gopkg.in/telebot.v4"

	tg "github.com/tuanthaoreal/storebot/core/telegram"
	"github.com/tuanthaoreal/storebot/core/telegram/callbacks"
	tghelpers "github.com/tuanthaoreal/storebot/core/telegram/helpers"
	"github.com/tuanthaoreal/storebot/internal/browse"
	"github.com/tuanthaoreal/storebot/internal/flow"
)

func (h *Handlers) registerCallbacks(reg *tg.Registry) {
	_ = reg.RegisterCallback(flow.ActionStart, h.cbStart)
	_ = reg.RegisterCallback(flow.ActionDecline, h.cbDecline)
	_ = reg.RegisterCallback(flow.ActionBucket, h.cbBucket)
	_ = reg.RegisterCallback(flow.ActionCode, h.cbCode)
	_ = reg.RegisterCallback(flow.ActionPrev, h.cbPage(false))
	_ = reg.RegisterCallback(flow.ActionNext, h.cbPage(true))
	_ = reg.RegisterCallback(flow.ActionNoop, func(tele.Context) error { return nil })
}

// browseSession fetches the caller's live browse state. A missing or
// expired session gets the expiry notice and a TIMEOUT_EXPIRED error.
func (h *Handlers) browseSession(c tele.Context) (*flow.Session, browse.Session, error) {
	sess, ok := h.sessions.Get(c.Sender().ID, flow.KindBrowse)
	if !ok {
		if err := tghelpers.SendText(c, textSessionExpired); err != nil {
			return nil, browse.Session{}, err
		}
		return nil, browse.Session{}, flow.Timeout("browse session expired")
	}
	state, ok := sess.Data.(browse.Session)
	if !ok {
		h.sessions.End(c.Sender().ID, flow.KindBrowse)
		return nil, browse.Session{}, flow.Unexpected("browse session holds foreign data", nil)
	}
	return sess, state, nil
}

func (h *Handlers) cbStart(c tele.Context) error {
	sess, state, err := h.browseSession(c)
	if err != nil {
		return err
	}
	next, r, err := h.browse.Start(state)
	if err != nil {
		return err
	}
	sess.Data = next
	h.sessions.Touch(c.Sender().ID, flow.KindBrowse, StepTTL)
	return Deliver(c, r)
}

func (h *Handlers) cbDecline(c tele.Context) error {
	h.sessions.End(c.Sender().ID, flow.KindBrowse)
	return Deliver(c, h.browse.Decline())
}

func (h *Handlers) cbBucket(c tele.Context) error {
	sess, state, err := h.browseSession(c)
	if err != nil {
		return err
	}
	key := callbacks.CallbackPayload(c)

	next, r, ended, err := h.browse.ChooseBucket(tghelpers.BuildContext(c), state, key)
	if err != nil {
		return err
	}
	if ended {
		h.sessions.End(c.Sender().ID, flow.KindBrowse)
		return Deliver(c, r)
	}
	sess.Data = next
	h.sessions.Touch(c.Sender().ID, flow.KindBrowse, StepTTL)
	return Deliver(c, r)
}

func (h *Handlers) cbCode(c tele.Context) error {
	sess, state, err := h.browseSession(c)
	if err != nil {
		return err
	}
	code := callbacks.CallbackPayload(c)

	next, r, err := h.browse.ChooseCode(tghelpers.BuildContext(c), state, code)
	if err != nil {
		if r.Text != "" {
			if sendErr := Deliver(c, r); sendErr != nil {
				return sendErr
			}
		}
		return err
	}
	sess.Data = next
	h.sessions.Touch(c.Sender().ID, flow.KindBrowse, StepTTL)
	return Deliver(c, r)
}

// cbPage moves the gallery one image. Position travels in the callback
// payload, so paging keeps working even after the session expired.
func (h *Handlers) cbPage(forward bool) tele.HandlerFunc {
	return func(c tele.Context) error {
		code, index, err := callbacks.PayloadStringInt(c, "|")
		if err != nil {
			return flow.Validation("malformed pager payload")
		}

		var state browse.Session
		sess, ok := h.sessions.Get(c.Sender().ID, flow.KindBrowse)
		if ok {
			if s, good := sess.Data.(browse.Session); good {
				state = s
			}
		}

		next, r, err := h.browse.Page(tghelpers.BuildContext(c), state, code, index, forward)
		if err != nil {
			if r.Text != "" {
				if sendErr := Deliver(c, r); sendErr != nil {
					return sendErr
				}
			}
			return err
		}
		if ok {
			sess.Data = next
			h.sessions.Touch(c.Sender().ID, flow.KindBrowse, StepTTL)
		}
		return Deliver(c, r)
	}
}
