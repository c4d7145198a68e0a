package bot

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/tuanthaoreal/storebot/core/logger"
	tghelpers "github.com/tuanthaoreal/storebot/core/telegram/helpers"
	"github.com/tuanthaoreal/storebot/internal/flow"
	"github.com/tuanthaoreal/storebot/internal/wizard"
)

// InProgress reports whether the user has a wizard session, expired
// ones included: a late reply must reach ManagerHandler so it gets the
// timeout notice rather than the unknown-text fallback. Only the
// wizard consumes free-form messages; browsing is callbacks.
func (h *Handlers) InProgress(userID int64) bool {
	_, ok := h.sessions.Peek(userID, flow.KindWizard)
	return ok
}

// ManagerHandler feeds one private message into the user's wizard
// session. Messages from other chats are ignored so a group mention
// cannot advance an operator's draft.
func (h *Handlers) ManagerHandler(c tele.Context) error {
	if c.Chat().Type != tele.ChatPrivate {
		return nil
	}
	userID := c.Sender().ID

	// A reply landing after the step deadline but before the janitor
	// sweep still gets the timeout notice; the draft is discarded.
	if _, expired := h.sessions.TakeExpired(userID, flow.KindWizard); expired {
		if err := Deliver(c, wizard.TimeoutNotice()); err != nil {
			return err
		}
		return flow.Timeout("wizard step deadline passed")
	}

	sess, ok := h.sessions.Get(userID, flow.KindWizard)
	if !ok {
		return nil
	}
	state, ok := sess.Data.(wizard.Session)
	if !ok {
		h.sessions.End(userID, flow.KindWizard)
		return flow.Unexpected("wizard session holds foreign data", nil)
	}

	msg := wizardMessage(c)
	next, r, done, err := h.wizard.Handle(tghelpers.BuildContext(c), state, msg)
	if err != nil {
		h.sessions.End(userID, flow.KindWizard)
		if r.Text != "" {
			if sendErr := Deliver(c, r); sendErr != nil {
				return sendErr
			}
		}
		return err
	}
	if done {
		h.sessions.End(userID, flow.KindWizard)
		logger.FlowWizard.Info("wizard finished",
			slog.String("event", "wizard.commit"),
			slog.Int64("user_id", userID),
		)
		return Deliver(c, r)
	}

	sess.Data = next
	h.sessions.Touch(userID, flow.KindWizard, StepTTL)
	return Deliver(c, r)
}

// wizardMessage flattens a telebot update into the wizard's input:
// caption or text, plus any attachment resolved to a download URL.
func wizardMessage(c tele.Context) wizard.Message {
	m := c.Message()
	if m == nil {
		return wizard.Message{}
	}
	msg := wizard.Message{Text: m.Text}
	if msg.Text == "" {
		msg.Text = m.Caption
	}
	if m.Photo != nil {
		if u := fileURL(c, m.Photo.FileID); u != "" {
			msg.AttachmentURLs = append(msg.AttachmentURLs, u)
		}
	}
	if m.Document != nil {
		if u := fileURL(c, m.Document.FileID); u != "" {
			msg.AttachmentURLs = append(msg.AttachmentURLs, u)
		}
	}
	return msg
}

func fileURL(c tele.Context, fileID string) string {
	// c.Bot() exposes the tele.API interface; the file URL needs the
	// concrete bot's token and API base.
	b, ok := c.Bot().(*tele.Bot)
	if !ok {
		return ""
	}
	f, err := b.FileByID(fileID)
	if err != nil {
		logger.FlowWizard.Warn("file resolve failed",
			slog.String("event", "wizard.file_url"),
			slog.String("err", err.Error()),
		)
		return ""
	}
	return b.URL + "/file/bot" + b.Token + "/" + f.FilePath
}
