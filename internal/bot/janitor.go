package bot

import (
	"context"
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/tuanthaoreal/storebot/core/logger"
	"github.com/tuanthaoreal/storebot/internal/flow"
	"github.com/tuanthaoreal/storebot/internal/wizard"
)

// Janitor periodically sweeps expired sessions. An expired wizard gets
// the timeout notice in its chat; expired browse sessions die silently,
// their buttons answer with the expiry text on the next press.
type Janitor struct {
	sessions *flow.Registry
	bot      *tele.Bot
	interval time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

// NewJanitor builds a janitor over the session registry.
func NewJanitor(sessions *flow.Registry, bot *tele.Bot, interval time.Duration) *Janitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Janitor{
		sessions: sessions,
		bot:      bot,
		interval: interval,
	}
}

// Start launches the sweep loop until Stop or context cancellation.
func (j *Janitor) Start(ctx context.Context) {
	ctx, j.cancel = context.WithCancel(ctx)
	j.done = make(chan struct{})

	go func() {
		defer close(j.done)
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				j.sweep()
			}
		}
	}()
}

// Stop halts the sweep loop and waits for it to drain.
func (j *Janitor) Stop() {
	if j.cancel == nil {
		return
	}
	j.cancel()
	<-j.done
}

func (j *Janitor) sweep() {
	expired := j.sessions.Sweep()
	if len(expired) == 0 {
		return
	}
	for _, s := range expired {
		logger.FlowJanitor.Info("session expired",
			slog.String("event", "session.expired"),
			slog.String("state", string(s.Kind)),
			slog.Int64("user_id", s.UserID),
			slog.Duration("duration", s.Age()),
		)
		if s.Kind != flow.KindWizard {
			continue
		}
		notice := wizard.TimeoutNotice()
		_, err := j.bot.Send(tele.ChatID(s.ChatID), notice.Text, &tele.SendOptions{
			ParseMode: tele.ModeMarkdown,
		})
		if err != nil {
			logger.FlowJanitor.Warn("timeout notice failed",
				slog.String("event", "session.notice_failed"),
				slog.Int64("chat_id", s.ChatID),
				slog.String("err", err.Error()),
			)
		}
	}
}
