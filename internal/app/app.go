// Package app assembles the storefront bot: configuration, database
// bootstrap, and the Telegram runtime wiring.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tuanthaoreal/storebot/core/bootstrap"
	"github.com/tuanthaoreal/storebot/core/cmd"
	tg "github.com/tuanthaoreal/storebot/core/telegram"
	tghelpers "github.com/tuanthaoreal/storebot/core/telegram/helpers"
	"github.com/tuanthaoreal/storebot/core/telegram/router"
	"github.com/tuanthaoreal/storebot/internal/bot"
	"github.com/tuanthaoreal/storebot/internal/catalog"

	tele "gopkg.in/telebot.v4"
)

// janitorInterval paces expired-session sweeps.
const janitorInterval = 30 * time.Second

// App is the fully bootstrapped storefront bot.
type App struct {
	cfg      *Config
	db       *sqlx.DB
	handlers *bot.Handlers
	janitor  *bot.Janitor
}

// Bootstrap initializes logging, storage, and the flow engines.
func Bootstrap(carrier cmd.ConfigCarrier) (cmd.TelegramApp, error) {
	cfg, ok := carrier.(*Config)
	if !ok {
		return nil, fmt.Errorf("app: unexpected config type %T", carrier)
	}

	res, err := bootstrap.Run(bootstrap.Options{
		Config:   &cfg.Core,
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	repo := catalog.NewRepository(res.DB)
	handlers := bot.NewHandlers(repo, cfg.SellerIdentity())

	return &App{
		cfg:      cfg,
		db:       res.DB,
		handlers: handlers,
	}, nil
}

// TelegramRunOptions builds the bot runtime: registry, middleware
// chain, routes, and lifecycle hooks.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	reg := tg.NewRegistry()
	a.handlers.Register(reg)

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID:       a.cfg.Core.Telegram.AdminID,
		OnAdminReject: bot.RejectNonAdmin,
	})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, router.TextRoutes(a.handlers, reg, router.TextOptions{
		UnknownText: a.handlers.UnknownText,
	})...)

	onLimited := func(c tele.Context) error {
		return tghelpers.SendText(c, "Bạn thao tác quá nhanh, thử lại sau nhé.")
	}

	return tg.RunOptions{
		Config:      &a.cfg.Core,
		Registry:    reg,
		Middlewares: tg.DefaultMiddlewares(&a.cfg.Core, onLimited),
		Routes:      routes,
		OnStart: func(ctx context.Context, rt tg.Runtime) error {
			a.janitor = bot.NewJanitor(a.handlers.Sessions(), rt.Bot, janitorInterval)
			a.janitor.Start(ctx)
			return nil
		},
		OnStop: func(ctx context.Context, rt tg.Runtime) error {
			if a.janitor != nil {
				a.janitor.Stop()
			}
			return a.db.Close()
		},
	}, nil
}
