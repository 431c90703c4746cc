package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/jobfinder/dashboard-go/internal/apiclient"
	"github.com/jobfinder/dashboard-go/internal/config"
	"github.com/jobfinder/dashboard-go/internal/nav"
	"github.com/jobfinder/dashboard-go/internal/notify"
	jfredis "github.com/jobfinder/dashboard-go/internal/redis"
	"github.com/jobfinder/dashboard-go/internal/service"
	"github.com/jobfinder/dashboard-go/internal/session"
	"github.com/jobfinder/dashboard-go/internal/token"
)

// App is the core wired for one command invocation.
type App struct {
	cfg     *config.Config
	history *nav.History
	client  *apiclient.Client
	auth    *service.AuthService
	jobs    *service.JobService
	upwork  *service.UpworkService
	session *session.Store
	toasts  *notify.Center

	closers []func() error
}

func newApp(ctx context.Context, cfg *config.Config, tokens token.Store, httpClient *http.Client, out io.Writer) (*App, error) {
	app := &App{cfg: cfg}

	if tokens == nil {
		var err error
		tokens, err = app.openTokenStore(ctx)
		if err != nil {
			app.Close()
			return nil, err
		}
	}
	if cfg.TokenEncryptionKey != "" {
		encrypted, err := token.NewEncryptedStore(tokens, cfg.TokenEncryptionKey)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("token encryption: %w", err)
		}
		tokens = encrypted
	}

	app.history = nav.NewHistory(config.RouteHome, func(_ context.Context, route string) {
		log.Debug().Str("route", route).Msg("navigate")
	})

	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.RequestTimeout()}
	}
	app.client = apiclient.New(apiclient.Options{
		BaseURL:         cfg.BaseURL(),
		HTTPClient:      httpClient,
		Tokens:          tokens,
		TokenExpiryDays: cfg.TokenExpiryDays,
		Navigator:       app.history,
	})

	app.auth = service.NewAuthService(app.client, cfg.TokenExpiryDays)
	app.jobs = service.NewJobService(app.client)
	app.upwork = service.NewUpworkService(app.client)

	app.session = session.NewStore(app.auth, app.history)
	app.client.OnUnauthorized(app.session.Invalidate)

	app.toasts = notify.NewCenter()
	app.toasts.Subscribe(newToastPrinter(out).print)
	app.closers = append(app.closers, func() error {
		app.toasts.Close()
		return nil
	})

	return app, nil
}

func (a *App) openTokenStore(ctx context.Context) (token.Store, error) {
	switch a.cfg.TokenStore {
	case config.TokenStoreMemory:
		return token.NewMemoryStore(), nil
	case config.TokenStoreRedis:
		client, err := jfredis.NewClient(ctx, a.cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("token store: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		return token.NewRedisStore(client.Client, jfredis.TokenKey(a.cfg.JWTCookieName)), nil
	default:
		return token.NewFileStore(a.cfg.TokenFilePath(), a.cfg.JWTCookieName), nil
	}
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Warn().Err(err).Msg("failed to close resource")
		}
	}
	a.closers = nil
}

// toastPrinter writes each toast once, when it first appears.
type toastPrinter struct {
	out  io.Writer
	mu   sync.Mutex
	seen map[string]struct{}
}

func newToastPrinter(out io.Writer) *toastPrinter {
	return &toastPrinter{out: out, seen: make(map[string]struct{})}
}

func (p *toastPrinter) print(toasts []notify.Toast) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, t := range toasts {
		if _, ok := p.seen[t.ID]; ok {
			continue
		}
		p.seen[t.ID] = struct{}{}
		line := t.Title
		if t.Description != "" {
			line += ": " + t.Description
		}
		if t.Variant == notify.VariantDestructive {
			line = "! " + line
		}
		fmt.Fprintln(p.out, line)
	}
}
