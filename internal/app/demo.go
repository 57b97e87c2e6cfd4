package app

import (
	"context"
	"fmt"

	"github.com/lumeo-hq/lumeo-api-client/internal/config"
	"github.com/lumeo-hq/lumeo-api-client/internal/logger"
	"github.com/lumeo-hq/lumeo-api-client/pkg/api"
	"github.com/lumeo-hq/lumeo-api-client/pkg/notify"
	"github.com/lumeo-hq/lumeo-api-client/pkg/request"
	"github.com/lumeo-hq/lumeo-api-client/pkg/tokenstore"
)

// Demo is the application runtime: it owns the configured request client and
// its collaborators (notifier fanout, token store) and walks the API surface
// end to end.
type Demo struct {
	cfg    *config.Config
	client *request.Client
	users  *api.UserAPI
	auth   *api.AuthAPI
	fanout *notify.Fanout
	tokens tokenstore.Store
	log    logger.Logger
}

// NewDemo builds the runtime from config files.
func NewDemo(ctx context.Context, cfg *config.Config, log logger.Logger) (*Demo, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	sinkConfigs := []notify.SinkConfig{{ID: "console", Type: notify.TypeLog}}
	if cfg.NotifiersFile != "" {
		reg, err := notify.LoadRegistry(cfg.NotifiersFile)
		if err != nil {
			return nil, fmt.Errorf("load notifiers registry: %w", err)
		}
		sinkConfigs = reg.Enabled()
		if len(sinkConfigs) == 0 {
			return nil, fmt.Errorf("no notifiers enabled")
		}
	}

	sinks, err := notify.BuildAll(ctx, notify.DefaultRegistry(), sinkConfigs, log)
	if err != nil {
		return nil, fmt.Errorf("build notifiers: %w", err)
	}
	fanout := notify.NewFanout(sinks, log)
	sinkSummaries := make([]map[string]string, 0, len(sinkConfigs))
	for _, sinkCfg := range sinkConfigs {
		sinkSummaries = append(sinkSummaries, map[string]string{
			"id":   sinkCfg.ID,
			"type": sinkCfg.Type,
		})
	}
	log.InfoObj("notifiers loaded", "notifiers_meta", map[string]any{
		"count":     len(sinkSummaries),
		"notifiers": sinkSummaries,
	})

	tokens, err := tokenstore.NewStore(cfg.TokenStoreType, cfg.TokenStorePath, tokenstore.Options{
		TokenTTL:      cfg.TokenTTL,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("init token store: %w", err)
	}
	log.InfoObj("token store initialized", "token_store_config", map[string]any{
		"type":              cfg.TokenStoreType,
		"path":              cfg.TokenStorePath,
		"token_ttl_seconds": int(cfg.TokenTTL.Seconds()),
	})

	client, err := request.New(request.Options{
		BaseURL:  cfg.APIBaseURL,
		Timeout:  cfg.APITimeout,
		Notifier: fanout,
		Tokens:   tokens,
		Logger:   log,
	})
	if err != nil {
		return nil, fmt.Errorf("init request client: %w", err)
	}

	return &Demo{
		cfg:    cfg,
		client: client,
		users:  api.NewUserAPI(client),
		auth:   api.NewAuthAPI(client, tokens),
		fanout: fanout,
		tokens: tokens,
		log:    log,
	}, nil
}

// Run walks the API surface once: sign in, list users, fetch the first user
// and their avatar, sign out. Failures are already surfaced as notifications;
// Run keeps going so one broken endpoint does not hide the rest.
func (d *Demo) Run(ctx context.Context) error {
	if d == nil || d.client == nil {
		return fmt.Errorf("demo is not initialized")
	}
	defer d.closeStore()

	d.log.InfoObj("demo starting", "target", map[string]any{
		"base_url":  d.client.BaseURL(),
		"notifiers": d.fanout.Size(),
	})

	login, err := d.auth.Login(ctx, api.LoginParams{
		Username: d.cfg.DemoUsername,
		Password: d.cfg.DemoPassword,
	})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	d.log.InfoObj("signed in", "session", map[string]any{
		"expires_in": login.ExpiresIn,
	})

	page, err := d.users.List(ctx, api.ListUsersParams{Page: 1, Size: 10})
	if err != nil {
		d.log.ErrorObj("list users failed", "error", err.Error())
	} else {
		d.log.InfoObj("users listed", "users_page", map[string]any{
			"count": len(page.Records),
			"total": page.Total,
		})
	}

	if len(page.Records) > 0 {
		first := page.Records[0]
		user, err := d.users.Get(ctx, first.ID)
		if err != nil {
			d.log.ErrorObj("get user failed", "error", err.Error())
		} else {
			d.log.InfoObj("user fetched", "user", user)
		}

		avatar, err := d.users.Avatar(ctx, first.ID)
		if err != nil {
			d.log.ErrorObj("fetch avatar failed", "error", err.Error())
		} else {
			d.log.InfoObj("avatar fetched", "avatar_bytes", len(avatar))
		}
	}

	if err := d.auth.Logout(ctx); err != nil {
		d.log.WarnObj("logout failed", "error", err.Error())
	}

	return nil
}

func (d *Demo) closeStore() {
	if d == nil || d.tokens == nil {
		return
	}
	if err := d.tokens.Close(); err != nil {
		d.log.WarnObj("token store close failed", "error", err.Error())
	}
}
