package commands

import (
	"context"

	"go.uber.org/zap"

	"tableflip.dev/cardfuse/pkg/app"
	"tableflip.dev/cardfuse/pkg/catalog"
	"tableflip.dev/cardfuse/pkg/i18n"
	"tableflip.dev/cardfuse/pkg/store"
)

// env is what every command needs: the resolved config, the persisted
// selection and a session over the loaded catalog.
type env struct {
	config     *store.FileConfig
	selections *store.Selections
	session    *app.Session
}

// resolveConfig reads the config file and applies the global flags.
func resolveConfig() (*store.FileConfig, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	if global.Store != "" {
		cfg.Path = global.Store
	}
	if global.Catalog != "" {
		cfg.Catalog = global.Catalog
	}
	if global.Locale != "" {
		cfg.Lang = global.Locale
	}
	return cfg, nil
}

func loadEnv(ctx context.Context) (*env, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, err
	}

	bundle := i18n.Default()
	locale, err := bundle.Parse(cfg.Locale())
	if err != nil {
		return nil, err
	}

	sels, err := store.Load(cfg, logger)
	if err != nil {
		return nil, err
	}

	cards := catalog.Load(ctx, catalog.SourceFor(cfg.CatalogSource()), logger)
	logger.Debug("environment ready",
		zap.String("store", cfg.BasePath()),
		zap.String("catalog", cards.Source()),
		zap.Int("cards", cards.Len()),
		zap.String("locale", string(locale)))

	return &env{
		config:     cfg,
		selections: sels,
		session: app.NewSession(app.Options{
			Catalog:     cards,
			Persistence: sels,
			Bundle:      bundle,
			Locale:      locale,
			Logger:      logger,
		}),
	}, nil
}
