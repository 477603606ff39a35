package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/truthguard/truthguard/internal/citations"
	"github.com/truthguard/truthguard/internal/consistency"
	"github.com/truthguard/truthguard/internal/correction"
	"github.com/truthguard/truthguard/internal/detect"
	"github.com/truthguard/truthguard/internal/facts"
	"github.com/truthguard/truthguard/internal/llm"
	"github.com/truthguard/truthguard/internal/store"
	"github.com/truthguard/truthguard/pkg/duckduckgo"
	"github.com/truthguard/truthguard/pkg/newsapi"
	"github.com/truthguard/truthguard/pkg/wikipedia"
)

// env bundles everything a command needs to run detections.
type env struct {
	Store     store.Store
	Detector  *detect.Detector
	Corrector *correction.Generator
}

func (e *env) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "truthguard.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, cfg.Store.Pool)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func initEnv(ctx context.Context) (*env, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}

	wiki := wikipedia.NewClient(wikipedia.WithBaseURL(cfg.Wikipedia.BaseURL))
	ddg := duckduckgo.NewClient(duckduckgo.WithBaseURL(cfg.DuckDuckGo.BaseURL))
	var news newsapi.Client
	if cfg.NewsAPI.Key != "" {
		news = newsapi.NewClient(cfg.NewsAPI.Key, newsapi.WithBaseURL(cfg.NewsAPI.BaseURL))
	}

	provider, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		st.Close()
		return nil, err
	}

	detector := detect.NewDetector(
		facts.NewVerifier(wiki, ddg, news),
		citations.NewVerifier(),
		consistency.NewChecker(st),
		st,
	)

	return &env{
		Store:     st,
		Detector:  detector,
		Corrector: correction.NewGenerator(provider),
	}, nil
}
