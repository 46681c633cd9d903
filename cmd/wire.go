package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/bnema/world-saver-cli/internal/adapters/narration"
	"github.com/bnema/world-saver-cli/internal/adapters/narration/offline"
	tomlrepo "github.com/bnema/world-saver-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/world-saver-cli/internal/adapters/store/chain"
	filestore "github.com/bnema/world-saver-cli/internal/adapters/store/file"
	sqlitestore "github.com/bnema/world-saver-cli/internal/adapters/store/sqlite"
	"github.com/bnema/world-saver-cli/internal/application"
	"github.com/bnema/world-saver-cli/internal/config"
	"github.com/bnema/world-saver-cli/internal/domain"
	"github.com/bnema/world-saver-cli/internal/ports"
)

const sqliteFileName = "state.db"

type app struct {
	cfg        config.Config
	logger     *slog.Logger
	narrator   ports.Narrator
	records    ports.GameRecordRepository
	openStore  func() (ports.KeyValueStore, error)
	httpClient *http.Client
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	v := config.New(homeDir)
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	records, err := tomlrepo.NewRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire records repository: %w", err)
	}

	a := &app{
		cfg:        cfg,
		logger:     logger,
		records:    records,
		httpClient: http.DefaultClient,
	}
	a.narrator = a.newNarrator()
	a.openStore = func() (ports.KeyValueStore, error) {
		return openStore(cfg.Store, logger)
	}

	return a, nil
}

func (a *app) newNarrator() ports.Narrator {
	if a.cfg.Narration.Offline {
		return offline.Narrator{}
	}

	return narration.Client{
		API:            narration.DefaultAPI(a.cfg.Narration.BaseURL),
		HTTPClient:     a.httpClient,
		RequestTimeout: a.cfg.Narration.Timeout,
	}
}

func openStore(cfg config.StoreConfig, logger *slog.Logger) (ports.KeyValueStore, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		store, err := sqlitestore.Open(filepath.Join(cfg.Path, sqliteFileName))
		if err != nil {
			return nil, fmt.Errorf("wire sqlite store: %w", err)
		}
		return store, nil
	case config.BackendChain:
		store, err := chainstore.NewSQLiteFirstWithFileFallback(filepath.Join(cfg.Path, sqliteFileName), cfg.Path)
		if err != nil {
			logger.Warn("sqlite store unavailable, using file store", "error", err)
			return filestore.NewStore(cfg.Path), nil
		}
		return store, nil
	default:
		return filestore.NewStore(cfg.Path), nil
	}
}

// withGame hydrates a game over a freshly opened store, runs fn and closes the
// store. One-shot commands pass interactive=false so output is not paced.
func (a *app) withGame(ctx context.Context, interactive bool, fn func(*application.Game) error) (err error) {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer func() {
		if closer, ok := store.(io.Closer); ok {
			err = errors.Join(err, closer.Close())
		}
	}()

	gameCfg := application.GameConfig{
		Thresholds: domain.Thresholds{
			Win:  a.cfg.Game.WinThreshold,
			Lose: a.cfg.Game.LoseThreshold,
		},
		ContextWindow: a.cfg.Game.ContextWindow,
		Logger:        a.logger,
	}
	if interactive {
		gameCfg.Cadence = a.cfg.Stream.Cadence
		gameCfg.ClosingDelay = a.cfg.Stream.ClosingDelay
	}

	game := application.NewGame(a.narrator, store, a.records, ports.SystemClock{}, gameCfg)
	defer game.Close()

	game.Hydrate(ctx)
	return fn(game)
}
