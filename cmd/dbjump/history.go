package main

import (
	"context"
	"path/filepath"

	"github.com/willibrandon/dbjump/internal/config"
	"github.com/willibrandon/dbjump/internal/logger"
	"github.com/willibrandon/dbjump/internal/storage/sqlite"
)

// historyFile is the connection history database kept next to the config.
const historyFile = "history.db"

func historyPath(cfg *config.Config) string {
	return filepath.Join(cfg.Dir(), historyFile)
}

// openHistory opens the history store. The returned close func is never nil.
func openHistory(cfg *config.Config) (*sqlite.HistoryStore, func(), error) {
	db, err := sqlite.Open(historyPath(cfg))
	if err != nil {
		return nil, func() {}, err
	}
	return sqlite.NewHistoryStore(db), func() { _ = db.Close() }, nil
}

// recordHistory notes a connection. Failures are logged and never block it.
func recordHistory(cfg *config.Config, p *config.Profile) {
	if !cfg.Settings.History {
		return
	}

	store, closeFn, err := openHistory(cfg)
	defer closeFn()
	if err != nil {
		logger.Warn("failed to open history", "error", err)
		return
	}

	if err := store.Record(context.Background(), p.Alias, string(p.Engine)); err != nil {
		logger.Warn("failed to record history", "alias", p.Alias, "error", err)
	}
}

// recentAliases returns aliases newest first, or nil when history is off or unreadable.
func recentAliases(cfg *config.Config, limit int) []string {
	if !cfg.Settings.History {
		return nil
	}

	store, closeFn, err := openHistory(cfg)
	defer closeFn()
	if err != nil {
		logger.Debug("history unavailable", "error", err)
		return nil
	}

	entries, err := store.Recent(context.Background(), limit)
	if err != nil {
		logger.Debug("failed to read history", "error", err)
		return nil
	}

	aliases := make([]string, 0, len(entries))
	for _, e := range entries {
		aliases = append(aliases, e.Alias)
	}
	return aliases
}
