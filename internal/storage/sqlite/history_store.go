package sqlite

import (
	"context"
	"strings"
	"time"
)

// HistoryEntry records how often and how recently an alias was used.
type HistoryEntry struct {
	Alias     string
	Engine    string
	UseCount  int64
	FirstUsed time.Time
	LastUsed  time.Time
}

// HistoryStore provides access to connection history.
type HistoryStore struct {
	db  *DB
	now func() time.Time
}

// NewHistoryStore creates a new history store.
func NewHistoryStore(db *DB) *HistoryStore {
	return &HistoryStore{db: db, now: time.Now}
}

// Record marks alias as used now, moving it to the top of the history.
func (s *HistoryStore) Record(ctx context.Context, alias, engine string) error {
	alias = strings.TrimSpace(alias)
	if alias == "" {
		return nil
	}

	now := s.now()
	_, err := s.db.conn.ExecContext(ctx, `
		INSERT INTO connection_history (alias, engine, use_count, first_used, last_used)
		VALUES (?, ?, 1, ?, ?)
		ON CONFLICT(alias) DO UPDATE SET
			engine = excluded.engine,
			use_count = use_count + 1,
			last_used = excluded.last_used
	`, alias, engine, now, now)
	return err
}

// Recent returns entries newest first.
func (s *HistoryStore) Recent(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.conn.QueryContext(ctx, `
		SELECT alias, engine, use_count, first_used, last_used
		FROM connection_history
		ORDER BY last_used DESC, alias
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var entry HistoryEntry
		if err := rows.Scan(&entry.Alias, &entry.Engine, &entry.UseCount, &entry.FirstUsed, &entry.LastUsed); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Forget removes alias from the history.
func (s *HistoryStore) Forget(ctx context.Context, alias string) error {
	_, err := s.db.conn.ExecContext(ctx, `DELETE FROM connection_history WHERE alias = ?`, alias)
	return err
}

// Prune removes entries whose alias is not in keep and returns how many were removed.
func (s *HistoryStore) Prune(ctx context.Context, keep []string) (int64, error) {
	if len(keep) == 0 {
		result, err := s.db.conn.ExecContext(ctx, `DELETE FROM connection_history`)
		if err != nil {
			return 0, err
		}
		return result.RowsAffected()
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keep)), ",")
	args := make([]any, len(keep))
	for i, alias := range keep {
		args[i] = alias
	}

	result, err := s.db.conn.ExecContext(ctx,
		`DELETE FROM connection_history WHERE alias NOT IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Count returns the number of aliases in the history.
func (s *HistoryStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM connection_history").Scan(&count)
	return count, err
}
