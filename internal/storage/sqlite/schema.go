package sqlite

// initSchema creates the database schema if it doesn't exist.
func (db *DB) initSchema() error {
	schema := `
	-- One row per alias that has been connected to
	CREATE TABLE IF NOT EXISTS connection_history (
		alias TEXT PRIMARY KEY,
		engine TEXT NOT NULL,
		use_count INTEGER NOT NULL DEFAULT 0,
		first_used DATETIME NOT NULL,
		last_used DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_connection_history_last_used ON connection_history(last_used DESC);
	`

	_, err := db.conn.Exec(schema)
	return err
}
