// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for habits, their completions, and store metadata.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS habits (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		color TEXT NOT NULL,
		completed_today INTEGER NOT NULL DEFAULT 0,
		streak INTEGER NOT NULL DEFAULT 0,
		recent TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS completions (
		habit_id TEXT NOT NULL,
		day TEXT NOT NULL,
		position INTEGER NOT NULL,
		UNIQUE (habit_id, day),
		FOREIGN KEY (habit_id) REFERENCES habits(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_completions_habit ON completions(habit_id, position);
	CREATE INDEX IF NOT EXISTS idx_completions_day ON completions(day);
	`

	_, err := d.db.Exec(schema)
	return err
}
