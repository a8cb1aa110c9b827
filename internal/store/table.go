package store

import (
	"database/sql"
	"fmt"
)

// Migrate bootstraps the schema. It is a no-op once PRAGMA user_version
// reports the current version.
func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}

	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1: tables ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS jobs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  company_name TEXT NOT NULL,
  location TEXT NOT NULL,
  job_type TEXT NOT NULL,
  salary_min INTEGER NOT NULL,
  salary_max INTEGER NOT NULL,
  experience TEXT NOT NULL DEFAULT '1-3 yr Exp',
  work_mode TEXT NOT NULL DEFAULT 'Onsite',
  description TEXT NOT NULL,
  application_deadline TEXT,
  created_at TEXT NOT NULL,
  is_published INTEGER NOT NULL DEFAULT 1,
  company_logo TEXT NOT NULL DEFAULT ''
);
`); err != nil {
		return err
	}

	// ---- Schema v1: indexes ----

	for _, col := range []string{"title", "company_name", "location", "job_type", "created_at"} {
		stmt := fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_jobs_%s ON jobs(%s);`, col, col)
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}
