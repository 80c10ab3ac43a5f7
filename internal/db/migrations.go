package db

import "strings"

// Migrate runs all database migrations
func (d *DB) Migrate() error {
	return d.WithLock(func() error {
		for _, stmt := range d.schema() {
			if _, err := d.db.Exec(stmt); err != nil {
				return err
			}
		}
		return nil
	})
}

func (d *DB) schema() []string {
	idColumn := "INTEGER PRIMARY KEY AUTOINCREMENT"
	timestamp := "DATETIME"
	floatType := "REAL"
	if d.dialect == DialectPostgres {
		idColumn = "SERIAL PRIMARY KEY"
		timestamp = "TIMESTAMPTZ"
		floatType = "DOUBLE PRECISION"
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS training_data (
			id {{id}},
			user_id VARCHAR(80) NOT NULL,
			content TEXT NOT NULL,
			image_url TEXT,
			post_type VARCHAR(50) NOT NULL,
			created_at {{ts}} NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ab_tests (
			id VARCHAR(64) PRIMARY KEY,
			name TEXT NOT NULL,
			content_type VARCHAR(50) NOT NULL,
			platform VARCHAR(30) NOT NULL,
			status VARCHAR(20) NOT NULL CHECK(status IN ('draft', 'running', 'paused', 'completed')),
			start_date {{ts}},
			end_date {{ts}},
			winner_variation_id VARCHAR(64),
			confidence_level {{real}},
			created_at {{ts}} NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ab_test_variations (
			test_id VARCHAR(64) NOT NULL,
			id VARCHAR(64) NOT NULL,
			position INTEGER NOT NULL,
			content TEXT NOT NULL,
			hashtags TEXT NOT NULL,
			image_prompt TEXT,
			post_id TEXT,
			engagement_data TEXT,
			created_at {{ts}} NOT NULL,
			PRIMARY KEY (test_id, id),
			FOREIGN KEY (test_id) REFERENCES ab_tests(id) ON DELETE CASCADE
		)`,
		"CREATE INDEX IF NOT EXISTS idx_training_data_user_type ON training_data(user_id, post_type)",
		"CREATE INDEX IF NOT EXISTS idx_ab_test_variations_test ON ab_test_variations(test_id)",
	}

	r := strings.NewReplacer("{{id}}", idColumn, "{{ts}}", timestamp, "{{real}}", floatType)
	for i, s := range stmts {
		stmts[i] = r.Replace(s)
	}
	return stmts
}
