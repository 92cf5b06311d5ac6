package sqlite

import (
	"context"
	"database/sql"
)

// schema sets up the database. Every statement is idempotent so it runs on
// each startup. users must be created first: every other table references it.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS basic_data (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    date TEXT NOT NULL,
    age INTEGER NOT NULL CHECK (age > 0),
    gender TEXT NOT NULL CHECK (gender IN ('male', 'female')),
    weight REAL NOT NULL CHECK (weight > 0),
    height REAL NOT NULL CHECK (height > 0),
    FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS health_data (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    date TEXT NOT NULL,
    pulse INTEGER NOT NULL CHECK (pulse > 0),
    blood_pressure TEXT NOT NULL,
    duration_sleep REAL NOT NULL CHECK (duration_sleep > 0),
    FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS activity_data (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    date TEXT NOT NULL,
    activity_type TEXT NOT NULL,
    duration INTEGER NOT NULL CHECK (duration > 0),
    water_intake REAL NOT NULL CHECK (water_intake >= 0),
    FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS calculator_results (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    calculator_type TEXT NOT NULL CHECK (calculator_type IN ('bmi', 'body_fat', 'calories')),
    result REAL NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_basic_data_user_date ON basic_data(user_id, date);
CREATE INDEX IF NOT EXISTS idx_health_data_user_date ON health_data(user_id, date);
CREATE INDEX IF NOT EXISTS idx_activity_data_user_date ON activity_data(user_id, date);
CREATE INDEX IF NOT EXISTS idx_calculator_results_user ON calculator_results(user_id, created_at);
`

// runMigrations executes the schema setup.
func runMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
