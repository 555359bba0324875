package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// fixtureSQL is a small live schema in main: two tables with data and a view.
const fixtureSQL = `
CREATE TABLE IF NOT EXISTS customers (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	country TEXT,
	created_at DATETIME
);

CREATE TABLE IF NOT EXISTS orders (
	id INTEGER PRIMARY KEY,
	customer_id INTEGER NOT NULL,
	status TEXT,
	total REAL
);

CREATE VIEW IF NOT EXISTS open_orders AS
	SELECT id, customer_id, total FROM orders WHERE status = 'open';
`

// SeedFixtures creates the fixture tables in main and fills them with rows.
func SeedFixtures(conn *sqlx.DB) error {
	if _, err := conn.Exec(fixtureSQL); err != nil {
		return fmt.Errorf("seed schema: %w", err)
	}

	customers := []struct {
		name, country string
	}{
		{"Ada", "UK"},
		{"Grace", "US"},
		{"Linus", "FI"},
		{"Margaret", "US"},
	}
	for i, c := range customers {
		if _, err := conn.Exec(
			"INSERT INTO customers (id, name, country, created_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)",
			i+1, c.name, c.country,
		); err != nil {
			return fmt.Errorf("seed customers: %w", err)
		}
	}

	statuses := []string{"open", "shipped", "shipped", "cancelled", "shipped", "open"}
	for i, s := range statuses {
		if _, err := conn.Exec(
			"INSERT INTO orders (id, customer_id, status, total) VALUES (?, ?, ?, ?)",
			i+1, i%len(customers)+1, s, float64(10*(i+1)),
		); err != nil {
			return fmt.Errorf("seed orders: %w", err)
		}
	}
	return nil
}
