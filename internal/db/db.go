package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

// DriverName is the sqlite3 driver registered with the regexp function.
const DriverName = "sqlite3_schemadoc"

var registerOnce sync.Once

// Register installs the schemadoc driver. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		sql.Register(DriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("regexp", regexpMatch, true)
			},
		})
		sqlx.BindDriver(DriverName, sqlx.QUESTION)
	})
}

var (
	patternMu    sync.Mutex
	patternCache = map[string]*regexp.Regexp{}
)

// regexpMatch backs the REGEXP operator: X REGEXP Y calls regexp(Y, X).
func regexpMatch(pattern, value string) (bool, error) {
	patternMu.Lock()
	re, ok := patternCache[pattern]
	if !ok {
		var err error
		re, err = regexp.Compile(pattern)
		if err != nil {
			patternMu.Unlock()
			return false, err
		}
		patternCache[pattern] = re
	}
	patternMu.Unlock()
	return re.MatchString(value), nil
}

// Open opens the documented database as main and attaches the documentation
// database under schema, creating the documentation tables if needed.
func Open(databasePath, docsPath, schema string) (*sqlx.DB, error) {
	Register()

	if docsPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(docsPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create docs directory: %w", err)
		}
	}

	conn, err := sqlx.Open(DriverName, databasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// ATTACH is per connection; pin the pool to one so it always applies.
	conn.SetMaxOpenConns(1)

	if err := Attach(conn, docsPath, schema); err != nil {
		conn.Close()
		return nil, err
	}
	if err := InitSchema(conn, schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return conn, nil
}

// Attach attaches the documentation database file under schema.
func Attach(conn *sqlx.DB, docsPath, schema string) error {
	if _, err := conn.Exec(fmt.Sprintf("ATTACH DATABASE ? AS %s", QuoteIdent(schema)), docsPath); err != nil {
		return fmt.Errorf("failed to attach %s: %w", docsPath, err)
	}
	return nil
}
