package history

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Earthpatel/Business-Operations-Bot/internal/utils"
	_ "modernc.org/sqlite" // SQLite driver
)

const createMessagesTable = `
	CREATE TABLE IF NOT EXISTS chat_messages (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
`

// SQLiteStore keeps the transcript in a single SQLite table ordered by insertion.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("ensure dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite history at %q: %w", path, err)
	}
	// Limit SQLite to a single open connection to avoid "database is locked" errors
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open SQLite history at %q: %w", path, err)
	}
	if _, err := db.Exec(createMessagesTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table chat_messages: %w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the database file location.
func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) Load() ([]Message, error) {
	msgs, err := s.read()
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return []Message{GreetingMessage()}, nil
	}
	return msgs, nil
}

func (s *SQLiteStore) read() ([]Message, error) {
	rows, err := s.db.Query(`SELECT id, role, content, created_at FROM chat_messages ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var msgs []Message
	for rows.Next() {
		var m Message
		var role string
		var ts int64
		if err := rows.Scan(&m.ID, &role, &m.Content, &ts); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		m.Role = Role(role)
		m.CreatedAt = time.Unix(0, ts).UTC()
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (s *SQLiteStore) Append(msgs ...Message) error {
	existing, err := s.read()
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		msgs = append([]Message{GreetingMessage()}, msgs...)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO chat_messages (id, role, content, created_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for _, m := range msgs {
		if _, err := stmt.Exec(m.ID, string(m.Role), m.Content, m.CreatedAt.UnixNano()); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert message: %w", err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM chat_messages`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
