package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/propscope/feasibility/pkg/constants"
	"github.com/propscope/feasibility/pkg/feasibility"
	"go.uber.org/zap"
)

// SQLiteStore persists the collection as a single JSON payload in a key-value
// table keyed by namespace. It keeps the whole-collection read-modify-write
// contract while surviving process restarts.
type SQLiteStore struct {
	conn      *sql.DB
	namespace string
	logger    *zap.Logger
}

// NewSQLiteStore opens (or creates) the database under dataDir and
// initializes the collections table.
func NewSQLiteStore(dataDir string, logger *zap.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "feasibility.db")
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := initTables(conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize database tables: %w", err)
	}

	return &SQLiteStore{
		conn:      conn,
		namespace: constants.StorageNamespace,
		logger:    logger,
	}, nil
}

func initTables(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS collections (
			namespace TEXT PRIMARY KEY,
			payload BLOB NOT NULL,
			updated_at TEXT NOT NULL
		)
	`)
	return err
}

// LoadAll reads the persisted collection. An absent namespace row or an
// unparsable payload yields an empty collection rather than an error.
func (s *SQLiteStore) LoadAll() ([]feasibility.Study, error) {
	var payload []byte
	err := s.conn.QueryRow(
		"SELECT payload FROM collections WHERE namespace = ?", s.namespace,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []feasibility.Study{}, nil
		}
		return nil, fmt.Errorf("failed to read study collection: %w", err)
	}

	var studies []feasibility.Study
	if err := json.Unmarshal(payload, &studies); err != nil {
		s.logger.Warn("discarding unparsable study collection",
			zap.String("op", "store.SQLiteStore.LoadAll"),
			zap.String("namespace", s.namespace),
			zap.Error(err),
		)
		return []feasibility.Study{}, nil
	}
	if studies == nil {
		studies = []feasibility.Study{}
	}
	return studies, nil
}

// StoreAll replaces the persisted collection under the namespace key.
func (s *SQLiteStore) StoreAll(studies []feasibility.Study) error {
	if studies == nil {
		studies = []feasibility.Study{}
	}
	payload, err := json.Marshal(studies)
	if err != nil {
		return fmt.Errorf("failed to serialize study collection: %w", err)
	}

	_, err = s.conn.Exec(`
		INSERT INTO collections (namespace, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(namespace) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, s.namespace, payload, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write study collection: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
