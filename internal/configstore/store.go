// Package configstore implements the Config Store (spec §4.1): durable,
// schema-validated configuration across three namespaces — app,
// preference, and per-plugin — backed by a single SQLite file.
package configstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/fastxteam/fastx-tui/internal/interfaces"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS configs (
	key        TEXT UNIQUE NOT NULL,
	value      TEXT NOT NULL,
	type       TEXT NOT NULL,
	audit_id   TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_configs_key ON configs(key);
CREATE INDEX IF NOT EXISTS idx_configs_type ON configs(type);
`

const (
	typeApp    = "app"
	typePref   = "preference"
	typePlugin = "plugin"
)

// Store is the Config Store. All mutating methods acquire mu, matching
// §4.1/§5's "single process-wide lock"; readers take the same lock for a
// consistent read.
type Store struct {
	mu            sync.Mutex
	db            *sql.DB
	clock         interfaces.Clock
	logger        interfaces.Logger
	degraded      bool
	pluginSchemas map[string]string
}

// Open opens (creating if absent) the SQLite file at path, applies the
// schema, and reconciles the app/preference namespaces against their
// schemas (§4.1 "On load").
func Open(path string, clk interfaces.Clock, logger interfaces.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("configstore: open %s: %w", path, err)
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("configstore: apply schema: %w", err)
	}

	s := &Store{db: db, clock: clk, logger: logger}
	if err := s.reconcileNamespace(typeApp, appFields); err != nil {
		s.degraded = true
		logger.Warnw("config store degraded reconciling app namespace", "error", err)
	}
	if err := s.reconcileNamespace(typePref, prefFields); err != nil {
		s.degraded = true
		logger.Warnw("config store degraded reconciling preference namespace", "error", err)
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Degraded reports whether the last load or write hit a persistence
// failure; a successful subsequent write clears it (§4.1 failure
// semantics).
func (s *Store) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// reconcileNamespace validates every stored row of typ against fields; if
// any row fails validation or decoding, the whole namespace is discarded
// and repopulated from schema defaults (§4.1: "if either fails validation,
// log the diagnostic, discard only the offending namespace, and populate
// it from defaults").
func (s *Store) reconcileNamespace(typ string, fields map[string]fieldSchema) error {
	rows, err := s.db.Query(`SELECT key, value FROM configs WHERE type = ?`, typ)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfigIOError, err)
	}
	stored := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			rows.Close()
			return fmt.Errorf("%w: %v", ErrConfigIOError, err)
		}
		stored[key] = value
	}
	rows.Close()

	valid := true
	for key, raw := range stored {
		field, known := fields[key]
		if !known {
			continue // unknown keys pass through without interpretation
		}
		var decoded interface{}
		if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
			valid = false
			break
		}
		if reasons := validateValue(field.Schema, decoded); len(reasons) > 0 {
			s.logger.Warnw("config value failed schema validation on load", "key", key, "type", typ, "reasons", reasons)
			valid = false
			break
		}
	}
	if valid {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfigIOError, err)
	}
	if _, err := tx.Exec(`DELETE FROM configs WHERE type = ?`, typ); err != nil {
		tx.Rollback()
		return fmt.Errorf("%w: %v", ErrConfigIOError, err)
	}
	now := s.clock.Now()
	for key, field := range fields {
		encoded, err := json.Marshal(field.Default)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("%w: encoding default for %q: %v", ErrConfigIOError, key, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO configs (key, value, type, audit_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
			key, string(encoded), typ, uuid.New().String(), now, now,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("%w: %v", ErrConfigIOError, err)
		}
	}
	return tx.Commit()
}

// read returns the decoded value stored at key with the given type, and
// whether a row was found.
func (s *Store) read(key, typ string) (interface{}, bool, error) {
	row := s.db.QueryRow(`SELECT value FROM configs WHERE key = ? AND type = ?`, key, typ)
	var raw string
	switch err := row.Scan(&raw); {
	case errors.Is(err, sql.ErrNoRows):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("%w: %v", ErrConfigIOError, err)
	}
	var decoded interface{}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, false, fmt.Errorf("%w: decoding %q: %v", ErrConfigIOError, key, err)
	}
	return decoded, true, nil
}

// upsert writes key/value/type in one statement, updating updated_at and
// preserving the original created_at and audit_id on conflict. audit_id is
// an opaque per-entry tracking token (ambient bookkeeping, not a
// spec-visible field) that lets logs correlate a ConfigEntry across rewrites
// of its value without re-keying on key+type.
func (s *Store) upsert(key, typ string, value interface{}) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encoding %q: %v", ErrConfigIOError, key, err)
	}
	now := s.clock.Now()
	_, err = s.db.Exec(`
		INSERT INTO configs (key, value, type, audit_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, type = excluded.type, updated_at = excluded.updated_at
	`, key, string(encoded), typ, uuid.New().String(), now, now)
	if err != nil {
		s.degraded = true
		return fmt.Errorf("%w: %v", ErrConfigIOError, err)
	}
	s.degraded = false
	return nil
}

// AuditID returns the opaque tracking token for key's ConfigEntry, if one
// exists.
func (s *Store) AuditID(key, typ string) (string, bool) {
	row := s.db.QueryRow(`SELECT audit_id FROM configs WHERE key = ? AND type = ?`, key, typ)
	var id string
	if err := row.Scan(&id); err != nil {
		return "", false
	}
	return id, true
}

// remove deletes the row at key, if any.
func (s *Store) remove(key string) error {
	if _, err := s.db.Exec(`DELETE FROM configs WHERE key = ?`, key); err != nil {
		s.degraded = true
		return fmt.Errorf("%w: %v", ErrConfigIOError, err)
	}
	s.degraded = false
	return nil
}

// ResetToDefaults wipes the store and re-inserts the app/preference schema
// defaults in one transaction (§4.1).
func (s *Store) ResetToDefaults() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfigIOError, err)
	}
	if _, err := tx.Exec(`DELETE FROM configs`); err != nil {
		tx.Rollback()
		return fmt.Errorf("%w: %v", ErrConfigIOError, err)
	}

	now := s.clock.Now()
	namespaces := []struct {
		typ    string
		fields map[string]fieldSchema
	}{
		{typeApp, appFields},
		{typePref, prefFields},
	}
	for _, ns := range namespaces {
		typ := ns.typ
		for key, field := range ns.fields {
			encoded, err := json.Marshal(field.Default)
			if err != nil {
				tx.Rollback()
				return fmt.Errorf("%w: %v", ErrConfigIOError, err)
			}
			if _, err := tx.Exec(
				`INSERT INTO configs (key, value, type, audit_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
				key, string(encoded), typ, uuid.New().String(), now, now,
			); err != nil {
				tx.Rollback()
				return fmt.Errorf("%w: %v", ErrConfigIOError, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigIOError, err)
	}
	s.degraded = false
	return nil
}
