package configstore

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// exportDoc is the on-disk shape of an export/import round trip: one
// section per namespace, keyed by the bare config key.
type exportDoc struct {
	App        map[string]interface{}            `yaml:"app"`
	Preference map[string]interface{}            `yaml:"preference"`
	Plugin     map[string]map[string]interface{} `yaml:"plugin"`
}

// Export serializes the entire store to YAML (§4.1's export/import,
// grounded on the teacher's config-file handling and the rest of the pack's
// use of gopkg.in/yaml.v3 for human-editable documents).
func (s *Store) Export() ([]byte, error) {
	s.mu.Lock()
	rows, err := s.db.Query(`SELECT key, value, type FROM configs`)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %v", ErrConfigIOError, err)
	}

	doc := exportDoc{
		App:        map[string]interface{}{},
		Preference: map[string]interface{}{},
		Plugin:     map[string]map[string]interface{}{},
	}
	for rows.Next() {
		var key, raw, typ string
		if err := rows.Scan(&key, &raw, &typ); err != nil {
			rows.Close()
			s.mu.Unlock()
			return nil, fmt.Errorf("%w: %v", ErrConfigIOError, err)
		}
		var decoded interface{}
		if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
			rows.Close()
			s.mu.Unlock()
			return nil, fmt.Errorf("%w: decoding %q: %v", ErrConfigIOError, key, err)
		}
		switch typ {
		case typeApp:
			doc.App[key] = decoded
		case typePref:
			doc.Preference[key] = decoded
		case typePlugin:
			if obj, ok := decoded.(map[string]interface{}); ok {
				doc.Plugin[key] = obj
			}
		}
	}
	rows.Close()
	s.mu.Unlock()

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("configstore: marshal export: %w", err)
	}
	return out, nil
}

// Import replaces the entire store with the contents of data (as produced
// by Export), validating every app and preference value against its schema
// before committing; an invalid value aborts the import with the store
// left untouched.
func (s *Store) Import(data []byte) error {
	var doc exportDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("configstore: unmarshal import: %w", err)
	}

	for key, value := range doc.App {
		if field, known := appFields[key]; known {
			if reasons := validateValue(field.Schema, value); len(reasons) > 0 {
				return &ConfigInvalidError{Key: key, Reasons: reasons}
			}
		}
	}
	for key, value := range doc.Preference {
		if field, known := prefFields[key]; known {
			if reasons := validateValue(field.Schema, value); len(reasons) > 0 {
				return &ConfigInvalidError{Key: key, Reasons: reasons}
			}
		}
	}

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
	insert := func(key, typ string, value interface{}) error {
		encoded, err := json.Marshal(value)
		if err != nil {
			return err
		}
		_, err = tx.Exec(
			`INSERT INTO configs (key, value, type, audit_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
			key, string(encoded), typ, uuid.New().String(), now, now,
		)
		return err
	}

	for key, value := range doc.App {
		if err := insert(key, typeApp, value); err != nil {
			tx.Rollback()
			return fmt.Errorf("%w: %v", ErrConfigIOError, err)
		}
	}
	for key, value := range doc.Preference {
		if err := insert(key, typePref, value); err != nil {
			tx.Rollback()
			return fmt.Errorf("%w: %v", ErrConfigIOError, err)
		}
	}
	for key, value := range doc.Plugin {
		if err := insert(key, typePlugin, value); err != nil {
			tx.Rollback()
			return fmt.Errorf("%w: %v", ErrConfigIOError, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigIOError, err)
	}
	s.degraded = false
	return nil
}
