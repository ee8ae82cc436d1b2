package configstore

// GetApp returns the value stored under key in the app namespace. Unknown
// keys that are nonetheless present in the store (forward compatibility,
// §3) are returned as-is; keys absent entirely return the schema default
// when key is a recognized field, or (nil, false) otherwise.
func (s *Store) GetApp(key string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, found, err := s.read(key, typeApp)
	if err != nil {
		s.degraded = true
		return nil, false
	}
	if found {
		return value, true
	}
	if field, known := appFields[key]; known {
		return field.Default, true
	}
	return nil, false
}

// SetApp validates value against key's schema (when key is a recognized
// app field) and writes it. Unrecognized keys are stored without
// validation, matching appFields' forward-compatibility note.
func (s *Store) SetApp(key string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if field, known := appFields[key]; known {
		if reasons := validateValue(field.Schema, value); len(reasons) > 0 {
			return &ConfigInvalidError{Key: key, Reasons: reasons}
		}
	}
	return s.upsert(key, typeApp, value)
}
