package configstore

// GetPref returns the value stored under key in the preference namespace,
// falling back to the schema default when key is a recognized field and
// absent from the store.
func (s *Store) GetPref(key string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, found, err := s.read(key, typePref)
	if err != nil {
		s.degraded = true
		return nil, false
	}
	if found {
		return value, true
	}
	if field, known := prefFields[key]; known {
		return field.Default, true
	}
	return nil, false
}

// SetPref validates value against key's schema (when recognized) and writes
// it. Unrecognized keys are stored without validation.
func (s *Store) SetPref(key string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if field, known := prefFields[key]; known {
		if reasons := validateValue(field.Schema, value); len(reasons) > 0 {
			return &ConfigInvalidError{Key: key, Reasons: reasons}
		}
	}
	return s.upsert(key, typePref, value)
}

// PushSearchHistory appends term to search_history, dropping the oldest
// entries once the list exceeds the configured search_history_cap (§4.1:
// bounded lists are enforced in the typed-view setters, not on read).
func (s *Store) PushSearchHistory(term string) error {
	return s.pushBoundedList("search_history", "search_history_cap", term)
}

// PushRecent appends id to recents, dropping the oldest entries once the
// list exceeds the configured recents_cap.
func (s *Store) PushRecent(id string) error {
	return s.pushBoundedList("recents", "recents_cap", id)
}

func (s *Store) pushBoundedList(listKey, capKey, entry string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, found, err := s.read(listKey, typePref)
	if err != nil {
		s.degraded = true
		return err
	}
	var list []interface{}
	if found {
		if existing, ok := raw.([]interface{}); ok {
			list = existing
		}
	} else {
		list = append(list, prefFields[listKey].Default.([]interface{})...)
	}

	cap := int(prefFields[capKey].Default.(float64))
	if rawCap, found, err := s.read(capKey, typePref); err == nil && found {
		if n, ok := rawCap.(float64); ok {
			cap = int(n)
		}
	}

	list = append(list, entry)
	if len(list) > cap {
		list = list[len(list)-cap:]
	}
	return s.upsert(listKey, typePref, list)
}
