package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const themeKey = "theme"

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now,
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value, updated_at FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var st Setting
		var updatedAt string
		if err := rows.Scan(&st.Key, &st.Value, &updatedAt); err != nil {
			return nil, err
		}
		st.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		settings = append(settings, st)
	}
	return settings, rows.Err()
}

// Theme returns the persisted theme, ThemeLight when none was saved yet or
// the stored value is not recognised.
func (s *Store) Theme() (Theme, error) {
	v, err := s.GetSetting(themeKey)
	if errors.Is(err, sql.ErrNoRows) {
		return ThemeLight, nil
	}
	if err != nil {
		return ThemeLight, err
	}
	t, err := ParseTheme(v)
	if err != nil {
		return ThemeLight, nil
	}
	return t, nil
}

func (s *Store) SetTheme(t Theme) error {
	return s.SetSetting(themeKey, string(t))
}

// ToggleTheme flips between light and dark and persists the result.
func (s *Store) ToggleTheme() (Theme, error) {
	cur, err := s.Theme()
	if err != nil {
		return cur, err
	}
	next := cur.Toggle()
	if err := s.SetTheme(next); err != nil {
		return cur, err
	}
	return next, nil
}
