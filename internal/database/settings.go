package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrSettingNotFound is returned by GetSetting when the key is absent.
var ErrSettingNotFound = errors.New("setting not found")

// GetSetting retrieves a raw setting value by key.
func (d *Database) GetSetting(ctx context.Context, key string) (value string, err error) {
	start := time.Now()
	defer func() {
		if errors.Is(err, ErrSettingNotFound) {
			recordQuery("get_setting", start, nil)
			return
		}
		recordQuery("get_setting", start, err)
	}()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	err = d.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrSettingNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetSetting stores a raw setting value, replacing any previous one.
func (d *Database) SetSetting(ctx context.Context, key, value string) (err error) {
	start := time.Now()
	defer func() { recordQuery("set_setting", start, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = d.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, strftime('%s', 'now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	return err
}

// DeleteSetting removes a key. Deleting a missing key is not an error.
func (d *Database) DeleteSetting(ctx context.Context, key string) (err error) {
	start := time.Now()
	defer func() { recordQuery("delete_setting", start, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = d.db.ExecContext(ctx, "DELETE FROM settings WHERE key = ?", key)
	return err
}

// SettingKeys lists all stored keys in lexical order.
func (d *Database) SettingKeys(ctx context.Context) (keys []string, err error) {
	start := time.Now()
	defer func() { recordQuery("list_settings", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := d.db.QueryContext(ctx, "SELECT key FROM settings ORDER BY key")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		if err = rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	err = rows.Err()
	return keys, err
}

// StringList reads an ordered list of strings stored under key.
// A missing key returns a nil list and no error.
func (d *Database) StringList(ctx context.Context, key string) ([]string, error) {
	raw, err := d.GetSetting(ctx, key)
	if errors.Is(err, ErrSettingNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("setting %q is not a string list: %w", key, err)
	}
	return values, nil
}

// SetStringList overwrites the list stored under key.
func (d *Database) SetStringList(ctx context.Context, key string, values []string) error {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode setting %q: %w", key, err)
	}
	return d.SetSetting(ctx, key, string(raw))
}
