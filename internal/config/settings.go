package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Setting keys
const (
	KeyAPIKey    = "api_key"
	KeyModelName = "model_name"
)

var settingsBucket = []byte("settings")

// ErrSettingNotFound is returned by Get for a key that was never stored
var ErrSettingNotFound = errors.New("setting not found")

// ErrUnknownSetting is returned for keys other than KeyAPIKey and KeyModelName
var ErrUnknownSetting = errors.New("unknown setting")

// Settings is the persisted key/model pair. Both fields may be empty.
type Settings struct {
	APIKey    string
	ModelName string
}

// SettingsStore persists Settings in a bbolt database
type SettingsStore struct {
	db   *bolt.DB
	path string
}

// DefaultSettingsPath returns the settings database path
func DefaultSettingsPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "settings.db"), nil
}

// OpenSettingsStore opens (or creates) the settings database at path
func OpenSettingsStore(path string) (*SettingsStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create settings directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open settings store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(settingsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize settings store: %w", err)
	}

	return &SettingsStore{db: db, path: path}, nil
}

// OpenDefaultSettingsStore opens the store at DefaultSettingsPath
func OpenDefaultSettingsStore() (*SettingsStore, error) {
	path, err := DefaultSettingsPath()
	if err != nil {
		return nil, err
	}
	return OpenSettingsStore(path)
}

// Path returns the database file path
func (s *SettingsStore) Path() string {
	return s.path
}

// Close releases the database file lock
func (s *SettingsStore) Close() error {
	return s.db.Close()
}

func validKey(key string) error {
	switch key {
	case KeyAPIKey, KeyModelName:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownSetting, key)
}

// Has reports whether key holds a value
func (s *SettingsStore) Has(key string) bool {
	if validKey(key) != nil {
		return false
	}
	found := false
	_ = s.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket(settingsBucket).Get([]byte(key)) != nil
		return nil
	})
	return found
}

// Get returns the value stored under key
func (s *SettingsStore) Get(key string) (string, error) {
	if err := validKey(key); err != nil {
		return "", err
	}

	var value string
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(settingsBucket).Get([]byte(key))
		if v == nil {
			return ErrSettingNotFound
		}
		value = string(v)
		return nil
	})
	return value, err
}

// Set stores value under key
func (s *SettingsStore) Set(key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(settingsBucket).Put([]byte(key), []byte(value))
	})
}

// Load returns the stored settings; missing keys are left empty
func (s *SettingsStore) Load() (Settings, error) {
	var st Settings
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(settingsBucket)
		st.APIKey = string(b.Get([]byte(KeyAPIKey)))
		st.ModelName = string(b.Get([]byte(KeyModelName)))
		return nil
	})
	return st, err
}

// Save stores both settings in one transaction
func (s *SettingsStore) Save(st Settings) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(settingsBucket)
		if err := b.Put([]byte(KeyAPIKey), []byte(st.APIKey)); err != nil {
			return err
		}
		return b.Put([]byte(KeyModelName), []byte(st.ModelName))
	})
}

// Clear removes all stored settings
func (s *SettingsStore) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(settingsBucket); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		_, err := tx.CreateBucket(settingsBucket)
		return err
	})
}

// MaskKey hides all but the last four characters of an API key
func MaskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
