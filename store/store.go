// Package store defines the storage interfaces used by tallybot to persist
// per-team configuration and score counters, along with the leveldb-backed
// default implementation. Team tables map to silos so a backend only has to
// provide namespaced key/value strings
package store

import (
	"github.com/pkg/errors"
)

// ErrKeyNotFound is returned by GetString/GetSiloString when no value exists
// for the key. Implementations normalize their backend's own not-found error
// to this one so callers can test for it with errors.Is
var ErrKeyNotFound = errors.New("key not found")

// StringStorer is implemented by a simple string key/value store
type StringStorer interface {
	// GetString retrieves the value associated to the key, or ErrKeyNotFound
	GetString(key string) (value string, err error)

	// PutString adds or updates the value associated to the key
	PutString(key string, value string) (err error)

	// DeleteString deletes the entry for the given key
	DeleteString(key string) (err error)

	// Scan returns the complete set of key/values from the database
	Scan() (entries map[string]string, err error)

	// Close closes the underlying database
	Close() (err error)
}

// SiloStringStorer is implemented by a StringStorer that also partitions
// entries in named silos. Keys in different silos are independent
type SiloStringStorer interface {
	StringStorer

	// GetSiloString retrieves the value associated to the key in the silo, or ErrKeyNotFound
	GetSiloString(silo string, key string) (value string, err error)

	// PutSiloString adds or updates the value associated to the key in the silo
	PutSiloString(silo string, key string, value string) (err error)

	// DeleteSiloString deletes the entry for the given key in the silo
	DeleteSiloString(silo string, key string) (err error)

	// ScanSilo returns all key/values of one silo
	ScanSilo(silo string) (entries map[string]string, err error)

	// DeleteSilo deletes all entries of one silo. Deleting an empty or
	// unknown silo is not an error
	DeleteSilo(silo string) (err error)
}

// GlobalSiloStringStorer is implemented by a SiloStringStorer that can also
// scan over all of its silos
type GlobalSiloStringStorer interface {
	SiloStringStorer

	// GlobalScan returns all entries grouped by silo
	GlobalScan() (entries map[string]map[string]string, err error)
}
