package store

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	leveldberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// siloSeparator joins the silo name and the key to form the leveldb key.
// Silo names must not contain it (team and user identifiers never do)
const siloSeparator = "/"

// LevelDB implements GlobalSiloStringStorer backed by a leveldb database
type LevelDB struct {
	Name     string
	database *leveldb.DB
}

// NewLevelDB instantiates and opens a new LevelDB instance backed by a
// leveldb database at storagePath. If the leveldb database doesn't exist,
// one is created
func NewLevelDB(name string, storagePath string) (ldb *LevelDB, err error) {
	// Expand '~' as the full home directory path if appropriate
	path, err := homedir.Expand(storagePath)
	if err != nil {
		return nil, err
	}

	fullPath := filepath.Join(path, name)
	db, err := leveldb.OpenFile(fullPath, nil)

	if _, ok := err.(*leveldberrors.ErrCorrupted); ok {
		return nil, errors.Wrap(err, fmt.Sprintf("leveldb corrupted. Consider deleting [%s] and restarting if you don't mind losing data", fullPath))
	} else if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to open file with path [%s]", fullPath))
	}

	return &LevelDB{Name: name, database: db}, nil
}

// Close closes the LevelDB
func (ldb *LevelDB) Close() (err error) {
	return ldb.database.Close()
}

// GetString retrieves the value associated to the key
func (ldb *LevelDB) GetString(key string) (value string, err error) {
	return ldb.GetSiloString("", key)
}

// GetSiloString retrieves the value associated to the key in the given silo
func (ldb *LevelDB) GetSiloString(silo string, key string) (value string, err error) {
	data, err := ldb.database.Get([]byte(silo+siloSeparator+key), nil)
	if err == leveldb.ErrNotFound {
		return "", errors.Wrapf(ErrKeyNotFound, "[%s%s%s]", silo, siloSeparator, key)
	} else if err != nil {
		return "", err
	}

	return string(data), nil
}

// PutString adds or updates the value associated to the key
func (ldb *LevelDB) PutString(key string, value string) (err error) {
	return ldb.PutSiloString("", key, value)
}

// PutSiloString adds or updates the value associated to the key in the given silo
func (ldb *LevelDB) PutSiloString(silo string, key string, value string) (err error) {
	return ldb.database.Put([]byte(silo+siloSeparator+key), []byte(value), nil)
}

// DeleteString deletes the entry for the given key
func (ldb *LevelDB) DeleteString(key string) (err error) {
	return ldb.DeleteSiloString("", key)
}

// DeleteSiloString deletes the entry for the given key in the given silo
func (ldb *LevelDB) DeleteSiloString(silo string, key string) (err error) {
	return ldb.database.Delete([]byte(silo+siloSeparator+key), nil)
}

// Scan returns the key/values of the default (unnamed) silo
func (ldb *LevelDB) Scan() (entries map[string]string, err error) {
	return ldb.ScanSilo("")
}

// ScanSilo returns all key/values of one silo
func (ldb *LevelDB) ScanSilo(silo string) (entries map[string]string, err error) {
	entries = map[string]string{}

	prefix := silo + siloSeparator
	iter := ldb.database.NewIterator(util.BytesPrefix([]byte(prefix)), nil)
	for iter.Next() {
		key := strings.TrimPrefix(string(iter.Key()), prefix)
		entries[key] = string(iter.Value())
	}

	iter.Release()
	err = iter.Error()

	return entries, err
}

// DeleteSilo deletes all entries of one silo
func (ldb *LevelDB) DeleteSilo(silo string) (err error) {
	prefix := silo + siloSeparator
	iter := ldb.database.NewIterator(util.BytesPrefix([]byte(prefix)), nil)

	batch := new(leveldb.Batch)
	for iter.Next() {
		batch.Delete(append([]byte(nil), iter.Key()...))
	}

	iter.Release()
	if err = iter.Error(); err != nil {
		return err
	}

	return ldb.database.Write(batch, nil)
}

// GlobalScan returns all entries grouped by silo
func (ldb *LevelDB) GlobalScan() (entries map[string]map[string]string, err error) {
	entries = map[string]map[string]string{}

	iter := ldb.database.NewIterator(nil, nil)
	for iter.Next() {
		key := string(iter.Key())

		silo := ""
		if i := strings.Index(key, siloSeparator); i >= 0 {
			silo = key[:i]
			key = key[i+len(siloSeparator):]
		}

		if _, ok := entries[silo]; !ok {
			entries[silo] = map[string]string{}
		}

		entries[silo][key] = string(iter.Value())
	}

	iter.Release()
	err = iter.Error()

	return entries, err
}
