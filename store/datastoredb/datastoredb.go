package datastoredb

import (
	"context"
	"strings"

	"cloud.google.com/go/datastore"
	"github.com/pkg/errors"
	"github.com/tallybot/tallybot/store"
	"google.golang.org/api/option"
)

// siloSeparator joins the silo name and the key to form the entity key name,
// mirroring the encoding of store.LevelDB
const siloSeparator = "/"

// DatastoreDB implements the store.GlobalSiloStringStorer interface. It maps
// the given name to the datastore entity Kind to isolate data between
// different applications sharing a project
type DatastoreDB struct {
	*datastore.Client
	kind string
}

// EntryValue represents an entity/entry value mapped to a datastore key
type EntryValue struct {
	Value string `datastore:",noindex"`
}

// NewDatastoreDB returns a new instance of DatastoreDB for the given name (which
// maps to the datastore entity "Kind"). This function also requires a
// gcloudProjectID as well as at least one option to provide gcloud client credentials
func NewDatastoreDB(name string, gcloudProjectID string, gcloudClientOpts ...option.ClientOption) (dsdb *DatastoreDB, err error) {
	ctx := context.Background()
	client, err := datastore.NewClient(ctx, gcloudProjectID, gcloudClientOpts...)
	if err != nil {
		return nil, err
	}

	dsdb = new(DatastoreDB)
	dsdb.Client = client
	dsdb.kind = name

	if err = dsdb.testDB(); err != nil {
		dsdb.Close()
		return nil, err
	}

	return dsdb, nil
}

// testDB makes a lightweight call to the datastore to validate connectivity and credentials
func (dsdb *DatastoreDB) testDB() (err error) {
	_, err = dsdb.GetString("testConnectivity")

	if err != nil && !errors.Is(err, store.ErrKeyNotFound) {
		return err
	}

	return nil
}

// GetString returns the value associated to a given key
func (dsdb *DatastoreDB) GetString(key string) (value string, err error) {
	return dsdb.GetSiloString("", key)
}

// GetSiloString returns the value associated to a given key in the given silo
func (dsdb *DatastoreDB) GetSiloString(silo string, key string) (value string, err error) {
	ctx := context.Background()

	var e EntryValue
	k := datastore.NameKey(dsdb.kind, silo+siloSeparator+key, nil)
	if err := dsdb.Get(ctx, k, &e); err != nil {
		if err == datastore.ErrNoSuchEntity {
			return "", errors.Wrapf(store.ErrKeyNotFound, "[%s%s%s]", silo, siloSeparator, key)
		}

		return "", err
	}

	return e.Value, nil
}

// PutString stores the key/value to the database
func (dsdb *DatastoreDB) PutString(key string, value string) (err error) {
	return dsdb.PutSiloString("", key, value)
}

// PutSiloString stores the key/value to the given silo
func (dsdb *DatastoreDB) PutSiloString(silo string, key string, value string) (err error) {
	ctx := context.Background()
	k := datastore.NameKey(dsdb.kind, silo+siloSeparator+key, nil)

	_, err = dsdb.Put(ctx, k, &EntryValue{Value: value})
	return err
}

// DeleteString deletes the entry for the given key
func (dsdb *DatastoreDB) DeleteString(key string) (err error) {
	return dsdb.DeleteSiloString("", key)
}

// DeleteSiloString deletes the entry for the given key in the given silo
func (dsdb *DatastoreDB) DeleteSiloString(silo string, key string) (err error) {
	ctx := context.Background()
	k := datastore.NameKey(dsdb.kind, silo+siloSeparator+key, nil)

	return dsdb.Delete(ctx, k)
}

// Scan returns the key/values of the default (unnamed) silo
func (dsdb *DatastoreDB) Scan() (entries map[string]string, err error) {
	return dsdb.ScanSilo("")
}

// ScanSilo returns all key/values of one silo
func (dsdb *DatastoreDB) ScanSilo(silo string) (entries map[string]string, err error) {
	all, err := dsdb.GlobalScan()
	if err != nil {
		return nil, err
	}

	entries, ok := all[silo]
	if !ok {
		entries = map[string]string{}
	}

	return entries, nil
}

// DeleteSilo deletes all entries of one silo
func (dsdb *DatastoreDB) DeleteSilo(silo string) (err error) {
	ctx := context.Background()

	keys, err := dsdb.GetAll(ctx, datastore.NewQuery(dsdb.kind).KeysOnly(), nil)
	if err != nil {
		return err
	}

	toDelete := make([]*datastore.Key, 0, len(keys))
	for _, k := range keys {
		if strings.HasPrefix(k.Name, silo+siloSeparator) {
			toDelete = append(toDelete, k)
		}
	}

	if len(toDelete) == 0 {
		return nil
	}

	return dsdb.DeleteMulti(ctx, toDelete)
}

// GlobalScan returns all entries grouped by silo
func (dsdb *DatastoreDB) GlobalScan() (entries map[string]map[string]string, err error) {
	entries = make(map[string]map[string]string)

	ctx := context.Background()
	var vals []*EntryValue

	keys, err := dsdb.GetAll(ctx, datastore.NewQuery(dsdb.kind), &vals)
	if err != nil {
		return nil, err
	}

	for i, k := range keys {
		name := k.Name

		silo := ""
		if idx := strings.Index(name, siloSeparator); idx >= 0 {
			silo = name[:idx]
			name = name[idx+len(siloSeparator):]
		}

		if _, ok := entries[silo]; !ok {
			entries[silo] = map[string]string{}
		}

		entries[silo][name] = vals[i].Value
	}

	return entries, nil
}

// Close closes the underlying datastore client
func (dsdb *DatastoreDB) Close() (err error) {
	return dsdb.Client.Close()
}
