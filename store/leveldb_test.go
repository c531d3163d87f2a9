package store_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallybot/tallybot/store"
)

func newTestLevelDB(t *testing.T) (ldb *store.LevelDB) {
	ldb, err := store.NewLevelDB("storeTest", t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { ldb.Close() })

	return ldb
}

func TestPutGetRoundtrip(t *testing.T) {
	ldb := newTestLevelDB(t)

	assert.NoError(t, ldb.PutString("k", "v"))

	v, err := ldb.GetString("k")
	assert.NoError(t, err)
	assert.Equal(t, "v", v)
}

func TestGetMissingKeyIsErrKeyNotFound(t *testing.T) {
	ldb := newTestLevelDB(t)

	_, err := ldb.GetString("missing")
	assert.True(t, errors.Is(err, store.ErrKeyNotFound))
}

func TestSilosAreIndependent(t *testing.T) {
	ldb := newTestLevelDB(t)

	require.NoError(t, ldb.PutSiloString("team-T1", "U1", "one"))
	require.NoError(t, ldb.PutSiloString("team-T2", "U1", "two"))
	require.NoError(t, ldb.PutString("U1", "none"))

	v, err := ldb.GetSiloString("team-T1", "U1")
	assert.NoError(t, err)
	assert.Equal(t, "one", v)

	entries, err := ldb.ScanSilo("team-T2")
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"U1": "two"}, entries)
}

func TestDeleteSiloRemovesOnlyThatSilo(t *testing.T) {
	ldb := newTestLevelDB(t)

	require.NoError(t, ldb.PutSiloString("team-T1", "U1", "one"))
	require.NoError(t, ldb.PutSiloString("team-T1", "U2", "two"))
	require.NoError(t, ldb.PutSiloString("team-T2", "U1", "three"))

	assert.NoError(t, ldb.DeleteSilo("team-T1"))

	entries, err := ldb.ScanSilo("team-T1")
	assert.NoError(t, err)
	assert.Empty(t, entries)

	v, err := ldb.GetSiloString("team-T2", "U1")
	assert.NoError(t, err)
	assert.Equal(t, "three", v)
}

func TestDeleteUnknownSiloIsNoError(t *testing.T) {
	ldb := newTestLevelDB(t)

	assert.NoError(t, ldb.DeleteSilo("team-absent"))
}

func TestGlobalScanGroupsBySilo(t *testing.T) {
	ldb := newTestLevelDB(t)

	require.NoError(t, ldb.PutSiloString("config", "T1", "cfg"))
	require.NoError(t, ldb.PutSiloString("team-T1", "U1", "u"))

	entries, err := ldb.GlobalScan()
	assert.NoError(t, err)
	assert.Equal(t, map[string]map[string]string{
		"config":  {"T1": "cfg"},
		"team-T1": {"U1": "u"},
	}, entries)
}
