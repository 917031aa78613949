package backend_test

import (
	"path/filepath"
	"testing"

	"github.com/meverselabs/yieldvault/core/backend"
	_ "github.com/meverselabs/yieldvault/core/backend/bolt_driver"
	_ "github.com/meverselabs/yieldvault/core/backend/leveldb_driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixEnd(t *testing.T) {
	assert.Equal(t, []byte{0x01, 0x03}, backend.PrefixEnd([]byte{0x01, 0x02}))
	assert.Equal(t, []byte{0x02}, backend.PrefixEnd([]byte{0x01, 0xff}))
	assert.Nil(t, backend.PrefixEnd([]byte{0xff, 0xff}))
}

func TestCreateUnknownDriver(t *testing.T) {
	_, err := backend.Create("nope", "")
	assert.ErrorIs(t, err, backend.ErrNotExistDriver)
}

func TestDrivers(t *testing.T) {
	dir := t.TempDir()
	paths := map[string]string{
		"memory":  "",
		"leveldb": filepath.Join(dir, "level"),
		"bolt":    filepath.Join(dir, "bolt", "state.db"),
	}
	assert.Equal(t, []string{"bolt", "leveldb", "memory"}, backend.Drivers())

	for name, path := range paths {
		t.Run(name, func(t *testing.T) {
			db, err := backend.Create(name, path)
			require.NoError(t, err)
			defer db.Close()

			require.NoError(t, db.Update(func(txn backend.StoreWriter) error {
				require.NoError(t, txn.Set([]byte("a1"), []byte("x")))
				require.NoError(t, txn.Set([]byte("a2"), []byte("y")))
				require.NoError(t, txn.Set([]byte("b1"), []byte("z")))
				return nil
			}))
			require.NoError(t, db.Update(func(txn backend.StoreWriter) error {
				return txn.Delete([]byte("a2"))
			}))

			require.NoError(t, db.View(func(txn backend.StoreReader) error {
				v, err := txn.Get([]byte("a1"))
				require.NoError(t, err)
				assert.Equal(t, []byte("x"), v)

				_, err = txn.Get([]byte("a2"))
				assert.ErrorIs(t, err, backend.ErrNotExistKey)

				keys := []string{}
				require.NoError(t, txn.Iterate([]byte("a"), func(key []byte, value []byte) error {
					keys = append(keys, string(key))
					return nil
				}))
				assert.Equal(t, []string{"a1"}, keys)
				return nil
			}))
		})
	}
}
