// Package persistent provides a badger-backed key/value store that is shared
// by multiple services, each owning its own key namespace.
package persistent

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"

	cmnBadger "github.com/oasisprotocol/prng-suite/common/badger"
	"github.com/oasisprotocol/prng-suite/common/cbor"
	"github.com/oasisprotocol/prng-suite/common/errors"
	"github.com/oasisprotocol/prng-suite/common/logging"
)

const (
	moduleName = "common/persistent"
	dbName     = "persistent-store.badger.db"
)

// ErrNotFound is the error returned when a key is not in the store.
var ErrNotFound = errors.New(moduleName, 1, "persistent: key not found in database")

// CommonStore is the common store shared by all services.
type CommonStore struct {
	db     *badger.DB
	logger *logging.Logger
}

// Close closes the database handle.
func (cs *CommonStore) Close() error {
	return cs.db.Close()
}

// GetServiceStore returns a handle to a per-service bucket for the given
// service name.
func (cs *CommonStore) GetServiceStore(name string) (*ServiceStore, error) {
	if name == "" {
		return nil, fmt.Errorf("persistent: empty service name")
	}
	return &ServiceStore{
		store:  cs,
		prefix: []byte(name + "/"),
	}, nil
}

// NewCommonStore opens the common store in the given data directory.
func NewCommonStore(dataDir string) (*CommonStore, error) {
	logger := logging.GetLogger(moduleName)

	opts := badger.DefaultOptions(filepath.Join(dataDir, dbName))
	opts = opts.WithLogger(cmnBadger.NewLogAdapter(logger))
	opts = opts.WithSyncWrites(true)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("persistent: failed to open database: %w", err)
	}

	return &CommonStore{
		db:     db,
		logger: logger,
	}, nil
}

// ServiceStore is a storage wrapper that automatically namespaces keys
// with the service name.
type ServiceStore struct {
	store  *CommonStore
	prefix []byte
}

func (ss *ServiceStore) dbKey(key []byte) []byte {
	return append(append([]byte{}, ss.prefix...), key...)
}

// GetCBOR is a helper for retrieving CBOR-serialized values.
func (ss *ServiceStore) GetCBOR(key []byte, value interface{}) error {
	return ss.store.db.View(func(tx *badger.Txn) error {
		item, txErr := tx.Get(ss.dbKey(key))
		switch txErr {
		case nil:
		case badger.ErrKeyNotFound:
			return ErrNotFound
		default:
			return txErr
		}
		return item.Value(func(val []byte) error {
			return cbor.Unmarshal(val, value)
		})
	})
}

// PutCBOR is a helper for storing CBOR-serialized values.
func (ss *ServiceStore) PutCBOR(key []byte, value interface{}) error {
	return ss.store.db.Update(func(tx *badger.Txn) error {
		return tx.Set(ss.dbKey(key), cbor.Marshal(value))
	})
}

// Delete removes the specified key from the service store.
func (ss *ServiceStore) Delete(key []byte) error {
	return ss.store.db.Update(func(tx *badger.Txn) error {
		return tx.Delete(ss.dbKey(key))
	})
}

// ForEach invokes fn for every key in the service store, in key order.
// The key passed to fn has the service prefix stripped. Iteration stops at
// the first error returned by fn.
func (ss *ServiceStore) ForEach(fn func(key, value []byte) error) error {
	return ss.store.db.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = ss.prefix
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := bytes.TrimPrefix(item.KeyCopy(nil), ss.prefix)
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err = fn(key, value); err != nil {
				return err
			}
		}
		return nil
	})
}
