package store

import (
	"context"
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"surveillance-map/be/models"
)

var cameraPrefix = []byte("camera:")

// BadgerBackend stores one key per camera. Keys sort by id, so each value is
// prefixed with an 8-byte insertion sequence that Load sorts on.
type BadgerBackend struct {
	db *badger.DB
}

// OpenBadgerBackend opens a badger database in dir. An empty dir opens an
// in-memory database.
func OpenBadgerBackend(dir string) (*BadgerBackend, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", dir, err)
	}
	return &BadgerBackend{db: db}, nil
}

func (b *BadgerBackend) Name() string { return "badger" }

func (b *BadgerBackend) Load(_ context.Context) ([]models.Camera, error) {
	type entry struct {
		seq    uint64
		camera models.Camera
	}
	var entries []entry

	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = cameraPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				if len(val) < 8 {
					return fmt.Errorf("corrupt value for key %s", item.Key())
				}
				var cam models.Camera
				if err := json.Unmarshal(val[8:], &cam); err != nil {
					return fmt.Errorf("failed to decode %s: %w", item.Key(), err)
				}
				entries = append(entries, entry{seq: binary.BigEndian.Uint64(val[:8]), camera: cam})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	cameras := make([]models.Camera, 0, len(entries))
	for _, e := range entries {
		cameras = append(cameras, e.camera)
	}
	return cameras, nil
}

// Save replaces every camera key in a single write batch transaction.
func (b *BadgerBackend) Save(_ context.Context, cameras []models.Camera) error {
	return b.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = cameraPrefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		var stale [][]byte
		for it.Rewind(); it.Valid(); it.Next() {
			stale = append(stale, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}
		}

		for i, cam := range cameras {
			data, err := json.Marshal(cam)
			if err != nil {
				return fmt.Errorf("failed to encode camera %s: %w", cam.ID, err)
			}
			val := make([]byte, 8, 8+len(data))
			binary.BigEndian.PutUint64(val, uint64(i))
			val = append(val, data...)
			if err := txn.Set(append(append([]byte{}, cameraPrefix...), cam.ID...), val); err != nil {
				return fmt.Errorf("failed to write camera %s: %w", cam.ID, err)
			}
		}
		return nil
	})
}

func (b *BadgerBackend) Close() error {
	return b.db.Close()
}
