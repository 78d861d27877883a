package boltdb

import (
	"errors"
	"os"

	"github.com/boltdb/bolt"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
)

var _ kvstore.KVStore = &Store{}

type StoreConfig struct {
	Path        string
	Bucket      string
	NoSync      bool
	ReadOnly    bool
	FillPercent float64
}

type Store struct {
	path        string
	bucket      []byte
	db          *bolt.DB
	noSync      bool
	fillPercent float64
}

func New(config *StoreConfig) (kvstore.KVStore, error) {
	if config == nil {
		return nil, errors.New("must provide config")
	}
	if config.Path == "" {
		return nil, os.ErrInvalid
	}
	path := config.Path
	bucket := config.Bucket
	if config.Bucket == "" {
		bucket = "baudgraph"
	}
	noSync := config.NoSync
	fillPercent := config.FillPercent
	if fillPercent == 0.0 {
		fillPercent = bolt.DefaultFillPercent
	}

	bo := &bolt.Options{}
	bo.ReadOnly = config.ReadOnly

	db, err := bolt.Open(path, 0600, bo)
	if err != nil {
		return nil, err
	}
	db.NoSync = noSync

	if !bo.ReadOnly {
		err = db.Update(func(tx *bolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists([]byte(bucket))

			return err
		})
		if err != nil {
			return nil, err
		}
	}

	rv := Store{
		path:        path,
		bucket:      []byte(bucket),
		db:          db,
		noSync:      noSync,
		fillPercent: fillPercent,
	}
	return &rv, nil
}

func (bs *Store) Get(key []byte) (value []byte, err error) {
	if bs == nil {
		return nil, nil
	}
	err = bs.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bs.bucket)
		v := b.Get(key)
		if v != nil {
			value = cloneBytes(v)
		}
		return nil
	})
	return
}

func (bs *Store) Put(key []byte, value []byte) error {
	if bs == nil {
		return nil
	}
	return bs.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bs.bucket)
		return b.Put(key, value)
	})
}

func (bs *Store) Delete(key []byte) error {
	if bs == nil {
		return nil
	}
	return bs.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bs.bucket)
		return b.Delete(key)
	})
}

func (bs *Store) MultiGet(keys [][]byte) ([][]byte, error) {
	if bs == nil {
		return nil, nil
	}
	snap, err := bs.GetSnapshot()
	if err != nil {
		return nil, err
	}
	defer snap.Close()
	return snap.MultiGet(keys)
}

func (bs *Store) GetSnapshot() (kvstore.Snapshot, error) {
	tx, err := bs.db.Begin(false)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		tx:     tx,
		bucket: tx.Bucket(bs.bucket),
	}, nil
}

func (bs *Store) PrefixIterator(prefix []byte) kvstore.KVIterator {
	tx, err := bs.db.Begin(false)
	if err != nil {
		return nil
	}
	cursor := tx.Bucket(bs.bucket).Cursor()

	rv := &Iterator{
		tx:     tx,
		cursor: cursor,
		prefix: prefix,
	}

	rv.Seek(prefix)
	return rv
}

func (bs *Store) RangeIterator(start, end []byte) kvstore.KVIterator {
	tx, err := bs.db.Begin(false)
	if err != nil {
		return nil
	}
	cursor := tx.Bucket(bs.bucket).Cursor()

	rv := &Iterator{
		tx:     tx,
		cursor: cursor,
		start:  start,
		end:    end,
	}

	rv.Seek(start)
	return rv
}

func (bs *Store) NewKVBatch() kvstore.KVBatch {
	return kvstore.NewBatch()
}

func (bs *Store) ExecuteBatch(batch kvstore.KVBatch) error {
	if bs == nil {
		return nil
	}
	if batch == nil {
		return nil
	}
	return bs.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bs.bucket)
		b.FillPercent = bs.fillPercent
		for _, op := range batch.Operations() {
			if op.Value() != nil {
				if err := b.Put(op.Key(), op.Value()); err != nil {
					return err
				}
			} else {
				if err := b.Delete(op.Key()); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (bs *Store) Close() error {
	if bs == nil {
		return nil
	}
	return bs.db.Close()
}

func cloneBytes(b []byte) []byte {
	return append([]byte(nil), b...)
}
