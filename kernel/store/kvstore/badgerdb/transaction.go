package badgerdb

import (
	"github.com/dgraph-io/badger/v4"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
)

var _ kvstore.Transaction = &Transaction{}

type Transaction struct {
	tx       *badger.Txn
	writable bool
}

func (bs *Store) NewTransaction(writable bool) (kvstore.Transaction, error) {
	return &Transaction{
		tx:       bs.db.NewTransaction(writable),
		writable: writable,
	}, nil
}

func (tx *Transaction) Put(key, value []byte) error {
	return tx.tx.Set(key, value)
}

func (tx *Transaction) Get(key []byte) ([]byte, error) {
	item, err := tx.tx.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

func (tx *Transaction) Delete(key []byte) error {
	return tx.tx.Delete(key)
}

func (tx *Transaction) PrefixIterator(prefix []byte) kvstore.KVIterator {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchSize = 10
	it := tx.tx.NewIterator(opts)
	rv := &Iterator{
		// we must not set tx here
		iter:   it,
		prefix: prefix,
	}

	rv.Seek(prefix)
	return rv
}

func (tx *Transaction) RangeIterator(start, end []byte) kvstore.KVIterator {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchSize = 10
	it := tx.tx.NewIterator(opts)
	rv := &Iterator{
		// we must not set tx here
		iter:  it,
		start: start,
		end:   end,
	}

	rv.Seek(start)
	return rv
}

func (tx *Transaction) Commit() error {
	if tx == nil {
		return nil
	}
	if tx.writable {
		return tx.tx.Commit()
	}
	return tx.Rollback()
}

func (tx *Transaction) Rollback() error {
	if tx == nil {
		return nil
	}
	if tx.tx != nil {
		tx.tx.Discard()
	}
	return nil
}
