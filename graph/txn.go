package graph

import (
	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
	"github.com/tiglabs/baudgraph/util/log"
)

// txnManager is the single choke point for mutations. Every logical
// operation assembles exactly one batch and commits it here, so primary
// records and their index entries land or fail together. Constituent
// writes are never issued as independent transactions.
type txnManager struct {
	kv kvstore.KVStore
}

func (tm *txnManager) newBatch() kvstore.KVBatch {
	return tm.kv.NewKVBatch()
}

func (tm *txnManager) commit(op string, batch kvstore.KVBatch) error {
	defer batch.Close()
	if err := tm.kv.ExecuteBatch(batch); err != nil {
		log.Error("commit %s batch failed: %v", op, err)
		return storageErr(err)
	}
	mutationsTotal.WithLabelValues(op).Inc()
	return nil
}
