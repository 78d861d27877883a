package graph

import (
	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
	"github.com/tiglabs/baudgraph/util/encoding"
)

// formatVersion stamps the key layout in encoding.go. A store written
// with a different version must be migrated by export/import, never
// opened in place.
const formatVersion = 1

const (
	metaFormatVersion   = "format-version"
	metaIndexProperties = "index-properties"
)

type metaManager struct {
	kv   kvstore.KVStore
	txns *txnManager
}

// check validates a freshly opened store against the requested options,
// stamping an empty store on first open. Opening an existing store with
// a flipped index-properties flag is refused: the index region would
// silently disagree with the property region.
func (mm *metaManager) check(opts Options) error {
	verRaw, err := mm.kv.Get(encodeMetaKey(metaFormatVersion))
	if err != nil {
		return storageErr(err)
	}
	if verRaw == nil {
		batch := mm.txns.newBatch()
		batch.Set(encodeMetaKey(metaFormatVersion), encoding.EncodeUvarintAscending(nil, formatVersion))
		batch.Set(encodeMetaKey(metaIndexProperties), encodeBool(opts.IndexProperties))
		return mm.txns.commit("init_meta", batch)
	}

	_, ver, err := encoding.DecodeUvarintAscending(verRaw)
	if err != nil {
		return invalidErr("corrupt format-version metadata")
	}
	if ver != formatVersion {
		return invalidErr("store format version %d, want %d (migrate via export/import)", ver, formatVersion)
	}

	idxRaw, err := mm.kv.Get(encodeMetaKey(metaIndexProperties))
	if err != nil {
		return storageErr(err)
	}
	if len(idxRaw) != 1 {
		return invalidErr("corrupt index-properties metadata")
	}
	if decodeBool(idxRaw) != opts.IndexProperties {
		return invalidErr("index-properties=%v does not match store metadata", opts.IndexProperties)
	}
	return nil
}

func encodeBool(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

func decodeBool(b []byte) bool {
	return len(b) == 1 && b[0] == 1
}
