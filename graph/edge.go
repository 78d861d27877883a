package graph

import (
	"github.com/google/uuid"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
)

// edgeManager owns both adjacency regions. The forward entry is the
// edge record; the reverse entry is a mirror maintained in the same
// batch, so the two regions can never disagree after a commit.
type edgeManager struct {
	kv kvstore.KVStore
}

func (em *edgeManager) exists(e Edge) (bool, error) {
	val, err := em.kv.Get(encodeEdgeKey(KEY_TYPE_F, e))
	if err != nil {
		return false, storageErr(err)
	}
	return val != nil, nil
}

func (em *edgeManager) setBatch(batch kvstore.KVBatch, e Edge) {
	batch.Set(encodeEdgeKey(KEY_TYPE_F, e), presentValue)
	batch.Set(encodeEdgeKey(KEY_TYPE_R, e), presentValue)
}

func (em *edgeManager) deleteBatch(batch kvstore.KVBatch, e Edge) {
	batch.Delete(encodeEdgeKey(KEY_TYPE_F, e))
	batch.Delete(encodeEdgeKey(KEY_TYPE_R, e))
}

func regionFor(dir Direction) KEY_TYPE {
	if dir == Inbound {
		return KEY_TYPE_R
	}
	return KEY_TYPE_F
}

// scan walks one vertex's adjacency in one direction, optionally pinned
// to a single edge type, in storage order. Results start strictly after
// the given edge when it is non-nil. A limit of 0 means unbounded.
func (em *edgeManager) scan(id uuid.UUID, dir Direction, typeFilter string, after *Edge, limit int) ([]Edge, error) {
	kt := regionFor(dir)
	prefix := adjacencyPrefix(kt, id)
	if typeFilter != "" {
		prefix = adjacencyTypePrefix(kt, id, typeFilter)
	}

	it := em.kv.PrefixIterator(prefix)
	defer it.Close()
	if after != nil {
		it.Seek(append(encodeEdgeKey(kt, *after), 0))
	}

	var out []Edge
	for it.Valid() {
		e, err := decodeEdgeKey(kt, it.Key())
		if err != nil {
			return nil, storageErr(err)
		}
		out = append(out, e)
		if limit > 0 && len(out) >= limit {
			break
		}
		it.Next()
	}
	return out, nil
}

// edgesOf returns every edge touching a vertex in both directions.
// A self loop appears once.
func (em *edgeManager) edgesOf(id uuid.UUID) ([]Edge, error) {
	out, err := em.scan(id, Outbound, "", nil, 0)
	if err != nil {
		return nil, err
	}
	in, err := em.scan(id, Inbound, "", nil, 0)
	if err != nil {
		return nil, err
	}
	for _, e := range in {
		if e.OutboundID == e.InboundID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (em *edgeManager) count() (uint64, error) {
	it := em.kv.PrefixIterator(regionPrefix(KEY_TYPE_F))
	defer it.Close()

	var n uint64
	for it.Valid() {
		n++
		it.Next()
	}
	return n, nil
}
