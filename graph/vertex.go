package graph

import (
	"github.com/google/uuid"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
)

// vertexManager owns the vertex record region. It only assembles and
// reads keys; committing is the transaction manager's job.
type vertexManager struct {
	kv kvstore.KVStore
}

func (vm *vertexManager) exists(id uuid.UUID) (bool, error) {
	val, err := vm.kv.Get(encodeVertexKey(id))
	if err != nil {
		return false, storageErr(err)
	}
	return val != nil, nil
}

func (vm *vertexManager) get(id uuid.UUID) (Vertex, error) {
	val, err := vm.kv.Get(encodeVertexKey(id))
	if err != nil {
		return Vertex{}, storageErr(err)
	}
	if val == nil {
		return Vertex{}, ErrNotFound
	}
	return Vertex{ID: id, Type: string(val)}, nil
}

// multiGet resolves a set of ids in one engine round trip. Missing ids
// yield no entry in the result.
func (vm *vertexManager) multiGet(ids []uuid.UUID) (map[uuid.UUID]Vertex, error) {
	keys := make([][]byte, len(ids))
	for i, id := range ids {
		keys[i] = encodeVertexKey(id)
	}
	vals, err := vm.kv.MultiGet(keys)
	if err != nil {
		return nil, storageErr(err)
	}
	out := make(map[uuid.UUID]Vertex, len(ids))
	for i, val := range vals {
		if val != nil {
			out[ids[i]] = Vertex{ID: ids[i], Type: string(val)}
		}
	}
	return out, nil
}

func (vm *vertexManager) createBatch(batch kvstore.KVBatch, v Vertex) {
	batch.Set(encodeVertexKey(v.ID), []byte(v.Type))
}

func (vm *vertexManager) deleteBatch(batch kvstore.KVBatch, id uuid.UUID) {
	batch.Delete(encodeVertexKey(id))
}

// scan lists vertices in id order, starting strictly after the given id
// when it is non-nil. A limit of 0 means unbounded.
func (vm *vertexManager) scan(after uuid.UUID, limit int) ([]Vertex, error) {
	start := regionPrefix(KEY_TYPE_V)
	if after != uuid.Nil {
		start = append(encodeVertexKey(after), 0)
	}
	it := vm.kv.RangeIterator(start, prefixUpperBound(regionPrefix(KEY_TYPE_V)))
	defer it.Close()

	var out []Vertex
	for it.Valid() {
		key, val, _ := it.Current()
		id, err := decodeVertexKey(key)
		if err != nil {
			return nil, storageErr(err)
		}
		out = append(out, Vertex{ID: id, Type: string(val)})
		if limit > 0 && len(out) >= limit {
			break
		}
		it.Next()
	}
	return out, nil
}

func (vm *vertexManager) count() (uint64, error) {
	it := vm.kv.PrefixIterator(regionPrefix(KEY_TYPE_V))
	defer it.Close()

	var n uint64
	for it.Valid() {
		n++
		it.Next()
	}
	return n, nil
}
