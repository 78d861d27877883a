package graph

import (
	"github.com/google/uuid"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
)

// propertyManager owns both property regions. Records are stored with
// a leading marker byte (see encodePropertyValue) so empty values stay
// distinguishable from absent keys. When indexing is on it also stages
// the matching index mutations, reading the previous value first so a
// re-set replaces exactly one index entry.
type propertyManager struct {
	kv      kvstore.KVStore
	index   *propertyIndex
	indexed bool
}

// read fetches and unwraps one property record. A nil result with nil
// error means the property does not exist.
func (pm *propertyManager) read(key []byte) ([]byte, error) {
	stored, err := pm.kv.Get(key)
	if err != nil {
		return nil, storageErr(err)
	}
	if stored == nil {
		return nil, nil
	}
	val, err := decodePropertyValue(stored)
	if err != nil {
		return nil, storageErr(err)
	}
	return val, nil
}

func (pm *propertyManager) getVertex(id uuid.UUID, name string) ([]byte, error) {
	val, err := pm.read(encodeVertexPropertyKey(id, name))
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, ErrNotFound
	}
	return val, nil
}

func (pm *propertyManager) getAllVertex(id uuid.UUID) ([]Property, error) {
	return pm.scanProps(vertexPropertyPrefix(id), func(key []byte) (string, error) {
		_, name, err := decodeVertexPropertyKey(key)
		return name, err
	})
}

func (pm *propertyManager) setVertexBatch(batch kvstore.KVBatch, id uuid.UUID, name string, value []byte) error {
	if pm.indexed {
		old, err := pm.read(encodeVertexPropertyKey(id, name))
		if err != nil {
			return err
		}
		if old != nil {
			pm.index.removeVertexBatch(batch, name, old, id)
		}
		pm.index.insertVertexBatch(batch, name, value, id)
	}
	batch.Set(encodeVertexPropertyKey(id, name), encodePropertyValue(value))
	return nil
}

func (pm *propertyManager) deleteVertexBatch(batch kvstore.KVBatch, id uuid.UUID, name string) error {
	old, err := pm.read(encodeVertexPropertyKey(id, name))
	if err != nil {
		return err
	}
	if old == nil {
		return ErrNotFound
	}
	if pm.indexed {
		pm.index.removeVertexBatch(batch, name, old, id)
	}
	batch.Delete(encodeVertexPropertyKey(id, name))
	return nil
}

// deleteAllVertexBatch stages removal of every property of a vertex,
// index entries included. Used by the cascading vertex delete.
func (pm *propertyManager) deleteAllVertexBatch(batch kvstore.KVBatch, id uuid.UUID) error {
	props, err := pm.getAllVertex(id)
	if err != nil {
		return err
	}
	for _, p := range props {
		if pm.indexed {
			pm.index.removeVertexBatch(batch, p.Name, p.Value, id)
		}
		batch.Delete(encodeVertexPropertyKey(id, p.Name))
	}
	return nil
}

func (pm *propertyManager) getEdge(e Edge, name string) ([]byte, error) {
	val, err := pm.read(encodeEdgePropertyKey(e, name))
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, ErrNotFound
	}
	return val, nil
}

func (pm *propertyManager) getAllEdge(e Edge) ([]Property, error) {
	return pm.scanProps(edgePropertyPrefix(e), func(key []byte) (string, error) {
		_, name, err := decodeEdgePropertyKey(key)
		return name, err
	})
}

func (pm *propertyManager) setEdgeBatch(batch kvstore.KVBatch, e Edge, name string, value []byte) error {
	if pm.indexed {
		old, err := pm.read(encodeEdgePropertyKey(e, name))
		if err != nil {
			return err
		}
		if old != nil {
			pm.index.removeEdgeBatch(batch, name, old, e)
		}
		pm.index.insertEdgeBatch(batch, name, value, e)
	}
	batch.Set(encodeEdgePropertyKey(e, name), encodePropertyValue(value))
	return nil
}

func (pm *propertyManager) deleteEdgeBatch(batch kvstore.KVBatch, e Edge, name string) error {
	old, err := pm.read(encodeEdgePropertyKey(e, name))
	if err != nil {
		return err
	}
	if old == nil {
		return ErrNotFound
	}
	if pm.indexed {
		pm.index.removeEdgeBatch(batch, name, old, e)
	}
	batch.Delete(encodeEdgePropertyKey(e, name))
	return nil
}

// deleteAllEdgeBatch stages removal of every property of an edge. Used
// by edge delete and by the cascading vertex delete.
func (pm *propertyManager) deleteAllEdgeBatch(batch kvstore.KVBatch, e Edge) error {
	props, err := pm.getAllEdge(e)
	if err != nil {
		return err
	}
	for _, p := range props {
		if pm.indexed {
			pm.index.removeEdgeBatch(batch, p.Name, p.Value, e)
		}
		batch.Delete(encodeEdgePropertyKey(e, p.Name))
	}
	return nil
}

func (pm *propertyManager) scanProps(prefix []byte, nameOf func(key []byte) (string, error)) ([]Property, error) {
	it := pm.kv.PrefixIterator(prefix)
	defer it.Close()

	var out []Property
	for it.Valid() {
		key, stored, _ := it.Current()
		name, err := nameOf(key)
		if err != nil {
			return nil, storageErr(err)
		}
		val, err := decodePropertyValue(stored)
		if err != nil {
			return nil, storageErr(err)
		}
		out = append(out, Property{Name: name, Value: append(make([]byte, 0, len(val)), val...)})
		it.Next()
	}
	return out, nil
}
