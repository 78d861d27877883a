package graph

import (
	"bytes"

	"github.com/google/uuid"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
)

// propertyIndex maintains the equality index regions. Entries are
// written and removed inside the same batch as the property record
// they mirror; the index never has a life of its own.
type propertyIndex struct {
	kv kvstore.KVStore
}

func (pi *propertyIndex) insertVertexBatch(batch kvstore.KVBatch, name string, value []byte, id uuid.UUID) {
	batch.Set(encodeVertexIndexKey(name, value, id), presentValue)
	indexEntriesTotal.WithLabelValues("insert").Inc()
}

func (pi *propertyIndex) removeVertexBatch(batch kvstore.KVBatch, name string, value []byte, id uuid.UUID) {
	batch.Delete(encodeVertexIndexKey(name, value, id))
	indexEntriesTotal.WithLabelValues("remove").Inc()
}

func (pi *propertyIndex) insertEdgeBatch(batch kvstore.KVBatch, name string, value []byte, e Edge) {
	batch.Set(encodeEdgeIndexKey(name, value, e), presentValue)
	indexEntriesTotal.WithLabelValues("insert").Inc()
}

func (pi *propertyIndex) removeEdgeBatch(batch kvstore.KVBatch, name string, value []byte, e Edge) {
	batch.Delete(encodeEdgeIndexKey(name, value, e))
	indexEntriesTotal.WithLabelValues("remove").Inc()
}

// findVertices returns the ids of all vertices whose named property
// equals value, in id order.
func (pi *propertyIndex) findVertices(name string, value []byte) ([]uuid.UUID, error) {
	it := pi.kv.PrefixIterator(indexValuePrefix(KEY_TYPE_X, name, value))
	defer it.Close()

	var out []uuid.UUID
	for it.Valid() {
		_, _, id, err := decodeVertexIndexKey(it.Key())
		if err != nil {
			return nil, storageErr(err)
		}
		out = append(out, id)
		it.Next()
	}
	return out, nil
}

// findEdges returns all edges whose named property equals value.
func (pi *propertyIndex) findEdges(name string, value []byte) ([]Edge, error) {
	it := pi.kv.PrefixIterator(indexValuePrefix(KEY_TYPE_Y, name, value))
	defer it.Close()

	var out []Edge
	for it.Valid() {
		_, _, e, err := decodeEdgeIndexKey(it.Key())
		if err != nil {
			return nil, storageErr(err)
		}
		out = append(out, e)
		it.Next()
	}
	return out, nil
}

// check walks both index regions against the property regions and vice
// versa, over a single snapshot so a concurrent writer cannot produce
// false positives. The first disagreement is reported; nothing is
// repaired.
func (pi *propertyIndex) check() error {
	snap, err := pi.kv.GetSnapshot()
	if err != nil {
		return storageErr(err)
	}
	defer snap.Close()

	if err := pi.checkVertexEntries(snap); err != nil {
		return err
	}
	if err := pi.checkEdgeEntries(snap); err != nil {
		return err
	}
	if err := pi.checkVertexProperties(snap); err != nil {
		return err
	}
	return pi.checkEdgeProperties(snap)
}

func (pi *propertyIndex) checkVertexEntries(snap kvstore.Snapshot) error {
	it := snap.PrefixIterator(regionPrefix(KEY_TYPE_X))
	defer it.Close()

	for it.Valid() {
		name, value, id, err := decodeVertexIndexKey(it.Key())
		if err != nil {
			return storageErr(err)
		}
		stored, err := snap.Get(encodeVertexPropertyKey(id, name))
		if err != nil {
			return storageErr(err)
		}
		if stored == nil {
			return indexErr("vertex index entry %q for %s has no property record", name, id)
		}
		recorded, err := decodePropertyValue(stored)
		if err != nil {
			return storageErr(err)
		}
		if !bytes.Equal(recorded, value) {
			return indexErr("vertex index entry %q for %s disagrees with stored value", name, id)
		}
		it.Next()
	}
	return nil
}

func (pi *propertyIndex) checkEdgeEntries(snap kvstore.Snapshot) error {
	it := snap.PrefixIterator(regionPrefix(KEY_TYPE_Y))
	defer it.Close()

	for it.Valid() {
		name, value, e, err := decodeEdgeIndexKey(it.Key())
		if err != nil {
			return storageErr(err)
		}
		stored, err := snap.Get(encodeEdgePropertyKey(e, name))
		if err != nil {
			return storageErr(err)
		}
		if stored == nil {
			return indexErr("edge index entry %q for %s-[%s]->%s has no property record",
				name, e.OutboundID, e.Type, e.InboundID)
		}
		recorded, err := decodePropertyValue(stored)
		if err != nil {
			return storageErr(err)
		}
		if !bytes.Equal(recorded, value) {
			return indexErr("edge index entry %q for %s-[%s]->%s disagrees with stored value",
				name, e.OutboundID, e.Type, e.InboundID)
		}
		it.Next()
	}
	return nil
}

func (pi *propertyIndex) checkVertexProperties(snap kvstore.Snapshot) error {
	it := snap.PrefixIterator(regionPrefix(KEY_TYPE_P))
	defer it.Close()

	for it.Valid() {
		key, stored, _ := it.Current()
		id, name, err := decodeVertexPropertyKey(key)
		if err != nil {
			return storageErr(err)
		}
		value, err := decodePropertyValue(stored)
		if err != nil {
			return storageErr(err)
		}
		entry, err := snap.Get(encodeVertexIndexKey(name, value, id))
		if err != nil {
			return storageErr(err)
		}
		if entry == nil {
			return indexErr("vertex property %q of %s has no index entry", name, id)
		}
		it.Next()
	}
	return nil
}

func (pi *propertyIndex) checkEdgeProperties(snap kvstore.Snapshot) error {
	it := snap.PrefixIterator(regionPrefix(KEY_TYPE_E))
	defer it.Close()

	for it.Valid() {
		key, stored, _ := it.Current()
		e, name, err := decodeEdgePropertyKey(key)
		if err != nil {
			return storageErr(err)
		}
		value, err := decodePropertyValue(stored)
		if err != nil {
			return storageErr(err)
		}
		entry, err := snap.Get(encodeEdgeIndexKey(name, value, e))
		if err != nil {
			return storageErr(err)
		}
		if entry == nil {
			return indexErr("edge property %q of %s-[%s]->%s has no index entry",
				name, e.OutboundID, e.Type, e.InboundID)
		}
		it.Next()
	}
	return nil
}
