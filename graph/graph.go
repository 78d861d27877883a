package graph

import (
	"sync"

	"github.com/google/uuid"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore/badgerdb"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore/boltdb"
	"github.com/tiglabs/baudgraph/util/log"
)

// Options control store-wide behavior fixed at creation time.
type Options struct {
	// IndexProperties maintains the equality index alongside every
	// property write. The flag is stamped into store metadata on first
	// open and must match on every later open.
	IndexProperties bool
}

// Store is a property graph over an ordered key-value engine. Mutations
// are serialized and each commits exactly one atomic batch; reads run
// lock free against the engine.
type Store struct {
	kv   kvstore.KVStore
	opts Options

	mu sync.Mutex

	meta     *metaManager
	txns     *txnManager
	vertices *vertexManager
	edges    *edgeManager
	props    *propertyManager
	index    *propertyIndex
	queries  *queryExecutor
}

// Open builds a Store from a Config, choosing the engine it names.
func Open(cfg *Config) (*Store, error) {
	if err := log.SetLevel(cfg.LogCfg.Level); err != nil {
		return nil, invalidErr("%v", err)
	}

	var kv kvstore.KVStore
	var err error
	switch cfg.StoreCfg.Engine {
	case CONFIG_ENGINE_BOLT:
		kv, err = boltdb.New(&boltdb.StoreConfig{
			Path:   cfg.StoreCfg.DataPath,
			NoSync: !cfg.StoreCfg.Sync,
		})
	default:
		kv, err = badgerdb.New(&badgerdb.StoreConfig{
			Path: cfg.StoreCfg.DataPath,
			Sync: cfg.StoreCfg.Sync,
		})
	}
	if err != nil {
		return nil, storageErr(err)
	}

	s, err := NewStore(kv, Options{IndexProperties: cfg.StoreCfg.IndexProperties})
	if err != nil {
		kv.Close()
		return nil, err
	}
	log.Info("opened %s graph store at %s", cfg.StoreCfg.Engine, cfg.StoreCfg.DataPath)
	return s, nil
}

// NewStore wraps an already opened engine. Ownership of kv passes to
// the Store; Close closes it.
func NewStore(kv kvstore.KVStore, opts Options) (*Store, error) {
	txns := &txnManager{kv: kv}
	s := &Store{
		kv:       kv,
		opts:     opts,
		meta:     &metaManager{kv: kv, txns: txns},
		txns:     txns,
		vertices: &vertexManager{kv: kv},
		edges:    &edgeManager{kv: kv},
		index:    &propertyIndex{kv: kv},
	}
	s.props = &propertyManager{kv: kv, index: s.index, indexed: opts.IndexProperties}
	s.queries = &queryExecutor{
		vertices: s.vertices,
		edges:    s.edges,
		props:    s.props,
		index:    s.index,
		indexed:  opts.IndexProperties,
	}
	if err := s.meta.check(opts); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.kv.Close()
}

// CreateVertex creates a vertex of the given type under a fresh random
// id and returns it.
func (s *Store) CreateVertex(vertexType string) (Vertex, error) {
	if err := validateIdentifier("vertex type", vertexType); err != nil {
		return Vertex{}, err
	}
	v := Vertex{ID: uuid.New(), Type: vertexType}

	s.mu.Lock()
	defer s.mu.Unlock()
	batch := s.txns.newBatch()
	s.vertices.createBatch(batch, v)
	if err := s.txns.commit("create_vertex", batch); err != nil {
		return Vertex{}, err
	}
	return v, nil
}

// InsertVertex creates a vertex under a caller-chosen id. The id must
// be unused.
func (s *Store) InsertVertex(v Vertex) error {
	if err := validateVertexID(v.ID); err != nil {
		return err
	}
	if err := validateIdentifier("vertex type", v.Type); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	exists, err := s.vertices.exists(v.ID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyExists
	}
	batch := s.txns.newBatch()
	s.vertices.createBatch(batch, v)
	return s.txns.commit("create_vertex", batch)
}

// Vertex returns the vertex stored under id.
func (s *Store) Vertex(id uuid.UUID) (Vertex, error) {
	if err := validateVertexID(id); err != nil {
		return Vertex{}, err
	}
	return s.vertices.get(id)
}

// DeleteVertex removes a vertex together with its properties, every
// edge touching it in either direction, those edges' properties, and
// all the matching index entries, in one atomic batch.
func (s *Store) DeleteVertex(id uuid.UUID) error {
	if err := validateVertexID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	exists, err := s.vertices.exists(id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	batch := s.txns.newBatch()
	if err := s.props.deleteAllVertexBatch(batch, id); err != nil {
		return err
	}
	edges, err := s.edges.edgesOf(id)
	if err != nil {
		return err
	}
	for _, e := range edges {
		if err := s.props.deleteAllEdgeBatch(batch, e); err != nil {
			return err
		}
		s.edges.deleteBatch(batch, e)
	}
	s.vertices.deleteBatch(batch, id)
	return s.txns.commit("delete_vertex", batch)
}

// Vertices lists vertices in id order, starting strictly after the
// given id when it is not uuid.Nil. A limit of 0 means all.
func (s *Store) Vertices(after uuid.UUID, limit int) ([]Vertex, error) {
	if limit < 0 {
		return nil, invalidErr("negative limit")
	}
	return s.vertices.scan(after, limit)
}

func (s *Store) CountVertices() (uint64, error) {
	return s.vertices.count()
}

// CreateEdge creates the edge, or silently leaves it in place when the
// identical edge already exists. Both endpoints must exist.
func (s *Store) CreateEdge(e Edge) error {
	if err := validateEdge(e); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range []uuid.UUID{e.OutboundID, e.InboundID} {
		exists, err := s.vertices.exists(id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
	}
	batch := s.txns.newBatch()
	s.edges.setBatch(batch, e)
	return s.txns.commit("create_edge", batch)
}

func (s *Store) EdgeExists(e Edge) (bool, error) {
	if err := validateEdge(e); err != nil {
		return false, err
	}
	return s.edges.exists(e)
}

// DeleteEdge removes the edge, its properties and their index entries
// in one atomic batch. The endpoints are left alone.
func (s *Store) DeleteEdge(e Edge) error {
	if err := validateEdge(e); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	exists, err := s.edges.exists(e)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	batch := s.txns.newBatch()
	if err := s.props.deleteAllEdgeBatch(batch, e); err != nil {
		return err
	}
	s.edges.deleteBatch(batch, e)
	return s.txns.commit("delete_edge", batch)
}

// EdgeRangeRequest selects one vertex's adjacency in one direction.
// Type narrows the scan to a single edge type when set. After resumes
// a previous listing strictly after that edge. A Limit of 0 means all.
type EdgeRangeRequest struct {
	VertexID  uuid.UUID
	Direction Direction
	Type      string
	After     *Edge
	Limit     int
}

// Edges lists edges touching a vertex per the request, in storage
// order.
func (s *Store) Edges(req EdgeRangeRequest) ([]Edge, error) {
	if err := validateVertexID(req.VertexID); err != nil {
		return nil, err
	}
	if req.Type != "" {
		if err := validateIdentifier("edge type", req.Type); err != nil {
			return nil, err
		}
	}
	if req.After != nil {
		if err := validateEdge(*req.After); err != nil {
			return nil, err
		}
	}
	if req.Limit < 0 {
		return nil, invalidErr("negative limit")
	}
	return s.edges.scan(req.VertexID, req.Direction, req.Type, req.After, req.Limit)
}

func (s *Store) CountEdges() (uint64, error) {
	return s.edges.count()
}

// SetVertexProperty writes a property of an existing vertex, replacing
// any previous value. The index entry swap rides in the same batch.
func (s *Store) SetVertexProperty(id uuid.UUID, name string, value []byte) error {
	if err := validateVertexID(id); err != nil {
		return err
	}
	if err := validateIdentifier("property name", name); err != nil {
		return err
	}
	if err := validateValue(value, s.opts.IndexProperties); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	exists, err := s.vertices.exists(id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	batch := s.txns.newBatch()
	if err := s.props.setVertexBatch(batch, id, name, value); err != nil {
		return err
	}
	return s.txns.commit("set_vertex_property", batch)
}

func (s *Store) VertexProperty(id uuid.UUID, name string) ([]byte, error) {
	if err := validateVertexID(id); err != nil {
		return nil, err
	}
	if err := validateIdentifier("property name", name); err != nil {
		return nil, err
	}
	return s.props.getVertex(id, name)
}

// VertexProperties returns every property of an existing vertex in
// name order.
func (s *Store) VertexProperties(id uuid.UUID) ([]Property, error) {
	if err := validateVertexID(id); err != nil {
		return nil, err
	}
	exists, err := s.vertices.exists(id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}
	return s.props.getAllVertex(id)
}

func (s *Store) DeleteVertexProperty(id uuid.UUID, name string) error {
	if err := validateVertexID(id); err != nil {
		return err
	}
	if err := validateIdentifier("property name", name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	batch := s.txns.newBatch()
	if err := s.props.deleteVertexBatch(batch, id, name); err != nil {
		return err
	}
	return s.txns.commit("delete_vertex_property", batch)
}

// SetEdgeProperty writes a property of an existing edge, replacing any
// previous value.
func (s *Store) SetEdgeProperty(e Edge, name string, value []byte) error {
	if err := validateEdge(e); err != nil {
		return err
	}
	if err := validateIdentifier("property name", name); err != nil {
		return err
	}
	if err := validateValue(value, s.opts.IndexProperties); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	exists, err := s.edges.exists(e)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	batch := s.txns.newBatch()
	if err := s.props.setEdgeBatch(batch, e, name, value); err != nil {
		return err
	}
	return s.txns.commit("set_edge_property", batch)
}

func (s *Store) EdgeProperty(e Edge, name string) ([]byte, error) {
	if err := validateEdge(e); err != nil {
		return nil, err
	}
	if err := validateIdentifier("property name", name); err != nil {
		return nil, err
	}
	return s.props.getEdge(e, name)
}

func (s *Store) EdgeProperties(e Edge) ([]Property, error) {
	if err := validateEdge(e); err != nil {
		return nil, err
	}
	exists, err := s.edges.exists(e)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}
	return s.props.getAllEdge(e)
}

func (s *Store) DeleteEdgeProperty(e Edge, name string) error {
	if err := validateEdge(e); err != nil {
		return err
	}
	if err := validateIdentifier("property name", name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	batch := s.txns.newBatch()
	if err := s.props.deleteEdgeBatch(batch, e, name); err != nil {
		return err
	}
	return s.txns.commit("delete_edge_property", batch)
}

// FindVerticesByValue returns every vertex whose named property equals
// value, via the equality index. The store must have been opened with
// IndexProperties.
func (s *Store) FindVerticesByValue(name string, value []byte) ([]Vertex, error) {
	if !s.opts.IndexProperties {
		return nil, invalidErr("store opened without index-properties")
	}
	if err := validateIdentifier("property name", name); err != nil {
		return nil, err
	}
	ids, err := s.index.findVertices(name, value)
	if err != nil {
		return nil, err
	}
	return s.queries.hydrate(ids)
}

// FindEdgesByValue returns every edge whose named property equals
// value, via the equality index.
func (s *Store) FindEdgesByValue(name string, value []byte) ([]Edge, error) {
	if !s.opts.IndexProperties {
		return nil, invalidErr("store opened without index-properties")
	}
	if err := validateIdentifier("property name", name); err != nil {
		return nil, err
	}
	return s.index.findEdges(name, value)
}

// CheckIndex verifies every index entry against its property record
// and every property record against its index entry. It returns nil
// on a consistent store, and a wrapped ErrIndexInconsistency naming
// the first disagreement otherwise.
func (s *Store) CheckIndex() error {
	if !s.opts.IndexProperties {
		return invalidErr("store opened without index-properties")
	}
	return s.index.check()
}

// Execute runs a pipe query and returns the surviving vertices.
func (s *Store) Execute(q Query) ([]Vertex, error) {
	return s.queries.execute(q)
}
