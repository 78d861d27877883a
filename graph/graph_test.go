package graph

import (
	"fmt"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiglabs/baudgraph/kernel/store/kvstore/badgerdb"
)

func openTestStore(t *testing.T, opts Options) *Store {
	t.Helper()
	kv, err := badgerdb.New(&badgerdb.StoreConfig{Path: t.TempDir()})
	require.NoError(t, err)
	s, err := NewStore(kv, opts)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestVertexRoundTrip(t *testing.T) {
	s := openTestStore(t, Options{IndexProperties: true})

	v, err := s.CreateVertex("person")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, v.ID)
	assert.Equal(t, "person", v.Type)

	got, err := s.Vertex(v.ID)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	require.NoError(t, s.DeleteVertex(v.ID))
	_, err = s.Vertex(v.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVertexValidation(t *testing.T) {
	s := openTestStore(t, Options{IndexProperties: true})

	_, err := s.CreateVertex("")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	long := make([]byte, maxIdentifierLen+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err = s.CreateVertex(string(long))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.Vertex(uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	err = s.InsertVertex(Vertex{ID: uuid.Nil, Type: "person"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestInsertVertexDuplicate(t *testing.T) {
	s := openTestStore(t, Options{IndexProperties: true})

	v := Vertex{ID: uuid.New(), Type: "person"}
	require.NoError(t, s.InsertVertex(v))
	assert.ErrorIs(t, s.InsertVertex(v), ErrAlreadyExists)

	got, err := s.Vertex(v.ID)
	require.NoError(t, err)
	assert.Equal(t, "person", got.Type)
}

func TestDeleteMissing(t *testing.T) {
	s := openTestStore(t, Options{IndexProperties: true})

	assert.ErrorIs(t, s.DeleteVertex(uuid.New()), ErrNotFound)
	assert.ErrorIs(t, s.DeleteEdge(Edge{OutboundID: uuid.New(), Type: "knows", InboundID: uuid.New()}), ErrNotFound)

	v, err := s.CreateVertex("person")
	require.NoError(t, err)
	assert.ErrorIs(t, s.DeleteVertexProperty(v.ID, "name"), ErrNotFound)
}

func TestVerticesListing(t *testing.T) {
	s := openTestStore(t, Options{IndexProperties: true})

	for i := 0; i < 10; i++ {
		_, err := s.CreateVertex("person")
		require.NoError(t, err)
	}

	n, err := s.CountVertices()
	require.NoError(t, err)
	assert.Equal(t, uint64(10), n)

	all, err := s.Vertices(uuid.Nil, 0)
	require.NoError(t, err)
	require.Len(t, all, 10)
	assert.True(t, sort.SliceIsSorted(all, func(i, j int) bool {
		return all[i].ID.String() < all[j].ID.String()
	}))

	// Page through in threes and verify the pages stitch back together.
	var paged []Vertex
	after := uuid.Nil
	for {
		page, err := s.Vertices(after, 3)
		require.NoError(t, err)
		if len(page) == 0 {
			break
		}
		paged = append(paged, page...)
		after = page[len(page)-1].ID
	}
	assert.Equal(t, all, paged)
}

func TestEdgeRoundTrip(t *testing.T) {
	s := openTestStore(t, Options{IndexProperties: true})

	u, err := s.CreateVertex("person")
	require.NoError(t, err)
	v, err := s.CreateVertex("person")
	require.NoError(t, err)

	e := Edge{OutboundID: u.ID, Type: "knows", InboundID: v.ID}
	require.NoError(t, s.CreateEdge(e))

	exists, err := s.EdgeExists(e)
	require.NoError(t, err)
	assert.True(t, exists)

	// Identity is the whole triple: the reversed edge is distinct.
	exists, err = s.EdgeExists(e.Reversed())
	require.NoError(t, err)
	assert.False(t, exists)

	// Creating the identical edge again is a silent no-op.
	require.NoError(t, s.CreateEdge(e))
	n, err := s.CountEdges()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)

	require.NoError(t, s.DeleteEdge(e))
	exists, err = s.EdgeExists(e)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreateEdgeMissingEndpoint(t *testing.T) {
	s := openTestStore(t, Options{IndexProperties: true})

	u, err := s.CreateVertex("person")
	require.NoError(t, err)

	err = s.CreateEdge(Edge{OutboundID: u.ID, Type: "knows", InboundID: uuid.New()})
	assert.ErrorIs(t, err, ErrNotFound)
	err = s.CreateEdge(Edge{OutboundID: uuid.New(), Type: "knows", InboundID: u.ID})
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := s.CountEdges()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), n)
}

func TestAdjacencySymmetry(t *testing.T) {
	s := openTestStore(t, Options{IndexProperties: true})

	u, err := s.CreateVertex("person")
	require.NoError(t, err)
	v, err := s.CreateVertex("person")
	require.NoError(t, err)

	e := Edge{OutboundID: u.ID, Type: "knows", InboundID: v.ID}
	require.NoError(t, s.CreateEdge(e))

	out, err := s.Edges(EdgeRangeRequest{VertexID: u.ID, Direction: Outbound})
	require.NoError(t, err)
	assert.Equal(t, []Edge{e}, out)

	in, err := s.Edges(EdgeRangeRequest{VertexID: v.ID, Direction: Inbound})
	require.NoError(t, err)
	assert.Equal(t, []Edge{e}, in)

	// Both regions drop the edge together.
	require.NoError(t, s.DeleteEdge(e))
	out, err = s.Edges(EdgeRangeRequest{VertexID: u.ID, Direction: Outbound})
	require.NoError(t, err)
	assert.Empty(t, out)
	in, err = s.Edges(EdgeRangeRequest{VertexID: v.ID, Direction: Inbound})
	require.NoError(t, err)
	assert.Empty(t, in)
}

func TestEdgeRangeTypeFilterAndPaging(t *testing.T) {
	s := openTestStore(t, Options{IndexProperties: true})

	u, err := s.CreateVertex("person")
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		v, err := s.CreateVertex("person")
		require.NoError(t, err)
		typ := "knows"
		if i%2 == 1 {
			typ = "follows"
		}
		require.NoError(t, s.CreateEdge(Edge{OutboundID: u.ID, Type: typ, InboundID: v.ID}))
	}

	knows, err := s.Edges(EdgeRangeRequest{VertexID: u.ID, Direction: Outbound, Type: "knows"})
	require.NoError(t, err)
	require.Len(t, knows, 3)
	for _, e := range knows {
		assert.Equal(t, "knows", e.Type)
	}

	all, err := s.Edges(EdgeRangeRequest{VertexID: u.ID, Direction: Outbound})
	require.NoError(t, err)
	require.Len(t, all, 6)

	var paged []Edge
	var after *Edge
	for {
		page, err := s.Edges(EdgeRangeRequest{VertexID: u.ID, Direction: Outbound, After: after, Limit: 2})
		require.NoError(t, err)
		if len(page) == 0 {
			break
		}
		paged = append(paged, page...)
		last := page[len(page)-1]
		after = &last
	}
	assert.Equal(t, all, paged)
}

func TestVertexPropertyRoundTrip(t *testing.T) {
	s := openTestStore(t, Options{IndexProperties: true})

	v, err := s.CreateVertex("person")
	require.NoError(t, err)

	require.NoError(t, s.SetVertexProperty(v.ID, "name", []byte("alice")))
	got, err := s.VertexProperty(v.ID, "name")
	require.NoError(t, err)
	assert.Equal(t, []byte("alice"), got)

	// Replace in place.
	require.NoError(t, s.SetVertexProperty(v.ID, "name", []byte("bob")))
	got, err = s.VertexProperty(v.ID, "name")
	require.NoError(t, err)
	assert.Equal(t, []byte("bob"), got)

	require.NoError(t, s.SetVertexProperty(v.ID, "age", []byte("30")))
	props, err := s.VertexProperties(v.ID)
	require.NoError(t, err)
	assert.Equal(t, []Property{
		{Name: "age", Value: []byte("30")},
		{Name: "name", Value: []byte("bob")},
	}, props)

	require.NoError(t, s.DeleteVertexProperty(v.ID, "age"))
	_, err = s.VertexProperty(v.ID, "age")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPropertyRequiresOwner(t *testing.T) {
	s := openTestStore(t, Options{IndexProperties: true})

	err := s.SetVertexProperty(uuid.New(), "name", []byte("ghost"))
	assert.ErrorIs(t, err, ErrNotFound)

	u, err := s.CreateVertex("person")
	require.NoError(t, err)
	e := Edge{OutboundID: u.ID, Type: "knows", InboundID: uuid.New()}
	err = s.SetEdgeProperty(e, "since", []byte("2020"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.VertexProperties(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEdgePropertyRoundTrip(t *testing.T) {
	s := openTestStore(t, Options{IndexProperties: true})

	u, err := s.CreateVertex("person")
	require.NoError(t, err)
	v, err := s.CreateVertex("person")
	require.NoError(t, err)
	e := Edge{OutboundID: u.ID, Type: "knows", InboundID: v.ID}
	require.NoError(t, s.CreateEdge(e))

	require.NoError(t, s.SetEdgeProperty(e, "since", []byte("2020")))
	got, err := s.EdgeProperty(e, "since")
	require.NoError(t, err)
	assert.Equal(t, []byte("2020"), got)

	props, err := s.EdgeProperties(e)
	require.NoError(t, err)
	assert.Equal(t, []Property{{Name: "since", Value: []byte("2020")}}, props)

	require.NoError(t, s.DeleteEdgeProperty(e, "since"))
	_, err = s.EdgeProperty(e, "since")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteVertexCascades(t *testing.T) {
	s := openTestStore(t, Options{IndexProperties: true})

	u, err := s.CreateVertex("person")
	require.NoError(t, err)
	v, err := s.CreateVertex("person")
	require.NoError(t, err)
	w, err := s.CreateVertex("person")
	require.NoError(t, err)

	outE := Edge{OutboundID: v.ID, Type: "knows", InboundID: w.ID}
	inE := Edge{OutboundID: u.ID, Type: "knows", InboundID: v.ID}
	loop := Edge{OutboundID: v.ID, Type: "knows", InboundID: v.ID}
	for _, e := range []Edge{outE, inE, loop} {
		require.NoError(t, s.CreateEdge(e))
	}
	require.NoError(t, s.SetVertexProperty(v.ID, "name", []byte("victim")))
	require.NoError(t, s.SetEdgeProperty(inE, "since", []byte("2020")))

	require.NoError(t, s.DeleteVertex(v.ID))

	_, err = s.Vertex(v.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	for _, e := range []Edge{outE, inE, loop} {
		exists, err := s.EdgeExists(e)
		require.NoError(t, err)
		assert.False(t, exists, "edge %v should be gone", e)
	}
	n, err := s.CountEdges()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), n)

	// The survivors' adjacency no longer mentions the deleted vertex.
	out, err := s.Edges(EdgeRangeRequest{VertexID: u.ID, Direction: Outbound})
	require.NoError(t, err)
	assert.Empty(t, out)
	in, err := s.Edges(EdgeRangeRequest{VertexID: w.ID, Direction: Inbound})
	require.NoError(t, err)
	assert.Empty(t, in)

	// Orphaned index entries would trip the checker.
	require.NoError(t, s.CheckIndex())

	found, err := s.FindVerticesByValue("name", []byte("victim"))
	require.NoError(t, err)
	assert.Empty(t, found)
	edges, err := s.FindEdgesByValue("since", []byte("2020"))
	require.NoError(t, err)
	assert.Empty(t, edges)
}

func TestIndexFollowsPropertyLifecycle(t *testing.T) {
	s := openTestStore(t, Options{IndexProperties: true})

	v, err := s.CreateVertex("person")
	require.NoError(t, err)
	other, err := s.CreateVertex("person")
	require.NoError(t, err)
	require.NoError(t, s.SetVertexProperty(other.ID, "name", []byte("alice")))

	require.NoError(t, s.SetVertexProperty(v.ID, "name", []byte("alice")))
	found, err := s.FindVerticesByValue("name", []byte("alice"))
	require.NoError(t, err)
	assert.Len(t, found, 2)

	// Update moves the entry; the old value must stop matching.
	require.NoError(t, s.SetVertexProperty(v.ID, "name", []byte("bob")))
	found, err = s.FindVerticesByValue("name", []byte("alice"))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, other.ID, found[0].ID)
	found, err = s.FindVerticesByValue("name", []byte("bob"))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, v.ID, found[0].ID)

	require.NoError(t, s.DeleteVertexProperty(v.ID, "name"))
	found, err = s.FindVerticesByValue("name", []byte("bob"))
	require.NoError(t, err)
	assert.Empty(t, found)

	require.NoError(t, s.CheckIndex())
}

func TestFindEdgesByValue(t *testing.T) {
	s := openTestStore(t, Options{IndexProperties: true})

	u, err := s.CreateVertex("person")
	require.NoError(t, err)
	v, err := s.CreateVertex("person")
	require.NoError(t, err)
	e1 := Edge{OutboundID: u.ID, Type: "knows", InboundID: v.ID}
	e2 := Edge{OutboundID: v.ID, Type: "knows", InboundID: u.ID}
	require.NoError(t, s.CreateEdge(e1))
	require.NoError(t, s.CreateEdge(e2))
	require.NoError(t, s.SetEdgeProperty(e1, "since", []byte("2020")))
	require.NoError(t, s.SetEdgeProperty(e2, "since", []byte("2021")))

	edges, err := s.FindEdgesByValue("since", []byte("2020"))
	require.NoError(t, err)
	assert.Equal(t, []Edge{e1}, edges)

	require.NoError(t, s.CheckIndex())
}

func TestIndexDisabled(t *testing.T) {
	s := openTestStore(t, Options{IndexProperties: false})

	v, err := s.CreateVertex("person")
	require.NoError(t, err)
	require.NoError(t, s.SetVertexProperty(v.ID, "name", []byte("alice")))

	_, err = s.FindVerticesByValue("name", []byte("alice"))
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = s.FindEdgesByValue("name", []byte("alice"))
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorIs(t, s.CheckIndex(), ErrInvalidArgument)

	// Property queries still work through direct reads. A seed without
	// the property is skipped, not an error.
	bare, err := s.CreateVertex("person")
	require.NoError(t, err)
	out, err := s.Execute(Query{
		Seeds: []uuid.UUID{v.ID, bare.ID},
		Steps: []Step{PropertyFilter("name", []byte("alice"))},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, v.ID, out[0].ID)
}

func TestCheckIndexDetectsCorruption(t *testing.T) {
	s := openTestStore(t, Options{IndexProperties: true})

	v, err := s.CreateVertex("person")
	require.NoError(t, err)
	require.NoError(t, s.SetVertexProperty(v.ID, "name", []byte("alice")))
	require.NoError(t, s.CheckIndex())

	// Plant a stray entry under a value no property holds.
	require.NoError(t, s.kv.Put(encodeVertexIndexKey("name", []byte("mallory"), v.ID), presentValue))
	assert.ErrorIs(t, s.CheckIndex(), ErrIndexInconsistency)

	require.NoError(t, s.kv.Delete(encodeVertexIndexKey("name", []byte("mallory"), v.ID)))
	require.NoError(t, s.CheckIndex())

	// Drop the real entry so the property side is the orphan.
	require.NoError(t, s.kv.Delete(encodeVertexIndexKey("name", []byte("alice"), v.ID)))
	assert.ErrorIs(t, s.CheckIndex(), ErrIndexInconsistency)
}

func TestEmptyPropertyValue(t *testing.T) {
	s := openTestStore(t, Options{IndexProperties: true})

	v, err := s.CreateVertex("person")
	require.NoError(t, err)

	// An empty value is a live property, not an absent one.
	require.NoError(t, s.SetVertexProperty(v.ID, "tag", []byte{}))
	got, err := s.VertexProperty(v.ID, "tag")
	require.NoError(t, err)
	assert.Empty(t, got)

	props, err := s.VertexProperties(v.ID)
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, "tag", props[0].Name)
	assert.Empty(t, props[0].Value)

	found, err := s.FindVerticesByValue("tag", []byte{})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, v.ID, found[0].ID)
	require.NoError(t, s.CheckIndex())

	// Re-set to a non-empty value drops the empty-value index entry.
	require.NoError(t, s.SetVertexProperty(v.ID, "tag", []byte("x")))
	found, err = s.FindVerticesByValue("tag", []byte{})
	require.NoError(t, err)
	assert.Empty(t, found)
	found, err = s.FindVerticesByValue("tag", []byte("x"))
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.NoError(t, s.CheckIndex())

	// Back to empty, then delete.
	require.NoError(t, s.SetVertexProperty(v.ID, "tag", []byte{}))
	require.NoError(t, s.DeleteVertexProperty(v.ID, "tag"))
	_, err = s.VertexProperty(v.ID, "tag")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, s.CheckIndex())

	// Edge properties take empty values the same way.
	u, err := s.CreateVertex("person")
	require.NoError(t, err)
	e := Edge{OutboundID: u.ID, Type: "knows", InboundID: v.ID}
	require.NoError(t, s.CreateEdge(e))
	require.NoError(t, s.SetEdgeProperty(e, "tag", []byte{}))
	got, err = s.EdgeProperty(e, "tag")
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, s.SetEdgeProperty(e, "tag", []byte("y")))
	edges, err := s.FindEdgesByValue("tag", []byte{})
	require.NoError(t, err)
	assert.Empty(t, edges)
	edges, err = s.FindEdgesByValue("tag", []byte("y"))
	require.NoError(t, err)
	assert.Equal(t, []Edge{e}, edges)
	require.NoError(t, s.CheckIndex())
}

func TestIndexedValueSizeLimit(t *testing.T) {
	indexed := openTestStore(t, Options{IndexProperties: true})
	v, err := indexed.CreateVertex("person")
	require.NoError(t, err)

	big := make([]byte, maxIndexedValueLen+1)
	err = indexed.SetVertexProperty(v.ID, "blob", big)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	plain := openTestStore(t, Options{IndexProperties: false})
	v2, err := plain.CreateVertex("person")
	require.NoError(t, err)
	require.NoError(t, plain.SetVertexProperty(v2.ID, "blob", big))
}

func TestMetadataFlagMismatch(t *testing.T) {
	dir := t.TempDir()

	kv, err := badgerdb.New(&badgerdb.StoreConfig{Path: dir})
	require.NoError(t, err)
	s, err := NewStore(kv, Options{IndexProperties: true})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	kv, err = badgerdb.New(&badgerdb.StoreConfig{Path: dir})
	require.NoError(t, err)
	defer kv.Close()
	_, err = NewStore(kv, Options{IndexProperties: false})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestQueryKnowsScenario(t *testing.T) {
	s := openTestStore(t, Options{IndexProperties: true})

	u, err := s.CreateVertex("person")
	require.NoError(t, err)
	v, err := s.CreateVertex("person")
	require.NoError(t, err)
	w, err := s.CreateVertex("person")
	require.NoError(t, err)

	require.NoError(t, s.CreateEdge(Edge{OutboundID: u.ID, Type: "knows", InboundID: v.ID}))
	require.NoError(t, s.CreateEdge(Edge{OutboundID: v.ID, Type: "knows", InboundID: w.ID}))
	require.NoError(t, s.SetVertexProperty(w.ID, "name", []byte("carol")))

	out, err := s.Execute(Query{
		Seeds: []uuid.UUID{u.ID},
		Steps: []Step{
			OutboundStep("knows"),
			OutboundStep("knows"),
			PropertyFilter("name", []byte("carol")),
		},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, w.ID, out[0].ID)
}

func TestQueryDedupesParallelPaths(t *testing.T) {
	s := openTestStore(t, Options{IndexProperties: true})

	// Diamond: u reaches w over several middle vertices, but w must
	// appear once.
	u, err := s.CreateVertex("person")
	require.NoError(t, err)
	w, err := s.CreateVertex("person")
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		mid, err := s.CreateVertex("person")
		require.NoError(t, err)
		require.NoError(t, s.CreateEdge(Edge{OutboundID: u.ID, Type: "knows", InboundID: mid.ID}))
		require.NoError(t, s.CreateEdge(Edge{OutboundID: mid.ID, Type: "knows", InboundID: w.ID}))
		// Parallel edges of another type must not leak into the hop.
		require.NoError(t, s.CreateEdge(Edge{OutboundID: u.ID, Type: "follows", InboundID: mid.ID}))
		require.NoError(t, s.CreateEdge(Edge{OutboundID: mid.ID, Type: "blocks", InboundID: w.ID}))
	}

	out, err := s.Execute(Query{
		Seeds: []uuid.UUID{u.ID},
		Steps: []Step{OutboundStep("knows"), OutboundStep("knows")},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, w.ID, out[0].ID)

	// Brute force over full listings agrees.
	brute := make(map[uuid.UUID]struct{})
	first, err := s.Edges(EdgeRangeRequest{VertexID: u.ID, Direction: Outbound, Type: "knows"})
	require.NoError(t, err)
	for _, e1 := range first {
		second, err := s.Edges(EdgeRangeRequest{VertexID: e1.InboundID, Direction: Outbound, Type: "knows"})
		require.NoError(t, err)
		for _, e2 := range second {
			brute[e2.InboundID] = struct{}{}
		}
	}
	require.Len(t, brute, 1)
	_, ok := brute[w.ID]
	assert.True(t, ok)
}

func TestQuerySteps(t *testing.T) {
	s := openTestStore(t, Options{IndexProperties: true})

	company, err := s.CreateVertex("company")
	require.NoError(t, err)
	var people []Vertex
	for i := 0; i < 5; i++ {
		p, err := s.CreateVertex("person")
		require.NoError(t, err)
		people = append(people, p)
		require.NoError(t, s.CreateEdge(Edge{OutboundID: p.ID, Type: "works_at", InboundID: company.ID}))
		require.NoError(t, s.SetVertexProperty(p.ID, "level", []byte(fmt.Sprintf("%d", i%2))))
	}

	// Inbound traversal from the company back to its people.
	out, err := s.Execute(Query{
		Seeds: []uuid.UUID{company.ID},
		Steps: []Step{InboundStep("works_at"), TypeFilter("person")},
	})
	require.NoError(t, err)
	assert.Len(t, out, 5)

	// Type filter drops everything of another type.
	out, err = s.Execute(Query{
		Seeds: []uuid.UUID{company.ID},
		Steps: []Step{InboundStep("works_at"), TypeFilter("company")},
	})
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = s.Execute(Query{
		Seeds: []uuid.UUID{company.ID},
		Steps: []Step{
			InboundStep("works_at"),
			PropertyFilter("level", []byte("0")),
		},
	})
	require.NoError(t, err)
	assert.Len(t, out, 3)

	out, err = s.Execute(Query{
		Seeds: []uuid.UUID{company.ID},
		Steps: []Step{InboundStep("works_at"), LimitStep(2)},
	})
	require.NoError(t, err)
	assert.Len(t, out, 2)

	// Per-vertex cap on a traversal step.
	out, err = s.Execute(Query{
		Seeds: []uuid.UUID{company.ID},
		Steps: []Step{{Kind: StepInbound, Type: "works_at", N: 2}},
	})
	require.NoError(t, err)
	assert.Len(t, out, 2)

	// Missing seeds drop out at hydration instead of failing.
	out, err = s.Execute(Query{Seeds: []uuid.UUID{uuid.New()}})
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = s.Execute(Query{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = s.Execute(Query{Seeds: []uuid.UUID{people[0].ID}, Steps: []Step{{Kind: StepKind(99)}}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = s.Execute(Query{Seeds: []uuid.UUID{people[0].ID}, Steps: []Step{LimitStep(-1)}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFailedMutationLeavesNoTrace(t *testing.T) {
	s := openTestStore(t, Options{IndexProperties: true})

	u, err := s.CreateVertex("person")
	require.NoError(t, err)
	v, err := s.CreateVertex("person")
	require.NoError(t, err)
	e := Edge{OutboundID: u.ID, Type: "knows", InboundID: v.ID}
	require.NoError(t, s.CreateEdge(e))
	require.NoError(t, s.SetEdgeProperty(e, "since", []byte("2020")))

	// A rejected delete must not have touched the property or its
	// index entry.
	assert.ErrorIs(t, s.DeleteEdgeProperty(e, "nonexistent"), ErrNotFound)
	got, err := s.EdgeProperty(e, "since")
	require.NoError(t, err)
	assert.Equal(t, []byte("2020"), got)
	require.NoError(t, s.CheckIndex())
}
