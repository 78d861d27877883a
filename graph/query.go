package graph

import (
	"bytes"
	"errors"

	"github.com/google/uuid"
)

type StepKind int

const (
	// StepTypeFilter keeps only vertices of one type.
	StepTypeFilter StepKind = iota
	// StepPropertyFilter keeps only vertices whose named property
	// equals a value.
	StepPropertyFilter
	// StepOutbound follows edges of one type away from the working set.
	StepOutbound
	// StepInbound follows edges of one type toward the working set.
	StepInbound
	// StepLimit truncates the working set.
	StepLimit
)

func (k StepKind) String() string {
	switch k {
	case StepTypeFilter:
		return "type_filter"
	case StepPropertyFilter:
		return "property_filter"
	case StepOutbound:
		return "outbound"
	case StepInbound:
		return "inbound"
	case StepLimit:
		return "limit"
	}
	return "unknown"
}

// Step is one stage of a pipe query. Use the constructors; a zero Step
// is not valid. On traversal steps N, when positive, caps how many
// edges are followed out of each source vertex.
type Step struct {
	Kind  StepKind
	Type  string
	Name  string
	Value []byte
	N     int
}

func TypeFilter(vertexType string) Step {
	return Step{Kind: StepTypeFilter, Type: vertexType}
}

func PropertyFilter(name string, value []byte) Step {
	return Step{Kind: StepPropertyFilter, Name: name, Value: value}
}

func OutboundStep(edgeType string) Step {
	return Step{Kind: StepOutbound, Type: edgeType}
}

func InboundStep(edgeType string) Step {
	return Step{Kind: StepInbound, Type: edgeType}
}

func LimitStep(n int) Step {
	return Step{Kind: StepLimit, N: n}
}

// Query is a pipe chain: a seed set of vertex ids pushed through steps
// left to right. The working set between steps is deduplicated and
// order preserving, so a multi-hop traversal visits each intermediate
// vertex once no matter how many parallel paths reach it.
type Query struct {
	Seeds []uuid.UUID
	Steps []Step
}

func (q Query) validate() error {
	if len(q.Seeds) == 0 {
		return invalidErr("query has no seed vertices")
	}
	for _, id := range q.Seeds {
		if err := validateVertexID(id); err != nil {
			return err
		}
	}
	for _, s := range q.Steps {
		switch s.Kind {
		case StepTypeFilter:
			if err := validateIdentifier("vertex type", s.Type); err != nil {
				return err
			}
		case StepPropertyFilter:
			if err := validateIdentifier("property name", s.Name); err != nil {
				return err
			}
		case StepOutbound, StepInbound:
			if err := validateIdentifier("edge type", s.Type); err != nil {
				return err
			}
			if s.N < 0 {
				return invalidErr("negative limit")
			}
		case StepLimit:
			if s.N < 0 {
				return invalidErr("negative limit")
			}
		default:
			return invalidErr("unknown step kind %d", s.Kind)
		}
	}
	return nil
}

// queryExecutor evaluates pipe queries against the managers. It holds
// no state of its own between queries.
type queryExecutor struct {
	vertices *vertexManager
	edges    *edgeManager
	props    *propertyManager
	index    *propertyIndex
	indexed  bool
}

func (qe *queryExecutor) execute(q Query) ([]Vertex, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}
	queriesTotal.Inc()

	working := dedupe(q.Seeds)
	for _, s := range q.Steps {
		if len(working) == 0 {
			break
		}
		queryStepsTotal.WithLabelValues(s.Kind.String()).Inc()

		var err error
		switch s.Kind {
		case StepTypeFilter:
			working, err = qe.filterByType(working, s.Type)
		case StepPropertyFilter:
			working, err = qe.filterByProperty(working, s.Name, s.Value)
		case StepOutbound:
			working, err = qe.traverse(working, Outbound, s.Type, s.N)
		case StepInbound:
			working, err = qe.traverse(working, Inbound, s.Type, s.N)
		case StepLimit:
			if len(working) > s.N {
				working = working[:s.N]
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return qe.hydrate(working)
}

func (qe *queryExecutor) filterByType(ids []uuid.UUID, vertexType string) ([]uuid.UUID, error) {
	found, err := qe.vertices.multiGet(ids)
	if err != nil {
		return nil, err
	}
	var out []uuid.UUID
	for _, id := range ids {
		if v, ok := found[id]; ok && v.Type == vertexType {
			out = append(out, id)
		}
	}
	return out, nil
}

// filterByProperty uses the equality index when it is maintained, and
// falls back to point reads against the property region otherwise. The
// fallback costs one read per working vertex, which is still bounded by
// the working set rather than the store size.
func (qe *queryExecutor) filterByProperty(ids []uuid.UUID, name string, value []byte) ([]uuid.UUID, error) {
	if qe.indexed {
		matches, err := qe.index.findVertices(name, value)
		if err != nil {
			return nil, err
		}
		matchSet := make(map[uuid.UUID]struct{}, len(matches))
		for _, id := range matches {
			matchSet[id] = struct{}{}
		}
		var out []uuid.UUID
		for _, id := range ids {
			if _, ok := matchSet[id]; ok {
				out = append(out, id)
			}
		}
		return out, nil
	}

	var out []uuid.UUID
	for _, id := range ids {
		stored, err := qe.props.getVertex(id, name)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if bytes.Equal(stored, value) {
			out = append(out, id)
		}
	}
	return out, nil
}

// traverse follows one edge type from every vertex in the working set,
// deduplicating targets as it goes. Cost is one adjacency prefix scan
// per source vertex; the full edge region is never walked.
func (qe *queryExecutor) traverse(ids []uuid.UUID, dir Direction, edgeType string, perVertex int) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{})
	var out []uuid.UUID
	for _, id := range ids {
		edges, err := qe.edges.scan(id, dir, edgeType, nil, perVertex)
		if err != nil {
			return nil, err
		}
		for _, e := range edges {
			target := e.InboundID
			if dir == Inbound {
				target = e.OutboundID
			}
			if _, ok := seen[target]; ok {
				continue
			}
			seen[target] = struct{}{}
			out = append(out, target)
		}
	}
	return out, nil
}

// hydrate resolves surviving ids to full vertices, keeping order and
// dropping any id deleted since it entered the working set.
func (qe *queryExecutor) hydrate(ids []uuid.UUID) ([]Vertex, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	found, err := qe.vertices.multiGet(ids)
	if err != nil {
		return nil, err
	}
	out := make([]Vertex, 0, len(ids))
	for _, id := range ids {
		if v, ok := found[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
