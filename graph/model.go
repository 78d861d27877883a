package graph

import (
	"github.com/google/uuid"
)

const (
	// maxIdentifierLen bounds vertex/edge types and property names.
	maxIdentifierLen = 255

	// maxIndexedValueLen bounds property values when indexing is on,
	// since index keys embed the value bytes.
	maxIndexedValueLen = 64 * 1024
)

// Vertex is a typed node. Identity is the id; the type is immutable
// after creation.
type Vertex struct {
	ID   uuid.UUID
	Type string
}

// Edge is a directed, typed relation between two vertices. There is no
// independent edge id: identity is the whole triple, and at most one
// edge exists per (outbound, type, inbound).
type Edge struct {
	OutboundID uuid.UUID
	Type       string
	InboundID  uuid.UUID
}

// Reversed swaps the endpoints, producing the key shape stored in the
// reverse adjacency region.
func (e Edge) Reversed() Edge {
	return Edge{
		OutboundID: e.InboundID,
		Type:       e.Type,
		InboundID:  e.OutboundID,
	}
}

// Property is a named opaque value owned by a vertex or an edge. It is
// deleted with its owner.
type Property struct {
	Name  string
	Value []byte
}

// Direction selects which adjacency region a range scan walks.
type Direction int

const (
	Outbound Direction = iota
	Inbound
)

func (d Direction) String() string {
	if d == Inbound {
		return "inbound"
	}
	return "outbound"
}

func validateVertexID(id uuid.UUID) error {
	if id == uuid.Nil {
		return invalidErr("nil vertex id")
	}
	return nil
}

func validateIdentifier(kind, s string) error {
	if len(s) == 0 {
		return invalidErr("empty %s", kind)
	}
	if len(s) > maxIdentifierLen {
		return invalidErr("%s longer than %d bytes", kind, maxIdentifierLen)
	}
	return nil
}

func validateEdge(e Edge) error {
	if err := validateVertexID(e.OutboundID); err != nil {
		return err
	}
	if err := validateVertexID(e.InboundID); err != nil {
		return err
	}
	return validateIdentifier("edge type", e.Type)
}

func validateValue(value []byte, indexed bool) error {
	if indexed && len(value) > maxIndexedValueLen {
		return invalidErr("property value longer than %d bytes", maxIndexedValueLen)
	}
	return nil
}
