package graph

import (
	"errors"

	"github.com/google/uuid"
	"github.com/tiglabs/baudgraph/util/encoding"
)

type KEY_TYPE byte

// Each entity family lives under its own discriminator byte, so the
// regions never collide and every scan is prefix-bounded. This layout
// is the on-disk contract: changing it is a breaking format change
// that requires an export/import migration.
const (
	// vertex record: [V][id] -> type
	KEY_TYPE_V KEY_TYPE = 'V'
	// forward adjacency: [F][out][type][in] -> empty, doubles as the edge record
	KEY_TYPE_F KEY_TYPE = 'F'
	// reverse adjacency: [R][in][type][out] -> empty
	KEY_TYPE_R KEY_TYPE = 'R'
	// vertex property: [P][owner][name] -> value
	KEY_TYPE_P KEY_TYPE = 'P'
	// edge property: [E][out][type][in][name] -> value
	KEY_TYPE_E KEY_TYPE = 'E'
	// vertex property index: [X][name][value][owner] -> empty
	KEY_TYPE_X KEY_TYPE = 'X'
	// edge property index: [Y][name][value][out][type][in] -> empty
	KEY_TYPE_Y KEY_TYPE = 'Y'
	// store metadata: [M][key] -> value
	KEY_TYPE_M KEY_TYPE = 'M'
)

var (
	errInvalidKey   = errors.New("invalid key")
	errInvalidValue = errors.New("invalid value")
)

// presentValue marks pure-presence entries (adjacency and index
// regions). Some engines hand zero-length values back as nil, which
// would be indistinguishable from a missing key.
var presentValue = []byte{1}

// encodePropertyValue prefixes the stored record with the same marker
// byte, so a property holding an empty value is still a non-empty
// record and survives the nil-means-absent convention.
func encodePropertyValue(value []byte) []byte {
	v := make([]byte, 0, 1+len(value))
	v = append(v, presentValue[0])
	return append(v, value...)
}

func decodePropertyValue(stored []byte) ([]byte, error) {
	if len(stored) == 0 || stored[0] != presentValue[0] {
		return nil, errInvalidValue
	}
	return stored[1:], nil
}

func regionPrefix(kt KEY_TYPE) []byte {
	return []byte{byte(kt)}
}

// prefixUpperBound returns the tight exclusive upper bound for a scan of
// all keys starting with prefix, or nil if no bound exists (prefix is
// all 0xff).
func prefixUpperBound(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

func encodeVertexKey(id uuid.UUID) []byte {
	key := make([]byte, 0, 1+16)
	key = append(key, byte(KEY_TYPE_V))
	return append(key, id[:]...)
}

func decodeVertexKey(key []byte) (uuid.UUID, error) {
	if len(key) != 1+16 || key[0] != byte(KEY_TYPE_V) {
		return uuid.Nil, errInvalidKey
	}
	var id uuid.UUID
	copy(id[:], key[1:])
	return id, nil
}

// encodeAdjacencyKey lays out [kt][first][type][second]. The forward
// region stores (out, type, in), the reverse region (in, type, out).
func encodeAdjacencyKey(kt KEY_TYPE, first uuid.UUID, t string, second uuid.UUID) []byte {
	key := make([]byte, 0, 1+16+len(t)+2+16)
	key = append(key, byte(kt))
	key = append(key, first[:]...)
	key = encoding.EncodeBytesAscending(key, []byte(t))
	return append(key, second[:]...)
}

func encodeEdgeKey(kt KEY_TYPE, e Edge) []byte {
	if kt == KEY_TYPE_R {
		e = e.Reversed()
	}
	return encodeAdjacencyKey(kt, e.OutboundID, e.Type, e.InboundID)
}

// decodeEdgeKey reads an adjacency key back into a canonical Edge,
// undoing the endpoint swap for the reverse region.
func decodeEdgeKey(kt KEY_TYPE, key []byte) (Edge, error) {
	if len(key) < 1+16+2+16 || key[0] != byte(kt) {
		return Edge{}, errInvalidKey
	}
	var first uuid.UUID
	copy(first[:], key[1:17])
	rest, t, err := encoding.DecodeBytesAscending(key[17:], nil)
	if err != nil || len(rest) != 16 {
		return Edge{}, errInvalidKey
	}
	var second uuid.UUID
	copy(second[:], rest)
	e := Edge{OutboundID: first, Type: string(t), InboundID: second}
	if kt == KEY_TYPE_R {
		e = e.Reversed()
	}
	return e, nil
}

func adjacencyPrefix(kt KEY_TYPE, id uuid.UUID) []byte {
	key := make([]byte, 0, 1+16)
	key = append(key, byte(kt))
	return append(key, id[:]...)
}

func adjacencyTypePrefix(kt KEY_TYPE, id uuid.UUID, t string) []byte {
	key := adjacencyPrefix(kt, id)
	return encoding.EncodeBytesAscending(key, []byte(t))
}

func encodeVertexPropertyKey(id uuid.UUID, name string) []byte {
	key := make([]byte, 0, 1+16+len(name)+2)
	key = append(key, byte(KEY_TYPE_P))
	key = append(key, id[:]...)
	return encoding.EncodeBytesAscending(key, []byte(name))
}

func decodeVertexPropertyKey(key []byte) (uuid.UUID, string, error) {
	if len(key) < 1+16+2 || key[0] != byte(KEY_TYPE_P) {
		return uuid.Nil, "", errInvalidKey
	}
	var id uuid.UUID
	copy(id[:], key[1:17])
	rest, name, err := encoding.DecodeBytesAscending(key[17:], nil)
	if err != nil || len(rest) != 0 {
		return uuid.Nil, "", errInvalidKey
	}
	return id, string(name), nil
}

func vertexPropertyPrefix(id uuid.UUID) []byte {
	key := make([]byte, 0, 1+16)
	key = append(key, byte(KEY_TYPE_P))
	return append(key, id[:]...)
}

func encodeEdgePropertyKey(e Edge, name string) []byte {
	key := encodeEdgeKey(KEY_TYPE_E, e)
	return encoding.EncodeBytesAscending(key, []byte(name))
}

func decodeEdgePropertyKey(key []byte) (Edge, string, error) {
	if len(key) < 1+16+2+16+2 || key[0] != byte(KEY_TYPE_E) {
		return Edge{}, "", errInvalidKey
	}
	var out uuid.UUID
	copy(out[:], key[1:17])
	rest, t, err := encoding.DecodeBytesAscending(key[17:], nil)
	if err != nil || len(rest) < 16+2 {
		return Edge{}, "", errInvalidKey
	}
	var in uuid.UUID
	copy(in[:], rest[:16])
	rest, name, err := encoding.DecodeBytesAscending(rest[16:], nil)
	if err != nil || len(rest) != 0 {
		return Edge{}, "", errInvalidKey
	}
	return Edge{OutboundID: out, Type: string(t), InboundID: in}, string(name), nil
}

func edgePropertyPrefix(e Edge) []byte {
	return encodeEdgeKey(KEY_TYPE_E, e)
}

// index keys put (name, value) first so an equality lookup is one
// contiguous prefix scan; the owner key comes last as the tiebreaker.
func encodeVertexIndexKey(name string, value []byte, id uuid.UUID) []byte {
	key := make([]byte, 0, 1+len(name)+2+len(value)+2+16)
	key = append(key, byte(KEY_TYPE_X))
	key = encoding.EncodeBytesAscending(key, []byte(name))
	key = encoding.EncodeBytesAscending(key, value)
	return append(key, id[:]...)
}

func decodeVertexIndexKey(key []byte) (string, []byte, uuid.UUID, error) {
	if len(key) < 1+2+2+16 || key[0] != byte(KEY_TYPE_X) {
		return "", nil, uuid.Nil, errInvalidKey
	}
	rest, name, err := encoding.DecodeBytesAscending(key[1:], nil)
	if err != nil {
		return "", nil, uuid.Nil, errInvalidKey
	}
	rest, value, err := encoding.DecodeBytesAscending(rest, nil)
	if err != nil || len(rest) != 16 {
		return "", nil, uuid.Nil, errInvalidKey
	}
	var id uuid.UUID
	copy(id[:], rest)
	return string(name), value, id, nil
}

func encodeEdgeIndexKey(name string, value []byte, e Edge) []byte {
	key := make([]byte, 0, 1+len(name)+2+len(value)+2+16+len(e.Type)+2+16)
	key = append(key, byte(KEY_TYPE_Y))
	key = encoding.EncodeBytesAscending(key, []byte(name))
	key = encoding.EncodeBytesAscending(key, value)
	key = append(key, e.OutboundID[:]...)
	key = encoding.EncodeBytesAscending(key, []byte(e.Type))
	return append(key, e.InboundID[:]...)
}

func decodeEdgeIndexKey(key []byte) (string, []byte, Edge, error) {
	if len(key) < 1+2+2+16+2+16 || key[0] != byte(KEY_TYPE_Y) {
		return "", nil, Edge{}, errInvalidKey
	}
	rest, name, err := encoding.DecodeBytesAscending(key[1:], nil)
	if err != nil {
		return "", nil, Edge{}, errInvalidKey
	}
	rest, value, err := encoding.DecodeBytesAscending(rest, nil)
	if err != nil || len(rest) < 16+2+16 {
		return "", nil, Edge{}, errInvalidKey
	}
	var out uuid.UUID
	copy(out[:], rest[:16])
	rest, t, err := encoding.DecodeBytesAscending(rest[16:], nil)
	if err != nil || len(rest) != 16 {
		return "", nil, Edge{}, errInvalidKey
	}
	var in uuid.UUID
	copy(in[:], rest)
	return string(name), value, Edge{OutboundID: out, Type: string(t), InboundID: in}, nil
}

func indexNamePrefix(kt KEY_TYPE, name string) []byte {
	key := make([]byte, 0, 1+len(name)+2)
	key = append(key, byte(kt))
	return encoding.EncodeBytesAscending(key, []byte(name))
}

func indexValuePrefix(kt KEY_TYPE, name string, value []byte) []byte {
	key := indexNamePrefix(kt, name)
	return encoding.EncodeBytesAscending(key, value)
}

func encodeMetaKey(name string) []byte {
	key := make([]byte, 0, 1+len(name)+2)
	key = append(key, byte(KEY_TYPE_M))
	return encoding.EncodeBytesAscending(key, []byte(name))
}
