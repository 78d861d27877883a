package boltdb

import "encoding/json"

type stats struct {
	s *Store
}

func (s *stats) MarshalJSON() ([]byte, error) {
	bs := s.s.db.Stats()
	return json.Marshal(bs)
}

// Stats returns a JSON-marshalable view of the underlying bolt statistics.
func (bs *Store) Stats() json.Marshaler {
	return &stats{s: bs}
}
