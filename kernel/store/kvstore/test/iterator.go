package test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
)

func loadKeys(t *testing.T, s kvstore.KVStore, keys []string) {
	batch := s.NewKVBatch()
	for _, k := range keys {
		batch.Set([]byte(k), []byte("v-"+k))
	}
	err := s.ExecuteBatch(batch)
	if err != nil {
		t.Fatal(err)
	}
}

func collect(it kvstore.KVIterator) []string {
	var rv []string
	for it.Valid() {
		k, _, ok := it.Current()
		if !ok {
			break
		}
		rv = append(rv, string(k))
		it.Next()
	}
	return rv
}

func CommonTestPrefixIterator(t *testing.T, s kvstore.KVStore) {
	loadKeys(t, s, []string{"a1", "b1", "b2", "b3", "c1"})

	it := s.PrefixIterator([]byte("b"))
	defer func() {
		if err := it.Close(); err != nil {
			t.Fatal(err)
		}
	}()

	got := collect(it)
	want := []string{"b1", "b2", "b3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func CommonTestPrefixIteratorSeek(t *testing.T, s kvstore.KVStore) {
	loadKeys(t, s, []string{"b1", "b2", "b3", "b4"})

	it := s.PrefixIterator([]byte("b"))
	defer func() {
		if err := it.Close(); err != nil {
			t.Fatal(err)
		}
	}()

	it.Seek([]byte("b3"))
	got := collect(it)
	want := []string{"b3", "b4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	// seeking before the prefix clamps to the prefix
	it2 := s.PrefixIterator([]byte("b"))
	defer func() {
		if err := it2.Close(); err != nil {
			t.Fatal(err)
		}
	}()
	it2.Seek([]byte("a"))
	got = collect(it2)
	want = []string{"b1", "b2", "b3", "b4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func CommonTestRangeIterator(t *testing.T, s kvstore.KVStore) {
	loadKeys(t, s, []string{"a1", "b1", "b2", "c1", "d1"})

	it := s.RangeIterator([]byte("b"), []byte("d"))
	defer func() {
		if err := it.Close(); err != nil {
			t.Fatal(err)
		}
	}()

	got := collect(it)
	want := []string{"b1", "b2", "c1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func CommonTestRangeIteratorSeek(t *testing.T, s kvstore.KVStore) {
	loadKeys(t, s, []string{"b1", "b2", "c1", "c2", "d1"})

	it := s.RangeIterator([]byte("b"), []byte("d"))
	defer func() {
		if err := it.Close(); err != nil {
			t.Fatal(err)
		}
	}()

	it.Seek([]byte("c"))
	got := collect(it)
	want := []string{"c1", "c2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func CommonTestReaderIsolation(t *testing.T, s kvstore.KVStore) {
	batch := s.NewKVBatch()
	batch.Set([]byte("a"), []byte("val-a"))
	err := s.ExecuteBatch(batch)
	if err != nil {
		t.Fatal(err)
	}

	// create an isolated reader
	reader, err := s.GetSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := reader.Close(); err != nil {
			t.Fatal(err)
		}
	}()

	// verify that we see the value already inserted
	val, err := reader.Get([]byte("a"))
	if err != nil {
		t.Error(err)
	}
	if !reflect.DeepEqual(val, []byte("val-a")) {
		t.Errorf("expected val-a, got %q", val)
	}

	batch = s.NewKVBatch()
	batch.Set([]byte("b"), []byte("val-b"))
	err = s.ExecuteBatch(batch)
	if err != nil {
		t.Fatal(err)
	}

	// ensure that a newer reader sees it
	newReader, err := s.GetSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := newReader.Close(); err != nil {
			t.Fatal(err)
		}
	}()
	val, err = newReader.Get([]byte("b"))
	if err != nil {
		t.Error(err)
	}
	if !reflect.DeepEqual(val, []byte("val-b")) {
		t.Errorf("expected val-b, got %q", val)
	}

	// but that the isolated reader does not
	val, err = reader.Get([]byte("b"))
	if err != nil {
		t.Error(err)
	}
	if val != nil {
		t.Errorf("expected nil, got %q", val)
	}
}

func CommonTestIteratorOwnsBytes(t *testing.T, s kvstore.KVStore) {
	var keys []string
	for i := 0; i < 10; i++ {
		keys = append(keys, fmt.Sprintf("k%02d", i))
	}
	loadKeys(t, s, keys)

	it := s.PrefixIterator([]byte("k"))
	defer func() {
		if err := it.Close(); err != nil {
			t.Fatal(err)
		}
	}()

	// copy out the first key, advance, ensure copy is stable
	first := append([]byte(nil), it.Key()...)
	it.Next()
	if !reflect.DeepEqual(first, []byte("k00")) {
		t.Errorf("expected copied key to remain k00, got %q", first)
	}
}
