package test

import (
	"reflect"
	"testing"

	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
)

func CommonTestKVCrud(t *testing.T, s kvstore.KVStore) {
	// put
	err := s.Put([]byte("a"), []byte("val-a"))
	if err != nil {
		t.Fatal(err)
	}

	// get
	val, err := s.Get([]byte("a"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(val, []byte("val-a")) {
		t.Errorf("expected val-a, got %q", val)
	}

	// get missing
	val, err = s.Get([]byte("nope"))
	if err != nil {
		t.Fatal(err)
	}
	if val != nil {
		t.Errorf("expected nil for missing key, got %q", val)
	}

	// overwrite
	err = s.Put([]byte("a"), []byte("val-a2"))
	if err != nil {
		t.Fatal(err)
	}
	val, err = s.Get([]byte("a"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(val, []byte("val-a2")) {
		t.Errorf("expected val-a2, got %q", val)
	}

	// delete
	err = s.Delete([]byte("a"))
	if err != nil {
		t.Fatal(err)
	}
	val, err = s.Get([]byte("a"))
	if err != nil {
		t.Fatal(err)
	}
	if val != nil {
		t.Errorf("expected nil after delete, got %q", val)
	}

	// multi-get
	batch := s.NewKVBatch()
	batch.Set([]byte("m1"), []byte("v1"))
	batch.Set([]byte("m2"), []byte("v2"))
	batch.Set([]byte("m3"), []byte("v3"))
	err = s.ExecuteBatch(batch)
	if err != nil {
		t.Fatal(err)
	}
	vals, err := s.MultiGet([][]byte{[]byte("m1"), []byte("m3"), []byte("missing")})
	if err != nil {
		t.Fatal(err)
	}
	if len(vals) != 3 {
		t.Fatalf("expected 3 values, got %d", len(vals))
	}
	if !reflect.DeepEqual(vals[0], []byte("v1")) || !reflect.DeepEqual(vals[1], []byte("v3")) {
		t.Errorf("unexpected multi-get values: %q", vals)
	}
	if vals[2] != nil {
		t.Errorf("expected nil for missing key in multi-get, got %q", vals[2])
	}
}

func CommonTestBatchDeleteAndSet(t *testing.T, s kvstore.KVStore) {
	batch := s.NewKVBatch()
	batch.Set([]byte("k1"), []byte("v1"))
	batch.Set([]byte("k2"), []byte("v2"))
	err := s.ExecuteBatch(batch)
	if err != nil {
		t.Fatal(err)
	}

	// one batch that both deletes and writes
	batch = s.NewKVBatch()
	batch.Delete([]byte("k1"))
	batch.Set([]byte("k3"), []byte("v3"))
	err = s.ExecuteBatch(batch)
	if err != nil {
		t.Fatal(err)
	}

	val, err := s.Get([]byte("k1"))
	if err != nil {
		t.Fatal(err)
	}
	if val != nil {
		t.Errorf("expected k1 deleted, got %q", val)
	}
	val, err = s.Get([]byte("k3"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(val, []byte("v3")) {
		t.Errorf("expected v3, got %q", val)
	}

	// a batch that is never executed leaves no trace
	batch = s.NewKVBatch()
	batch.Set([]byte("ghost"), []byte("boo"))
	batch.Close()
	val, err = s.Get([]byte("ghost"))
	if err != nil {
		t.Fatal(err)
	}
	if val != nil {
		t.Errorf("expected no ghost key, got %q", val)
	}
}

func CommonTestTransaction(t *testing.T, s kvstore.KVStore) {
	tx, err := s.NewTransaction(true)
	if err != nil {
		t.Fatal(err)
	}
	err = tx.Put([]byte("t1"), []byte("v1"))
	if err != nil {
		t.Fatal(err)
	}

	// read your own write
	val, err := tx.Get([]byte("t1"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(val, []byte("v1")) {
		t.Errorf("expected v1 inside transaction, got %q", val)
	}
	err = tx.Commit()
	if err != nil {
		t.Fatal(err)
	}

	val, err = s.Get([]byte("t1"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(val, []byte("v1")) {
		t.Errorf("expected v1 after commit, got %q", val)
	}

	// rollback discards writes
	tx, err = s.NewTransaction(true)
	if err != nil {
		t.Fatal(err)
	}
	err = tx.Put([]byte("t2"), []byte("v2"))
	if err != nil {
		t.Fatal(err)
	}
	err = tx.Rollback()
	if err != nil {
		t.Fatal(err)
	}
	val, err = s.Get([]byte("t2"))
	if err != nil {
		t.Fatal(err)
	}
	if val != nil {
		t.Errorf("expected t2 rolled back, got %q", val)
	}
}
