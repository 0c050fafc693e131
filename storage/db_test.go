package storage

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestMemDBRoundTrip(t *testing.T) {
	db := NewMemDB()
	defer db.Close()

	if err := db.Put([]byte("budget/1"), []byte{0x01, 0x02}); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := db.Get([]byte("budget/1"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(got, []byte{0x01, 0x02}) {
		t.Fatalf("got %x", got)
	}
	if _, err := db.Get([]byte("missing")); err == nil {
		t.Fatalf("expected miss")
	}
	if db.Len() != 1 {
		t.Fatalf("len %d, want 1", db.Len())
	}
}

func TestMemDBCopiesValues(t *testing.T) {
	db := NewMemDB()
	defer db.Close()

	value := []byte{0xaa}
	if err := db.Put([]byte("k"), value); err != nil {
		t.Fatalf("put: %v", err)
	}
	value[0] = 0xbb
	got, err := db.Get([]byte("k"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got[0] != 0xaa {
		t.Fatalf("stored value aliased caller buffer")
	}
}

func TestLevelDBRoundTrip(t *testing.T) {
	db, err := NewLevelDB(filepath.Join(t.TempDir(), "archive"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if err := db.Put([]byte("op/7"), []byte("row")); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := db.Get([]byte("op/7"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "row" {
		t.Fatalf("got %q", got)
	}
}
