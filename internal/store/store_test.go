package store

import (
	"path/filepath"
	"testing"
)

func TestOpen(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	// Verify the schema exists by querying it
	var name string
	err = st.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='kv'").Scan(&name)
	if err != nil {
		t.Fatalf("kv table not created: %v", err)
	}
}

func TestGetMissingKey(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	_, ok, err := st.Get("nope")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("missing key reported as present")
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	if err := st.Set("bookmarkedIds", "[1,2,3]"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	v, ok, err := st.Get("bookmarkedIds")
	if err != nil || !ok {
		t.Fatalf("Get: %v, ok=%v", err, ok)
	}
	if v != "[1,2,3]" {
		t.Errorf("got %q", v)
	}

	// Second Set replaces
	if err := st.Set("bookmarkedIds", "[]"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, _, _ = st.Get("bookmarkedIds")
	if v != "[]" {
		t.Errorf("after overwrite got %q", v)
	}
}

func TestDelete(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	st.Set("k", "v")
	if err := st.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := st.Get("k"); ok {
		t.Error("deleted key still present")
	}

	// Deleting again is not an error
	if err := st.Delete("k"); err != nil {
		t.Errorf("double delete: %v", err)
	}
}

func TestFileDurability(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	st, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := st.Set("k", "persisted"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	st.Close()

	st2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer st2.Close()

	v, ok, err := st2.Get("k")
	if err != nil || !ok || v != "persisted" {
		t.Errorf("value did not survive reopen: %q ok=%v err=%v", v, ok, err)
	}
}
