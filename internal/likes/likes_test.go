package likes

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestToggleTwiceRestoresSet(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	if _, err := s.Toggle(ctx, "s1"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	liked, err := s.Toggle(ctx, "s3")
	if err != nil || !liked {
		t.Fatalf("Toggle(s3) = %v, %v", liked, err)
	}
	liked, err = s.Toggle(ctx, "s3")
	if err != nil || liked {
		t.Fatalf("second Toggle(s3) = %v, %v", liked, err)
	}

	ids, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if strings.Join(ids, ",") != "s1" {
		t.Fatalf("List = %v, want [s1]", ids)
	}
}

func TestListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	for _, id := range []string{"s8", "s2", "s5"} {
		if _, err := s.Toggle(ctx, id); err != nil {
			t.Fatalf("Toggle(%s): %v", id, err)
		}
	}
	ids, _ := s.List(ctx)
	if strings.Join(ids, ",") != "s8,s2,s5" {
		t.Fatalf("List = %v", ids)
	}

	liked, err := s.Liked(ctx, "s2")
	if err != nil || !liked {
		t.Fatalf("Liked(s2) = %v, %v", liked, err)
	}
}

func TestPersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "likes.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := s.Toggle(ctx, "s9"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	s.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	ids, err := reopened.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ids) != 1 || ids[0] != "s9" {
		t.Fatalf("List after reopen = %v", ids)
	}
}

func TestStoredValueIsJSONArray(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)
	if _, err := s.Toggle(ctx, "s4"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	var raw string
	if err := s.db.QueryRow(`SELECT value FROM local_storage WHERE key = ?`, StorageKey).Scan(&raw); err != nil {
		t.Fatalf("read raw: %v", err)
	}
	if raw != `["s4"]` {
		t.Fatalf("raw value = %s", raw)
	}
}
