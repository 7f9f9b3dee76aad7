package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/merchlink/merchlink/pkg/merchlink/catalog"
)

func openTestStore(t *testing.T) (*sqliteStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")
	s, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s.(*sqliteStore), path
}

func TestRoundTrip(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	cat, _ := catalog.FromRows([]catalog.Row{
		{Phrase: "Soft Cotton", URL: "https://shop.example/soft-cotton", Anchor: "Soft Cotton"},
		{Phrase: "pink dupatta", URL: "https://shop.example/dupattas", Anchor: "Dupattas"},
	})
	if err := s.Replace(ctx, cat); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	got, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("snapshot length = %d, want 2", got.Len())
	}

	first := got.Entries()[0]
	if first.Phrase != "soft cotton" || first.URL != "https://shop.example/soft-cotton" {
		t.Errorf("first entry = %+v", first)
	}
	if len(first.Keywords) != 2 {
		t.Errorf("keywords must be rebuilt from the stored phrase, got %v", first.Keywords)
	}
}

func TestReplaceDiscardsPrevious(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	first, _ := catalog.FromRows([]catalog.Row{
		{Phrase: "cotton", URL: "u1", Anchor: "a1"},
		{Phrase: "silk", URL: "u2", Anchor: "a2"},
	})
	if err := s.Replace(ctx, first); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	second, _ := catalog.FromRows([]catalog.Row{
		{Phrase: "linen", URL: "u3", Anchor: "a3"},
	})
	if err := s.Replace(ctx, second); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	got, _ := s.Snapshot(ctx)
	if got.Len() != 1 || got.Entries()[0].Phrase != "linen" {
		t.Errorf("previous catalog must be discarded, got %v", got.Entries())
	}
}

func TestPersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	s1, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	cat, _ := catalog.FromRows([]catalog.Row{
		{Phrase: "cotton", URL: "u1", Anchor: "a1"},
	})
	if err := s1.Replace(ctx, cat); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if err := s1.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	got, err := s2.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if got.Len() != 1 || got.Entries()[0].Phrase != "cotton" {
		t.Errorf("catalog must survive reopen, got %v", got.Entries())
	}
}
