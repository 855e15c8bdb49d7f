package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/cryptogram/internal/content"
)

// createTestStore creates an initialized store backed by a temp file.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := EnsureInitialized(context.Background(), s); err != nil {
		t.Fatalf("EnsureInitialized() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestCandidate creates a candidate with minimal required fields.
func createTestCandidate(id, sourceTag string) content.Candidate {
	return content.Candidate{
		ID:         id,
		Text:       "The quick brown fox jumps over the lazy dog and runs far away into hills",
		SourceTag:  sourceTag,
		Popularity: 10,
	}
}
