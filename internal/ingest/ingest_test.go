package ingest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cryptogram/internal/content"
)

// memWriter collects upserts for assertions.
type memWriter struct {
	mu       sync.Mutex
	byID     map[string]content.Candidate
	failNext bool
}

func newMemWriter() *memWriter {
	return &memWriter{byID: make(map[string]content.Candidate)}
}

func (w *memWriter) UpsertCandidate(_ context.Context, c content.Candidate) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.failNext {
		w.failNext = false
		return false, errors.New("disk full")
	}
	if _, ok := w.byID[c.ID]; ok {
		return false, nil
	}
	w.byID[c.ID] = c
	return true, nil
}

const gateWorthy = "The river wound slowly through the valley while the morning light crept over the ridge"

func TestIngester_Run(t *testing.T) {
	ctx := context.Background()
	w := newMemWriter()
	ing := NewIngester(w, 2)

	doc := &Document{
		SourceTag: "quotes",
		Candidates: []CandidateDoc{
			{ID: "q-001", Text: gateWorthy, Popularity: 5},
			{ID: "q-002", Text: "Too short for the gate", Popularity: 1},
		},
	}

	report, err := ing.Run(ctx, doc)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Accepted)
	assert.Equal(t, 1, report.RejectedGate)
	assert.Equal(t, 0, report.Duplicates)
	assert.Equal(t, 0, report.Failed)

	got, ok := w.byID["q-001"]
	require.True(t, ok)
	assert.Equal(t, "quotes", got.SourceTag)
	assert.True(t, got.Classified(), "accepted candidates are classified on the way in")
	assert.True(t, got.CipherFriendly)
}

func TestIngester_ReingestIsIdempotent(t *testing.T) {
	ctx := context.Background()
	w := newMemWriter()
	ing := NewIngester(w, 2)

	doc := &Document{
		SourceTag:  "quotes",
		Candidates: []CandidateDoc{{ID: "q-001", Text: gateWorthy}},
	}

	first, err := ing.Run(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Accepted)

	second, err := ing.Run(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Accepted)
	assert.Equal(t, 1, second.Duplicates)
}

func TestIngester_StoreFailureCounted(t *testing.T) {
	ctx := context.Background()
	w := newMemWriter()
	w.failNext = true
	ing := NewIngester(w, 1)

	doc := &Document{
		SourceTag:  "quotes",
		Candidates: []CandidateDoc{{ID: "q-001", Text: gateWorthy}},
	}

	report, err := ing.Run(ctx, doc)
	require.NoError(t, err, "individual store failures never abort the batch")
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 0, report.Accepted)
}

func TestCandidateID_Stable(t *testing.T) {
	a := CandidateID("some sentence")
	b := CandidateID("some sentence")
	c := CandidateID("another sentence")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16)
}
