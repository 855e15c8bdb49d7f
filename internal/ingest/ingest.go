package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync"

	"github.com/roach88/cryptogram/internal/content"
)

// idDomain prefixes content-addressed candidate ids derived from
// extracted text. The null separator prevents domain/data boundary
// ambiguity.
const idDomain = "cryptogram/candidate/v1"

// PoolWriter is the slice of the store the ingester needs.
// Implemented by *store.Store.
type PoolWriter interface {
	UpsertCandidate(ctx context.Context, c content.Candidate) (bool, error)
}

// Report tallies one ingestion run.
type Report struct {
	Accepted     int // newly inserted into the pool
	Duplicates   int // already present (idempotent re-ingest)
	RejectedGate int // failed the quality gate
	Failed       int // store errors
}

// Ingester admits candidates into the pool through a worker pool.
type Ingester struct {
	writer  PoolWriter
	workers int
}

// NewIngester creates an ingester writing through w with the given
// parallelism.
func NewIngester(w PoolWriter, workers int) *Ingester {
	if workers <= 0 {
		workers = 4
	}
	return &Ingester{writer: w, workers: workers}
}

// Run ingests every candidate of a parsed document and returns the
// tally. Individual rejections and store failures never abort the
// batch; they are counted and logged.
func (ing *Ingester) Run(ctx context.Context, doc *Document) (Report, error) {
	var (
		mu     sync.Mutex
		report Report
	)

	pool := NewWorkerPool(ing.workers, len(doc.Candidates))
	pool.Start(ctx)

	for _, cd := range doc.Candidates {
		cd := cd
		err := pool.Submit(func(ctx context.Context) error {
			outcome := ing.ingestOne(ctx, doc.SourceTag, cd)
			mu.Lock()
			switch outcome {
			case outcomeAccepted:
				report.Accepted++
			case outcomeDuplicate:
				report.Duplicates++
			case outcomeGateRejected:
				report.RejectedGate++
			case outcomeFailed:
				report.Failed++
			}
			mu.Unlock()
			return nil
		})
		if err != nil {
			return report, err
		}
	}
	pool.Close()

	slog.Info("ingestion run finished",
		"source", doc.SourceTag,
		"accepted", report.Accepted,
		"duplicates", report.Duplicates,
		"gate_rejected", report.RejectedGate,
		"failed", report.Failed,
	)
	return report, nil
}

type outcome int

const (
	outcomeAccepted outcome = iota
	outcomeDuplicate
	outcomeGateRejected
	outcomeFailed
)

// ingestOne gates, classifies, and upserts a single candidate.
func (ing *Ingester) ingestOne(ctx context.Context, sourceTag string, cd CandidateDoc) outcome {
	if err := content.IngestionGate(cd.Text); err != nil {
		slog.Debug("candidate rejected by quality gate",
			"candidate_id", cd.ID,
			"source", sourceTag,
			"reason", err,
		)
		return outcomeGateRejected
	}

	candidate := content.Candidate{
		ID:         cd.ID,
		Text:       content.Normalize(cd.Text),
		SourceTag:  sourceTag,
		Popularity: cd.Popularity,
	}.WithClassification()

	inserted, err := ing.writer.UpsertCandidate(ctx, candidate)
	if err != nil {
		slog.Error("candidate upsert failed",
			"candidate_id", cd.ID,
			"source", sourceTag,
			"error", err,
		)
		return outcomeFailed
	}
	if !inserted {
		return outcomeDuplicate
	}
	return outcomeAccepted
}

// CandidateID computes a content-addressed id for extracted text.
// Stable across runs: re-extracting the same page yields the same ids,
// which makes HTML ingestion idempotent.
func CandidateID(text string) string {
	h := sha256.New()
	h.Write([]byte(idDomain))
	h.Write([]byte{0x00})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))[:16]
}
