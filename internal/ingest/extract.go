package ingest

import (
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	readability "github.com/go-shiori/go-readability"

	"github.com/roach88/cryptogram/internal/content"
)

// reSentence splits extracted prose on sentence-ending punctuation
// followed by whitespace. Crude, but the quality gate downstream rejects
// fragments anyway.
var reSentence = regexp.MustCompile(`[.!?]+[\s\n]+`)

// ExtractDocument pulls readable text out of a saved HTML page and
// shapes it into an ingestion document. sourceTag labels the resulting
// candidates; pageURL resolves relative links during extraction and may
// point at where the page was originally fetched from.
//
// Candidate ids are content-addressed (CandidateID), so extracting the
// same page twice produces the same document and re-ingestion is a
// no-op. Sentences that obviously cannot survive the quality gate are
// dropped here to keep the batch small; the gate itself remains the
// authority.
func ExtractDocument(r io.Reader, pageURL, sourceTag string) (*Document, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("extract: parse page url: %w", err)
	}

	article, err := readability.FromReader(r, u)
	if err != nil {
		return nil, fmt.Errorf("extract readable text: %w", err)
	}

	doc := &Document{SourceTag: sourceTag}
	for _, sentence := range splitSentences(article.TextContent) {
		doc.Candidates = append(doc.Candidates, CandidateDoc{
			ID:   CandidateID(sentence),
			Text: sentence,
		})
	}
	if len(doc.Candidates) == 0 {
		return nil, fmt.Errorf("extract: no usable text in %s", pageURL)
	}
	return doc, nil
}

// splitSentences chunks prose into trimmed sentences, keeping the
// terminal punctuation and discarding fragments too short to ever pass
// the gate.
func splitSentences(text string) []string {
	var out []string
	rest := content.Normalize(text)
	for rest != "" {
		loc := reSentence.FindStringIndex(rest)
		var sentence string
		if loc == nil {
			sentence, rest = rest, ""
		} else {
			sentence, rest = rest[:loc[0]+1], rest[loc[1]:]
		}
		sentence = strings.TrimSpace(sentence)
		if len([]rune(sentence)) >= 50 {
			out = append(out, sentence)
		}
	}
	return out
}
