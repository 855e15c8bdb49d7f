package ingest

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// CandidateDoc is one candidate entry in an ingestion document.
type CandidateDoc struct {
	ID         string `yaml:"id" json:"id"`
	Text       string `yaml:"text" json:"text"`
	Popularity int64  `yaml:"popularity" json:"popularity"`
}

// Document is a batch of candidates sharing a source tag.
type Document struct {
	SourceTag  string         `yaml:"source_tag" json:"source_tag"`
	Candidates []CandidateDoc `yaml:"candidates" json:"candidates"`
}

// ParseDocument decodes a YAML candidate document and validates it
// against the embedded CUE schema. Schema rejection is fail-fast: a
// malformed document never reaches the quality gate.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse candidate document: %w", err)
	}
	if err := validateDocument(&doc); err != nil {
		return nil, fmt.Errorf("candidate document schema: %w", err)
	}
	return &doc, nil
}

// validateDocument unifies the document with #Document and requires the
// result to be concrete. Uses the CUE SDK's Go API directly, not a CLI
// subprocess.
func validateDocument(doc *Document) error {
	cctx := cuecontext.New()

	schema := cctx.CompileString(schemaCUE).LookupPath(cue.ParsePath("#Document"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	val := cctx.Encode(doc)
	if err := val.Err(); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	unified := schema.Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return err
	}
	return nil
}
