package content

// Difficulty buckets a candidate by how hard its text is to solve.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Candidate is one piece of source text available for puzzle selection.
//
// Candidates are owned by an external content provider and are read-only
// to the engine. Immutable once ingested, except that the derived
// CipherFriendly/Difficulty flags may be backfilled by classification.
type Candidate struct {
	ID         string
	Text       string
	SourceTag  string
	Popularity int64

	// Derived flags. Difficulty is empty until the candidate has been
	// classified; when empty, CipherFriendly carries no meaning.
	CipherFriendly bool
	Difficulty     Difficulty
}

// Classified reports whether derived flags have been backfilled.
func (c Candidate) Classified() bool {
	return c.Difficulty != ""
}

// Friendly reports whether the candidate is cipher-friendly, using the
// backfilled flag when present and classifying the text otherwise.
// Either path yields the same answer: classification is pure.
func (c Candidate) Friendly() bool {
	if c.Classified() {
		return c.CipherFriendly
	}
	return Classify(c.Text).CipherFriendly
}

// WithClassification returns a copy of the candidate with derived flags
// backfilled from its text.
func (c Candidate) WithClassification() Candidate {
	cl := Classify(c.Text)
	c.CipherFriendly = cl.CipherFriendly
	c.Difficulty = cl.Difficulty
	return c
}
