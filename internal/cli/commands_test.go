package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cryptogram/internal/content"
	"github.com/roach88/cryptogram/internal/puzzle"
	"github.com/roach88/cryptogram/internal/selection"
	"github.com/roach88/cryptogram/internal/store"
)

// ============================================================================
// Test Helpers
// ============================================================================

// seedTestDB creates a temp database holding a small candidate pool and
// returns its path.
func seedTestDB(t *testing.T) string {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "cryptogram.db")
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	require.NoError(t, store.EnsureInitialized(ctx, st))

	texts := map[string]string{
		"c-alpha": "the quick brown fox jumps over the lazy dog",
		"c-bravo": "a journey of a thousand miles begins with a single step",
		"c-delta": "all that glitters is not gold but it shines anyway",
	}
	for id, text := range texts {
		c := content.Candidate{ID: id, Text: text, SourceTag: "proverbs"}.WithClassification()
		_, err := st.UpsertCandidate(ctx, c)
		require.NoError(t, err)
	}
	return dbPath
}

// runCommand executes the CLI with the given args and returns stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// decodeResponse unmarshals a JSON CLI response and re-marshals its Data
// payload into v.
func decodeResponse(t *testing.T, output string, v interface{}) {
	t.Helper()

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	require.Equal(t, "ok", resp.Status)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}

// ============================================================================
// Daily Command
// ============================================================================

func TestDailyCommand_Deterministic(t *testing.T) {
	dbPath := seedTestDB(t)

	out1, err := runCommand(t, "--db", dbPath, "--format", "json", "daily", "--date", "2026-02-05")
	require.NoError(t, err)

	var p1 puzzle.Puzzle
	decodeResponse(t, out1, &p1)
	assert.Equal(t, "daily-2026-02-05", p1.ID)
	assert.Equal(t, "2026-02-05", p1.Date)
	assert.Equal(t, puzzle.ModeDaily, p1.Mode)
	assert.NotEmpty(t, p1.CipherText)
	assert.NotEqual(t, p1.PlainText, p1.CipherText)

	// A second invocation serves the cached puzzle byte-for-byte.
	out2, err := runCommand(t, "--db", dbPath, "--format", "json", "daily", "--date", "2026-02-05")
	require.NoError(t, err)

	var p2 puzzle.Puzzle
	decodeResponse(t, out2, &p2)
	assert.Equal(t, p1, p2)
}

func TestDailyCommand_InvalidDate(t *testing.T) {
	dbPath := seedTestDB(t)

	_, err := runCommand(t, "--db", dbPath, "daily", "--date", "02/05/2026")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestDailyCommand_EmptyPool(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")

	_, err := runCommand(t, "--db", dbPath, "daily", "--date", "2026-02-05")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

// ============================================================================
// Practice Command
// ============================================================================

func TestPracticeCommand_Deterministic(t *testing.T) {
	dbPath := seedTestDB(t)

	out1, err := runCommand(t, "--db", dbPath, "--format", "json", "practice", "--seed", "42")
	require.NoError(t, err)
	out2, err := runCommand(t, "--db", dbPath, "--format", "json", "practice", "--seed", "42")
	require.NoError(t, err)

	var p1, p2 puzzle.Puzzle
	decodeResponse(t, out1, &p1)
	decodeResponse(t, out2, &p2)

	assert.Equal(t, puzzle.ModePractice, p1.Mode)
	assert.Equal(t, "cryptogram-practice-42", p1.Seed)

	// Same seed reproduces the same content; only the puzzle id differs.
	assert.Equal(t, p1.CipherText, p2.CipherText)
	assert.Equal(t, p1.PlainText, p2.PlainText)
	assert.Equal(t, p1.SourceCandidateID, p2.SourceCandidateID)
	assert.NotEqual(t, p1.ID, p2.ID)
}

func TestPracticeCommand_UnknownSourceTag(t *testing.T) {
	dbPath := seedTestDB(t)

	_, err := runCommand(t, "--db", dbPath, "practice", "--seed", "42", "--source", "nonexistent")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestPracticeCommand_WidenFallsBackToFullPool(t *testing.T) {
	dbPath := seedTestDB(t)

	out, err := runCommand(t, "--db", dbPath, "--format", "json",
		"practice", "--seed", "42", "--source", "nonexistent", "--widen")
	require.NoError(t, err)

	var p puzzle.Puzzle
	decodeResponse(t, out, &p)
	assert.Equal(t, puzzle.ModePractice, p.Mode)
	assert.NotEmpty(t, p.SourceCandidateID)
}

// ============================================================================
// Score Command
// ============================================================================

func TestScoreCommand(t *testing.T) {
	out, err := runCommand(t, "--format", "json", "score", "--elapsed", "0")
	require.NoError(t, err)

	var result ScoreResult
	decodeResponse(t, out, &result)
	assert.Equal(t, 15000, result.Score)
}

func TestScoreCommand_WithPenalties(t *testing.T) {
	out, err := runCommand(t, "--format", "json", "score",
		"--elapsed", "600", "--hints", "2", "--mistakes", "5")
	require.NoError(t, err)

	var result ScoreResult
	decodeResponse(t, out, &result)
	assert.Equal(t, 8677, result.Score)
}

func TestScoreCommand_NegativeInput(t *testing.T) {
	_, err := runCommand(t, "score", "--elapsed", "-1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

// ============================================================================
// Validate Command
// ============================================================================

func writeValidateFixtures(t *testing.T, guesses map[string]string) (string, string) {
	t.Helper()

	dir := t.TempDir()

	asm := puzzle.NewAssembler(puzzle.NewFixedGenerator("fixed-id"))
	pool := []content.Candidate{{ID: "c-hello", Text: "HELLO WORLD"}}
	p, err := asm.AssembleDaily(context.Background(), "2026-02-05", pool, selection.NewMemoryTracker())
	require.NoError(t, err)

	puzzlePath := filepath.Join(dir, "puzzle.json")
	data, err := json.Marshal(p)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(puzzlePath, data, 0o644))

	guessesPath := filepath.Join(dir, "guesses.json")
	data, err = json.Marshal(guesses)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(guessesPath, data, 0o644))

	return puzzlePath, guessesPath
}

func TestValidateCommand_Solved(t *testing.T) {
	// Full decode mapping for the 2026-02-05 cipher of "HELLO WORLD"
	guesses := map[string]string{
		"Z": "H", "Q": "E", "U": "L", "N": "O",
		"B": "W", "E": "R", "M": "D",
	}
	puzzlePath, guessesPath := writeValidateFixtures(t, guesses)

	out, err := runCommand(t, "--format", "json", "validate", puzzlePath, guessesPath)
	require.NoError(t, err)

	var result puzzle.ValidationResult
	decodeResponse(t, out, &result)
	assert.True(t, result.IsSolved)
	assert.Equal(t, 7, result.TotalCount)
	assert.Equal(t, 7, result.CorrectCount)
}

func TestValidateCommand_NotSolved(t *testing.T) {
	guesses := map[string]string{"Z": "H", "Q": "X"}
	puzzlePath, guessesPath := writeValidateFixtures(t, guesses)

	_, err := runCommand(t, "--format", "json", "validate", puzzlePath, guessesPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestValidateCommand_MissingFile(t *testing.T) {
	_, err := runCommand(t, "validate", "/nonexistent/puzzle.json", "/nonexistent/guesses.json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

// ============================================================================
// Classify Command
// ============================================================================

func TestClassifyCommand_Text(t *testing.T) {
	out, err := runCommand(t, "--format", "json", "classify",
		"the", "quick", "brown", "fox", "jumps", "over", "the", "lazy", "dog")
	require.NoError(t, err)

	var result ClassifyResult
	decodeResponse(t, out, &result)
	assert.True(t, result.CipherFriendly)
	assert.Equal(t, "easy", result.Difficulty)
}

func TestClassifyCommand_EmptyText(t *testing.T) {
	_, err := runCommand(t, "classify")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestClassifyCommand_Backfill(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cryptogram.db")
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, store.EnsureInitialized(ctx, st))

	// Unclassified candidate, as left behind by an old ingester
	_, err = st.UpsertCandidate(ctx, content.Candidate{
		ID:   "c-legacy",
		Text: "a stitch in time saves nine they always said",
	})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, err := runCommand(t, "--db", dbPath, "--format", "json", "classify", "--backfill")
	require.NoError(t, err)

	var result BackfillResult
	decodeResponse(t, out, &result)
	assert.Equal(t, 1, result.Examined)
	assert.Equal(t, 1, result.Classified)

	// Second run finds nothing left to classify
	out, err = runCommand(t, "--db", dbPath, "--format", "json", "classify", "--backfill")
	require.NoError(t, err)
	decodeResponse(t, out, &result)
	assert.Equal(t, 0, result.Classified)
}
