package cipher

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// Golden fixtures freeze the hash and generator constants. These files are
// the shared cross-implementation contract: an implementation in any
// language must reproduce them byte-for-byte to be considered
// interchangeable with this one.
//
// To regenerate after an intentional constant change (which invalidates
// every existing puzzle), run:
//
//	go test ./internal/cipher -update

func TestGolden_SubstitutionMaps(t *testing.T) {
	seeds := []string{
		"cryptogram-2026-02-05-daily-2026-02-05",
		"cryptogram-2026-02-06-daily-2026-02-06",
		"cryptogram-practice-alpha",
		"fixture-seed-1",
		"fixture-seed-2",
	}

	var b strings.Builder
	for _, seed := range seeds {
		m, err := Generate(seed)
		require.NoError(t, err)
		fmt.Fprintf(&b, "seed=%s hash=%d table=%s\n", seed, Hash32(seed), m.EncodeTable())
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "substitution_maps", []byte(b.String()))
}

func TestGolden_EncodedTexts(t *testing.T) {
	cases := []struct {
		seed  string
		plain string
	}{
		{"cryptogram-2026-02-05-daily-2026-02-05", "HELLO WORLD"},
		{"cryptogram-2026-02-05-daily-2026-02-05", "The quick brown fox jumps over the lazy dog"},
		{"cryptogram-practice-alpha", "Practice makes perfect, eventually."},
	}

	var b strings.Builder
	for _, tc := range cases {
		m, err := Generate(tc.seed)
		require.NoError(t, err)
		fmt.Fprintf(&b, "seed=%s plain=%s cipher=%s\n",
			tc.seed, strings.ToUpper(tc.plain), Encode(tc.plain, m))
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "encoded_texts", []byte(b.String()))
}
