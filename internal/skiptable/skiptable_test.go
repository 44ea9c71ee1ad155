package skiptable

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyp3rd/spoollog"
)

func naiveIndex(text, keyword string) int {
	idx := strings.Index(text, keyword)
	if idx < 0 {
		return NotFound
	}

	return idx + 1
}

func TestNewRejectsEmptyKeyword(t *testing.T) {
	table, err := New("")
	require.Error(t, err)
	require.ErrorIs(t, err, spoollog.ErrEmptyKeyword)
	assert.Nil(t, table)
}

func TestShiftValues(t *testing.T) {
	table, err := New("abca")
	require.NoError(t, err)

	assert.Equal(t, 1, table.Shift('a'), "last occurrence of 'a' is the final byte")
	assert.Equal(t, 3, table.Shift('b'))
	assert.Equal(t, 2, table.Shift('c'))
	assert.Equal(t, 5, table.Shift('z'), "absent bytes skip the whole window")
	assert.Equal(t, "abca", table.Keyword())
}

func TestIndex(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		keyword string
		want    int
	}{
		{"match at start", "conn up", "conn", 1},
		{"match in middle", "I/NET [12:00] : conn up", "conn", 17},
		{"match at end", "ab", "b", 2},
		{"whole text", "conn", "conn", 1},
		{"keyword longer than text", "up", "conn", NotFound},
		{"empty text", "", "x", NotFound},
		{"absent", "link down\r\n", "up", NotFound},
		{"first of several", "abab", "ab", 1},
		{"overlapping prefix", "aaab", "aab", 2},
		{"non printable bytes", "\x01\x02\xff\xfe", "\xff\xfe", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := New(tt.keyword)
			require.NoError(t, err)

			assert.Equal(t, tt.want, table.Index([]byte(tt.text)))
			assert.Equal(t, tt.want != NotFound, table.Contains([]byte(tt.text)))
		})
	}
}

func TestIndexAgreesWithNaiveScan(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	alphabets := []string{"ab", "abc ", "\x00\x7f\x80\xff", "abcdefghijklmnopqrstuvwxyz"}

	for iteration := range 5000 {
		alphabet := alphabets[iteration%len(alphabets)]

		text := randomString(rng, alphabet, rng.IntN(40))
		keyword := randomString(rng, alphabet, 1+rng.IntN(5))

		table, err := New(keyword)
		require.NoError(t, err)

		require.Equal(t, naiveIndex(text, keyword), table.Index([]byte(text)),
			"text=%q keyword=%q", text, keyword)
	}
}

func randomString(rng *rand.Rand, alphabet string, n int) string {
	var sb strings.Builder

	for range n {
		sb.WriteByte(alphabet[rng.IntN(len(alphabet))])
	}

	return sb.String()
}
