// Package skiptable implements the substring search used by the keyword filter.
//
// The search follows Sunday's algorithm: for every byte value the table stores
// how far the window may advance when that byte sits immediately after the
// current window. Bytes absent from the keyword let the window jump past them
// entirely. The table covers the whole byte range, so any input is indexable.
package skiptable

import (
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/spoollog"
)

// NotFound is returned by Index when the keyword does not occur.
const NotFound = -1

const alphabetSize = 256

// Table is a prepared keyword. It is immutable after New and safe for concurrent use.
type Table struct {
	keyword []byte
	shift   [alphabetSize]int
}

// New builds the skip table for keyword.
func New(keyword string) (*Table, error) {
	if keyword == "" {
		return nil, ewrap.Wrap(spoollog.ErrEmptyKeyword, "building skip table")
	}

	table := &Table{keyword: []byte(keyword)}
	size := len(table.keyword)

	for i := range table.shift {
		table.shift[i] = size + 1
	}

	// later occurrences overwrite earlier ones: the last occurrence wins
	for i, b := range table.keyword {
		table.shift[b] = size - i
	}

	return table, nil
}

// Keyword returns the keyword the table was built for.
func (t *Table) Keyword() string {
	return string(t.keyword)
}

// Shift returns the advance applied when b follows a mismatched window.
func (t *Table) Shift(b byte) int {
	return t.shift[b]
}

// Index returns the 1-based position of the first occurrence of the keyword in
// text, or NotFound.
func (t *Table) Index(text []byte) int {
	size := len(t.keyword)
	limit := len(text) - size

	for pos := 0; pos <= limit; {
		matched := 0
		for matched < size && text[pos+matched] == t.keyword[matched] {
			matched++
		}

		if matched == size {
			return pos + 1
		}

		next := pos + size
		if next >= len(text) {
			break
		}

		pos += t.shift[text[next]]
	}

	return NotFound
}

// Contains reports whether the keyword occurs in text.
func (t *Table) Contains(text []byte) bool {
	return t.Index(text) != NotFound
}
