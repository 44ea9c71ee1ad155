// Package filter holds the two-stage record filter.
//
// The first stage (level and tag) runs before a line is composed so suppressed
// calls cost no allocation and no lock. The second stage (keyword) runs at
// flush time, so a keyword set after records were queued still applies to them.
package filter

import (
	"strings"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/spoollog"
	"github.com/hyp3rd/spoollog/internal/constants"
	"github.com/hyp3rd/spoollog/internal/skiptable"
)

// State is an immutable filter snapshot. Updates build a new State and swap it in,
// so readers never observe a keyword without its table.
type State struct {
	level   spoollog.Level
	tag     string
	keyword string
	table   *skiptable.Table
}

// New returns a state that admits everything up to level.
func New(level spoollog.Level) (*State, error) {
	if !level.IsValid() {
		return nil, ewrap.Wrap(spoollog.ErrInvalidLevel, "creating filter").
			WithMetadata("level", uint8(level))
	}

	return &State{level: level}, nil
}

// Level returns the inclusive severity threshold.
func (s *State) Level() spoollog.Level { return s.level }

// Tag returns the tag substring filter.
func (s *State) Tag() string { return s.tag }

// Keyword returns the keyword substring filter.
func (s *State) Keyword() string { return s.keyword }

// HasTable reports whether a skip table is held; true exactly when the keyword is set.
func (s *State) HasTable() bool { return s.table != nil }

// WithLevel returns a copy with a new threshold.
func (s *State) WithLevel(level spoollog.Level) (*State, error) {
	if !level.IsValid() {
		return nil, ewrap.Wrap(spoollog.ErrInvalidLevel, "setting filter level").
			WithMetadata("level", uint8(level))
	}

	next := *s
	next.level = level

	return &next, nil
}

// WithTag returns a copy with a new tag filter, truncated to the tag width.
func (s *State) WithTag(tag string) *State {
	next := *s
	next.tag = truncate(tag, constants.TagMaxLen)

	return &next
}

// WithKeyword returns a copy with a new keyword filter, truncated to the keyword
// width. An empty keyword clears the filter and releases the table.
func (s *State) WithKeyword(keyword string) *State {
	next := *s
	next.keyword = truncate(keyword, constants.KeywordMaxLen)
	next.table = nil

	if next.keyword != "" {
		// New only fails on an empty keyword, which is excluded above
		table, _ := skiptable.New(next.keyword)
		next.table = table
	}

	return &next
}

// AdmitForCompose reports whether a call at level with tag may be composed and queued.
func (s *State) AdmitForCompose(level spoollog.Level, tag string) bool {
	if level > s.level {
		return false
	}

	return strings.Contains(tag, s.tag)
}

// AdmitForFlush reports whether a queued record may be written to the device.
func (s *State) AdmitForFlush(text []byte) bool {
	if s.table == nil {
		return true
	}

	return s.table.Contains(text)
}

// Snapshot returns the filter fields.
func (s *State) Snapshot() spoollog.Filter {
	return spoollog.Filter{Level: s.level, Tag: s.tag, Keyword: s.keyword}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	return s[:limit]
}
