// Package port provides the default port-layer capabilities: a timeout-bounded
// lock for the scratch buffer and the process-level info strings.
package port

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/hyp3rd/spoollog"
)

// TimeLayout is the layout of the time field.
const TimeLayout = "2006-01-02 15:04:05"

// SemaphoreLocker is a binary semaphore whose Acquire gives up after a timeout.
type SemaphoreLocker struct {
	sem *semaphore.Weighted
}

// NewSemaphoreLocker returns an unlocked SemaphoreLocker.
func NewSemaphoreLocker() *SemaphoreLocker {
	return &SemaphoreLocker{sem: semaphore.NewWeighted(1)}
}

// Acquire waits up to timeout for the lock. A non-positive timeout only tries once.
func (l *SemaphoreLocker) Acquire(timeout time.Duration) bool {
	if l.sem.TryAcquire(1) {
		return true
	}

	if timeout <= 0 {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return l.sem.Acquire(ctx, 1) == nil
}

// Release unlocks. It must follow a successful Acquire.
func (l *SemaphoreLocker) Release() {
	l.sem.Release(1)
}

// SystemInfo reports wall-clock time, the process name and pid, and a fixed
// thread label. Go does not expose goroutine identity, so the thread field is
// whatever label the caller configures.
type SystemInfo struct {
	now     func() time.Time
	process string
	thread  string
}

// InfoOption customises SystemInfo.
type InfoOption func(*SystemInfo)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) InfoOption {
	return func(s *SystemInfo) {
		if now != nil {
			s.now = now
		}
	}
}

// WithThreadLabel sets the thread field.
func WithThreadLabel(label string) InfoOption {
	return func(s *SystemInfo) {
		s.thread = label
	}
}

// WithProcessLabel overrides the process field.
func WithProcessLabel(label string) InfoOption {
	return func(s *SystemInfo) {
		s.process = label
	}
}

// NewSystemInfo returns the default InfoProvider.
func NewSystemInfo(opts ...InfoOption) *SystemInfo {
	info := &SystemInfo{
		now:     time.Now,
		process: filepath.Base(os.Args[0]) + ":" + strconv.Itoa(os.Getpid()),
	}

	for _, opt := range opts {
		opt(info)
	}

	return info
}

// Time returns the current local time formatted with TimeLayout.
func (s *SystemInfo) Time() string {
	return s.now().Format(TimeLayout)
}

// Process returns the process label.
func (s *SystemInfo) Process() string {
	return s.process
}

// Thread returns the thread label.
func (s *SystemInfo) Thread() string {
	return s.thread
}

var (
	_ spoollog.Locker       = (*SemaphoreLocker)(nil)
	_ spoollog.InfoProvider = (*SystemInfo)(nil)
)
