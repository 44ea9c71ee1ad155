package spoollog

import "time"

// Device is the output stream a flush drains into. Open is called once per flush,
// followed by one Write per admitted record and a final Close.
type Device interface {
	Open() error
	Write(p []byte) error
	Close() error
}

// InfoProvider supplies the display strings for the time, process and thread fields.
type InfoProvider interface {
	Time() string
	Process() string
	Thread() string
}

// Locker guards the shared scratch buffer across composition and enqueue.
// Acquire waits at most timeout and reports whether the lock was obtained.
type Locker interface {
	Acquire(timeout time.Duration) bool
	Release()
}
