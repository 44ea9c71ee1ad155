package queue

import (
	"runtime"
	"sync/atomic"
)

// spinGuard is a non-blocking critical section for pointer splicing. It is held
// only across a handful of assignments and never across formatting or I/O.
type spinGuard struct {
	state atomic.Bool
}

func (g *spinGuard) enter() {
	for !g.state.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
}

func (g *spinGuard) exit() {
	g.state.Store(false)
}
