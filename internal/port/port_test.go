package port

import (
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemaphoreLockerTimeout(t *testing.T) {
	locker := NewSemaphoreLocker()

	require.True(t, locker.Acquire(10*time.Millisecond))

	start := time.Now()
	assert.False(t, locker.Acquire(20*time.Millisecond), "held lock must time out")
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)

	assert.False(t, locker.Acquire(0), "zero timeout only tries once")

	locker.Release()
	require.True(t, locker.Acquire(0))
	locker.Release()
}

func TestSemaphoreLockerHandOff(t *testing.T) {
	locker := NewSemaphoreLocker()
	require.True(t, locker.Acquire(time.Millisecond))

	acquired := make(chan bool, 1)

	go func() {
		acquired <- locker.Acquire(time.Second)
	}()

	time.Sleep(10 * time.Millisecond)
	locker.Release()

	require.True(t, <-acquired)
	locker.Release()
}

func TestSystemInfo(t *testing.T) {
	fixed := time.Date(2015, time.June, 4, 17, 9, 0, 0, time.Local)

	info := NewSystemInfo(WithClock(func() time.Time { return fixed }), WithThreadLabel("worker"))

	assert.Equal(t, "2015-06-04 17:09:00", info.Time())
	assert.Equal(t, "worker", info.Thread())
	assert.True(t, strings.HasSuffix(info.Process(), ":"+strconv.Itoa(os.Getpid())))

	custom := NewSystemInfo(WithProcessLabel("sensor"))
	assert.Equal(t, "sensor", custom.Process())
	assert.Empty(t, custom.Thread())
}
