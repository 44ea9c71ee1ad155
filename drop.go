package spoollog

// DropReason tells why a record never reached the device.
type DropReason uint8

const (
	// DropLockTimeout means the scratch lock was not obtained in time.
	DropLockTimeout DropReason = iota
	// DropBudget means the pending queue had no room left for the record.
	DropBudget
	// DropOverflow means a raw line did not fit the scratch buffer.
	DropOverflow
	// DropFiltered means the keyword filter rejected the record at flush.
	DropFiltered
	// DropDeviceUnavailable means the device could not be opened and the queue was discarded.
	DropDeviceUnavailable
)

// String returns the reason name.
func (r DropReason) String() string {
	switch r {
	case DropLockTimeout:
		return "lock_timeout"
	case DropBudget:
		return "budget"
	case DropOverflow:
		return "overflow"
	case DropFiltered:
		return "filtered"
	case DropDeviceUnavailable:
		return "device_unavailable"
	default:
		return "unknown"
	}
}

// Drop describes a discarded record. Payload is only valid for the duration of the
// handler call; copy it to keep it. It is nil when the line was never composed.
type Drop struct {
	Reason  DropReason
	Payload []byte
}

// DropHandler receives drop notifications. It runs on the logging or flushing
// goroutine and must not call back into the engine.
type DropHandler func(Drop)
