package progress

import (
	"sync"

	"github.com/agbru/fibbench/internal/logging"
)

// ProgressObserver receives progress updates for a given strategy index.
// Implementations must be safe for concurrent Update calls.
type ProgressObserver interface {
	Update(calcIndex int, progress float64)
}

// ProgressSubject is an observer registry. Strategies do not talk to
// observers directly; they receive a frozen callback bound to their index,
// so registration after a run starts cannot race with reporting.
type ProgressSubject struct {
	mu        sync.RWMutex
	observers []ProgressObserver
}

// NewProgressSubject creates an empty registry.
func NewProgressSubject() *ProgressSubject {
	return &ProgressSubject{}
}

// Register adds an observer. Safe for concurrent use.
func (s *ProgressSubject) Register(obs ProgressObserver) {
	if obs == nil {
		return
	}
	s.mu.Lock()
	s.observers = append(s.observers, obs)
	s.mu.Unlock()
}

// Freeze returns a callback bound to calcIndex over a snapshot of the
// observers registered so far. Observers added later are not notified by
// the returned callback.
func (s *ProgressSubject) Freeze(calcIndex int) ProgressCallback {
	s.mu.RLock()
	snapshot := make([]ProgressObserver, len(s.observers))
	copy(snapshot, s.observers)
	s.mu.RUnlock()

	return func(progress float64) {
		for _, obs := range snapshot {
			obs.Update(calcIndex, progress)
		}
	}
}

// ChannelObserver forwards updates onto a channel without ever blocking the
// calculation: when the channel is full the update is dropped. Progress is
// advisory; correctness never depends on delivery.
type ChannelObserver struct {
	ch chan<- ProgressUpdate
}

// NewChannelObserver creates an observer writing to ch.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// Update implements ProgressObserver.
func (o *ChannelObserver) Update(calcIndex int, progress float64) {
	if o.ch == nil {
		return
	}
	select {
	case o.ch <- ProgressUpdate{CalculatorIndex: calcIndex, Value: progress}:
	default:
	}
}

// LoggingObserver logs progress at decile boundaries, giving long runs a
// trace in the structured log without one line per update.
type LoggingObserver struct {
	mu     sync.Mutex
	log    logging.Logger
	lastPc map[int]int
}

// NewLoggingObserver creates an observer logging through log.
func NewLoggingObserver(log logging.Logger) *LoggingObserver {
	return &LoggingObserver{log: log, lastPc: make(map[int]int)}
}

// Update implements ProgressObserver.
func (o *LoggingObserver) Update(calcIndex int, progress float64) {
	if o.log == nil {
		return
	}
	decile := int(progress * 10)
	o.mu.Lock()
	last, seen := o.lastPc[calcIndex]
	if seen && decile <= last {
		o.mu.Unlock()
		return
	}
	o.lastPc[calcIndex] = decile
	o.mu.Unlock()

	o.log.Debug("progress",
		logging.Int("calculator", calcIndex),
		logging.Float64("fraction", progress),
	)
}

// NoOpObserver discards all updates.
type NoOpObserver struct{}

// NewNoOpObserver creates an observer that does nothing.
func NewNoOpObserver() *NoOpObserver { return &NoOpObserver{} }

// Update implements ProgressObserver.
func (o *NoOpObserver) Update(int, float64) {}
