// Package observability tracks in-flight store operations and process
// health for the client UI.
package observability

import (
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/process"
)

// Operation identifies a kind of asynchronous store operation. Progress is
// accounted per kind so overlapping operations never clear each other's
// indicator.
type Operation string

const (
	OpSync      Operation = "sync"
	OpSummaries Operation = "summaries"
	OpGenerate  Operation = "generate"
	OpDelete    Operation = "delete"
)

// Progress counts in-flight operations per kind.
type Progress struct {
	mu       sync.RWMutex
	log      *slog.Logger
	inflight map[Operation]int
}

func NewProgress(log *slog.Logger) *Progress {
	return &Progress{
		log:      log,
		inflight: make(map[Operation]int),
	}
}

// Begin marks one more instance of op as running.
func (p *Progress) Begin(op Operation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inflight[op]++
	p.log.Debug("Operation started", "op", op, "inflight", p.inflight[op])
}

// End marks one instance of op as finished. Calls are balanced with Begin;
// the counter never goes below zero.
func (p *Progress) End(op Operation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inflight[op] > 0 {
		p.inflight[op]--
	}
	p.log.Debug("Operation finished", "op", op, "inflight", p.inflight[op])
}

// InFlight returns the number of running instances of op.
func (p *Progress) InFlight(op Operation) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.inflight[op]
}

// Busy reports whether any asynchronous operation is running. This is the
// aggregate the UI used to read from a single shared boolean.
func (p *Progress) Busy() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, n := range p.inflight {
		if n > 0 {
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the per-operation counters.
func (p *Progress) Snapshot() map[Operation]int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[Operation]int, len(p.inflight))
	for op, n := range p.inflight {
		out[op] = n
	}
	return out
}

// ProcessStats is a point-in-time view of the client process.
type ProcessStats struct {
	CPUPercent float64
	RAMPercent float32
	AllocMemMb uint64
	NumGC      uint32
	Goroutines int
	At         time.Time
}

// ReadProcessStats samples the current process. Sampling errors degrade the
// affected field to zero rather than failing the whole snapshot.
func ReadProcessStats(log *slog.Logger) ProcessStats {
	stats := ProcessStats{
		Goroutines: runtime.NumGoroutine(),
		At:         time.Now(),
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	stats.AllocMemMb = m.Alloc / 1024 / 1024
	stats.NumGC = m.NumGC

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Debug("Error while retrieving process", "err", err)
		return stats
	}
	if cpu, err := p.CPUPercent(); err != nil {
		log.Debug("Error while finding process cpu usage", "err", err)
	} else {
		stats.CPUPercent = cpu
	}
	if ram, err := p.MemoryPercent(); err != nil {
		log.Debug("Error while finding process ram usage", "err", err)
	} else {
		stats.RAMPercent = ram
	}
	return stats
}
