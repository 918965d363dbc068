package collision

import "time"

// Metrics accumulates sweep statistics across frames.
type Metrics struct {
	Sweeps               uint64
	PairsTested          uint64
	BroadPhaseRejected   uint64
	StaleHandles         uint64
	Contacts             uint64
	EventsDispatched     uint64
	TotalSweepTime       time.Duration
	AverageSweepTime     time.Duration
	MaxSweepTime         time.Duration
	LastSweepTime        time.Duration
	LastSweepObjectCount int
}

func (m *Metrics) record(r Report) {
	m.Sweeps++
	m.PairsTested += uint64(r.PairsTested)
	m.BroadPhaseRejected += uint64(r.BroadPhaseRejected)
	m.StaleHandles += uint64(r.StaleHandles)
	m.Contacts += uint64(r.Contacts)
	m.EventsDispatched += uint64(len(r.Events))
	m.TotalSweepTime += r.Duration
	m.AverageSweepTime = m.TotalSweepTime / time.Duration(m.Sweeps)
	if r.Duration > m.MaxSweepTime {
		m.MaxSweepTime = r.Duration
	}
	m.LastSweepTime = r.Duration
	m.LastSweepObjectCount = r.Objects
}
