package systems

import "time"

// System is a per-frame game logic processor run by a Runner.
type System interface {
	// Identity

	Name() string

	// Execution

	Update(deltaTime float64) error

	// Configuration

	Priority() Priority
	ExecutionPhase() ExecutionPhase
}

// Priority orders systems within a phase; higher runs first.
type Priority uint16

// System priorities
const (
	PriorityLowest  Priority = 200
	PriorityLow     Priority = 500
	PriorityNormal  Priority = 600
	PriorityHigh    Priority = 1000
	PriorityHighest Priority = 1300
)

// ExecutionPhase defines when a system runs
type ExecutionPhase uint8

const (
	PhasePreUpdate ExecutionPhase = iota
	PhaseUpdate
	PhasePostUpdate
	PhaseLateUpdate
	PhasePreRender
	PhaseRender
	PhasePostRender
)

var phaseNames = [...]string{
	PhasePreUpdate:  "pre-update",
	PhaseUpdate:     "update",
	PhasePostUpdate: "post-update",
	PhaseLateUpdate: "late-update",
	PhasePreRender:  "pre-render",
	PhaseRender:     "render",
	PhasePostRender: "post-render",
}

func (p ExecutionPhase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Metrics provides runtime metrics for a system
type Metrics struct {
	ExecutionCount       uint64
	TotalExecutionTime   time.Duration
	AverageExecutionTime time.Duration
	MaxExecutionTime     time.Duration
	ErrorCount           uint64
	LastError            error
	LastExecutionTime    time.Time
}

func (m *Metrics) record(took time.Duration, err error) {
	m.ExecutionCount++
	m.TotalExecutionTime += took
	m.AverageExecutionTime = m.TotalExecutionTime / time.Duration(m.ExecutionCount)
	if took > m.MaxExecutionTime {
		m.MaxExecutionTime = took
	}
	if err != nil {
		m.ErrorCount++
		m.LastError = err
	}
	m.LastExecutionTime = time.Now()
}
