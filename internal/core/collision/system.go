package collision

import "github.com/zeusync/collision/internal/core/systems"

// SystemName is the name the collision sweep registers under.
const SystemName = "collision"

// System runs TestCollisions once per tick in the pre-render phase, after
// every update phase has finalized positions.
type System struct {
	handler  *Handler
	priority systems.Priority
	last     Report
	onReport func(Report)
}

var _ systems.System = (*System)(nil)

// NewSystem wraps h. onReport, when non-nil, receives every sweep report.
func NewSystem(h *Handler, onReport func(Report)) *System {
	return &System{handler: h, priority: systems.PriorityLowest, onReport: onReport}
}

func (s *System) Name() string                           { return SystemName }
func (s *System) Priority() systems.Priority             { return s.priority }
func (s *System) ExecutionPhase() systems.ExecutionPhase { return systems.PhasePreRender }

func (s *System) Update(float64) error {
	s.last = s.handler.TestCollisions()
	if s.onReport != nil {
		s.onReport(s.last)
	}
	return nil
}

// LastReport returns the report of the most recent sweep.
func (s *System) LastReport() Report { return s.last }
