package systems

import (
	"errors"
	"fmt"
	"time"

	"github.com/zeusync/collision/internal/core/observability/log"
	"github.com/zeusync/collision/pkg/sequence"
)

var (
	ErrSystemExists   = errors.New("system already registered")
	ErrSystemNotFound = errors.New("system not found")
)

type entry struct {
	system  System
	enabled bool
	order   int
	metrics Metrics
}

// Runner executes registered systems once per tick, ordered by phase,
// then priority (higher first), then registration order.
// It is driven from a single goroutine.
type Runner struct {
	entries map[string]*entry
	order   []*entry
	nextSeq int
	logger  log.Log
	onError func(string, error)
}

func NewRunner(logger log.Log) *Runner {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Runner{
		entries: make(map[string]*entry),
		logger:  logger,
	}
}

// RegisterSystem adds s, enabled.
func (r *Runner) RegisterSystem(s System) error {
	if _, ok := r.entries[s.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrSystemExists, s.Name())
	}
	r.nextSeq++
	r.entries[s.Name()] = &entry{system: s, enabled: true, order: r.nextSeq}
	r.sort()
	r.logger.Debug("system registered",
		log.String("system", s.Name()),
		log.String("phase", s.ExecutionPhase().String()),
	)
	return nil
}

func (r *Runner) UnregisterSystem(name string) error {
	if _, ok := r.entries[name]; !ok {
		return fmt.Errorf("%w: %s", ErrSystemNotFound, name)
	}
	delete(r.entries, name)
	r.sort()
	return nil
}

func (r *Runner) GetSystem(name string) (System, bool) {
	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return e.system, true
}

func (r *Runner) HasSystem(name string) bool {
	_, ok := r.entries[name]
	return ok
}

func (r *Runner) EnableSystem(name string) error  { return r.setEnabled(name, true) }
func (r *Runner) DisableSystem(name string) error { return r.setEnabled(name, false) }

func (r *Runner) setEnabled(name string, enabled bool) error {
	e, ok := r.entries[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSystemNotFound, name)
	}
	e.enabled = enabled
	return nil
}

// OnSystemError installs a hook called for every failing Update.
func (r *Runner) OnSystemError(fn func(string, error)) {
	r.onError = fn
}

// GetExecutionOrder returns system names in the order Update runs them.
func (r *Runner) GetExecutionOrder() []string {
	return sequence.ToArray(sequence.From(r.order), func(e *entry) string { return e.system.Name() })
}

func (r *Runner) GetSystemMetrics(name string) (Metrics, bool) {
	e, ok := r.entries[name]
	if !ok {
		return Metrics{}, false
	}
	return e.metrics, true
}

// Update runs every enabled system once. A failing system does not stop
// the rest of the tick; all errors are joined.
func (r *Runner) Update(deltaTime float64) error {
	var all error
	for _, e := range r.order {
		if !e.enabled {
			continue
		}
		start := time.Now()
		err := e.system.Update(deltaTime)
		e.metrics.record(time.Since(start), err)
		if err != nil {
			name := e.system.Name()
			r.logger.Warn("system update failed", log.String("system", name), log.Error(err))
			if r.onError != nil {
				r.onError(name, err)
			}
			all = errors.Join(all, fmt.Errorf("%s: %w", name, err))
		}
	}
	return all
}

func (r *Runner) sort() {
	r.order = sequence.FromMap(r.entries).Sort(func(a, b *entry) bool {
		if pa, pb := a.system.ExecutionPhase(), b.system.ExecutionPhase(); pa != pb {
			return pa < pb
		}
		if pa, pb := a.system.Priority(), b.system.Priority(); pa != pb {
			return pa > pb
		}
		return a.order < b.order
	}).Collect()
}
