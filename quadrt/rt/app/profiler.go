package app

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Profiler keeps the last CPU duration of named scopes in first-seen order.
type Profiler struct {
	Scopes     map[string]time.Duration
	StartTimes map[string]time.Time
	Order      []string

	now func() time.Time
}

func NewProfiler() *Profiler {
	return &Profiler{
		Scopes:     make(map[string]time.Duration),
		StartTimes: make(map[string]time.Time),
		Order:      make([]string, 0),
		now:        time.Now,
	}
}

func (p *Profiler) BeginScope(name string) {
	p.StartTimes[name] = p.now()
	if !slices.Contains(p.Order, name) {
		p.Order = append(p.Order, name)
	}
}

// EndScope records the time since the matching BeginScope. Unmatched calls are ignored.
func (p *Profiler) EndScope(name string) {
	start, ok := p.StartTimes[name]
	if !ok {
		return
	}

	p.Scopes[name] = p.now().Sub(start)
	delete(p.StartTimes, name)
}

// Measure runs fn inside the named scope.
func (p *Profiler) Measure(name string, fn func() error) error {
	p.BeginScope(name)
	defer p.EndScope(name)
	return fn()
}

func (p *Profiler) Duration(name string) time.Duration {
	return p.Scopes[name]
}

// Lines formats one "name: x.xx ms" line per scope.
func (p *Profiler) Lines() []string {
	lines := make([]string, 0, len(p.Order))
	for _, name := range p.Order {
		ms := float64(p.Scopes[name].Microseconds()) / 1000.0
		lines = append(lines, fmt.Sprintf("%-8s %.2f ms", name+":", ms))
	}
	return lines
}

func (p *Profiler) String() string {
	return strings.Join(p.Lines(), ", ")
}
