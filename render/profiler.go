package render

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Profiler accumulates named wall clock scopes and counters for one
// frame. The renderer resets it at the start of every frame and fills
// it phase by phase; commands print it at debug verbosity.
type Profiler struct {
	scopes map[string]time.Duration
	starts map[string]time.Time
	counts map[string]int
	order  []string
}

func NewProfiler() *Profiler {
	return &Profiler{
		scopes: make(map[string]time.Duration),
		starts: make(map[string]time.Time),
		counts: make(map[string]int),
	}
}

func (p *Profiler) BeginScope(name string) {
	p.starts[name] = time.Now()
	for _, n := range p.order {
		if n == name {
			return
		}
	}
	p.order = append(p.order, name)
}

func (p *Profiler) EndScope(name string) {
	if start, ok := p.starts[name]; ok {
		p.scopes[name] = time.Since(start)
	}
}

func (p *Profiler) SetCount(name string, count int) {
	p.counts[name] = count
}

// Scope returns the last recorded duration for a scope.
func (p *Profiler) Scope(name string) time.Duration {
	return p.scopes[name]
}

// Reset clears the recorded times but keeps the scope order, so the
// printed layout stays stable across frames.
func (p *Profiler) Reset() {
	for k := range p.scopes {
		p.scopes[k] = 0
	}
	for k := range p.counts {
		p.counts[k] = 0
	}
}

func (p *Profiler) String() string {
	var sb strings.Builder

	sb.WriteString("timings:\n")
	for _, name := range p.order {
		ms := float64(p.scopes[name].Microseconds()) / 1000.0
		sb.WriteString(fmt.Sprintf("  %-12s %.2f ms\n", name, ms))
	}

	if len(p.counts) > 0 {
		keys := make([]string, 0, len(p.counts))
		for k := range p.counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString("counters:\n")
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("  %-12s %d\n", k, p.counts[k]))
		}
	}

	return sb.String()
}
