package scenario

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/coriolis-dev/eventgraph"
)

// Runner replays a loaded Scenario against a fresh EventGraph and records a
// per-event activation trace; callers decide where that trace goes (Run
// writes it to an io.Writer, RunEvent hands the caller the lines directly).
type Runner struct {
	eg     *eventgraph.EventGraph
	kinds  map[string]CellKind
	floats map[string]*eventgraph.Cell[float64]
	strs   map[string]*eventgraph.Cell[string]
	trace  []string
}

// NewRunner builds the cell and link graph described by sc. Link
// registration happens inside one initial event scope, so every link's
// first, spec-mandated activation (P6) runs and is captured in the
// returned trace for the "setup" pseudo-event.
func NewRunner(sc *Scenario) (*Runner, []string, error) {
	r := &Runner{
		eg:     eventgraph.NewEventGraph(),
		kinds:  make(map[string]CellKind, len(sc.Cells)),
		floats: make(map[string]*eventgraph.Cell[float64]),
		strs:   make(map[string]*eventgraph.Cell[string]),
	}

	for _, c := range sc.Cells {
		r.kinds[c.Name] = c.Kind
		switch c.Kind {
		case KindFloat:
			v, err := parseFloat(c.Initial)
			if err != nil {
				return nil, nil, fmt.Errorf("cell %q: %w", c.Name, err)
			}
			r.floats[c.Name] = eventgraph.NewCell(v)
		case KindString:
			r.strs[c.Name] = eventgraph.NewCell(c.Initial)
		}
	}

	var buildErr error
	_, _ = eventgraph.Event(r.eg, func(ctx *eventgraph.ProcessingContext) any {
		for _, l := range sc.Links {
			if err := r.registerLink(ctx, l); err != nil {
				buildErr = fmt.Errorf("link %q: %w", l.Name, err)
				return nil
			}
		}
		return nil
	})
	if buildErr != nil {
		return nil, nil, buildErr
	}

	setup := r.drainTrace()
	return r, setup, nil
}

func (r *Runner) registerLink(ctx *eventgraph.ProcessingContext, l LinkSpec) error {
	deps := make([]eventgraph.Dependency, len(l.Inputs))
	for i, name := range l.Inputs {
		d, err := r.dependency(name)
		if err != nil {
			return err
		}
		deps[i] = d
	}

	var out eventgraph.Dependency
	if l.Output != "" {
		d, err := r.dependency(l.Output)
		if err != nil {
			return err
		}
		out = d
	}

	switch l.Kind {
	case LinkCopy:
		if len(l.Inputs) != 1 {
			return fmt.Errorf("copy requires exactly one input")
		}
		if r.kinds[l.Inputs[0]] != r.kinds[l.Output] {
			return fmt.Errorf("copy requires input and output of the same kind")
		}
		name, output := l.Name, l.Output
		input := l.Inputs[0]
		switch r.kinds[output] {
		case KindFloat:
			eventgraph.Register(ctx, deps, out, func(ctx *eventgraph.ProcessingContext) {
				r.floats[output].Set(ctx, r.floats[input].Get())
				r.recordf(name, output)
			})
		case KindString:
			eventgraph.Register(ctx, deps, out, func(ctx *eventgraph.ProcessingContext) {
				r.strs[output].Set(ctx, r.strs[input].Get())
				r.records(name, output)
			})
		}

	case LinkSum:
		if r.kinds[l.Output] != KindFloat {
			return fmt.Errorf("sum requires a float output")
		}
		name, output, inputs := l.Name, l.Output, append([]string(nil), l.Inputs...)
		for _, in := range inputs {
			if r.kinds[in] != KindFloat {
				return fmt.Errorf("sum requires float inputs")
			}
		}
		eventgraph.Register(ctx, deps, out, func(ctx *eventgraph.ProcessingContext) {
			total := 0.0
			for _, in := range inputs {
				total += r.floats[in].Get()
			}
			r.floats[output].Set(ctx, total)
			r.recordf(name, output)
		})

	case LinkConcat:
		if r.kinds[l.Output] != KindString {
			return fmt.Errorf("concat requires a string output")
		}
		name, output, inputs := l.Name, l.Output, append([]string(nil), l.Inputs...)
		for _, in := range inputs {
			if r.kinds[in] != KindString {
				return fmt.Errorf("concat requires string inputs")
			}
		}
		eventgraph.Register(ctx, deps, out, func(ctx *eventgraph.ProcessingContext) {
			var sb strings.Builder
			for _, in := range inputs {
				sb.WriteString(r.strs[in].Get())
			}
			r.strs[output].Set(ctx, sb.String())
			r.records(name, output)
		})

	case LinkPrint:
		name, inputs := l.Name, append([]string(nil), l.Inputs...)
		eventgraph.Register(ctx, deps, nil, func(ctx *eventgraph.ProcessingContext) {
			parts := make([]string, len(inputs))
			for i, in := range inputs {
				parts[i] = r.format(in)
			}
			r.trace = append(r.trace, fmt.Sprintf("%s: %s", name, strings.Join(parts, ", ")))
		})
	}

	return nil
}

func (r *Runner) dependency(cellName string) (eventgraph.Dependency, error) {
	switch r.kinds[cellName] {
	case KindFloat:
		c, ok := r.floats[cellName]
		if !ok {
			return nil, fmt.Errorf("unknown cell %q", cellName)
		}
		return c, nil
	case KindString:
		c, ok := r.strs[cellName]
		if !ok {
			return nil, fmt.Errorf("unknown cell %q", cellName)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown cell %q", cellName)
	}
}

func (r *Runner) format(cellName string) string {
	switch r.kinds[cellName] {
	case KindFloat:
		return fmt.Sprintf("%s=%g", cellName, r.floats[cellName].Get())
	case KindString:
		return fmt.Sprintf("%s=%q", cellName, r.strs[cellName].Get())
	default:
		return cellName + "=?"
	}
}

func (r *Runner) recordf(linkName, output string) {
	r.trace = append(r.trace, fmt.Sprintf("%s -> %s", linkName, r.format(output)))
}

func (r *Runner) records(linkName, output string) {
	r.recordf(linkName, output)
}

func (r *Runner) drainTrace() []string {
	t := r.trace
	r.trace = nil
	return t
}

// RunEvent applies one EventSpec's writes inside a single event scope and
// returns the activation trace lines produced by that scope's propagation.
func (r *Runner) RunEvent(e EventSpec) ([]string, error) {
	var applyErr error
	eventgraph.Event(r.eg, func(ctx *eventgraph.ProcessingContext) any {
		for cellName, raw := range e.Sets {
			switch r.kinds[cellName] {
			case KindFloat:
				v, err := parseFloat(raw)
				if err != nil {
					applyErr = fmt.Errorf("event %q: cell %q: %w", e.Name, cellName, err)
					return nil
				}
				r.floats[cellName].Set(ctx, v)
			case KindString:
				r.strs[cellName].Set(ctx, raw)
			}
		}
		return nil
	})
	if applyErr != nil {
		return nil, applyErr
	}
	return r.drainTrace(), nil
}

// Run replays every event in sc in order, writing a labeled trace for each
// (including the implicit "setup" event covering link registration) to
// out.
func Run(sc *Scenario, out io.Writer) error {
	r, setup, err := NewRunner(sc)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "== setup ==\n")
	for _, line := range setup {
		fmt.Fprintf(out, "  %s\n", line)
	}

	for _, e := range sc.Events {
		lines, err := r.RunEvent(e)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "== %s ==\n", e.Name)
		for _, line := range lines {
			fmt.Fprintf(out, "  %s\n", line)
		}
	}
	return nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float %q: %w", s, err)
	}
	return v, nil
}
