// Package scenario loads and replays declarative event-graph scenarios: a
// small set of cells and links wired together with a handful of built-in
// link kinds, driven by a sequence of named events, each performing writes
// and printing the resulting activation trace. It exists for
// cmd/eventgraphctl and its own tests, grounded on the retrieval pack's
// YAML-driven conformance-scenario harness.
package scenario

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CellKind names the built-in cell value types a scenario can declare.
type CellKind string

const (
	KindFloat  CellKind = "float"
	KindString CellKind = "string"
)

// LinkKind names the built-in link callback shapes a scenario can wire.
// Each takes some inputs and, except Print, writes one output.
type LinkKind string

const (
	// LinkCopy passes its single float or string input straight to output.
	LinkCopy LinkKind = "copy"
	// LinkSum adds all float inputs into a float output.
	LinkSum LinkKind = "sum"
	// LinkConcat joins all string inputs into a string output.
	LinkConcat LinkKind = "concat"
	// LinkPrint has no output; it appends a trace line for every activation.
	LinkPrint LinkKind = "print"
)

// CellSpec declares one cell.
type CellSpec struct {
	Name    string   `yaml:"name"`
	Kind    CellKind `yaml:"kind"`
	Initial string   `yaml:"initial,omitempty"`
}

// LinkSpec declares one link: its declared inputs, built-in behavior, and
// optional output.
type LinkSpec struct {
	Name   string   `yaml:"name"`
	Kind   LinkKind `yaml:"kind"`
	Inputs []string `yaml:"inputs"`
	Output string   `yaml:"output,omitempty"`
}

// EventSpec is one event scope: a batch of cell writes applied together,
// after which the scenario runner prints the links that activated.
type EventSpec struct {
	Name string            `yaml:"name"`
	Sets map[string]string `yaml:"sets"`
}

// Scenario is the top-level document.
type Scenario struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Cells       []CellSpec  `yaml:"cells"`
	Links       []LinkSpec  `yaml:"links"`
	Events      []EventSpec `yaml:"events"`
}

// Load reads and strictly parses a scenario file: unknown fields (a typo'd
// key) are rejected rather than silently ignored.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	if err := sc.validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &sc, nil
}

func (sc *Scenario) validate() error {
	if sc.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(sc.Cells) == 0 {
		return fmt.Errorf("cells list is required and must be non-empty")
	}

	seen := make(map[string]bool, len(sc.Cells))
	for i, c := range sc.Cells {
		if c.Name == "" {
			return fmt.Errorf("cells[%d]: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("cells[%d]: duplicate cell name %q", i, c.Name)
		}
		seen[c.Name] = true
		switch c.Kind {
		case KindFloat, KindString:
		default:
			return fmt.Errorf("cells[%d]: unknown kind %q", i, c.Kind)
		}
	}

	for i, l := range sc.Links {
		if l.Name == "" {
			return fmt.Errorf("links[%d]: name is required", i)
		}
		switch l.Kind {
		case LinkCopy, LinkSum, LinkConcat, LinkPrint:
		default:
			return fmt.Errorf("links[%d]: unknown kind %q", i, l.Kind)
		}
		if l.Kind != LinkPrint && len(l.Inputs) == 0 {
			return fmt.Errorf("links[%d]: inputs is required for kind %q", i, l.Kind)
		}
		for _, in := range l.Inputs {
			if !seen[in] {
				return fmt.Errorf("links[%d]: input %q is not a declared cell", i, in)
			}
		}
		if l.Output != "" && !seen[l.Output] {
			return fmt.Errorf("links[%d]: output %q is not a declared cell", i, l.Output)
		}
	}

	for i, e := range sc.Events {
		if e.Name == "" {
			return fmt.Errorf("events[%d]: name is required", i)
		}
		for cellName := range e.Sets {
			if !seen[cellName] {
				return fmt.Errorf("events[%d]: set target %q is not a declared cell", i, cellName)
			}
		}
	}

	return nil
}
