package grasp

import (
	"sort"
	"strings"
)

// Support says whether a policy implements a pass.
type Support bool

const (
	// Unsupported passes fail generation with ErrUnsupportedAxis.
	Unsupported Support = false
	// Supported passes are sampled.
	Supported Support = true
)

// Policy is an explicit capability table from pass to support.
type Policy struct {
	name  string
	table map[Pass]Support
}

// NewPolicy copies table into a named policy. Passes missing from the table are unsupported.
func NewPolicy(name string, table map[Pass]Support) Policy {
	copied := make(map[Pass]Support, len(table))
	for pass, support := range table {
		copied[pass] = support
	}
	return Policy{name: name, table: copied}
}

var (
	// DefaultPolicy samples both lateral and depth axes from either side.
	DefaultPolicy = NewPolicy("default", map[Pass]Support{
		{AxisX, Up}:   Supported,
		{AxisX, Down}: Supported,
		{AxisY, Up}:   Supported,
		{AxisY, Down}: Supported,
		{AxisZ, Up}:   Unsupported,
		{AxisZ, Down}: Unsupported,
	})

	// ReferencePolicy only samples the lateral axis from below.
	ReferencePolicy = NewPolicy("reference", map[Pass]Support{
		{AxisX, Up}:   Unsupported,
		{AxisX, Down}: Unsupported,
		{AxisY, Up}:   Unsupported,
		{AxisY, Down}: Supported,
		{AxisZ, Up}:   Unsupported,
		{AxisZ, Down}: Unsupported,
	})
)

// PolicyByName returns the builtin policy called name.
func PolicyByName(name string) (Policy, bool) {
	switch strings.ToLower(name) {
	case "", DefaultPolicy.name:
		return DefaultPolicy, true
	case ReferencePolicy.name:
		return ReferencePolicy, true
	default:
		return Policy{}, false
	}
}

// Name returns the policy name.
func (p Policy) Name() string {
	return p.name
}

// Supports reports whether pass is enabled in the table and has a composition rule.
func (p Policy) Supports(pass Pass) bool {
	if _, ok := axisRules[pass.Axis]; !ok {
		return false
	}
	return bool(p.table[pass])
}

// SupportedPasses lists the runnable passes in axis, then direction order.
func (p Policy) SupportedPasses() []Pass {
	var passes []Pass
	for pass := range p.table {
		if p.Supports(pass) {
			passes = append(passes, pass)
		}
	}
	sort.Slice(passes, func(i, j int) bool {
		if passes[i].Axis != passes[j].Axis {
			return passes[i].Axis < passes[j].Axis
		}
		return passes[i].Direction < passes[j].Direction
	})
	return passes
}

// check fails on the first pass the policy cannot run.
func (p Policy) check(passes []Pass) error {
	for _, pass := range passes {
		if !p.Supports(pass) {
			return NewUnsupportedAxisError(pass)
		}
	}
	return nil
}
