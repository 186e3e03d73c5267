// Package migrate upgrades persisted blobs one version at a time. Each store
// owns a Chain; chains never cross stores.
package migrate

import (
	"fmt"

	"github.com/bnema/guide-cli/internal/domain"
)

// Step upgrades a decoded blob from version From to From+1. Steps only add
// defaulted fields or normalize representations.
type Step struct {
	From    int
	Name    string
	Upgrade func(state map[string]any) map[string]any
}

type Chain struct {
	name  string
	steps []Step
}

// Result is the outcome of a migration. State is nil when the stored
// version predates the chain and the caller must start fresh.
type Result struct {
	State    map[string]any
	From     int
	Version  int
	Migrated bool
	Reset    bool
}

func NewChain(name string, steps ...Step) (*Chain, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("chain %s: no steps", name)
	}
	for i, step := range steps {
		if step.Upgrade == nil {
			return nil, fmt.Errorf("chain %s: step %d has no upgrade", name, step.From)
		}
		if i > 0 && step.From != steps[i-1].From+1 {
			return nil, fmt.Errorf("chain %s: step %d follows %d", name, step.From, steps[i-1].From)
		}
	}
	return &Chain{name: name, steps: append([]Step(nil), steps...)}, nil
}

func mustChain(name string, steps ...Step) *Chain {
	chain, err := NewChain(name, steps...)
	if err != nil {
		panic(err)
	}
	return chain
}

func (c *Chain) Name() string {
	return c.name
}

// Current is the version every load ends at.
func (c *Chain) Current() int {
	return c.steps[len(c.steps)-1].From + 1
}

// Oldest is the lowest version that can still be upgraded.
func (c *Chain) Oldest() int {
	return c.steps[0].From
}

func (c *Chain) Migrate(version int, state map[string]any) (Result, error) {
	return c.MigrateTo(version, c.Current(), state)
}

// MigrateTo folds every step from version up to target over a copy of
// state. Versions older than the chain reset; newer ones are an error.
func (c *Chain) MigrateTo(version, target int, state map[string]any) (Result, error) {
	if version > c.Current() {
		return Result{}, fmt.Errorf("%s: %w %d (current is %d)", c.name, domain.ErrUnsupportedVersion, version, c.Current())
	}
	if target > c.Current() || target < version {
		return Result{}, fmt.Errorf("%s: cannot migrate from %d to %d", c.name, version, target)
	}
	if version < c.Oldest() {
		return Result{From: version, Version: c.Current(), Reset: true}, nil
	}

	out := copyMap(state)
	if out == nil {
		out = map[string]any{}
	}
	for _, step := range c.steps {
		if step.From < version || step.From >= target {
			continue
		}
		out = step.Upgrade(out)
	}
	return Result{State: out, From: version, Version: target, Migrated: target > version}, nil
}

func copyMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return copyMap(t)
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = copyValue(t[i])
		}
		return out
	default:
		return v
	}
}

func setDefault(m map[string]any, key string, value any) {
	if _, ok := m[key]; !ok {
		m[key] = value
	}
}

// child returns m[key] as an object, creating it when missing or malformed.
func child(m map[string]any, key string) map[string]any {
	if existing, ok := m[key].(map[string]any); ok {
		return existing
	}
	created := map[string]any{}
	m[key] = created
	return created
}

func eachObject(m map[string]any, key string, fn func(map[string]any)) {
	items, ok := m[key].([]any)
	if !ok {
		return
	}
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			fn(obj)
		}
	}
}
