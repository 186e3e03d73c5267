package domain

import (
	"fmt"
	"sort"
)

// Timeline is the per-phase module queue plus the append-only history.
type Timeline struct {
	Modules   []ModuleInstance
	History   []HistoryRecord
	OpenSpace bool
}

func (t Timeline) Clone() Timeline {
	out := Timeline{OpenSpace: t.OpenSpace}
	if t.Modules != nil {
		out.Modules = append([]ModuleInstance(nil), t.Modules...)
	}
	if t.History != nil {
		out.History = append([]HistoryRecord(nil), t.History...)
	}
	return out
}

// InPhase returns copies of the phase's modules sorted by order.
func (t Timeline) InPhase(phase Phase) []ModuleInstance {
	modules := make([]ModuleInstance, 0)
	for _, module := range t.Modules {
		if module.Phase == phase {
			modules = append(modules, module)
		}
	}
	sort.SliceStable(modules, func(i, j int) bool {
		return modules[i].Order < modules[j].Order
	})
	return modules
}

func (t Timeline) Index(id InstanceID) int {
	for i := range t.Modules {
		if t.Modules[i].InstanceID == id {
			return i
		}
	}
	return -1
}

func (t Timeline) Find(id InstanceID) (ModuleInstance, bool) {
	idx := t.Index(id)
	if idx < 0 {
		return ModuleInstance{}, false
	}
	return t.Modules[idx], true
}

// Active returns the active module of a phase. The booster placeholder is
// never reported as active.
func (t Timeline) Active(phase Phase) (ModuleInstance, bool) {
	for _, module := range t.Modules {
		if module.Phase == phase && module.Status == ModuleActive && !module.IsBoosterModule {
			return module, true
		}
	}
	return ModuleInstance{}, false
}

// NextUpcoming returns the lowest-ordered upcoming module of a phase,
// skipping the booster placeholder.
func (t Timeline) NextUpcoming(phase Phase) (ModuleInstance, bool) {
	for _, module := range t.InPhase(phase) {
		if module.Status == ModuleUpcoming && !module.IsBoosterModule {
			return module, true
		}
	}
	return ModuleInstance{}, false
}

func (t Timeline) HasBooster() bool {
	for _, module := range t.Modules {
		if module.IsBoosterModule {
			return true
		}
	}
	return false
}

func (t Timeline) Len() int {
	return len(t.Modules)
}

// Reindex renumbers a phase to 0..n-1 keeping the current relative order.
func (t *Timeline) Reindex(phase Phase) {
	type slot struct {
		idx   int
		order int
	}
	slots := make([]slot, 0)
	for i, module := range t.Modules {
		if module.Phase == phase {
			slots = append(slots, slot{idx: i, order: module.Order})
		}
	}
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].order < slots[j].order
	})
	for order, s := range slots {
		t.Modules[s.idx].Order = order
	}
}

// Validate checks the structural invariants of the queue.
func (t Timeline) Validate() error {
	boosters := 0
	for _, phase := range TimelinePhases {
		active := 0
		for order, module := range t.InPhase(phase) {
			if module.Order != order {
				return fmt.Errorf("phase %s: order %d at position %d", phase, module.Order, order)
			}
			if module.Status == ModuleActive {
				active++
			}
		}
		if active > 1 {
			return fmt.Errorf("phase %s: %d active modules", phase, active)
		}
	}
	for _, module := range t.Modules {
		if !module.Phase.Scheduled() {
			return fmt.Errorf("module %s: %w %q", module.InstanceID, ErrInvalidPhase, module.Phase)
		}
		if module.IsBoosterModule {
			boosters++
		}
	}
	if boosters > 1 {
		return ErrDuplicateBooster
	}
	return nil
}
