// Package engine holds the pure session reducers and time predicates. Every
// exported operation takes the current state and an explicit now and returns
// the next state; nothing here performs I/O.
package engine

import (
	"github.com/google/uuid"

	"github.com/bnema/guide-cli/internal/domain"
	"github.com/bnema/guide-cli/internal/ports"
)

type Engine struct {
	library ports.ModuleLibrary
	policy  ports.IntensityPolicy
	newID   func() domain.InstanceID
}

type Option func(*Engine)

// WithIDGenerator replaces the uuid-based instance id source.
func WithIDGenerator(fn func() domain.InstanceID) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

func New(library ports.ModuleLibrary, policy ports.IntensityPolicy, opts ...Option) *Engine {
	if policy == nil {
		policy = domain.DefaultIntensityPolicy()
	}
	e := &Engine{
		library: library,
		policy:  policy,
		newID: func() domain.InstanceID {
			return domain.InstanceID(uuid.NewString())
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Library() ports.ModuleLibrary {
	return e.library
}

func (e *Engine) instantiate(module domain.LibraryModule, phase domain.Phase) domain.ModuleInstance {
	return domain.ModuleInstance{
		InstanceID:      e.newID(),
		LibraryID:       module.ID,
		Phase:           phase,
		Duration:        module.DefaultDuration,
		Status:          domain.ModuleUpcoming,
		IsBoosterModule: module.IsBooster,
	}
}

func (e *Engine) title(libraryID string) string {
	if e.library == nil {
		return libraryID
	}
	module, err := e.library.GetModuleByID(libraryID)
	if err != nil || module.Title == "" {
		return libraryID
	}
	return module.Title
}
