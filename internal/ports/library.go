package ports

import "github.com/bnema/guide-cli/internal/domain"

// ModuleLibrary is the read-only module catalog.
type ModuleLibrary interface {
	GetModuleByID(id string) (domain.LibraryModule, error)
	List() []domain.LibraryModule
	Template(focus string) (domain.TimelineTemplate, bool)
}

type IntensityPolicy interface {
	TierFor(phase domain.Phase, intensity domain.Intensity) domain.IntensityTier
}
