// Package toml loads the module library, phase-intensity policy, and timeline
// templates from a TOML catalog. A default catalog is embedded.
package toml

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bnema/guide-cli/internal/domain"
	"github.com/bnema/guide-cli/internal/ports"
)

// DefaultTemplate names the template used for an empty or unknown focus.
const DefaultTemplate = "default"

//go:embed default.toml
var defaultCatalog []byte

type Catalog struct {
	modules   map[string]domain.LibraryModule
	order     []string
	templates map[string]domain.TimelineTemplate
	policy    domain.PhaseIntensityPolicy
}

var (
	_ ports.ModuleLibrary   = (*Catalog)(nil)
	_ ports.IntensityPolicy = (*Catalog)(nil)
)

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads the catalog at path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var file catalogSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return nil, err
	}
	file.applyDefaults()

	catalog := &Catalog{
		modules:   make(map[string]domain.LibraryModule, len(file.Modules)),
		templates: make(map[string]domain.TimelineTemplate, len(file.Templates)),
	}

	var errs []error
	for _, entry := range file.Modules {
		module, err := fromModuleSchema(entry)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, exists := catalog.modules[module.ID]; exists {
			errs = append(errs, fmt.Errorf("module %q declared twice", module.ID))
			continue
		}
		catalog.modules[module.ID] = module
		catalog.order = append(catalog.order, module.ID)
	}

	policy, err := fromPolicySchema(file.Policy)
	if err != nil {
		errs = append(errs, err)
	}
	catalog.policy = policy

	for focus, phases := range file.Templates {
		template, err := catalog.fromTemplateSchema(focus, phases)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		catalog.templates[normalizeFocus(focus)] = template
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return catalog, nil
}

func (c *Catalog) GetModuleByID(id string) (domain.LibraryModule, error) {
	module, ok := c.modules[id]
	if !ok {
		return domain.LibraryModule{}, fmt.Errorf("%w: %s", domain.ErrModuleNotFound, id)
	}
	return cloneModule(module), nil
}

// List returns modules in catalog order.
func (c *Catalog) List() []domain.LibraryModule {
	modules := make([]domain.LibraryModule, 0, len(c.order))
	for _, id := range c.order {
		modules = append(modules, cloneModule(c.modules[id]))
	}
	return modules
}

// Template looks up the template for focus. An empty focus selects the
// default template.
func (c *Catalog) Template(focus string) (domain.TimelineTemplate, bool) {
	template, ok := c.templates[normalizeFocus(focus)]
	if !ok {
		return domain.TimelineTemplate{}, false
	}
	phases := make(map[domain.Phase][]string, len(template.Phases))
	for phase, ids := range template.Phases {
		phases[phase] = append([]string(nil), ids...)
	}
	return domain.TimelineTemplate{Focus: template.Focus, Phases: phases}, true
}

// Focuses lists the template names, sorted.
func (c *Catalog) Focuses() []string {
	focuses := make([]string, 0, len(c.templates))
	for focus := range c.templates {
		focuses = append(focuses, focus)
	}
	sort.Strings(focuses)
	return focuses
}

func (c *Catalog) TierFor(phase domain.Phase, intensity domain.Intensity) domain.IntensityTier {
	return c.policy.TierFor(phase, intensity)
}

func (c *Catalog) Policy() domain.PhaseIntensityPolicy {
	return c.policy
}

func fromModuleSchema(entry moduleSchema) (domain.LibraryModule, error) {
	id := strings.TrimSpace(entry.ID)
	if id == "" {
		return domain.LibraryModule{}, errors.New("module without id")
	}

	duration, err := time.ParseDuration(entry.Duration)
	if err != nil || duration <= 0 {
		return domain.LibraryModule{}, fmt.Errorf("module %q: invalid duration %q", id, entry.Duration)
	}

	intensity, err := domain.ParseIntensity(entry.Intensity)
	if err != nil {
		return domain.LibraryModule{}, fmt.Errorf("module %q: %w", id, err)
	}

	var phases []domain.Phase
	for _, raw := range entry.Phases {
		phase, err := domain.ParsePhase(raw)
		if err != nil || !phase.Scheduled() {
			return domain.LibraryModule{}, fmt.Errorf("module %q: phase %q cannot hold modules", id, raw)
		}
		phases = append(phases, phase)
	}

	if entry.Booster != (id == domain.BoosterLibraryID) {
		return domain.LibraryModule{}, fmt.Errorf("module %q: only %q may be the booster", id, domain.BoosterLibraryID)
	}

	title := strings.TrimSpace(entry.Title)
	if title == "" {
		title = id
	}

	return domain.LibraryModule{
		ID:              id,
		Title:           title,
		Description:     entry.Description,
		Content:         entry.Content,
		DefaultDuration: duration,
		Intensity:       intensity,
		AllowedPhases:   phases,
		IsBooster:       entry.Booster,
	}, nil
}

func fromPolicySchema(raw map[string]map[string]string) (domain.PhaseIntensityPolicy, error) {
	if len(raw) == 0 {
		return domain.DefaultIntensityPolicy(), nil
	}

	policy := make(domain.PhaseIntensityPolicy, len(raw))
	for rawPhase, tiers := range raw {
		phase, err := domain.ParsePhase(rawPhase)
		if err != nil || !phase.Scheduled() {
			return nil, fmt.Errorf("policy: phase %q cannot hold modules", rawPhase)
		}
		policy[phase] = make(map[domain.Intensity]domain.IntensityTier, len(tiers))
		for rawIntensity, rawTier := range tiers {
			intensity, err := domain.ParseIntensity(rawIntensity)
			if err != nil {
				return nil, fmt.Errorf("policy %s: %w", phase, err)
			}
			tier := domain.IntensityTier(strings.ToLower(strings.TrimSpace(rawTier)))
			switch tier {
			case domain.TierAllowed, domain.TierWarning, domain.TierBlocked:
			default:
				return nil, fmt.Errorf("policy %s: unknown tier %q", phase, rawTier)
			}
			policy[phase][intensity] = tier
		}
	}
	return policy, nil
}

func (c *Catalog) fromTemplateSchema(focus string, raw map[string][]string) (domain.TimelineTemplate, error) {
	template := domain.TimelineTemplate{
		Focus:  normalizeFocus(focus),
		Phases: make(map[domain.Phase][]string, len(raw)),
	}
	for rawPhase, ids := range raw {
		phase, err := domain.ParsePhase(rawPhase)
		if err != nil || !phase.Scheduled() {
			return domain.TimelineTemplate{}, fmt.Errorf("template %q: phase %q cannot hold modules", focus, rawPhase)
		}
		for _, id := range ids {
			if _, ok := c.modules[id]; !ok {
				return domain.TimelineTemplate{}, fmt.Errorf("template %q: %w: %s", focus, domain.ErrModuleNotFound, id)
			}
		}
		template.Phases[phase] = append([]string(nil), ids...)
	}
	return template, nil
}

func normalizeFocus(focus string) string {
	focus = strings.ToLower(strings.TrimSpace(focus))
	if focus == "" {
		return DefaultTemplate
	}
	return focus
}

func cloneModule(module domain.LibraryModule) domain.LibraryModule {
	if module.AllowedPhases != nil {
		module.AllowedPhases = append([]domain.Phase(nil), module.AllowedPhases...)
	}
	return module
}
