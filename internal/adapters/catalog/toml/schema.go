package toml

import "fmt"

const currentCatalogVersion = 1

type catalogSchema struct {
	Version   int                            `toml:"version"`
	Policy    map[string]map[string]string   `toml:"policy"`
	Modules   []moduleSchema                 `toml:"modules"`
	Templates map[string]map[string][]string `toml:"templates"`
}

type moduleSchema struct {
	ID          string   `toml:"id"`
	Title       string   `toml:"title"`
	Description string   `toml:"description"`
	Content     string   `toml:"content"`
	Duration    string   `toml:"duration"`
	Intensity   string   `toml:"intensity"`
	Phases      []string `toml:"phases,omitempty"`
	Booster     bool     `toml:"booster,omitempty"`
}

func (s *catalogSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentCatalogVersion
	}
}

func (s catalogSchema) validateVersion() error {
	if s.Version > currentCatalogVersion {
		return fmt.Errorf("unsupported catalog schema version %d (current %d)", s.Version, currentCatalogVersion)
	}

	return nil
}
