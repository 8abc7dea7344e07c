package source

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nktomer45/planboard/internal/domain"
)

//go:embed fixture.yaml
var defaultFixture []byte

// Fixture is the on-disk shape of a static dataset.
type Fixture struct {
	Stores     []domain.Store                      `yaml:"stores"`
	SKUs       []domain.SKU                        `yaml:"skus"`
	Units      []domain.UnitEntry                  `yaml:"units"`
	Dimensions map[string][]domain.DimensionMember `yaml:"dimensions"`
}

// FixtureSource serves a static dataset, used for demos and tests.
type FixtureSource struct {
	fixture Fixture
}

// NewFixtureSource reads a YAML fixture from path, or the embedded default
// fixture when path is empty.
func NewFixtureSource(path string) (*FixtureSource, error) {
	data := defaultFixture
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read fixture %s: %w", path, err)
		}
		data = raw
	}

	f, err := ParseFixture(data)
	if err != nil {
		return nil, err
	}

	return &FixtureSource{fixture: f}, nil
}

// ParseFixture decodes YAML and applies the same fallbacks as remote sources.
func ParseFixture(data []byte) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("decode fixture: %w", err)
	}

	f.Stores = NormalizeStores(f.Stores)
	f.SKUs = NormalizeSKUs(f.SKUs)

	units := make([]domain.UnitEntry, 0, len(f.Units))
	for _, u := range f.Units {
		if u.StoreID == "" || u.SKUID == "" {
			continue
		}
		if u.Units < 0 {
			u.Units = 0
		}
		units = append(units, u)
	}
	f.Units = units

	if f.Dimensions == nil {
		f.Dimensions = map[string][]domain.DimensionMember{}
	}

	return f, nil
}

// MarshalFixture encodes a fixture back to YAML.
func MarshalFixture(f Fixture) ([]byte, error) {
	return yaml.Marshal(f)
}

func (s *FixtureSource) Name() string { return "fixture" }

func (s *FixtureSource) Stores(ctx context.Context) ([]domain.Store, error) {
	return append([]domain.Store(nil), s.fixture.Stores...), nil
}

func (s *FixtureSource) SKUs(ctx context.Context) ([]domain.SKU, error) {
	return append([]domain.SKU(nil), s.fixture.SKUs...), nil
}

func (s *FixtureSource) UnitEntries(ctx context.Context, calendar []domain.CalendarWeek) ([]domain.UnitEntry, error) {
	return append([]domain.UnitEntry(nil), s.fixture.Units...), nil
}

// Dimensions returns the generic dimension members declared by the fixture.
func (s *FixtureSource) Dimensions() map[string][]domain.DimensionMember {
	return s.fixture.Dimensions
}

// Fixture returns the parsed fixture.
func (s *FixtureSource) Fixture() Fixture {
	return s.fixture
}
