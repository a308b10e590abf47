package integration

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/HartBrook/toonify/internal/config"
)

// Fixture represents a test scenario loaded from YAML.
type Fixture struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Setup       FixtureSetup      `yaml:"setup"`
	Stdin       string            `yaml:"stdin"`
	Args        []string          `yaml:"args"`
	Assertions  FixtureAssertions `yaml:"assertions"`
}

// FixtureSetup defines the test environment setup.
type FixtureSetup struct {
	Files  map[string]string `yaml:"files"`
	Config *ConfigSetup      `yaml:"config"`
}

// ConfigSetup overrides fields of the default config.yaml.
type ConfigSetup struct {
	Format   string `yaml:"format"`
	Stats    *bool  `yaml:"stats"`
	MemoSize *int   `yaml:"memo_size"`
	Debounce string `yaml:"debounce"`
}

// FixtureAssertions defines what to verify.
type FixtureAssertions struct {
	Output         *string           `yaml:"output"`
	Contains       []string          `yaml:"contains"`
	NotContains    []string          `yaml:"not_contains"`
	StderrContains []string          `yaml:"stderr_contains"`
	ErrorCode      string            `yaml:"error_code"`
	Files          map[string]string `yaml:"files"`
}

// LoadFixture loads a fixture from a YAML file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, err
	}

	if err := fixture.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fixture %s: %w", path, err)
	}

	return &fixture, nil
}

// Validate checks that the fixture has all required fields.
func (f *Fixture) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("missing required field: name")
	}
	if len(f.Args) == 0 {
		return fmt.Errorf("missing required field: args")
	}
	return nil
}

// LoadAllFixtures loads all fixtures from a directory.
func LoadAllFixtures(dir string) ([]*Fixture, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var fixtures []*Fixture
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) != ".yaml" && filepath.Ext(name) != ".yml" {
			continue
		}

		fixture, err := LoadFixture(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		fixtures = append(fixtures, fixture)
	}

	return fixtures, nil
}

// ToConfig applies the overrides to a default config.
func (c *ConfigSetup) ToConfig() *config.Config {
	cfg := config.Default()
	if c.Format != "" {
		cfg.Format = c.Format
	}
	if c.Stats != nil {
		cfg.Stats = *c.Stats
	}
	if c.MemoSize != nil {
		cfg.Memo.Size = *c.MemoSize
	}
	if c.Debounce != "" {
		cfg.Watch.Debounce = c.Debounce
	}
	return cfg
}

// ApplySetup applies the fixture setup to a test environment.
func ApplySetup(env *TestEnv, setup FixtureSetup) error {
	for relPath, content := range setup.Files {
		if _, err := env.WriteFile(relPath, content); err != nil {
			return err
		}
	}

	if setup.Config != nil {
		if err := env.SetupConfig(setup.Config.ToConfig()); err != nil {
			return err
		}
	}

	return nil
}

// ExpandArgs returns the fixture args with $WORK substituted.
func (f *Fixture) ExpandArgs(env *TestEnv) []string {
	args := make([]string, len(f.Args))
	for i, arg := range f.Args {
		args[i] = env.Expand(arg)
	}
	return args
}
