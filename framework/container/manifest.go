package container

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ── Declarative manifest ──────────────────────────────────────────────────────
//
// A manifest is the declarative counterpart of calling Bind at a call site:
// an ordered list of {token, dependencies, scope} records built at startup.
// Factories stay in code — the manifest only declares the wiring shape, so
// the graph can be reviewed (and diffed) without reading constructors.
//
//	providers:
//	  - token: config
//	    scope: singleton
//	  - token: db
//	    scope: singleton
//	    dependencies: [config]

// ManifestEntry declares one provider binding.
type ManifestEntry struct {
	Token        Token   `yaml:"token"`
	Dependencies []Token `yaml:"dependencies"`
	Scope        string  `yaml:"scope"`
}

// Manifest is an ordered set of provider declarations.
type Manifest struct {
	Providers []ManifestEntry `yaml:"providers"`
}

// ParseManifest decodes a YAML manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("container: parsing manifest: %w", err)
	}
	for _, e := range m.Providers {
		if e.Token == "" {
			return nil, fmt.Errorf("container: manifest entry missing token")
		}
		if e.Scope != "" {
			if _, ok := ParseScope(e.Scope); !ok {
				return nil, fmt.Errorf("container: manifest token %q has unknown scope %q", string(e.Token), e.Scope)
			}
		}
	}
	return &m, nil
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("container: reading manifest: %w", err)
	}
	return ParseManifest(data)
}

// BindManifest registers every manifest entry in declaration order, taking
// each entry's factory from factories. An entry with no scope defaults to
// Singleton. Registration failures (duplicate tokens) surface unchanged.
func (c *Container) BindManifest(m *Manifest, factories map[Token]Factory) error {
	for _, e := range m.Providers {
		build, ok := factories[e.Token]
		if !ok {
			return fmt.Errorf("container: manifest token %q has no factory", string(e.Token))
		}
		scope := Singleton
		if e.Scope != "" {
			scope, _ = ParseScope(e.Scope)
		}
		if err := c.Register(&Provider{
			Token:        e.Token,
			Dependencies: e.Dependencies,
			Scope:        scope,
			Build:        build,
		}); err != nil {
			return err
		}
	}
	return nil
}
