package refdata

import (
	"embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/localities.yaml
var dataFS embed.FS

const defaultPath = "data/localities.yaml"

// Provider answers region and locality lookups. It is read-only once built.
type Provider struct {
	regions    []string
	localities map[string][]string
}

type document struct {
	Regions map[string][]string `yaml:"regions"`
}

var (
	defaultOnce     sync.Once
	defaultProvider *Provider
	defaultErr      error
)

// Default returns the provider built from the embedded table
func Default() (*Provider, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		defaultProvider, defaultErr = Load(f)
	})
	return defaultProvider, defaultErr
}

// Load parses a YAML table of the form {regions: {region: [locality, ...]}}
func Load(r io.Reader) (*Provider, error) {
	if r == nil {
		return nil, fmt.Errorf("refdata: missing reader")
	}

	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("refdata: decode: %w", err)
	}

	p := &Provider{localities: make(map[string][]string, len(doc.Regions))}
	for region, localities := range doc.Regions {
		name := strings.TrimSpace(region)
		if name == "" {
			continue
		}
		cleaned := make([]string, 0, len(localities))
		seen := map[string]struct{}{}
		for _, l := range localities {
			l = strings.TrimSpace(l)
			if l == "" {
				continue
			}
			if _, dup := seen[l]; dup {
				continue
			}
			seen[l] = struct{}{}
			cleaned = append(cleaned, l)
		}
		p.localities[name] = cleaned
		p.regions = append(p.regions, name)
	}
	sort.Strings(p.regions)
	return p, nil
}

// Regions lists every region alphabetically
func (p *Provider) Regions() []string {
	return append([]string{}, p.regions...)
}

// Localities lists the localities of region in table order; unknown regions
// yield an empty list
func (p *Provider) Localities(region string) []string {
	return append([]string{}, p.localities[region]...)
}

// HasLocality reports whether locality belongs to region
func (p *Provider) HasLocality(region, locality string) bool {
	for _, l := range p.localities[region] {
		if l == locality {
			return true
		}
	}
	return false
}
