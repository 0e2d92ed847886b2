package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/user/newsscrape-service/internal/entity"
	"github.com/user/newsscrape-service/pkg/utils"
)

var (
	ErrNoSources     = errors.New("sources file lists no sources")
	ErrSourceName    = errors.New("source name is required")
	ErrDuplicateName = errors.New("duplicate source name")
	ErrSourceURL     = errors.New("source url must be absolute http(s)")
)

// SourcesFile is the YAML document describing what to scrape.
type SourcesFile struct {
	Keywords []string        `yaml:"keywords"`
	Sources  []entity.Source `yaml:"-"`
}

type rawSource struct {
	Name    string   `yaml:"name"`
	URLs    []string `yaml:"urls"`
	Enabled *bool    `yaml:"enabled"`
}

type rawSourcesFile struct {
	Keywords []string    `yaml:"keywords"`
	Sources  []rawSource `yaml:"sources"`
}

// LoadSources reads and validates a sources file.
func LoadSources(path string) (*SourcesFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}
	return ParseSources(data)
}

// ParseSources decodes a sources document. Sources default to enabled.
func ParseSources(data []byte) (*SourcesFile, error) {
	var raw rawSourcesFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode sources file: %w", err)
	}
	if len(raw.Sources) == 0 {
		return nil, ErrNoSources
	}

	out := &SourcesFile{Keywords: raw.Keywords}
	seen := make(map[string]struct{}, len(raw.Sources))
	for i, rs := range raw.Sources {
		name := strings.TrimSpace(rs.Name)
		if name == "" {
			return nil, fmt.Errorf("%w (entry %d)", ErrSourceName, i)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, name)
		}
		seen[name] = struct{}{}

		for _, u := range rs.URLs {
			if !utils.IsHTTP(u) {
				return nil, fmt.Errorf("%w: %s: %q", ErrSourceURL, name, u)
			}
		}

		enabled := true
		if rs.Enabled != nil {
			enabled = *rs.Enabled
		}
		out.Sources = append(out.Sources, entity.Source{Name: name, URLs: rs.URLs, Enabled: enabled})
	}
	return out, nil
}
