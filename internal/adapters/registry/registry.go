// Package registry serves the project list from YAML.
package registry

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/example/commandcenter/internal/models"
	"github.com/example/commandcenter/internal/ports/secondary"
)

//go:embed projects.yaml
var builtin []byte

type document struct {
	Projects []entry `yaml:"projects"`
}

// entry is a registry row. LastCommitAgo, when set, wins over LastCommit.
type entry struct {
	models.ProjectInfo `yaml:",inline"`
	LastCommitAgo      string `yaml:"lastCommitAgo"`
}

// Registry implements secondary.ProjectRegistry. It reads the override
// file when it exists and the built-in registry otherwise.
type Registry struct {
	path string
	now  func() time.Time
}

// New creates a registry. path may be empty.
func New(path string) *Registry {
	return &Registry{path: path, now: time.Now}
}

// ListProjects returns every project in registry order.
func (r *Registry) ListProjects(ctx context.Context) ([]models.ProjectInfo, error) {
	data := builtin
	if r.path != "" {
		override, err := os.ReadFile(r.path)
		switch {
		case err == nil:
			data = override
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("failed to read project registry: %w", err)
		}
	}
	return decode(data, r.now())
}

func decode(data []byte, now time.Time) ([]models.ProjectInfo, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse project registry: %w", err)
	}

	projects := make([]models.ProjectInfo, 0, len(doc.Projects))
	for _, e := range doc.Projects {
		p := e.ProjectInfo
		if e.LastCommitAgo != "" {
			ago, err := time.ParseDuration(e.LastCommitAgo)
			if err != nil {
				return nil, fmt.Errorf("project %s: bad lastCommitAgo %q: %w", p.ID, e.LastCommitAgo, err)
			}
			p.LastCommit = now.Add(-ago).UTC().Format(time.RFC3339)
		}
		if p.Technologies == nil {
			p.Technologies = []string{}
		}
		projects = append(projects, p)
	}
	return projects, nil
}

var _ secondary.ProjectRegistry = (*Registry)(nil)
