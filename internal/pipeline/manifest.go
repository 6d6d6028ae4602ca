package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the hook catalog a source ships at its repository root.
const ManifestFile = ".pre-commit-hooks.yaml"

// ManifestHook describes one hook a source provides. Config entries override
// any of the optional fields.
type ManifestHook struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Entry       string `yaml:"entry"`
	Language    string `yaml:"language"`
	Description string `yaml:"description,omitempty"`

	Files   string `yaml:"files,omitempty"`
	Exclude string `yaml:"exclude,omitempty"`

	Types        []string `yaml:"types,omitempty"`
	TypesOr      []string `yaml:"types_or,omitempty"`
	ExcludeTypes []string `yaml:"exclude_types,omitempty"`

	AdditionalDependencies []string `yaml:"additional_dependencies,omitempty"`

	PassFilenames *bool `yaml:"pass_filenames,omitempty"`
	AlwaysRun     bool  `yaml:"always_run,omitempty"`

	// MinimumPreCommitVersion is accepted for compatibility with upstream
	// hook repositories and otherwise ignored.
	MinimumPreCommitVersion string `yaml:"minimum_pre_commit_version,omitempty"`

	// Stages is accepted for compatibility and ignored: this orchestrator
	// only runs the pre-commit stage.
	Stages []string `yaml:"stages,omitempty"`
}

// Manifest maps hook id to its manifest entry for one source revision.
type Manifest struct {
	Hooks map[string]ManifestHook
}

// Lookup returns the manifest entry for id.
func (m *Manifest) Lookup(id string) (ManifestHook, bool) {
	h, ok := m.Hooks[id]
	return h, ok
}

// IDs returns all provided hook ids, unordered.
func (m *Manifest) IDs() []string {
	ids := make([]string, 0, len(m.Hooks))
	for id := range m.Hooks {
		ids = append(ids, id)
	}
	return ids
}

// LoadManifest reads a source's hook catalog from its checkout directory.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read hook manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes a hook catalog: a YAML list of manifest hooks.
func ParseManifest(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var entries []ManifestHook
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("parse hook manifest: %w", err)
	}

	m := &Manifest{Hooks: make(map[string]ManifestHook, len(entries))}
	for _, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("hook manifest entry is missing id (entry %q)", e.Name)
		}
		if e.Entry == "" {
			return nil, fmt.Errorf("hook manifest entry %q is missing entry", e.ID)
		}
		if _, dup := m.Hooks[e.ID]; dup {
			return nil, fmt.Errorf("hook manifest declares %q twice", e.ID)
		}
		m.Hooks[e.ID] = e
	}
	return m, nil
}
