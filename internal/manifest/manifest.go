package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/devkit-cli/devkit/internal/keypath"
	"github.com/devkit-cli/devkit/internal/semver"
)

// DefaultNames lists conventional manifest filenames probed by Detect,
// in priority order.
var DefaultNames = []string{
	"pyproject.toml",
	"package.json",
	"Cargo.toml",
	"version.toml",
	"version.yaml",
	"version.yml",
	"version.json",
}

// Manifest is a project manifest loaded from disk together with its
// resolved version field.
type Manifest struct {
	path       string
	raw        []byte
	data       map[string]any
	versionKey string
	version    semver.Version
}

// Detect returns the first conventional manifest filename present in dir
func Detect(dir string) (string, error) {
	for _, name := range DefaultNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: no conventional manifest in %s", ErrFileNotFound, dir)
}

// Load reads and parses the manifest at path. versionKey is the dotted
// keypath of the version field; when empty, well-known locations for the
// manifest's filename are probed.
func Load(path, versionKey string) (*Manifest, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	data, err := parseBytes(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	m := &Manifest{path: path, raw: raw, data: data}
	if err := m.resolveVersion(versionKey); err != nil {
		return nil, err
	}
	return m, nil
}

// parseBytes parses manifest content according to the file extension
func parseBytes(data []byte, ext string) (map[string]any, error) {
	var out map[string]any
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExt, ext)
	}
	return out, nil
}

// versionCandidates returns the keypaths probed for a manifest filename
func versionCandidates(base string) []string {
	switch base {
	case "pyproject.toml":
		return []string{"project.version", "tool.poetry.version"}
	case "Cargo.toml":
		return []string{"package.version"}
	case "package.json":
		return []string{"version"}
	default:
		return []string{"version", "project.version", "tool.poetry.version", "package.version"}
	}
}

func (m *Manifest) resolveVersion(versionKey string) error {
	candidates := []string{versionKey}
	if versionKey == "" {
		candidates = versionCandidates(filepath.Base(m.path))
	}

	for _, key := range candidates {
		val, ok := keypath.Get(m.data, key)
		if !ok {
			continue
		}
		s, ok := val.(string)
		if !ok {
			return fmt.Errorf("%w: %q is not a string", ErrVersionMalformed, key)
		}
		v, err := semver.Parse(s)
		if err != nil {
			return fmt.Errorf("%w: %q at %q", ErrVersionMalformed, s, key)
		}
		m.versionKey = key
		m.version = v
		return nil
	}

	return fmt.Errorf("%w: tried %s in %s", ErrVersionMissing,
		strings.Join(candidates, ", "), m.path)
}

// Path returns the manifest's file path
func (m *Manifest) Path() string { return m.path }

// Version returns the manifest's current version
func (m *Manifest) Version() semver.Version { return m.version }

// VersionKey returns the resolved dotted keypath of the version field
func (m *Manifest) VersionKey() string { return m.versionKey }

// Raw returns the manifest's current byte content, including any pending
// unsaved version rewrite.
func (m *Manifest) Raw() []byte { return m.raw }
