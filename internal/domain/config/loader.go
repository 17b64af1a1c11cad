package config

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/wpsetup/internal/ports"
)

// candidateFiles are the configuration file names probed in order.
var candidateFiles = []string{
	"wpsetup.yaml",
	"wpsetup.yml",
	"wpsetup.toml",
	"wpsetup.json",
}

// Loader reads the raw configuration from the project root.
type Loader struct {
	fs ports.FileSystem
}

// NewLoader creates a new Loader.
func NewLoader(fs ports.FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Load reads the first configuration file found under root and returns its
// raw key/value map. A project without a configuration file is valid: every
// setting simply stays absent.
func (l *Loader) Load(root string) (map[string]any, error) {
	for _, name := range candidateFiles {
		path := filepath.Join(root, name)
		if !l.fs.Exists(path) {
			continue
		}
		return l.LoadFile(path)
	}
	return map[string]any{}, nil
}

// LoadFile reads and parses one configuration file, dispatching on its
// extension.
func (l *Loader) LoadFile(path string) (map[string]any, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, NewConfigNotFoundError(path)
	}

	raw := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	case ".json":
		err = json.Unmarshal(data, &raw)
	default:
		return nil, NewParseError(path, nil)
	}
	if err != nil {
		return nil, NewParseError(path, err)
	}
	return raw, nil
}
