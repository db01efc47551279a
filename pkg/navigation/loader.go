package navigation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a site map. Documents with a .yaml or .yml name are read as
// YAML, everything else as JSON (the format of static/map.json).
func Parse(name string, data []byte) (*SiteSection, error) {
	var root SiteSection

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&root); err != nil {
			return nil, fmt.Errorf("YAML syntax error in site map '%s': %w", name, err)
		}
	default:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&root); err != nil {
			return nil, fmt.Errorf("JSON syntax error in site map '%s': %w", name, err)
		}
	}

	if root.ID == "" {
		root.ID = Sep
	}
	return &root, nil
}

// LoadFile reads and parses the site map stored at path.
func LoadFile(path string) (*SiteSection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read site map '%s': %w", path, err)
	}
	return Parse(path, data)
}

// LoadFS reads and parses the site map named name inside fsys.
func LoadFS(fsys fs.FS, name string) (*SiteSection, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("could not read site map '%s': %w", name, err)
	}
	return Parse(name, data)
}
