package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/houssem11957/excelreader-go/pkg/excelreader/binding"
)

// mappingFile is the on-disk form of a column mapping:
//
//	columns:
//	  myId: Id
//	  Name of the Person: Name
type mappingFile struct {
	Columns map[string]string `yaml:"columns" toml:"columns"`
}

func loadMappingFile(path string) (*binding.ColumnMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var mf mappingFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &mf)
	case ".toml":
		err = toml.Unmarshal(data, &mf)
	default:
		return nil, fmt.Errorf("unsupported mapping file type %q (must be .yaml, .yml or .toml)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse mapping file %s: %w", path, err)
	}
	return binding.MappingFromMap(mf.Columns), nil
}

// applyMapFlags adds "header=Field" pairs to m, creating it if nil.
func applyMapFlags(m *binding.ColumnMapping, pairs []string) (*binding.ColumnMapping, error) {
	if len(pairs) == 0 {
		return m, nil
	}
	if m == nil {
		m = binding.NewColumnMapping()
	}
	for _, pair := range pairs {
		header, field, ok := strings.Cut(pair, "=")
		if !ok || header == "" || strings.TrimSpace(field) == "" {
			return nil, fmt.Errorf("invalid --map value %q (want header=Field)", pair)
		}
		m.Add(header, strings.TrimSpace(field))
	}
	return m, nil
}
