package directory

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/samirrijal/crestfield/internal/core/domain"
)

// File is the on-disk directory layout.
type File struct {
	Stations []domain.Station `yaml:"stations"`
}

// YAMLSource loads stations from a YAML file.
type YAMLSource struct {
	Path string
}

func (s YAMLSource) LoadStations(ctx context.Context) ([]domain.Station, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return ParseYAML(data)
}

// ParseYAML decodes a directory document. Unknown fields are rejected.
func ParseYAML(data []byte) ([]domain.Station, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode directory: %w", err)
	}
	if len(f.Stations) == 0 {
		return nil, fmt.Errorf("decode directory: no stations")
	}
	return f.Stations, nil
}

// MarshalYAML encodes stations in the directory file layout.
func MarshalYAML(stations []domain.Station) ([]byte, error) {
	return yaml.Marshal(File{Stations: stations})
}
