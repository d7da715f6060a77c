package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrEmptyCatalog is returned when a data file holds neither clusters nor actors
var ErrEmptyCatalog = errors.New("catalog has no clusters and no actors")

type catalogFile struct {
	NRI struct {
		Score float64 `json:"score"`
		Delta float64 `json:"delta"`
	} `json:"nri"`
	Clusters    []Cluster   `json:"clusters"`
	Actors      []Actor     `json:"actors"`
	Connections []ActorLink `json:"connections"`
}

// LoadFile reads a JSON catalog; missing sections fall back to the built-in data
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a JSON catalog
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(f.Clusters) == 0 && len(f.Actors) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := Default()
	if len(f.Clusters) > 0 {
		c.Clusters = f.Clusters
	}
	if len(f.Actors) > 0 {
		c.Actors = f.Actors
		c.Links = f.Connections
	}
	if f.NRI.Score != 0 {
		c.NRI = NRIHeadline{Score: f.NRI.Score, Delta: f.NRI.Delta}
	}

	seen := make(map[string]bool, len(c.Actors))
	for i, a := range c.Actors {
		if a.Name == "" {
			return nil, fmt.Errorf("actor %d: missing name", i)
		}
		if seen[a.Name] {
			return nil, fmt.Errorf("actor %q: duplicate name", a.Name)
		}
		seen[a.Name] = true
	}
	return c, nil
}
