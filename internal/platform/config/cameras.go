package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Camera is one preconfigured capture source. Profiles use the sequencer
// string format "exposure[:gain],exposure[:gain],...".
type Camera struct {
	ID       string `yaml:"id"`
	Profile0 string `yaml:"profile0"`
	Profile1 string `yaml:"profile1"`
}

type camerasFile struct {
	Cameras []Camera `yaml:"cameras"`
}

// LoadCameras reads the camera list from a YAML file of the form
//
//	cameras:
//	  - id: cam0
//	    profile0: "19,150"
//	    profile1: "19:1.5,250,450"
//
// An empty path means no preconfigured cameras.
func LoadCameras(path string) ([]Camera, error) {
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cameras file: %w", err)
	}
	return ParseCameras(b)
}

// ParseCameras decodes the YAML camera list. Ids must be non-empty and unique.
func ParseCameras(b []byte) ([]Camera, error) {
	var f camerasFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse cameras file: %w", err)
	}

	seen := make(map[string]bool, len(f.Cameras))
	for i, c := range f.Cameras {
		if c.ID == "" {
			return nil, fmt.Errorf("camera %d: %w", i, errors.New("id cannot be empty"))
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("camera %q listed twice", c.ID)
		}
		seen[c.ID] = true
	}
	return f.Cameras, nil
}
