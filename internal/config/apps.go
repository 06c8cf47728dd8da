package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppEntry describes one bank's Play Store app in the registry.
type AppEntry struct {
	AppID         string `yaml:"app_id"`
	TargetReviews int    `yaml:"target_reviews"`
}

// AppRegistry maps bank names to their store apps. It is consulted at
// import time to attach app IDs to newly created banks and gives a
// scraping collaborator its work list.
type AppRegistry struct {
	Banks map[string]AppEntry `yaml:"banks"`
}

// DefaultRegistry returns the built-in bank registry used when no
// apps.yaml is present.
func DefaultRegistry() *AppRegistry {
	return &AppRegistry{
		Banks: map[string]AppEntry{
			"Commercial Bank of Ethiopia": {AppID: "com.cbe.mobilebanking", TargetReviews: 400},
			"Bank of Abyssinia":           {AppID: "com.bankofabyssinia.mobilebanking", TargetReviews: 400},
			"Dashen Bank":                 {AppID: "com.dashen.mobilebanking", TargetReviews: 400},
		},
	}
}

// LoadRegistry reads {dir}/apps.yaml. A missing file returns the default
// registry without error; a malformed file is an error.
func LoadRegistry(dir string) (*AppRegistry, error) {
	path := filepath.Join(dir, "apps.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultRegistry(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var reg AppRegistry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if reg.Banks == nil {
		reg.Banks = map[string]AppEntry{}
	}
	return &reg, nil
}

// AppID returns the registered app ID for a bank, or "" if the bank is
// not in the registry.
func (r *AppRegistry) AppID(bank string) string {
	return r.Banks[bank].AppID
}
