// Package configuration implements reading of Unix-type configuration files
// and the derivation of the optional site configuration. The site
// configuration covers only what cannot come from the command line: where
// volumes are mounted and which extra pool names count as valid volumes.
package configuration

import (
	"errors"
	"io/fs"
	"strings"
)

const (
	// SiteConfigFile is the optional site configuration file.
	SiteConfigFile = "/boot/config/plugins/diskmv/diskmv.cfg"

	// SettingBasePath is the configuration key overriding the base path
	// under which volumes are mounted.
	SettingBasePath = "diskmvBasePath"

	// SettingExtraPools is the configuration key listing additional pool
	// names accepted as volume identifiers (comma-separated).
	SettingExtraPools = "diskmvExtraPools"
)

// readsProvider defines methods needed to read a configuration file.
type readsProvider interface {
	Read(filenames ...string) (envMap map[string]string, err error)
}

// SiteConfig holds the effective site configuration of a run.
type SiteConfig struct {
	BasePath   string
	ExtraPools []string
}

// Handler is the principal implementation for configuration reading.
type Handler struct {
	configReader readsProvider
}

// NewHandler returns a pointer to a new configuration [Handler].
func NewHandler(configReader readsProvider) *Handler {
	return &Handler{configReader: configReader}
}

// EstablishSiteConfig reads the [SiteConfig] from a configuration file. A
// missing file is not an error; defaults are returned in that case.
func (c *Handler) EstablishSiteConfig(filename string, defaults SiteConfig) (SiteConfig, error) {
	config := defaults

	envMap, err := c.configReader.Read(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}

		return config, err
	}

	if basePath := c.MapKeyToString(envMap, SettingBasePath); basePath != "" {
		config.BasePath = basePath
	}

	if pools := c.MapKeyToString(envMap, SettingExtraPools); pools != "" {
		for _, pool := range strings.Split(pools, ",") {
			if pool = strings.TrimSpace(pool); pool != "" {
				config.ExtraPools = append(config.ExtraPools, pool)
			}
		}
	}

	return config, nil
}

// MapKeyToString returns a configuration map value as string, with the empty
// string for an absent key.
func (c *Handler) MapKeyToString(envMap map[string]string, key string) string {
	if value, exists := envMap[key]; exists {
		return value
	}

	return ""
}
