// config/overlay.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// IconsFile is the optional icons.yml that sits next to config.yml.
type IconsFile struct {
	Default   string            `yaml:"default"`
	Companies map[string]string `yaml:"companies"`
}

// OverlayIcons merges icons.yml into cfg.Icons. Entries from the file win.
func OverlayIcons(cfg *Config, iconsPath string) error {
	b, err := os.ReadFile(iconsPath)
	if err != nil {
		// Missing icons file should not kill startup
		return nil
	}

	var f IconsFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return err
	}

	if f.Default != "" {
		cfg.Icons.Default = f.Default
	}
	if len(f.Companies) > 0 && cfg.Icons.Companies == nil {
		cfg.Icons.Companies = make(map[string]string, len(f.Companies))
	}
	for name, glyph := range f.Companies {
		cfg.Icons.Companies[name] = glyph
	}
	return nil
}
