// Package factory carries the configuration shape of pluggable modules.
// A module (metrics sinks today) is declared in config as a type name plus
// an untyped settings map; implementations use Decode to pull the map into
// their own typed config.
package factory

import "github.com/mitchellh/mapstructure"

// ModuleConfig names a module type and carries its raw settings.
type ModuleConfig struct {
	Type string         `json:"type"`
	Conf map[string]any `json:"conf"`
}

// Decode fills out a typed config struct from a raw settings map using json
// tags.
func Decode(data map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "json", Result: out})
	if err != nil {
		return err
	}
	return dec.Decode(data)
}
