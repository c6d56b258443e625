package mapbench

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	EnvPrefix = "MAPBENCH_"
)

// LoadProperties reads properties from a YAML file, then from environment
// variables with envPrefix, e.g. MAPBENCH_GC_SLEEPMS sets "gc.sleepms".
// Nested YAML keys are joined with dots. Either source may be skipped by
// passing an empty string.
func LoadProperties(path string, envPrefix string) (Properties, error) {
	k := koanf.New(".")
	if len(path) > 0 {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load property file %s: %w", path, err)
		}
	}
	if len(envPrefix) > 0 {
		envTransformer := func(s string) string {
			s = strings.TrimPrefix(s, envPrefix)
			s = strings.ToLower(s)
			return strings.ReplaceAll(s, "_", ".")
		}
		if err := k.Load(env.Provider(envPrefix, ".", envTransformer), nil); err != nil {
			return nil, fmt.Errorf("load env: %w", err)
		}
	}
	p := NewProperties()
	for key, value := range k.All() {
		p.Add(key, propertyString(value))
	}
	return p, nil
}

// ParseProperty splits a "name=value" pair.
func ParseProperty(s string) (string, string, error) {
	parts := strings.SplitN(s, "=", 2)
	if len(parts) != 2 || len(parts[0]) == 0 {
		return "", "", fmt.Errorf("invalid property: %s", s)
	}
	return parts[0], parts[1], nil
}

func propertyString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []interface{}:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, propertyString(item))
		}
		return strings.Join(items, ",")
	default:
		return fmt.Sprint(v)
	}
}
