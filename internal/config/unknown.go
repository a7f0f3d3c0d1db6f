package config

import (
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// detectUnknownFields compares the keys of a decoded YAML mapping with the
// known struct fields. Unknown keys are reported and otherwise ignored.
func detectUnknownFields(root *yaml.Node) []string {
	if root.Kind != yaml.MappingNode {
		return nil
	}

	var warnings []string
	known := getYAMLFields(reflect.TypeOf(Config{}))
	nested := map[string]reflect.Type{
		"log":   reflect.TypeOf(LogConfig{}),
		"store": reflect.TypeOf(StoreConfig{}),
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i].Value, root.Content[i+1]
		if !known[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q at root level (ignored)", key))
			continue
		}
		if t, ok := nested[key]; ok && value.Kind == yaml.MappingNode {
			fields := getYAMLFields(t)
			for j := 0; j+1 < len(value.Content); j += 2 {
				if k := value.Content[j].Value; !fields[k] {
					warnings = append(warnings, fmt.Sprintf("unknown field %q in %s (ignored)", k, key))
				}
			}
		}
	}
	return warnings
}

// getYAMLFields returns the set of YAML field names of a struct type.
func getYAMLFields(t reflect.Type) map[string]bool {
	fields := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("yaml")
		if tag == "" || tag == "-" {
			continue
		}
		if name := strings.Split(tag, ",")[0]; name != "" {
			fields[name] = true
		}
	}
	return fields
}
