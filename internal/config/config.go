package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	vherrors "github.com/AndreyAkinshin/verifyhelper/internal/errors"
	"github.com/AndreyAkinshin/verifyhelper/internal/schema"
)

// Load reads path and returns the configuration with defaults applied and any
// warnings about unknown fields. A missing file yields the default configuration.
func Load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil, nil
		}
		return nil, nil, vherrors.ConfigWrap(err, "failed to read config file")
	}

	cfg, warnings, err := Parse(data)
	if err != nil {
		var e *vherrors.Error
		if errors.As(err, &e) {
			e.Path = path
		}
		return nil, warnings, err
	}
	return cfg, warnings, nil
}

// Parse decodes a config.yml document, applies defaults and validates it.
func Parse(data []byte) (*Config, []string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Default(), nil, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, vherrors.ConfigWrap(err, "failed to parse config file")
	}
	root := documentRoot(&doc)
	if root == nil || root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return Default(), nil, nil
	}

	var raw any
	if err := root.Decode(&raw); err != nil {
		return nil, nil, vherrors.ConfigWrap(err, "failed to parse config file")
	}
	if err := schema.ValidateConfig(raw); err != nil {
		return nil, nil, invalid(&ValidationError{Field: "config", Message: err.Error()})
	}

	warnings := detectUnknownFields(root)

	var cfg Config
	if err := root.Decode(&cfg); err != nil {
		return nil, warnings, vherrors.ConfigWrap(err, "failed to decode config file")
	}
	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, warnings, invalid(err)
	}
	return &cfg, warnings, nil
}

func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == 0 {
		return nil
	}
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil
		}
		return doc.Content[0]
	}
	return doc
}

func invalid(err error) error {
	return &vherrors.Error{
		Kind:    vherrors.KindValidation,
		Message: fmt.Sprintf("invalid configuration: %v", err),
		Cause:   err,
	}
}
