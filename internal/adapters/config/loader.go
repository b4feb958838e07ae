// Package config loads conda environment files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/rigzba21/conda-vendor/internal/core/domain"
	"github.com/rigzba21/conda-vendor/internal/core/ports"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
	sigsyaml "sigs.k8s.io/yaml"
)

// Loader implements ports.EnvironmentLoader for YAML environment files.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads, validates and parses the environment file at path.
func (l *Loader) Load(path string) (*domain.EnvironmentSpec, error) {
	//nolint:gosec // path is provided by the user on purpose
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, invalid(err, "failed to read environment file", path)
	}

	if err := validate(data); err != nil {
		return nil, invalid(err, "environment file does not match schema", path)
	}

	var file environmentFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, invalid(err, "failed to parse environment file", path)
	}

	if err := domain.ValidateEnvironmentName(file.Name); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	if err := domain.ValidateChannels(file.Channels); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	spec := &domain.EnvironmentSpec{
		Name:         file.Name,
		Channels:     file.Channels,
		Dependencies: make([]domain.Dependency, 0, len(file.Dependencies)),
	}

	for _, raw := range file.Dependencies {
		s, ok := raw.(string)
		if !ok {
			l.warn(fmt.Sprintf("skipping pip dependencies in %s: only conda packages are vendored", path))
			continue
		}
		dep, err := domain.ParseDependency(s)
		if err != nil {
			return nil, zerr.With(err, "path", path)
		}
		spec.Dependencies = append(spec.Dependencies, dep)
	}

	return spec, nil
}

func (l *Loader) warn(msg string) {
	if l.Logger != nil {
		l.Logger.Warn(msg)
	}
}

// validate converts the YAML document to JSON and checks it against the embedded schema.
func validate(data []byte) error {
	jsonDoc, err := sigsyaml.YAMLToJSON(data)
	if err != nil {
		return err
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonDoc))
	if err != nil {
		return err
	}

	schema, err := compiledSchema()
	if err != nil {
		return err
	}

	return schema.Validate(doc)
}

// invalid marks err as an invalid environment file while keeping it in the chain.
func invalid(err error, msg, path string) error {
	return zerr.With(zerr.Wrap(errors.Join(domain.ErrInvalidEnvironmentFile, err), msg), "path", path)
}
