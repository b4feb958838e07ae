package config

import (
	"bytes"
	_ "embed"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.trai.ch/zerr"
)

const schemaURL = "environment.schema.json"

//go:embed schema/environment.schema.json
var schemaJSON []byte

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to parse environment schema")
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, doc); err != nil {
		return nil, zerr.Wrap(err, "failed to register environment schema")
	}

	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to compile environment schema")
	}
	return schema, nil
})

// environmentFile is the YAML shape of a conda environment file.
type environmentFile struct {
	Name         string   `yaml:"name"`
	Channels     []string `yaml:"channels"`
	Dependencies []any    `yaml:"dependencies"`
}
