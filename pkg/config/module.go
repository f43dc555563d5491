package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	J "cuelang.org/go/encoding/json"
	"cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaFile string

//go:embed default.yaml
var DEFAULT []byte

type source struct {
	name string
	data []byte
}

// build compiles one document. The format is chosen by the extension of
// its name.
func build(ctx *cue.Context, src source) (cue.Value, error) {
	switch filepath.Ext(src.name) {
	case ".json":
		expr, err := J.Extract(src.name, src.data)
		if err != nil {
			return cue.Value{}, err
		}

		value := ctx.BuildExpr(expr)
		return value, value.Err()
	case ".yaml", ".yml", "":
		file, err := yaml.Extract(src.name, src.data)
		if err != nil {
			return cue.Value{}, err
		}

		value := ctx.BuildFile(file)
		return value, value.Err()
	}

	return cue.Value{}, fmt.Errorf("not in a valid format")
}

// Process reads the provided configuration files in order and unifies them
// with the schema, which carries a default for every field. If no files are
// provided, the bundled default configuration is used.
func Process(configPaths []string) (*Config, error) {
	if len(configPaths) == 0 {
		return process([]source{{name: "<default>.yaml", data: DEFAULT}})
	}

	sources := make([]source, 0, len(configPaths))
	for _, path := range configPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf(
				"could not read config file %s: %v",
				path,
				err,
			)
		}
		sources = append(sources, source{name: path, data: data})
	}

	return process(sources)
}

// Parse is Process for a single in-memory document. name decides the
// format just like a file path would.
func Parse(name string, data []byte) (*Config, error) {
	return process([]source{{name: name, data: data}})
}

func Default() *Config {
	config, err := Process(nil)
	if err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return config
}

func process(sources []source) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaFile)
	if err := schema.Err(); err != nil {
		return nil, err
	}

	for _, src := range sources {
		value, err := build(ctx, src)
		if err != nil {
			return nil, fmt.Errorf(
				"could not process config file %s: %v",
				src.name,
				err,
			)
		}

		schema = schema.Unify(value)
		if err := schema.Err(); err != nil {
			return nil, fmt.Errorf(
				"could not merge config file %s: %v",
				src.name,
				err,
			)
		}

		if err := schema.Validate(); err != nil {
			return nil, fmt.Errorf(
				"config file %s is not valid: %v",
				src.name,
				err,
			)
		}
	}

	if err := schema.Validate(); err != nil {
		return nil, err
	}

	data, err := schema.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf(
			"could not aggregate config: %v",
			err,
		)
	}

	config := Config{}
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(
			"could not decode config: %v",
			err,
		)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf(
			"invalid config: %v",
			err,
		)
	}

	return &config, nil
}
