package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// JSONSchema describes the decoded configuration for editors that validate
// YAML and JSON files.
func JSONSchema() *jsonschema.Schema {
	// Several sections share the type name Config, so definitions are
	// inlined instead of referenced by name.
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(new(Config))
	schema.Title = "royale"
	schema.Description = "Match configuration: player tuning, weapons, storm and arena"
	return schema
}

func MarshalJSONSchema() ([]byte, error) {
	data, err := json.MarshalIndent(JSONSchema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("could not marshal schema: %v", err)
	}
	return append(data, '\n'), nil
}
