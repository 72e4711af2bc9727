package output

import (
	"bytes"
	"embed"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas/*.json
var schemaFS embed.FS

func schemaFile(mode Mode) string {
	if mode == ModeJSON {
		return "schemas/examples.json"
	}
	return "schemas/" + string(mode) + ".json"
}

// Verify checks rendered output against the JSON Schema of its mode.
func Verify(mode Mode, data []byte) error {
	name := schemaFile(mode)
	raw, err := schemaFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("no schema for format %s: %w", mode, err)
	}

	schemaData, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to parse schema %s: %w", name, err)
	}

	id := strings.TrimPrefix(name, "schemas/")
	c := jsonschema.NewCompiler()
	if err := c.AddResource(id, schemaData); err != nil {
		return fmt.Errorf("failed to add schema resource: %w", err)
	}

	compiled, err := c.Compile(id)
	if err != nil {
		return fmt.Errorf("failed to compile schema %s: %w", name, err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("output is not valid JSON: %w", err)
	}

	if err := compiled.Validate(inst); err != nil {
		return fmt.Errorf("%s output does not match schema: %w", mode, err)
	}
	return nil
}
