package trace

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Schema generates the JSON Schema for the trace interchange format.
//
// The schema is derived from the Go types via reflection, so it always
// matches what [ReadTrace] accepts. Consumers can use it to validate
// trace files produced by other tooling before handing them to TokenLens.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		// Inline definitions so the schema is usable standalone.
		ExpandedStruct: true,
	}
	schema := r.Reflect(&ContextTrace{})
	schema.Title = "TokenLens context trace"
	schema.Description = "Snapshot of an LLM context window: components, token counts, and limit."

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
