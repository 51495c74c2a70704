package vision

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidateResponse checks a model's JSON output against the schema it was
// asked to follow. Providers call this before decoding so that malformed
// output fails loudly instead of producing a half-filled record.
func ValidateResponse(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("response.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	compiled, err := compiler.Compile("response.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal model output: %w", err)
	}
	if err := compiled.Validate(v); err != nil {
		return fmt.Errorf("model output does not match schema: %w", err)
	}
	return nil
}
