package postprocess

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildRecordJSONSchema returns a JSON-Schema (draft 2020-12 subset) for the
// document record as a generic map. Everything is optional and unknown keys
// are allowed; the schema exists for boundary diagnostics, not enforcement.
func BuildRecordJSONSchema() map[string]any {
	str := func() map[string]any { return map[string]any{"type": "string"} }
	obj := func(props map[string]any) map[string]any {
		return map[string]any{"type": "object", "properties": props}
	}

	activity := obj(map[string]any{
		"code":       str(),
		"start_date": str(),
	})

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			// May still be a string before coercion.
			"fiscal_document": map[string]any{"type": []any{"boolean", "string"}},
			"tax_information": obj(map[string]any{
				"tax_document_type":         str(),
				"tax_identification_number": str(),
				"verification_digit":        str(),
				"tax_office":                str(),
			}),
			"company_information": obj(map[string]any{
				"legal_name":      str(),
				"commercial_name": str(),
				"abbreviation":    str(),
				"taxpayer_type":   str(),
				"economic_activity": obj(map[string]any{
					"primary":   activity,
					"secondary": activity,
				}),
			}),
			"legal_representative": obj(map[string]any{
				"first_name":                str(),
				"last_name":                 str(),
				"document_type":             str(),
				"document_number":           str(),
				"representation_start_date": str(),
			}),
			"location": obj(map[string]any{
				"country":     str(),
				"state":       str(),
				"city":        str(),
				"address":     str(),
				"postal_code": str(),
				"email":       str(),
				"phone_1":     str(),
				"phone_2":     str(),
			}),
			"business_classification": obj(map[string]any{
				"responsibilities": map[string]any{
					"type":  "array",
					"items": str(),
				},
			}),
			"registration": obj(map[string]any{
				"registration_date": str(),
				"last_update":       str(),
			}),
		},
	}
}

// ValidateRecordJSON checks data against the record schema. Callers treat a
// failure as a warning only; the engine itself accepts malformed shapes.
func ValidateRecordJSON(data []byte) error {
	b, err := json.Marshal(BuildRecordJSONSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("record.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("record.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("record does not match schema: %w", err)
	}
	return nil
}
