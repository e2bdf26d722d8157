package schemas

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Validate checks document against the named document type's schema and
// returns a flat list of violation messages, empty when the document
// conforms.
func Validate(documentType string, document []byte) ([]string, error) {
	schemaMap, err := ForType(documentType)
	if err != nil {
		return nil, err
	}
	return validateAgainst(schemaMap, document)
}

func validateAgainst(schemaMap map[string]any, document []byte) ([]string, error) {
	raw, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", strings.NewReader(string(raw))); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	var instance any
	if err := json.Unmarshal(document, &instance); err != nil {
		return []string{fmt.Sprintf("document is not valid JSON: %v", err)}, nil
	}

	if err := schema.Validate(instance); err != nil {
		var ve *jsonschema.ValidationError
		if ok := asValidationError(err, &ve); ok {
			return flatten(ve), nil
		}
		return []string{err.Error()}, nil
	}
	return nil, nil
}

func asValidationError(err error, target **jsonschema.ValidationError) bool {
	ve, ok := err.(*jsonschema.ValidationError)
	if ok {
		*target = ve
	}
	return ok
}

// flatten walks the validation error tree and collects leaf messages,
// which carry the most specific violation per field.
func flatten(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return []string{fmt.Sprintf("%s: %s", loc, ve.Message)}
	}
	var out []string
	for _, cause := range ve.Causes {
		out = append(out, flatten(cause)...)
	}
	return out
}

func sortedNames(names []any) []any {
	sort.Slice(names, func(i, j int) bool {
		return names[i].(string) < names[j].(string)
	})
	return names
}
