// Package schemas defines the structured records extracted from each
// supported document type, along with the JSON schemas used both to
// constrain model output and to validate it locally.
package schemas

import (
	"fmt"
)

// Supported document type names.
const (
	TypeEmploymentContract = "employment_contract"
	TypePayslip            = "payslip"
)

// SupportedTypes lists all document types with a registered schema.
func SupportedTypes() []string {
	return []string{TypeEmploymentContract, TypePayslip}
}

// ForType returns the JSON schema for the named document type.
func ForType(documentType string) (map[string]any, error) {
	switch documentType {
	case TypeEmploymentContract:
		return BuildContractSchema(), nil
	case TypePayslip:
		return BuildPayslipSchema(), nil
	default:
		return nil, fmt.Errorf("unsupported document type: %q", documentType)
	}
}

func dateProp() map[string]any {
	return map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`}
}

func stringProp() map[string]any {
	return map[string]any{"type": "string", "minLength": 1}
}

func amountProp() map[string]any {
	return map[string]any{"type": "number", "minimum": 0.0}
}

func positiveAmountProp() map[string]any {
	return map[string]any{"type": "number", "exclusiveMinimum": 0.0}
}

func percentageProp() map[string]any {
	return map[string]any{"type": "number", "minimum": 0.0, "maximum": 100.0}
}
