package extraction

import (
	"encoding/json"
	"fmt"

	"github.com/jslate/intake/internal/schemas"
)

const contractSystemPrompt = `You are an expert legal document processor specializing in employment contracts.
Your task is to extract structured information from employment contract documents.

IMPORTANT INSTRUCTIONS:
1. Extract information exactly as it appears in the document
2. For dates, use YYYY-MM-DD format
3. For monetary amounts, extract numerical values only (no currency symbols)
4. Pay special attention to employee personal details, employment terms,
   compensation details, working conditions, and employer information
5. For other_benefits, list actual employee benefits and perks only, one per
   line with a bullet point. Do not include standard legal provisions,
   expense policies, or compliance requirements.

Respond with a single JSON object conforming to this schema:

%s

Be precise and thorough. If you are unsure about a value, leave it empty
rather than guessing.`

const payslipSystemPrompt = `You are an expert payroll processor specializing in Dutch payslips.
Your task is to extract structured information from payslip documents.

IMPORTANT INSTRUCTIONS:
1. Extract information exactly as it appears in the document
2. For dates, use YYYY-MM-DD format
3. For monetary amounts, extract numerical values only (no currency symbols, no commas)
4. For percentages, extract as decimal numbers (e.g., 8.5 for 8.5%%)
5. For boolean fields, determine true/false based on document content
6. Look for information in tables, sections, and labeled fields

CRITICAL DISTINCTIONS for Dutch payslips:
- "Total wage Ssl" is the social security wage to date, not the fiscal wage
- "Fiscal wage tax" is the fiscal wage to date, not the social security wage
- Loonheffing is wage tax; ZVW is the health insurance act contribution;
  Bruto is gross and Netto is net
- The IBAN starts with "NL"

Respond with a single JSON object conforming to this schema:

%s

Be precise and thorough. If you are unsure about a value, leave it empty
rather than guessing.`

// systemPrompt renders the extraction system prompt for the document type,
// embedding the target JSON schema so the model sees the exact contract it
// must satisfy.
func systemPrompt(documentType string) (string, error) {
	schemaMap, err := schemas.ForType(documentType)
	if err != nil {
		return "", err
	}
	rendered, err := json.MarshalIndent(schemaMap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("render schema: %w", err)
	}

	switch documentType {
	case schemas.TypeEmploymentContract:
		return fmt.Sprintf(contractSystemPrompt, rendered), nil
	case schemas.TypePayslip:
		return fmt.Sprintf(payslipSystemPrompt, rendered), nil
	default:
		return "", fmt.Errorf("unsupported document type: %q", documentType)
	}
}
