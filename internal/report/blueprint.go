package report

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jslate/intake/internal/schemas"
)

// A4 layout constants, in points.
const (
	pageTop     = 800.0
	leftMargin  = 50.0
	valueColumn = 280.0
	lineHeight  = 16.0
	rowsPerPage = 42
)

var reportTitles = map[string]string{
	schemas.TypeEmploymentContract: "Employment Contract Summary",
	schemas.TypePayslip:            "Payslip Summary",
}

// buildBlueprint produces a pdfcpu create-from-JSON blueprint laying out
// the extracted fields as a label/value listing under a title block.
func buildBlueprint(documentType string, data json.RawMessage, generatedAt time.Time) ([]byte, error) {
	title, ok := reportTitles[documentType]
	if !ok {
		return nil, fmt.Errorf("unsupported document type: %q", documentType)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode structured data: %w", err)
	}

	order := fieldOrder(documentType)
	pages := map[string]any{}
	pageNum := 1
	texts := headerTexts(title, generatedAt)
	y := pageTop - 3*lineHeight

	row := 0
	for _, name := range order {
		value, present := fields[name]
		if !present {
			continue
		}
		if row == rowsPerPage {
			pages[strconv.Itoa(pageNum)] = pageContent(texts)
			pageNum++
			texts = nil
			y = pageTop
			row = 0
		}
		texts = append(texts,
			textEntry(humanize(name), leftMargin, y, 10, "Helvetica-Bold"),
			textEntry(formatValue(value), valueColumn, y, 10, "Helvetica"),
		)
		y -= lineHeight
		row++
	}
	pages[strconv.Itoa(pageNum)] = pageContent(texts)

	blueprint := map[string]any{
		"paper": "A4",
		"pages": pages,
	}
	return json.Marshal(blueprint)
}

func headerTexts(title string, generatedAt time.Time) []any {
	return []any{
		textEntry(title, leftMargin, pageTop, 18, "Helvetica-Bold"),
		textEntry("Generated "+generatedAt.UTC().Format(time.RFC3339), leftMargin, pageTop-lineHeight, 9, "Helvetica"),
	}
}

func pageContent(texts []any) map[string]any {
	return map[string]any{
		"content": map[string]any{
			"text": texts,
		},
	}
}

func textEntry(value string, x, y float64, size int, font string) map[string]any {
	return map[string]any{
		"value": value,
		"pos":   []float64{x, y},
		"font": map[string]any{
			"name": font,
			"size": size,
		},
	}
}

// fieldOrder returns the display order for a document type, matching the
// order fields appear in the extraction schema records.
func fieldOrder(documentType string) []string {
	switch documentType {
	case schemas.TypeEmploymentContract:
		return []string{
			"employee_full_name", "employee_address", "employee_date_of_birth",
			"employment_start_date", "contract_type", "job_title",
			"gross_monthly_salary_eur", "holiday_allowance_percentage",
			"weekly_working_hours", "probation_period", "employer_name",
			"thirteenth_month_bonus", "pension_contribution_percentage",
			"other_benefits",
		}
	case schemas.TypePayslip:
		return []string{
			"employee_name", "employee_number", "date_of_birth", "hire_date",
			"contract_type", "weekly_hours", "parttime_percentage",
			"hourly_wage", "minimum_hourly_wage", "on_call_agreement",
			"written_contract", "company_car", "gross_salary_period",
			"holiday_allowance", "equity_compensation",
			"adyen_plus_contribution", "zvw_employer_contribution",
			"meal_benefit_taxable", "wage_tax_withheld", "wga_recovery",
			"equity_deduction_taxable", "equity_deduction_nontaxable",
			"net_salary_paid", "iban", "payroll_period",
			"work_days_this_period", "fiscal_wage_to_date",
			"social_security_wage_to_date", "annual_gross_salary",
			"cumulative_tax_credit", "current_period_tax_credit",
		}
	default:
		return nil
	}
}

func humanize(name string) string {
	words := strings.Split(name, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		flat := strings.Join(strings.Fields(v), " ")
		if len(flat) > 90 {
			flat = flat[:87] + "..."
		}
		return flat
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
