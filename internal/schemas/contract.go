package schemas

// EmploymentContract is the structured record extracted from an employment
// contract document. Dates use YYYY-MM-DD; monetary amounts are EUR.
type EmploymentContract struct {
	EmployeeFullName              string  `json:"employee_full_name"`
	EmployeeAddress               string  `json:"employee_address"`
	EmployeeDateOfBirth           string  `json:"employee_date_of_birth"`
	EmploymentStartDate           string  `json:"employment_start_date"`
	ContractType                  string  `json:"contract_type"`
	JobTitle                      string  `json:"job_title"`
	GrossMonthlySalaryEUR         float64 `json:"gross_monthly_salary_eur"`
	HolidayAllowancePercentage    float64 `json:"holiday_allowance_percentage"`
	WeeklyWorkingHours            float64 `json:"weekly_working_hours"`
	ProbationPeriod               string  `json:"probation_period"`
	EmployerName                  string  `json:"employer_name"`
	ThirteenthMonthBonus          string  `json:"thirteenth_month_bonus"`
	PensionContributionPercentage float64 `json:"pension_contribution_percentage"`
	OtherBenefits                 string  `json:"other_benefits"`
}

// Contract type values recognized by the schema.
const (
	ContractFixedTerm  = "fixed-term"
	ContractIndefinite = "indefinite"
	ContractOther      = "other"
)

// BuildContractSchema returns the JSON schema (draft 2020-12 subset) for
// employment contract extraction.
func BuildContractSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"employee_full_name":     stringProp(),
			"employee_address":       stringProp(),
			"employee_date_of_birth": dateProp(),
			"employment_start_date":  dateProp(),
			"contract_type": map[string]any{
				"type": "string",
				"enum": []any{ContractFixedTerm, ContractIndefinite, ContractOther},
			},
			"job_title":                    stringProp(),
			"gross_monthly_salary_eur":     positiveAmountProp(),
			"holiday_allowance_percentage": percentageProp(),
			"weekly_working_hours": map[string]any{
				"type":             "number",
				"exclusiveMinimum": 0.0,
				"maximum":          168.0,
			},
			"probation_period":                map[string]any{"type": "string"},
			"employer_name":                   stringProp(),
			"thirteenth_month_bonus":          map[string]any{"type": "string"},
			"pension_contribution_percentage": percentageProp(),
			"other_benefits":                  map[string]any{"type": "string"},
		},
		"required": []any{
			"employee_full_name",
			"employee_address",
			"employee_date_of_birth",
			"employment_start_date",
			"contract_type",
			"job_title",
			"gross_monthly_salary_eur",
			"holiday_allowance_percentage",
			"weekly_working_hours",
			"probation_period",
			"employer_name",
			"thirteenth_month_bonus",
			"pension_contribution_percentage",
			"other_benefits",
		},
	}
}
