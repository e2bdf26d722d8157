package schemas

// Payslip is the structured record extracted from a payslip document.
// Cumulative fields run from the start of the fiscal year through the
// payroll period.
type Payslip struct {
	EmployeeName              string  `json:"employee_name"`
	EmployeeNumber            string  `json:"employee_number"`
	DateOfBirth               string  `json:"date_of_birth"`
	HireDate                  string  `json:"hire_date"`
	ContractType              string  `json:"contract_type"`
	WeeklyHours               float64 `json:"weekly_hours"`
	ParttimePercentage        float64 `json:"parttime_percentage"`
	HourlyWage                float64 `json:"hourly_wage"`
	MinimumHourlyWage         float64 `json:"minimum_hourly_wage"`
	OnCallAgreement           bool    `json:"on_call_agreement"`
	WrittenContract           bool    `json:"written_contract"`
	CompanyCar                bool    `json:"company_car"`
	GrossSalaryPeriod         float64 `json:"gross_salary_period"`
	HolidayAllowance          float64 `json:"holiday_allowance"`
	EquityCompensation        float64 `json:"equity_compensation"`
	AdyenPlusContribution     float64 `json:"adyen_plus_contribution"`
	ZVWEmployerContribution   float64 `json:"zvw_employer_contribution"`
	MealBenefitTaxable        float64 `json:"meal_benefit_taxable"`
	WageTaxWithheld           float64 `json:"wage_tax_withheld"`
	WGARecovery               float64 `json:"wga_recovery"`
	EquityDeductionTaxable    float64 `json:"equity_deduction_taxable"`
	EquityDeductionNontaxable float64 `json:"equity_deduction_nontaxable"`
	NetSalaryPaid             float64 `json:"net_salary_paid"`
	IBAN                      string  `json:"iban"`
	PayrollPeriod             string  `json:"payroll_period"`
	WorkDaysThisPeriod        float64 `json:"work_days_this_period"`
	FiscalWageToDate          float64 `json:"fiscal_wage_to_date"`
	SocialSecurityWageToDate  float64 `json:"social_security_wage_to_date"`
	AnnualGrossSalary         float64 `json:"annual_gross_salary"`
	CumulativeTaxCredit       float64 `json:"cumulative_tax_credit"`
	CurrentPeriodTaxCredit    float64 `json:"current_period_tax_credit"`
}

// BuildPayslipSchema returns the JSON schema (draft 2020-12 subset) for
// payslip extraction. The IBAN pattern covers Dutch accounts only.
func BuildPayslipSchema() map[string]any {
	props := map[string]any{
		"employee_name":   stringProp(),
		"employee_number": stringProp(),
		"date_of_birth":   dateProp(),
		"hire_date":       dateProp(),
		"contract_type":   stringProp(),
		"weekly_hours": map[string]any{
			"type":             "number",
			"exclusiveMinimum": 0.0,
			"maximum":          168.0,
		},
		"parttime_percentage": map[string]any{
			"type":             "number",
			"exclusiveMinimum": 0.0,
			"maximum":          100.0,
		},
		"hourly_wage":                 positiveAmountProp(),
		"minimum_hourly_wage":         positiveAmountProp(),
		"on_call_agreement":           map[string]any{"type": "boolean"},
		"written_contract":            map[string]any{"type": "boolean"},
		"company_car":                 map[string]any{"type": "boolean"},
		"gross_salary_period":         positiveAmountProp(),
		"holiday_allowance":           amountProp(),
		"equity_compensation":         amountProp(),
		"adyen_plus_contribution":     amountProp(),
		"zvw_employer_contribution":   amountProp(),
		"meal_benefit_taxable":        amountProp(),
		"wage_tax_withheld":           amountProp(),
		"wga_recovery":                amountProp(),
		"equity_deduction_taxable":    amountProp(),
		"equity_deduction_nontaxable": amountProp(),
		"net_salary_paid":             positiveAmountProp(),
		"iban": map[string]any{
			"type":    "string",
			"pattern": `^NL\d{2}[A-Z]{4}\d{10}$`,
		},
		"payroll_period": stringProp(),
		"work_days_this_period": map[string]any{
			"type":             "number",
			"exclusiveMinimum": 0.0,
			"maximum":          31.0,
		},
		"fiscal_wage_to_date":          amountProp(),
		"social_security_wage_to_date": amountProp(),
		"annual_gross_salary":          positiveAmountProp(),
		"cumulative_tax_credit":        amountProp(),
		"current_period_tax_credit":    amountProp(),
	}

	required := make([]any, 0, len(props))
	for name := range props {
		required = append(required, name)
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             sortedNames(required),
	}
}
