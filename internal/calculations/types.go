package calculations

import (
	"strconv"

	"github.com/cloud-ru/mba-roi-go/internal/currency"
)

const (
	// DefaultLoanTermYears срок погашения кредита по умолчанию
	DefaultLoanTermYears = 10
	// MaxBreakEvenYears горизонт поиска точки безубыточности
	MaxBreakEvenYears = 50
	// MonthsPerYear число платежей по кредиту в году
	MonthsPerYear = 12

	// NotAchievable выводится вместо года безубыточности, если он не найден
	NotAchievable = "Not Achievable"
)

// ROIInputs описывает параметры расчета окупаемости MBA.
// Суммы в рупиях, LoanInterest в процентах годовых, темпы роста зарплат в долях (0.10 = 10%).
type ROIInputs struct {
	TotalFees      float64 `json:"total_fees"`
	PreSalary      float64 `json:"pre_salary"`
	PostSalary     float64 `json:"post_salary"`
	Duration       int     `json:"duration"`
	LivingExpenses float64 `json:"living_expenses"`
	Scholarship    float64 `json:"scholarship"`
	LoanInterest   float64 `json:"loan_interest"`
	SalaryGrowth   float64 `json:"salary_growth"`
	PostGrowth     float64 `json:"post_growth"`
	LoanTerm       int     `json:"loan_term"`
}

// NewROIInputs возвращает параметры с умолчаниями движка: срок кредита 10 лет,
// остальные необязательные поля равны нулю
func NewROIInputs(totalFees, preSalary, postSalary float64, duration int) ROIInputs {
	return ROIInputs{
		TotalFees:  totalFees,
		PreSalary:  preSalary,
		PostSalary: postSalary,
		Duration:   duration,
		LoanTerm:   DefaultLoanTermYears,
	}
}

// DashboardDefaults возвращает значения, которыми заполняется форма дашборда
func DashboardDefaults() ROIInputs {
	in := NewROIInputs(2_150_000, 1_100_000, 1_600_000, 2)
	in.LivingExpenses = 200_000
	in.LoanInterest = 8.7
	in.SalaryGrowth = 0.10
	in.PostGrowth = 0.15
	return in
}

// TotalCost стоимость программы: обучение плюс проживание за весь срок за вычетом стипендии
func (in ROIInputs) TotalCost() float64 {
	return in.TotalFees + in.LivingExpenses*float64(in.Duration) - in.Scholarship
}

// LoanPrincipal начальный остаток по кредиту в графике погашения: обучение
// плюс проживание за весь срок. Стипендия в график не входит.
func (in ROIInputs) LoanPrincipal() float64 {
	return in.TotalFees + in.LivingExpenses*float64(in.Duration)
}

// MonthlyRate месячная ставка по кредиту в долях
func (in ROIInputs) MonthlyRate() float64 {
	return in.LoanInterest / (MonthsPerYear * 100)
}

// Months число ежемесячных платежей за срок кредита
func (in ROIInputs) Months() int {
	return in.LoanTerm * MonthsPerYear
}

// ROIResult результат расчета окупаемости
type ROIResult struct {
	TotalCost          float64 `json:"total_cost"`
	OpportunityCost    float64 `json:"opportunity_cost"`
	EMI                float64 `json:"emi"`
	TotalLoanRepayment float64 `json:"total_loan_repayment"`
	TotalInvestment    float64 `json:"total_investment"`
	BreakEvenYear      int     `json:"break_even_year,omitempty"`
	BreakEvenAchieved  bool    `json:"break_even_achieved"`
	ROIPercentage      float64 `json:"roi_percentage"`
}

// Metric одна строка панели показателей
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// BreakEvenLabel возвращает год безубыточности для вывода
func (r *ROIResult) BreakEvenLabel() string {
	if !r.BreakEvenAchieved {
		return NotAchievable
	}
	return strconv.Itoa(r.BreakEvenYear)
}

// Summary возвращает отформатированные показатели в порядке вывода на панели
func (r *ROIResult) Summary() []Metric {
	return []Metric{
		{Label: "Total Fees", Value: currency.Format(r.TotalCost)},
		{Label: "Opportunity Cost", Value: currency.Format(r.OpportunityCost)},
		{Label: "Monthly EMI", Value: currency.Format(r.EMI)},
		{Label: "Total Loan Repayment", Value: currency.Format(r.TotalLoanRepayment)},
		{Label: "Total Investment", Value: currency.Format(r.TotalInvestment)},
		{Label: "Break-even Years", Value: r.BreakEvenLabel()},
		{Label: "ROI Percentage", Value: currency.FormatPercent(r.ROIPercentage)},
	}
}

// AmortizationRow одна строка годового графика погашения
type AmortizationRow struct {
	Year           int     `json:"year"`
	LoanPaid       float64 `json:"loan_paid"`
	CumulativePaid float64 `json:"cumulative_paid"`
	RemainingLoan  float64 `json:"remaining_loan"`
	PreSalary      float64 `json:"pre_salary"`
	PostSalary     float64 `json:"post_salary"`
}

// AmortizationSchedule годовой график погашения, по строке на каждый год срока кредита
type AmortizationSchedule []AmortizationRow

// FormattedRow строка графика, подготовленная для таблицы
type FormattedRow struct {
	Year           int    `json:"year"`
	LoanPaid       string `json:"loan_paid"`
	CumulativePaid string `json:"cumulative_paid"`
	RemainingLoan  string `json:"remaining_loan"`
	PreSalary      string `json:"pre_salary"`
	PostSalary     string `json:"post_salary"`
}

// Table форматирует все денежные колонки графика
func (s AmortizationSchedule) Table() []FormattedRow {
	rows := make([]FormattedRow, 0, len(s))
	for _, row := range s {
		rows = append(rows, FormattedRow{
			Year:           row.Year,
			LoanPaid:       currency.Format(row.LoanPaid),
			CumulativePaid: currency.Format(row.CumulativePaid),
			RemainingLoan:  currency.Format(row.RemainingLoan),
			PreSalary:      currency.Format(row.PreSalary),
			PostSalary:     currency.Format(row.PostSalary),
		})
	}
	return rows
}

// SalaryPoint точка графика прогнозируемых зарплат
type SalaryPoint struct {
	Year       int     `json:"year"`
	PreSalary  float64 `json:"pre_salary"`
	PostSalary float64 `json:"post_salary"`
}

// Dashboard все данные, которые отображает дашборд
type Dashboard struct {
	Inputs   ROIInputs            `json:"inputs"`
	Result   *ROIResult           `json:"result"`
	Metrics  []Metric             `json:"metrics"`
	Salaries []SalaryPoint        `json:"salaries"`
	Schedule AmortizationSchedule `json:"schedule"`
	Table    []FormattedRow       `json:"table"`
}
