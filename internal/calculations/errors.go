package calculations

import (
	"fmt"

	"github.com/cloud-ru/mba-roi-go/pkg/utils"
)

// ConfigurationError сообщает о недопустимом входном параметре.
// Такие параметры отклоняются до запуска расчета. Err хранит исходную
// ошибку, например currency.ParseError для строки, которую не удалось разобрать.
type ConfigurationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// Unwrap возвращает исходную ошибку, если она есть
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Validate проверяет инварианты параметров: неотрицательные конечные суммы,
// неотрицательная длительность, положительный срок кредита
func (in ROIInputs) Validate() error {
	amounts := []struct {
		field string
		value float64
	}{
		{"total_fees", in.TotalFees},
		{"pre_salary", in.PreSalary},
		{"post_salary", in.PostSalary},
		{"living_expenses", in.LivingExpenses},
		{"scholarship", in.Scholarship},
		{"loan_interest", in.LoanInterest},
	}
	for _, a := range amounts {
		if !utils.IsFinite(a.value) {
			return &ConfigurationError{Field: a.field, Reason: "value is not a finite number"}
		}
		if a.value < 0 {
			return &ConfigurationError{Field: a.field, Reason: "value must be ≥ 0"}
		}
	}

	growth := []struct {
		field string
		value float64
	}{
		{"salary_growth", in.SalaryGrowth},
		{"post_growth", in.PostGrowth},
	}
	for _, g := range growth {
		if !utils.IsFinite(g.value) {
			return &ConfigurationError{Field: g.field, Reason: "value is not a finite number"}
		}
		if g.value <= -1 {
			return &ConfigurationError{Field: g.field, Reason: "value must be > -1"}
		}
	}

	if in.Duration < 0 {
		return &ConfigurationError{Field: "duration", Reason: "value must be ≥ 0"}
	}
	if in.LoanTerm <= 0 {
		return &ConfigurationError{Field: "loan_term", Reason: "value must be > 0"}
	}
	if in.TotalCost() < 0 {
		return &ConfigurationError{Field: "scholarship", Reason: "scholarship exceeds fees and living expenses"}
	}
	return nil
}
