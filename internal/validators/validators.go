package validators

import (
	"fmt"

	"github.com/cloud-ru/mba-roi-go/internal/calculations"
	"github.com/cloud-ru/mba-roi-go/internal/config"
	"github.com/cloud-ru/mba-roi-go/pkg/utils"
)

// ValidateNumber проверяет, что число конечное и лежит в [minInclusive; maxInclusive]
func ValidateNumber(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return &calculations.ConfigurationError{Field: name, Reason: "value is not a finite number"}
	}
	if value < minInclusive {
		return &calculations.ConfigurationError{Field: name, Reason: fmt.Sprintf("value must be ≥ %g", minInclusive)}
	}
	if value > maxInclusive {
		return &calculations.ConfigurationError{Field: name, Reason: fmt.Sprintf("value is too large (>%g)", maxInclusive)}
	}
	return nil
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return &calculations.ConfigurationError{
			Field:  name,
			Reason: fmt.Sprintf("value must be in range [%d; %d]", minInclusive, maxInclusive),
		}
	}
	return nil
}

// CheckAmount проверяет денежную сумму
func CheckAmount(cfg *config.Config, name string, amount float64) error {
	return ValidateNumber(name, amount, 0, cfg.MaxAmount)
}

// CheckRate проверяет процентную ставку по кредиту
func CheckRate(cfg *config.Config, rate float64) error {
	return ValidateNumber("loan_interest", rate, 0, cfg.MaxRate)
}

// CheckGrowth проверяет темп роста зарплаты (в долях)
func CheckGrowth(cfg *config.Config, name string, growth float64) error {
	return ValidateNumber(name, growth, 0, cfg.MaxGrowthRate)
}

// CheckDuration проверяет длительность программы в годах
func CheckDuration(cfg *config.Config, years int) error {
	return ValidateIntRange("duration", years, 0, cfg.MaxDuration)
}

// CheckLoanTerm проверяет срок кредита в годах
func CheckLoanTerm(cfg *config.Config, years int) error {
	return ValidateIntRange("loan_term", years, 1, cfg.MaxLoanTerm)
}

// CheckInputs проверяет все параметры расчета против лимитов конфигурации,
// затем инварианты самих параметров
func CheckInputs(cfg *config.Config, in calculations.ROIInputs) error {
	amounts := []struct {
		name  string
		value float64
	}{
		{"total_fees", in.TotalFees},
		{"pre_salary", in.PreSalary},
		{"post_salary", in.PostSalary},
		{"living_expenses", in.LivingExpenses},
		{"scholarship", in.Scholarship},
	}
	for _, a := range amounts {
		if err := CheckAmount(cfg, a.name, a.value); err != nil {
			return err
		}
	}
	if err := CheckRate(cfg, in.LoanInterest); err != nil {
		return err
	}
	if err := CheckGrowth(cfg, "salary_growth", in.SalaryGrowth); err != nil {
		return err
	}
	if err := CheckGrowth(cfg, "post_growth", in.PostGrowth); err != nil {
		return err
	}
	if err := CheckDuration(cfg, in.Duration); err != nil {
		return err
	}
	if err := CheckLoanTerm(cfg, in.LoanTerm); err != nil {
		return err
	}
	return in.Validate()
}
