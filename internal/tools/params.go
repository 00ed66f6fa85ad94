package tools

import (
	"fmt"
	"math"

	"github.com/cloud-ru/mba-roi-go/internal/calculations"
	"github.com/cloud-ru/mba-roi-go/internal/currency"
)

// InputsFromParams собирает параметры расчета из аргументов инструмента.
// Денежные поля принимают число или строку с разделителями ("21,50,000", "₹1,500").
// Отсутствующие необязательные поля получают значения движка по умолчанию.
func InputsFromParams(params map[string]interface{}) (calculations.ROIInputs, error) {
	totalFees, err := amountParam(params, "total_fees")
	if err != nil {
		return calculations.ROIInputs{}, err
	}
	preSalary, err := amountParam(params, "pre_salary")
	if err != nil {
		return calculations.ROIInputs{}, err
	}
	postSalary, err := amountParam(params, "post_salary")
	if err != nil {
		return calculations.ROIInputs{}, err
	}
	duration, err := intParam(params, "duration")
	if err != nil {
		return calculations.ROIInputs{}, err
	}

	in := calculations.NewROIInputs(totalFees, preSalary, postSalary, duration)

	optional := []struct {
		name string
		dst  *float64
	}{
		{"living_expenses", &in.LivingExpenses},
		{"scholarship", &in.Scholarship},
		{"loan_interest", &in.LoanInterest},
		{"salary_growth", &in.SalaryGrowth},
		{"post_growth", &in.PostGrowth},
	}
	for _, opt := range optional {
		if _, ok := params[opt.name]; !ok {
			continue
		}
		if *opt.dst, err = amountParam(params, opt.name); err != nil {
			return calculations.ROIInputs{}, err
		}
	}

	if _, ok := params["loan_term"]; ok {
		if in.LoanTerm, err = intParam(params, "loan_term"); err != nil {
			return calculations.ROIInputs{}, err
		}
	}
	return in, nil
}

func amountParam(params map[string]interface{}, name string) (float64, error) {
	switch v := params[name].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		value, err := currency.Parse(v)
		if err != nil {
			return 0, &calculations.ConfigurationError{Field: name, Reason: err.Error(), Err: err}
		}
		return value, nil
	case nil:
		return 0, invalidParam(name, "missing")
	default:
		return 0, invalidParam(name, fmt.Sprintf("unsupported type %T", v))
	}
}

func intParam(params map[string]interface{}, name string) (int, error) {
	value, err := amountParam(params, name)
	if err != nil {
		return 0, err
	}
	if value != math.Trunc(value) || math.Abs(value) > math.MaxInt32 {
		return 0, invalidParam(name, "expected a whole number of years")
	}
	return int(value), nil
}

func invalidParam(name, reason string) error {
	return &calculations.ConfigurationError{Field: name, Reason: reason}
}
