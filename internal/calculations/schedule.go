package calculations

import "github.com/cloud-ru/mba-roi-go/pkg/utils"

// BuildSchedule строит годовой график погашения кредита LoanPrincipal
// при ежемесячном платеже emi. Проценты начисляются раз в год на остаток
// начала года, поэтому к концу срока остается недоплата: она закрывается в
// последней строке вместе с еще одним начислением процентов, так что график
// всегда заканчивается нулевым остатком.
func BuildSchedule(in ROIInputs, emi float64) (AmortizationSchedule, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if !utils.IsFinite(emi) {
		return nil, &ConfigurationError{Field: "emi", Reason: "value is not a finite number"}
	}
	if emi < 0 {
		return nil, &ConfigurationError{Field: "emi", Reason: "value must be ≥ 0"}
	}

	loan := in.LoanPrincipal()
	annualRate := in.MonthlyRate() * MonthsPerYear
	annualPayment := emi * MonthsPerYear

	schedule := make(AmortizationSchedule, 0, in.LoanTerm)
	remaining := loan

	for year := 1; year <= in.LoanTerm; year++ {
		interest := remaining * annualRate
		principal := min(annualPayment-interest, remaining)
		remaining -= principal

		schedule = append(schedule, AmortizationRow{
			Year:           year,
			LoanPaid:       principal + interest,
			CumulativePaid: loan - remaining,
			RemainingLoan:  remaining,
			PreSalary:      utils.Compound(in.PreSalary, in.SalaryGrowth, year+in.Duration),
			PostSalary:     utils.Compound(in.PostSalary, in.PostGrowth, year),
		})
	}

	if remaining > 0 {
		last := &schedule[len(schedule)-1]
		last.LoanPaid = remaining + remaining*annualRate
		last.CumulativePaid = loan
		last.RemainingLoan = 0
	}

	return schedule, nil
}
