package calculations

import "github.com/cloud-ru/mba-roi-go/pkg/utils"

// BreakEven ищет первый год (с учетом лет учебы), к которому накопленная
// разница зарплат за вычетом платежей по кредиту покрывает totalInvestment.
// Поиск ограничен MaxBreakEvenYears; год за горизонтом считается недостижимым.
func BreakEven(in ROIInputs, emi, totalInvestment float64) (int, bool) {
	annualPayment := emi * MonthsPerYear
	cumulative := 0.0

	for year := 1; year <= MaxBreakEvenYears; year++ {
		pre := utils.Compound(in.PreSalary, in.SalaryGrowth, year+in.Duration)
		post := utils.Compound(in.PostSalary, in.PostGrowth, year)

		diff := post - pre
		if year <= in.LoanTerm {
			diff -= annualPayment
		}
		cumulative += diff

		if cumulative >= totalInvestment {
			breakEven := year + in.Duration
			if breakEven >= MaxBreakEvenYears {
				return 0, false
			}
			return breakEven, true
		}
	}
	return 0, false
}
