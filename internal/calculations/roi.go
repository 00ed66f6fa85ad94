package calculations

import "github.com/cloud-ru/mba-roi-go/pkg/utils"

// ComputeROI рассчитывает стоимость программы, упущенный доход, платеж по
// кредиту, год безубыточности и годовую доходность вложений в MBA
func ComputeROI(in ROIInputs) (*ROIResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	totalCost := in.TotalCost()
	opportunityCost := OpportunityCost(in)
	totalInvestment := totalCost + opportunityCost

	emi := EMI(totalCost, in.LoanInterest, in.LoanTerm)
	totalLoanRepayment := emi * float64(in.Months())

	breakEvenYear, achieved := BreakEven(in, emi, totalInvestment)

	var roiPercentage float64
	if totalInvestment > 0 {
		roiPercentage = NetGainPerYear(in, totalLoanRepayment) / totalInvestment * 100
	}

	return &ROIResult{
		TotalCost:          totalCost,
		OpportunityCost:    opportunityCost,
		EMI:                emi,
		TotalLoanRepayment: totalLoanRepayment,
		TotalInvestment:    totalInvestment,
		BreakEvenYear:      breakEvenYear,
		BreakEvenAchieved:  achieved,
		ROIPercentage:      roiPercentage,
	}, nil
}

// OpportunityCost зарплата, упущенная за время учебы, с ежегодным ростом,
// начиная с первого года
func OpportunityCost(in ROIInputs) float64 {
	total := 0.0
	for year := 1; year <= in.Duration; year++ {
		total += utils.Compound(in.PreSalary, in.SalaryGrowth, year)
	}
	return total
}

// NetGainPerYear средний годовой выигрыш за срок кредита: заработок после MBA
// минус заработок, который был бы без MBA, минус выплаты по кредиту
func NetGainPerYear(in ROIInputs, totalLoanRepayment float64) float64 {
	postEarnings := 0.0
	for year := 1; year <= in.LoanTerm; year++ {
		postEarnings += utils.Compound(in.PostSalary, in.PostGrowth, year)
	}

	// без MBA зарплата продолжает расти с года окончания учебы
	preEarnings := 0.0
	for year := 0; year < in.LoanTerm; year++ {
		preEarnings += utils.Compound(in.PreSalary, in.SalaryGrowth, year+in.Duration)
	}

	return (postEarnings - preEarnings - totalLoanRepayment) / float64(in.LoanTerm)
}
