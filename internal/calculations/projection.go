package calculations

import "github.com/cloud-ru/mba-roi-go/pkg/utils"

// ProjectSalaries прогнозирует зарплату с MBA и без него на каждый год срока кредита
func ProjectSalaries(in ROIInputs) []SalaryPoint {
	points := make([]SalaryPoint, 0, max(in.LoanTerm, 0))
	for year := 1; year <= in.LoanTerm; year++ {
		points = append(points, SalaryPoint{
			Year:       year,
			PreSalary:  utils.Compound(in.PreSalary, in.SalaryGrowth, year+in.Duration),
			PostSalary: utils.Compound(in.PostSalary, in.PostGrowth, year),
		})
	}
	return points
}
