package calculations

import "math"

// EMI рассчитывает ежемесячный аннуитетный платеж по кредиту principal
// под annualRatePercent годовых на termYears лет.
// При нулевой ставке долг делится поровну на все месяцы.
func EMI(principal, annualRatePercent float64, termYears int) float64 {
	n := termYears * MonthsPerYear
	if n <= 0 {
		return 0
	}

	r := annualRatePercent / (MonthsPerYear * 100)
	if r == 0 {
		return principal / float64(n)
	}

	growth := math.Pow(1+r, float64(n))
	return principal * r * growth / (growth - 1)
}
