package utils

import "math"

// Round2 округляет число до 2 знаков после запятой
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// IsFinite проверяет, является ли число конечным
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// Compound возвращает base, выросшую по ставке rate за periods периодов:
// base * (1+rate)^periods
func Compound(base, rate float64, periods int) float64 {
	return base * math.Pow(1+rate, float64(periods))
}

// NearlyEqual сравнивает два числа с абсолютной погрешностью tolerance
func NearlyEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}
