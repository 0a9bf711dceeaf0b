package domain

// SavingsPercent is the reduction of emissions against the car baseline in
// whole percent, with integer floor division. A zero baseline yields 0.
func SavingsPercent(emissions, carEmissions int) int {
	if carEmissions == 0 {
		return 0
	}
	return 100 - (100 * emissions / carEmissions)
}

// SavingsPercentFloat is SavingsPercent without rounding, for reports
// printed with decimals.
func SavingsPercentFloat(emissions, carEmissions int) float64 {
	if carEmissions == 0 {
		return 0
	}
	return 100 - (float64(emissions) / float64(carEmissions) * 100)
}
