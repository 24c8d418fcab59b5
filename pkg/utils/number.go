package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// SafeDivide divide a por b com fallback 0 quando o denominador é 0.
// Divisão por zero é entrada normal neste domínio, nunca um erro.
func SafeDivide(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// SafePercentage calcula part/total*100 com fallback 0
func SafePercentage(part, total float64) float64 {
	return SafeDivide(part, total) * 100
}
