package services

import (
	"github.com/shopspring/decimal"
)

// RoundScore rounds to 2 decimal places, half to even, on the shortest decimal
// form of s: 0.125 -> 0.12, 0.135 -> 0.14, 0.1249999 -> 0.12.
// s must be finite.
func RoundScore(s float64) float64 {
	return decimal.NewFromFloat(s).RoundBank(2).InexactFloat64()
}
