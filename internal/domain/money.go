package domain

import "math"

// RoundMoney rounds a monetary amount to 2 decimal places. Every
// intermediate step of a price calculation goes through this, not just
// the final total, so repeated save/load cycles cannot accumulate
// floating point drift.
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
