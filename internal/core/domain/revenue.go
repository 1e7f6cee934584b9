package domain

import "math"

// DefaultAdminCut is the platform's fraction of every booking's total cost.
const DefaultAdminCut = 0.10

// CostSplit is the revenue breakdown of a single booking.
// AdminShare + EmployeeShare always equals Total.
type CostSplit struct {
	Total         float64
	AdminShare    float64
	EmployeeShare float64
}

// SplitCost computes the booking total and its admin/employee split.
// The admin share is rounded to cents; the employee share takes the
// remainder so no revenue leaks to rounding.
func SplitCost(price float64, adults, children int, adminCut float64) CostSplit {
	total := price*float64(adults) + price*float64(children)
	admin := round2(total * adminCut)
	return CostSplit{
		Total:         total,
		AdminShare:    admin,
		EmployeeShare: total - admin,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
