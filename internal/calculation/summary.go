package calculation

import (
	"github.com/rpgo/drawdown/internal/domain"
	"github.com/shopspring/decimal"
)

// TotalStartingBalance is the first year's beginning balance
func TotalStartingBalance(r domain.ProjectionResult) decimal.Decimal {
	if len(r) == 0 {
		return decimal.Zero
	}
	return r[0].BeginningTotalBalance
}

// FinalBalance is the last year's ending balance
func FinalBalance(r domain.ProjectionResult) decimal.Decimal {
	return r.Final().EndingTotalBalance
}

// CumulativeTaxes sums taxes paid over every year
func CumulativeTaxes(r domain.ProjectionResult) decimal.Decimal {
	return sumOf(r, func(y domain.YearRecord) decimal.Decimal { return y.TaxesPaid })
}

// CumulativeWithdrawals sums gross withdrawals over every year
func CumulativeWithdrawals(r domain.ProjectionResult) decimal.Decimal {
	return sumOf(r, func(y domain.YearRecord) decimal.Decimal { return y.GrossWithdrawal })
}

// CumulativeNetSpending sums the spending available over every year
func CumulativeNetSpending(r domain.ProjectionResult) decimal.Decimal {
	return sumOf(r, func(y domain.YearRecord) decimal.Decimal { return y.NetSpendingAvailable })
}

// CumulativeShortfall sums the unmet cash need over every year
func CumulativeShortfall(r domain.ProjectionResult) decimal.Decimal {
	return sumOf(r, func(y domain.YearRecord) decimal.Decimal { return y.Shortfall })
}

// AverageWithdrawalPercent averages PercentOfBalanceWithdrawn over the years
// that began with money in the accounts.
func AverageWithdrawalPercent(r domain.ProjectionResult) decimal.Decimal {
	total := decimal.Zero
	n := 0
	for _, y := range r {
		if y.Depleted {
			continue
		}
		total = total.Add(y.PercentOfBalanceWithdrawn)
		n++
	}
	if n == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(n)))
}

// YearsFunded counts the leading years whose cash need was fully met
func YearsFunded(r domain.ProjectionResult) int {
	for i, y := range r {
		if y.Depleted || y.Shortfall.IsPositive() {
			return i
		}
	}
	return len(r)
}

// Summarize derives every reduction in one pass-friendly call
func Summarize(r domain.ProjectionResult) domain.ProjectionSummary {
	s := domain.ProjectionSummary{
		TotalStartingBalance:     TotalStartingBalance(r),
		FinalBalance:             FinalBalance(r),
		CumulativeWithdrawals:    CumulativeWithdrawals(r),
		CumulativeTaxes:          CumulativeTaxes(r),
		CumulativeNetSpending:    CumulativeNetSpending(r),
		CumulativeShortfall:      CumulativeShortfall(r),
		AverageWithdrawalPercent: AverageWithdrawalPercent(r),
		YearsFunded:              YearsFunded(r),
	}
	if len(r) > 0 {
		s.FirstYearMonthlyNet = r[0].MonthlyNetSpending
	}
	if idx := r.DepletionIndex(); idx >= 0 {
		s.Depleted = true
		s.DepletionYear = r[idx].Year
	}
	return s
}

func sumOf(r domain.ProjectionResult, field func(domain.YearRecord) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, y := range r {
		total = total.Add(field(y))
	}
	return total
}
