package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// YearRecord is the outcome of a single simulated year
type YearRecord struct {
	Index int `json:"index"`
	Year  int `json:"year"`

	BeginningTotalBalance decimal.Decimal `json:"beginning_total_balance"`
	SpendingNeed          decimal.Decimal `json:"spending_need"`
	ExternalIncome        decimal.Decimal `json:"external_income"`
	NetCashNeed           decimal.Decimal `json:"net_cash_need"`

	// Withdrawals by source
	TaxDeferredWithdrawal decimal.Decimal `json:"tax_deferred_withdrawal"`
	TaxFreeWithdrawal     decimal.Decimal `json:"tax_free_withdrawal"`
	TaxableWithdrawal     decimal.Decimal `json:"taxable_withdrawal"`
	GrossWithdrawal       decimal.Decimal `json:"gross_withdrawal"`
	TaxesPaid             decimal.Decimal `json:"taxes_paid"`
	NetSpendingAvailable  decimal.Decimal `json:"net_spending_available"`
	Shortfall             decimal.Decimal `json:"shortfall"` // cash need the accounts did not cover

	// Balances (end of year, after growth)
	Growth                   decimal.Decimal `json:"growth"`
	EndingTaxDeferredBalance decimal.Decimal `json:"ending_tax_deferred_balance"`
	EndingTaxFreeBalance     decimal.Decimal `json:"ending_tax_free_balance"`
	EndingTaxableBalance     decimal.Decimal `json:"ending_taxable_balance"`
	EndingTotalBalance       decimal.Decimal `json:"ending_total_balance"`

	PercentOfBalanceWithdrawn decimal.Decimal `json:"percent_of_balance_withdrawn"`
	MonthlyNetSpending        decimal.Decimal `json:"monthly_net_spending"`
	Depleted                  bool            `json:"depleted"`
}

// ProjectionResult is the chronological sequence of simulated years
type ProjectionResult []YearRecord

// Final returns the last record, or a zero record for an empty result
func (r ProjectionResult) Final() YearRecord {
	if len(r) == 0 {
		return YearRecord{}
	}
	return r[len(r)-1]
}

// DepletionIndex returns the index of the first depleted year, or -1
func (r ProjectionResult) DepletionIndex() int {
	for i, rec := range r {
		if rec.Depleted {
			return i
		}
	}
	return -1
}

// ProjectionSummary holds the reductions derived from a ProjectionResult
type ProjectionSummary struct {
	TotalStartingBalance     decimal.Decimal `json:"total_starting_balance"`
	FinalBalance             decimal.Decimal `json:"final_balance"`
	CumulativeWithdrawals    decimal.Decimal `json:"cumulative_withdrawals"`
	CumulativeTaxes          decimal.Decimal `json:"cumulative_taxes"`
	CumulativeNetSpending    decimal.Decimal `json:"cumulative_net_spending"`
	CumulativeShortfall      decimal.Decimal `json:"cumulative_shortfall"`
	AverageWithdrawalPercent decimal.Decimal `json:"average_withdrawal_percent"`
	FirstYearMonthlyNet      decimal.Decimal `json:"first_year_monthly_net"`
	YearsFunded              int             `json:"years_funded"`
	Depleted                 bool            `json:"depleted"`
	DepletionYear            int             `json:"depletion_year,omitempty"`
}

// ScenarioOutcome pairs a named parameter set with its projection
type ScenarioOutcome struct {
	Name       string               `json:"name"`
	Parameters ProjectionParameters `json:"parameters"`
	Projection ProjectionResult     `json:"projection"`
	Summary    ProjectionSummary    `json:"summary"`
}

// ProjectionReport collects every scenario of a run for the output formatters
type ProjectionReport struct {
	ID          string            `json:"id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Scenarios   []ScenarioOutcome `json:"scenarios"`
	Assumptions []string          `json:"assumptions"`
}
