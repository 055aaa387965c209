package calculation

import (
	"github.com/rpgo/drawdown/internal/domain"
	"github.com/rpgo/drawdown/pkg/money"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// accounts holds the running balance of each account category during a projection
type accounts struct {
	taxDeferred decimal.Decimal
	taxFree     decimal.Decimal
	taxable     decimal.Decimal
}

func (a accounts) total() decimal.Decimal {
	return a.taxDeferred.Add(a.taxFree).Add(a.taxable)
}

// withdrawal is the outcome of one year's ordered draw
type withdrawal struct {
	taxDeferred decimal.Decimal
	taxFree     decimal.Decimal
	taxable     decimal.Decimal
	taxes       decimal.Decimal
	unmet       decimal.Decimal
}

func (w withdrawal) gross() decimal.Decimal {
	return w.taxDeferred.Add(w.taxFree).Add(w.taxable)
}

// drawFrom takes up to remaining from balance at a flat tax rate.
// With gross-up the draw is sized so the after-tax amount covers remaining.
// Returns the draw, the tax on it, and the need still unmet.
func drawFrom(balance *decimal.Decimal, remaining, rate decimal.Decimal, grossUp bool) (decimal.Decimal, decimal.Decimal, decimal.Decimal) {
	if !remaining.IsPositive() || !balance.IsPositive() {
		return decimal.Zero, decimal.Zero, remaining
	}

	var draw decimal.Decimal
	if grossUp && rate.IsPositive() {
		required := remaining.Div(one.Sub(rate))
		if required.LessThanOrEqual(*balance) {
			draw = required
			remaining = decimal.Zero
		} else {
			draw = *balance
			remaining = money.FloorZero(remaining.Sub(draw.Mul(one.Sub(rate))))
		}
	} else {
		draw = money.Min(remaining, *balance)
		remaining = remaining.Sub(draw)
	}

	*balance = money.FloorZero(balance.Sub(draw))
	return draw, draw.Mul(rate), remaining
}

// withdraw pulls need from the accounts in priority order: tax-deferred,
// then tax-free, then taxable. Each account supplies at most its balance
// and at most the still-unmet remainder.
func (a *accounts) withdraw(need decimal.Decimal, p domain.ProjectionParameters) withdrawal {
	grossUp := p.EffectiveTaxTreatment() == domain.TaxGrossUp
	var w withdrawal
	var tax decimal.Decimal
	remaining := need

	w.taxDeferred, tax, remaining = drawFrom(&a.taxDeferred, remaining, p.EffectiveTaxRate, grossUp)
	w.taxes = w.taxes.Add(tax)

	w.taxFree, _, remaining = drawFrom(&a.taxFree, remaining, decimal.Zero, grossUp)

	w.taxable, tax, remaining = drawFrom(&a.taxable, remaining, p.TaxableAccountTaxRate, grossUp)
	w.taxes = w.taxes.Add(tax)

	w.unmet = remaining
	return w
}

// grow applies one year of growth to each remaining balance and returns the total growth
func (a *accounts) grow(rate decimal.Decimal) decimal.Decimal {
	before := a.total()
	a.taxDeferred = money.Grow(a.taxDeferred, rate)
	a.taxFree = money.Grow(a.taxFree, rate)
	a.taxable = money.Grow(a.taxable, rate)
	return a.total().Sub(before)
}
