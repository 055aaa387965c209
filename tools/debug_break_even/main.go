package main

import (
	"context"
	"fmt"
	"os"

	calc "github.com/rpgo/drawdown/internal/calculation"
	"github.com/rpgo/drawdown/internal/config"
	"github.com/shopspring/decimal"
)

// Dumps per-year withdrawals and net spending for every scenario in a
// configuration, then the cumulative net spending of the first two scenarios
// and where they cross.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_break_even <config-file>")
		return
	}
	f := os.Args[1]
	p := config.NewInputParser()
	cfg, err := p.LoadFromFile(f)
	if err != nil {
		panic(err)
	}
	res, err := calc.NewEngine().RunScenarios(context.Background(), cfg)
	if err != nil {
		panic(err)
	}
	if len(res.Scenarios) < 1 {
		fmt.Println("no scenarios")
		return
	}

	// Find the minimum projection length across scenarios
	minLen := -1
	for _, s := range res.Scenarios {
		if minLen == -1 || len(s.Projection) < minLen {
			minLen = len(s.Projection)
		}
	}
	if minLen <= 0 {
		fmt.Println("no projection data")
		return
	}

	header := "Index,Year"
	for i := range res.Scenarios {
		header += fmt.Sprintf(",S%d_Need,S%d_Income,S%d_Gross,S%d_Taxes,S%d_Net,S%d_Ending", i+1, i+1, i+1, i+1, i+1, i+1)
	}
	fmt.Println(header)

	for idx := 0; idx < minLen; idx++ {
		row := fmt.Sprintf("%d,%d", idx, res.Scenarios[0].Projection[idx].Year)
		for sidx := range res.Scenarios {
			y := res.Scenarios[sidx].Projection[idx]
			row += fmt.Sprintf(",%s,%s,%s,%s,%s,%s", y.SpendingNeed.StringFixed(0), y.ExternalIncome.StringFixed(0),
				y.GrossWithdrawal.StringFixed(0), y.TaxesPaid.StringFixed(0), y.NetSpendingAvailable.StringFixed(0),
				y.EndingTotalBalance.StringFixed(0))
		}
		fmt.Println(row)
	}

	if len(res.Scenarios) >= 2 {
		a := res.Scenarios[0].Projection
		b := res.Scenarios[1].Projection
		cumA := decimal.Zero
		cumB := decimal.Zero
		for i := 0; i < len(a) && i < len(b); i++ {
			cumA = cumA.Add(a[i].NetSpendingAvailable)
			cumB = cumB.Add(b[i].NetSpendingAvailable)
			fmt.Printf("Cumulative Year %d: cumA=%s cumB=%s diff=%s\n", a[i].Year, cumA.StringFixed(0), cumB.StringFixed(0), cumA.Sub(cumB).StringFixed(0))
		}
		cross, err := calc.CumulativeCrossover(a, b)
		fmt.Printf("\nCrossover: %+v, err=%v\n", cross, err)
	}
}
