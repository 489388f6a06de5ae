package main

import (
	"fmt"
	"os"

	calc "github.com/rpgo/portfolio-survival/internal/calculation"
	"github.com/rpgo/portfolio-survival/internal/config"
	"github.com/rpgo/portfolio-survival/internal/domain"
)

// debug_path prints the zero-volatility path of a scenario file year by year as CSV.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_path <config-file>")
		return
	}
	p := config.NewInputParser()
	sc, err := p.LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	params := sc.Parameters

	strategy, err := calc.NewWithdrawalStrategy(params)
	if err != nil {
		panic(err)
	}
	model, err := calc.NewReturnModel(domain.ReturnModelArithmetic, params.MeanReturnPercent, 0, 0, params.FeePercent)
	if err != nil {
		panic(err)
	}
	src := calc.NewRandomSource(1, 0)

	fmt.Println("Year,Age,StartBalance,Withdrawal,AfterWithdrawal,Return,EndBalance")
	balance := params.InitialBalance
	for year := 0; year < params.Years; year++ {
		start := balance
		w := strategy.Withdrawal(balance, year)
		balance -= w
		if strategy.Ruined(balance) {
			fmt.Printf("%d,%d,%.2f,%.2f,%.2f,,RUINED\n", year, params.StartingAge+year, start, w, balance)
			return
		}
		after := balance
		r := model.Sample(src)
		balance *= 1 + r
		fmt.Printf("%d,%d,%.2f,%.2f,%.2f,%.4f,%.2f\n", year, params.StartingAge+year, start, w, after, r, balance)
	}

	res, err := calc.DeterministicPath(params)
	if err != nil {
		panic(err)
	}
	fmt.Printf("final balance %.2f (failed=%t)\n", res.FinalBalance, res.Failed)
}
