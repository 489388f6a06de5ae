package main

import (
	"fmt"

	"github.com/rpgo/portfolio-survival/internal/calculation"
	"github.com/rpgo/portfolio-survival/internal/domain"
)

func main() {
	bands := []domain.RateBand{
		{MinAge: 60, MaxAge: 69, RatePercent: 4},
		{MinAge: 70, MaxAge: 79, RatePercent: 5},
	}

	fmt.Println("Age,DefaultLadder,Banded")
	for age := 55; age <= 100; age++ {
		fmt.Printf("%d,%.2f,%.2f\n", age, calculation.DefaultRateForAge(age), calculation.RateForAge(age, bands))
	}

	// Withdrawal at each age for a 1,000,000 balance under the default ladder.
	strategy := calculation.PercentageWithdrawal{StartingAge: 65}
	fmt.Println("Year,Age,WithdrawalOn1M")
	for year := 0; year < 30; year += 5 {
		fmt.Printf("%d,%d,%.2f\n", year, 65+year, strategy.Withdrawal(1000000, year))
	}
}
