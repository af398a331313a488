package validation

import (
	"fmt"

	"beezio/internal/services/pricing"
)

// QuoteProblems validates a pricing quote request and returns every
// problem found, empty when the request is acceptable. Amounts are not
// mutated; callers decide whether to reject or surface the messages.
func QuoteProblems(askPrice float64, commission pricing.Commission, fundraiserPercent float64) []string {
	var problems []string

	if askPrice <= 0 {
		problems = append(problems, "ask price must be greater than 0")
	}
	if commission.Value < 0 {
		problems = append(problems, "commission cannot be negative")
	}
	if commission.Type == pricing.CommissionPercent && commission.Value > 100 {
		problems = append(problems, "commission percentage cannot exceed 100%")
	}
	if commission.Type == pricing.CommissionFlat && askPrice > 0 && commission.Value > askPrice*2 {
		problems = append(problems, fmt.Sprintf("flat commission %.2f is unusually high for an ask of %.2f", commission.Value, askPrice))
	}
	if fundraiserPercent < 0 || fundraiserPercent > 100 {
		problems = append(problems, "fundraiser percent must be between 0 and 100")
	}

	return problems
}
