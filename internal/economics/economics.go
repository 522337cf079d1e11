package economics

import (
	"github.com/shopspring/decimal"

	"sprayguard/internal/models"
)

// BreakEvenPlaces is the rounding applied to break-even yield (kg/ha)
const BreakEvenPlaces = 1

var (
	kgPerTonne = decimal.NewFromInt(1000)
	hundred    = decimal.NewFromInt(100)
)

// Evaluate computes total cost and break-even yield for a spray decision.
// A zero grain price is rejected with models.ErrZeroGrainPrice.
func Evaluate(in models.EconomicInputs) (models.Economics, error) {
	if err := in.Validate(); err != nil {
		return models.Economics{}, err
	}

	total := decimal.NewFromFloat(in.ProductCostPerHa).Add(decimal.NewFromFloat(in.ApplicationCostPerHa))
	price := decimal.NewFromFloat(in.GrainPricePerTonne)

	// $/ha divided by $/t gives t/ha
	breakEvenKg := total.Div(price).Mul(kgPerTonne).Round(BreakEvenPlaces)

	result := models.Economics{
		TotalCostPerHa:        total.Round(2).InexactFloat64(),
		BreakEvenYieldKgPerHa: breakEvenKg.InexactFloat64(),
	}

	if in.YieldPotentialTPerHa > 0 {
		yieldKg := decimal.NewFromFloat(in.YieldPotentialTPerHa).Mul(kgPerTonne)
		pct := breakEvenKg.Div(yieldKg).Mul(hundred).Round(2).InexactFloat64()
		result.BreakEvenPercentOfYield = &pct
	}
	return result, nil
}

// ForOption evaluates economics for one catalog option. The option's own
// cost replaces the product cost when it has one.
func ForOption(opt models.FungicideOption, in models.EconomicInputs) (models.Economics, error) {
	if opt.CostPerHa != nil {
		in.ProductCostPerHa = *opt.CostPerHa
	}
	return Evaluate(in)
}
