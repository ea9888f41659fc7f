package llm

// Price is a list price in USD per million tokens.
type Price struct {
	Input  float64
	Output float64
}

// Estimate returns the cost of u at this price.
func (p Price) Estimate(u Usage) float64 {
	return (float64(u.InputTokens)*p.Input + float64(u.OutputTokens)*p.Output) / 1e6
}

// PriceOf looks up the list price for a model ID. Dated snapshots of the
// same model share a row.
func PriceOf(model string) (Price, bool) {
	p, ok := prices[model]
	return p, ok
}

// Prices as published by the vendors; update alongside the aliases.
var prices = map[string]Price{
	"claude-haiku-4-5":           {1, 5},
	"claude-haiku-4-5-20251001":  {1, 5},
	"claude-sonnet-4-5":          {3, 15},
	"claude-sonnet-4-5-20250929": {3, 15},

	"gpt-4o":      {2.5, 10},
	"gpt-4o-mini": {0.15, 0.6},

	"gemini-2.5-flash": {0.3, 2.5},
	"gemini-2.5-pro":   {1.25, 10},
}
