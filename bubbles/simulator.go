package bubbles

// SimulationResult is the hypothetical outcome of buying the mentioned coin
// when the video was released and holding until now.
type SimulationResult struct {
	Invested  float64 `json:"invested"`
	Coins     float64 `json:"coins"`
	ValueNow  float64 `json:"value_now"`
	Profit    float64 `json:"profit"`
	ReturnPct float64 `json:"return_pct"`
	Valid     bool    `json:"valid"`
}

// Simulate computes the investment outcome for one item. Items without price
// data (or a zero/negative amount) produce an invalid result rather than NaN.
func Simulate(item Item, amount float64) SimulationResult {
	if amount <= 0 || item.PriceAtPost <= 0 || item.PriceNow <= 0 {
		return SimulationResult{Invested: amount}
	}
	coins := amount / item.PriceAtPost
	value := coins * item.PriceNow
	return SimulationResult{
		Invested:  amount,
		Coins:     coins,
		ValueNow:  value,
		Profit:    value - amount,
		ReturnPct: (value - amount) / amount * 100,
		Valid:     true,
	}
}
