package indicators

// Default MACD periods
const (
	MACDDefaultFast   = 12
	MACDDefaultSlow   = 26
	MACDDefaultSignal = 9
)

// CrossSignal classifies the latest MACD histogram crossover.
type CrossSignal string

const (
	CrossBuy     CrossSignal = "buy"
	CrossSell    CrossSignal = "sell"
	CrossNeutral CrossSignal = "neutral"
)

// MACDResult holds the latest values of the MACD lines along with the
// histogram crossover classification. PrevHistogram is the histogram value
// one sample earlier, kept so callers can judge momentum.
type MACDResult struct {
	MACDLine      float64
	SignalLine    float64
	Histogram     float64
	PrevHistogram float64
	Signal        CrossSignal
}

// CalculateMACD computes Moving Average Convergence Divergence over a
// chronological price series. The crossover signal compares the sign of the
// current histogram against the previous one: a flip from negative to
// positive is a buy, positive to negative a sell, anything else neutral.
//
// Requires at least slowPeriod+signalPeriod samples; with fewer it returns
// a neutral-only result with zeroed lines.
func CalculateMACD(prices []float64, fastPeriod, slowPeriod, signalPeriod int) MACDResult {
	if len(prices) < slowPeriod+signalPeriod {
		return MACDResult{Signal: CrossNeutral}
	}

	fastEMA := EMA(prices, fastPeriod)
	slowEMA := EMA(prices, slowPeriod)

	// MACD line = fast EMA - slow EMA
	macdLine := make([]float64, len(prices))
	for i := range prices {
		macdLine[i] = fastEMA[i] - slowEMA[i]
	}

	// Signal line = EMA of the MACD line
	signalLine := EMA(macdLine, signalPeriod)

	// Histogram = MACD line - signal line
	histogram := make([]float64, len(prices))
	for i := range prices {
		histogram[i] = macdLine[i] - signalLine[i]
	}

	current := histogram[len(histogram)-1]
	previous := histogram[len(histogram)-2]

	signal := CrossNeutral
	if current > 0 && previous < 0 {
		signal = CrossBuy
	} else if current < 0 && previous > 0 {
		signal = CrossSell
	}

	return MACDResult{
		MACDLine:      macdLine[len(macdLine)-1],
		SignalLine:    signalLine[len(signalLine)-1],
		Histogram:     current,
		PrevHistogram: previous,
		Signal:        signal,
	}
}
