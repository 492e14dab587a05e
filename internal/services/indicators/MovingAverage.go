package indicators

// Default moving average cross periods
const (
	MADefaultShort = 50
	MADefaultLong  = 200
)

// MASignal classifies the relation between the short and long moving average.
type MASignal string

const (
	MAGoldenCross      MASignal = "golden_cross"
	MADeathCross       MASignal = "death_cross"
	MAAbove            MASignal = "above"
	MABelow            MASignal = "below"
	MAInsufficientData MASignal = "insufficient_data"
)

// MACrossResult holds the current short/long simple moving averages and the
// crossover classification.
type MACrossResult struct {
	ShortMA float64
	LongMA  float64
	Signal  MASignal
}

// CheckMovingAverages computes trailing simple moving averages and detects
// golden/death crosses between the previous and current sample. A cross is
// only reported when both averages existed one sample earlier; with exactly
// longPeriod samples only the current above/below state is classified.
//
// Returns an insufficient_data result with fewer than longPeriod samples.
func CheckMovingAverages(prices []float64, shortPeriod, longPeriod int) MACrossResult {
	if len(prices) < longPeriod {
		return MACrossResult{Signal: MAInsufficientData}
	}

	shortCurrent := SMA(prices, shortPeriod)
	longCurrent := SMA(prices, longPeriod)

	// Previous averages need one extra sample
	if len(prices) < longPeriod+1 {
		return MACrossResult{
			ShortMA: shortCurrent,
			LongMA:  longCurrent,
			Signal:  currentState(shortCurrent, longCurrent),
		}
	}

	prev := prices[:len(prices)-1]
	shortPrevious := SMA(prev, shortPeriod)
	longPrevious := SMA(prev, longPeriod)

	signal := currentState(shortCurrent, longCurrent)
	if shortCurrent > longCurrent && shortPrevious <= longPrevious {
		signal = MAGoldenCross
	} else if shortCurrent < longCurrent && shortPrevious >= longPrevious {
		signal = MADeathCross
	}

	return MACrossResult{
		ShortMA: shortCurrent,
		LongMA:  longCurrent,
		Signal:  signal,
	}
}

func currentState(shortMA, longMA float64) MASignal {
	if shortMA > longMA {
		return MAAbove
	}
	return MABelow
}
