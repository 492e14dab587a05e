package indicators

import "sort"

// SRDefaultWindow is the default window for local extremum detection.
const SRDefaultWindow = 10

// SRLevels holds the support levels below the current price (sorted
// descending, nearest first) and resistance levels above it (sorted
// ascending, nearest first). At most 3 levels are kept per side.
type SRLevels struct {
	Support    []float64
	Resistance []float64
}

// IdentifySupportResistance scans a chronological price series for local
// minima (support) and maxima (resistance). A point is a local minimum when
// it is less than or equal to every price in the window before and after it;
// maxima are detected analogously. Levels on the wrong side of the most
// recent price are discarded.
//
// Returns empty level sets with fewer than 3*window samples.
func IdentifySupportResistance(prices []float64, window int) SRLevels {
	if len(prices) < window*3 {
		return SRLevels{Support: []float64{}, Resistance: []float64{}}
	}

	var supports, resistances []float64

	for i := window; i < len(prices)-window; i++ {
		if isLocalMin(prices, i, window) {
			supports = append(supports, prices[i])
		}
		if isLocalMax(prices, i, window) {
			resistances = append(resistances, prices[i])
		}
	}

	currentPrice := prices[len(prices)-1]

	// Keep supports below and resistances above the current price
	relevantSupport := make([]float64, 0, len(supports))
	for _, s := range supports {
		if s < currentPrice {
			relevantSupport = append(relevantSupport, s)
		}
	}
	relevantResistance := make([]float64, 0, len(resistances))
	for _, r := range resistances {
		if r > currentPrice {
			relevantResistance = append(relevantResistance, r)
		}
	}

	// Nearest levels first: highest support, lowest resistance
	sort.Sort(sort.Reverse(sort.Float64Slice(relevantSupport)))
	sort.Float64s(relevantResistance)

	if len(relevantSupport) > 3 {
		relevantSupport = relevantSupport[:3]
	}
	if len(relevantResistance) > 3 {
		relevantResistance = relevantResistance[:3]
	}

	return SRLevels{
		Support:    relevantSupport,
		Resistance: relevantResistance,
	}
}

func isLocalMin(prices []float64, i, window int) bool {
	for j := i - window; j < i; j++ {
		if prices[i] > prices[j] {
			return false
		}
	}
	for j := i + 1; j <= i+window; j++ {
		if prices[i] > prices[j] {
			return false
		}
	}
	return true
}

func isLocalMax(prices []float64, i, window int) bool {
	for j := i - window; j < i; j++ {
		if prices[i] < prices[j] {
			return false
		}
	}
	for j := i + 1; j <= i+window; j++ {
		if prices[i] < prices[j] {
			return false
		}
	}
	return true
}
