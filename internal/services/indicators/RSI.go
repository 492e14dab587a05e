package indicators

import "math"

// RSIDefaultWindow is the classic Wilder RSI period.
const RSIDefaultWindow = 14

// CalculateRSI computes the Relative Strength Index from a chronological
// price series using a single average-gain/average-loss pass over the first
// window of price changes.
//
// Returns 50 (neutral) when fewer than window+1 samples are supplied and
// 100 when the average loss over the window is zero.
func CalculateRSI(prices []float64, window int) float64 {
	if len(prices) < window+1 {
		return 50 // Not enough data, neutral RSI
	}

	// Split price changes into gains and losses
	gains := make([]float64, 0, window)
	losses := make([]float64, 0, window)
	for i := 1; i <= window; i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gains = append(gains, change)
			losses = append(losses, 0)
		} else {
			gains = append(gains, 0)
			losses = append(losses, math.Abs(change))
		}
	}

	avgGain := mean(gains)
	avgLoss := mean(losses)

	if avgLoss == 0 {
		return 100 // No losses over the window
	}

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
