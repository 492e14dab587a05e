package advisor

import (
	"fmt"
	"math"

	"ETHInvestBot/internal/services/indicators"
)

// evaluateRSI maps an RSI reading to a signed vote. Strength scales with
// distance past the 30/70 bands, capped at +-2.0, with a slight bias in the
// outer neutral zones.
func evaluateRSI(rsi float64) SignalVote {
	switch {
	case rsi < 30:
		strength := (30 - rsi) / 10
		if rsi < 20 {
			return SignalVote{
				Strength:    math.Min(strength, 2.0),
				Explanation: fmt.Sprintf("RSI is extremely oversold (%.1f), strong buy signal", rsi),
			}
		}
		return SignalVote{
			Strength:    strength,
			Explanation: fmt.Sprintf("RSI is oversold (%.1f), buy signal", rsi),
		}
	case rsi > 70:
		strength := -(rsi - 70) / 10
		if rsi > 80 {
			return SignalVote{
				Strength:    math.Max(strength, -2.0),
				Explanation: fmt.Sprintf("RSI is extremely overbought (%.1f), strong sell signal", rsi),
			}
		}
		return SignalVote{
			Strength:    strength,
			Explanation: fmt.Sprintf("RSI is overbought (%.1f), sell signal", rsi),
		}
	case rsi < 45:
		return SignalVote{
			Strength:    0.3,
			Explanation: fmt.Sprintf("RSI is neutral-low (%.1f), slight buy bias", rsi),
		}
	case rsi > 55:
		return SignalVote{
			Strength:    -0.3,
			Explanation: fmt.Sprintf("RSI is neutral-high (%.1f), slight sell bias", rsi),
		}
	default:
		return SignalVote{
			Explanation: fmt.Sprintf("RSI is neutral (%.1f), no clear signal", rsi),
		}
	}
}

// evaluateMACD votes +-1.5 on a fresh crossover, escalated to +-2.0 when the
// cross happens on the wrong side of zero, and falls back to a small
// momentum vote when the histogram magnitude is growing in its current sign.
func evaluateMACD(macd indicators.MACDResult) SignalVote {
	switch macd.Signal {
	case indicators.CrossBuy:
		if macd.MACDLine < 0 && macd.SignalLine < 0 && macd.Histogram > 0 {
			return SignalVote{
				Strength:    2.0,
				Explanation: "MACD line crossed above signal line from below zero, strong buy signal",
			}
		}
		return SignalVote{
			Strength:    1.5,
			Explanation: "MACD line crossed above signal line, buy signal",
		}
	case indicators.CrossSell:
		if macd.MACDLine > 0 && macd.SignalLine > 0 && macd.Histogram < 0 {
			return SignalVote{
				Strength:    -2.0,
				Explanation: "MACD line crossed below signal line from above zero, strong sell signal",
			}
		}
		return SignalVote{
			Strength:    -1.5,
			Explanation: "MACD line crossed below signal line, sell signal",
		}
	}

	// No cross; check histogram momentum
	if macd.Histogram > 0 && macd.Histogram > math.Abs(macd.PrevHistogram) {
		return SignalVote{
			Strength:    0.5,
			Explanation: "MACD histogram is positive and increasing, bullish momentum",
		}
	}
	if macd.Histogram < 0 && math.Abs(macd.Histogram) > math.Abs(macd.PrevHistogram) {
		return SignalVote{
			Strength:    -0.5,
			Explanation: "MACD histogram is negative and decreasing, bearish momentum",
		}
	}

	return SignalVote{Explanation: "MACD shows no clear signal"}
}

// evaluateMovingAverages votes +-2.0 on a fresh golden/death cross and
// +-1.0 for the plain above/below state.
func evaluateMovingAverages(ma indicators.MACrossResult) SignalVote {
	switch ma.Signal {
	case indicators.MAGoldenCross:
		return SignalVote{
			Strength:    2.0,
			Explanation: "Golden cross detected (50-day MA crossed above 200-day MA), strong buy signal",
		}
	case indicators.MADeathCross:
		return SignalVote{
			Strength:    -2.0,
			Explanation: "Death cross detected (50-day MA crossed below 200-day MA), strong sell signal",
		}
	case indicators.MAAbove:
		return SignalVote{
			Strength:    1.0,
			Explanation: "Price is above 200-day MA, bullish trend",
		}
	case indicators.MABelow:
		return SignalVote{
			Strength:    -1.0,
			Explanation: "Price is below 200-day MA, bearish trend",
		}
	}
	return SignalVote{Explanation: "Moving averages show no clear signal"}
}

// evaluateSupportResistance votes on proximity to the nearest support and
// resistance level in distance tiers of 1%/3%/5%. Resistance proximity
// overrides a weaker support vote but never a strictly stronger one.
func evaluateSupportResistance(price float64, levels indicators.SRLevels) SignalVote {
	vote := SignalVote{}

	if len(levels.Support) > 0 {
		closestSupport := levels.Support[0] // Sorted descending, nearest first
		supportDistance := (price - closestSupport) / price * 100

		if supportDistance < 1 {
			vote = SignalVote{
				Strength:    1.5,
				Explanation: fmt.Sprintf("Price is very close to support level ($%.2f), strong buy signal", closestSupport),
			}
		} else if supportDistance < 3 {
			vote = SignalVote{
				Strength:    1.0,
				Explanation: fmt.Sprintf("Price is near support level ($%.2f), buy signal", closestSupport),
			}
		} else if supportDistance < 5 {
			vote = SignalVote{
				Strength:    0.5,
				Explanation: fmt.Sprintf("Price is approaching support level ($%.2f), potential buy zone", closestSupport),
			}
		}
	}

	if len(levels.Resistance) > 0 {
		closestResistance := levels.Resistance[0] // Sorted ascending, nearest first
		resistanceDistance := (closestResistance - price) / price * 100

		if resistanceDistance < 1 {
			vote = SignalVote{
				Strength:    -1.5,
				Explanation: fmt.Sprintf("Price is very close to resistance level ($%.2f), strong sell signal", closestResistance),
			}
		} else if resistanceDistance < 3 && vote.Strength < 1.5 {
			vote = SignalVote{
				Strength:    -1.0,
				Explanation: fmt.Sprintf("Price is near resistance level ($%.2f), sell signal", closestResistance),
			}
		} else if resistanceDistance < 5 && vote.Strength < 1.0 {
			vote = SignalVote{
				Strength:    -0.5,
				Explanation: fmt.Sprintf("Price is approaching resistance level ($%.2f), potential sell zone", closestResistance),
			}
		}
	}

	if vote.Explanation == "" {
		vote.Explanation = "Price is not near significant support or resistance levels"
	}

	return vote
}

// evaluateTrend fits a linear regression over the trailing window and maps
// the slope, normalized by the mean price, to tiered votes at 0.1/0.3/1.0
// percent per period.
func evaluateTrend(prices []float64, window int) SignalVote {
	if len(prices) < window {
		return SignalVote{Explanation: "Insufficient data for trend analysis"}
	}

	recent := prices[len(prices)-window:]

	// Least squares slope over index positions
	n := float64(len(recent))
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range recent {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	slope := (n*sumXY - sumX*sumY) / (n*sumXX - sumX*sumX)

	normSlope := slope / mean(recent) * 100

	switch {
	case normSlope > 1.0:
		return SignalVote{
			Strength:    1.5,
			Explanation: fmt.Sprintf("Strong upward trend detected (%.2f%% per period), buy signal", normSlope),
		}
	case normSlope > 0.3:
		return SignalVote{
			Strength:    1.0,
			Explanation: fmt.Sprintf("Upward trend detected (%.2f%% per period), buy signal", normSlope),
		}
	case normSlope > 0.1:
		return SignalVote{
			Strength:    0.5,
			Explanation: fmt.Sprintf("Slight upward trend detected (%.2f%% per period), weak buy signal", normSlope),
		}
	case normSlope < -1.0:
		return SignalVote{
			Strength:    -1.5,
			Explanation: fmt.Sprintf("Strong downward trend detected (%.2f%% per period), sell signal", normSlope),
		}
	case normSlope < -0.3:
		return SignalVote{
			Strength:    -1.0,
			Explanation: fmt.Sprintf("Downward trend detected (%.2f%% per period), sell signal", normSlope),
		}
	case normSlope < -0.1:
		return SignalVote{
			Strength:    -0.5,
			Explanation: fmt.Sprintf("Slight downward trend detected (%.2f%% per period), weak sell signal", normSlope),
		}
	default:
		return SignalVote{
			Explanation: fmt.Sprintf("No significant trend detected (%.2f%% per period)", normSlope),
		}
	}
}

// evaluateVolatility compares the standard deviation of returns over the
// trailing window against the prior window of the same length when enough
// history exists, and otherwise falls back to absolute thresholds.
func evaluateVolatility(prices []float64, window int) SignalVote {
	if len(prices) < window {
		return SignalVote{Explanation: "Insufficient data for volatility analysis"}
	}

	volatility := returnsStdDev(prices[len(prices)-window:]) * 100

	if len(prices) >= window*3 {
		historical := returnsStdDev(prices[len(prices)-window*3:len(prices)-window]) * 100
		if historical > 0 {
			ratio := volatility / historical

			switch {
			case ratio > 2.0:
				return SignalVote{
					Strength:    -1.0,
					Explanation: fmt.Sprintf("Extremely high volatility (%.2f%%, %.1fx normal), caution advised", volatility, ratio),
				}
			case ratio > 1.5:
				return SignalVote{
					Strength:    -0.5,
					Explanation: fmt.Sprintf("Elevated volatility (%.2f%%, %.1fx normal), increased risk", volatility, ratio),
				}
			case ratio < 0.5:
				return SignalVote{
					Strength:    0.5,
					Explanation: fmt.Sprintf("Low volatility (%.2f%%, %.1fx normal), reduced risk", volatility, ratio),
				}
			default:
				return SignalVote{
					Explanation: fmt.Sprintf("Normal volatility levels (%.2f%%)", volatility),
				}
			}
		}
	}

	// No historical comparison available
	switch {
	case volatility > 5:
		return SignalVote{
			Strength:    -1.0,
			Explanation: fmt.Sprintf("High volatility detected (%.2f%%), caution advised", volatility),
		}
	case volatility < 1:
		return SignalVote{
			Strength:    0.5,
			Explanation: fmt.Sprintf("Low volatility detected (%.2f%%), reduced risk", volatility),
		}
	default:
		return SignalVote{
			Explanation: fmt.Sprintf("Moderate volatility (%.2f%%)", volatility),
		}
	}
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

// returnsStdDev computes the population standard deviation of
// period-over-period returns.
func returnsStdDev(prices []float64) float64 {
	if len(prices) < 2 {
		return 0
	}

	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			continue
		}
		returns = append(returns, (prices[i]-prices[i-1])/prices[i-1])
	}
	if len(returns) == 0 {
		return 0
	}

	avg := mean(returns)
	variance := 0.0
	for _, r := range returns {
		diff := r - avg
		variance += diff * diff
	}
	return math.Sqrt(variance / float64(len(returns)))
}
