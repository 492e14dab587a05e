package indicators

// EMA computes an exponential moving average over the full series using
// smoothing factor 2/(period+1), seeded with the first value.
func EMA(values []float64, period int) []float64 {
	if len(values) == 0 || period <= 0 {
		return nil
	}

	multiplier := 2.0 / float64(period+1)

	ema := make([]float64, len(values))
	ema[0] = values[0]
	for i := 1; i < len(values); i++ {
		ema[i] = (values[i]-ema[i-1])*multiplier + ema[i-1]
	}

	return ema
}

// SMA computes the simple moving average of the trailing window ending at
// the last element. Returns 0 if the series is shorter than the period.
func SMA(values []float64, period int) float64 {
	if period <= 0 || len(values) < period {
		return 0
	}

	sum := 0.0
	for _, v := range values[len(values)-period:] {
		sum += v
	}
	return sum / float64(period)
}
