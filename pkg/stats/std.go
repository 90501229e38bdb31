package stats

type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type Float interface {
	~float32 | ~float64
}

// Returns (mean, variance) of the given samples.
func MeanVar[T Float | Integer](samples []T) (float64, float64) {
	mean := Mean(samples)
	variance := Variance(samples, mean)
	return mean, variance
}

// Returns the mean of the given samples, or 0 for an empty set.
func Mean[T Float | Integer](samples []T) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range samples {
		sum += float64(v)
	}
	return sum / float64(len(samples))
}

// Returns the variance of the given samples.
func Variance[T Float | Integer](samples []T, mean float64) float64 {
	sum := 0.0
	for _, v := range samples {
		diff := float64(v) - mean
		sum += diff * diff
	}
	return sum / float64(len(samples))
}

// Returns the smallest of the given samples, or 0 for an empty set.
func Min[T Float | Integer](samples []T) T {
	var m T
	for i, v := range samples {
		if i == 0 || v < m {
			m = v
		}
	}
	return m
}

// Returns the largest of the given samples, or 0 for an empty set.
func Max[T Float | Integer](samples []T) T {
	var m T
	for i, v := range samples {
		if i == 0 || v > m {
			m = v
		}
	}
	return m
}
