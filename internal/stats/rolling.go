package stats

// RollingTrailingAverage smooths a series with a trailing index window of
// half-width window/2. Nil entries and non-positive values never enter the
// window. A nil input stays nil; a non-nil input whose window is empty passes
// through unchanged. Runs in O(n) with a sliding window.
func RollingTrailingAverage(values []*float64, window int) []*float64 {
	n := len(values)
	smoothed := make([]*float64, n)
	if n == 0 {
		return smoothed
	}

	half := window / 2

	type entry struct {
		idx int
		val float64
	}
	win := make([]entry, 0, half+1)
	winSum := 0.0

	for i := 0; i < n; i++ {
		if values[i] != nil && *values[i] > 0 {
			win = append(win, entry{idx: i, val: *values[i]})
			winSum += *values[i]
		}

		for len(win) > 0 && win[0].idx < i-half {
			winSum -= win[0].val
			win = win[1:]
		}

		switch {
		case values[i] == nil:
			smoothed[i] = nil
		case len(win) > 0:
			avg := winSum / float64(len(win))
			smoothed[i] = &avg
		default:
			v := *values[i]
			smoothed[i] = &v
		}
	}

	return smoothed
}
