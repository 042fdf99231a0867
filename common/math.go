package common

// Lerp interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Approach moves current toward target by at most step. A non-positive
// step snaps straight to target.
func Approach(current, target, step float64) float64 {
	if step <= 0 {
		return target
	}
	if d := target - current; d > step {
		return current + step
	} else if d < -step {
		return current - step
	}
	return target
}
