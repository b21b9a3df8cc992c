package systems

// clamp01 clamps a float32 value to the [0, 1] range. NaN maps to 0.
func clamp01(v float32) float32 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
