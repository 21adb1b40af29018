package reembed

import "math"

// NormalizeVector scales a burial embedding to unit length so stored
// vectors compare by cosine with a plain dot product. It reports false when
// the vector cannot be used for ranking: empty, all zeros, or containing
// NaN or infinite components. The input is never modified.
func NormalizeVector(v []float32) ([]float32, bool) {
	var sum float64
	for _, x := range v {
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false
		}
		sum += f * f
	}
	if sum == 0 {
		return nil, false
	}

	norm := math.Sqrt(sum)
	unit := make([]float32, len(v))
	for i, x := range v {
		unit[i] = float32(float64(x) / norm)
	}
	return unit, true
}
