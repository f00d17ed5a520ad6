package spectrum

import "math"

// Grid returns the ln k sampling: perDecade points per decade starting
// at kMin, with enough points to always encompass kMax.
func Grid(kMin, kMax, perDecade float64) []float64 {
	n := int(math.Log10(kMax/kMin)*perDecade) + 2
	lnk := make([]float64, n)
	dlnk := math.Ln10 / perDecade
	for i := range lnk {
		lnk[i] = math.Log(kMin) + float64(i)*dlnk
	}
	return lnk
}
